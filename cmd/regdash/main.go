// regdash is a terminal dashboard for tracking manual regression tests.
//
// Usage:
//
//	regdash                          interactive dashboard (TTY)
//	regdash --seed plan.yaml         start from a YAML test plan
//	regdash --summary markdown       print a report when the session ends
//	regdash validate plan.yaml       check a plan without running it
//	regdash version
//
// When stdout is not a terminal regdash reads line commands from stdin
// (type help for the list), which makes it scriptable:
//
//	printf 'add Login\npass 1\n' | regdash --summary json
//
// Exit codes: 0 ok, 1 failed tests with --exit-code or a runtime error,
// 2 usage or configuration errors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dkoosis/regdash/internal/config"
	"github.com/dkoosis/regdash/internal/logging"
	"github.com/dkoosis/regdash/internal/metrics"
	"github.com/dkoosis/regdash/internal/version"
	"github.com/dkoosis/regdash/pkg/dashboard"
	"github.com/dkoosis/regdash/pkg/registry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	return exitCode(root.ExecuteContext(ctx), stderr)
}

// usageError marks bad flags, arguments or configuration (exit 2).
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "regdash: %v\n", err)

	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"seed":             "seed",
	"filter":           "filter",
	"no-color":         "no_color",
	"summary":          "summary",
	"exit-code":        "exit_code",
	"metrics-textfile": "metrics_textfile",
	"log-file":         "log.file",
	"log-level":        "log.level",
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "regdash",
		Short:         "Track manual regression tests from the terminal",
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Options{
				Path: configPath,
				Bind: func(v *viper.Viper) error {
					for name, key := range flagKeys {
						if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
							return err
						}
					}
					return nil
				},
			})
			if err != nil {
				return usage(err)
			}
			return runSession(cmd.Context(), cfg, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage(err)
	})

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default .regdash.yaml in . or the user config dir)")
	f.String("seed", "", "YAML test plan to load at start")
	f.String("filter", config.DefaultFilter, "initial filter: all, pending, pass, fail")
	f.Bool("no-color", false, "disable colors")
	f.String("summary", config.DefaultSummary, "report printed at exit: text, markdown, json, none")
	f.Bool("exit-code", false, "exit 1 when any test ends marked fail")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file at exit")
	f.String("log-file", "", "rotating log file")
	f.String("log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(newVersionCmd(stdout), newValidateCmd(stdout))
	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	return usage(cobra.NoArgs(cmd, args))
}

func runSession(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	// The dashboard owns a terminal stdout; log to stderr only for the console.
	var fallback io.Writer
	if !isTTYWriter(stdout) {
		fallback = stderr
	}
	log, closer, err := logging.New(cfg.Logging(), fallback)
	if err != nil {
		return usage(err)
	}
	defer func() { _ = closer.Close() }()

	theme, err := dashboard.LoadTheme(cfg.File)
	if err != nil {
		log.Warn("theme not loaded, using defaults", "error", err)
	}
	theme.Monochrome = theme.Monochrome || cfg.NoColor

	collector := metrics.New()
	reg := registry.New(
		registry.WithHook(collector.Hook()),
		registry.WithHook(logEvents(log)),
	)

	if cfg.Seed != "" {
		plan, err := registry.LoadPlanFile(cfg.Seed)
		if err != nil {
			return usage(err)
		}
		n, err := plan.Apply(reg)
		if err != nil {
			return usage(fmt.Errorf("seeding from %s: %w", cfg.Seed, err))
		}
		log.Info("seeded registry", "plan", cfg.Seed, "tests", n)
	}

	summary, err := cfg.SummaryFormat()
	if err != nil {
		return usage(err)
	}

	session := dashboard.NewSession(reg, dashboard.Options{
		Theme:  theme,
		Filter: cfg.InitialFilter(),
		Logger: log,
		Input:  stdin,
		Output: stdout,
	})
	session.Summary = summary
	session.FailOnFailures = cfg.ExitCode

	log.Info("session started", "version", version.Version, "config", cfg.File)
	runErr := session.Run(ctx)
	stats := reg.Stats()
	log.Info("session ended", "total", stats.Total, "pass", stats.Pass, "fail", stats.Fail, "pending", stats.Pending)

	if cfg.MetricsTextfile != "" {
		if err := collector.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Error("metrics not written", "path", cfg.MetricsTextfile, "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	return runErr
}

func logEvents(log *slog.Logger) registry.Hook {
	return func(ev registry.Event) {
		log.Debug("registry event",
			"kind", ev.Kind.String(),
			"id", ev.Record.ID,
			"title", ev.Record.Title,
			"status", ev.Record.Status.String(),
			"previous", ev.Previous.String())
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(stdout, version.String())
			return err
		},
	}
}

func newValidateCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan.yaml>",
		Short: "Check a YAML test plan without running a session",
		Args: func(cmd *cobra.Command, args []string) error {
			return usage(cobra.ExactArgs(1)(cmd, args))
		},
		RunE: func(_ *cobra.Command, args []string) error {
			plan, err := registry.LoadPlanFile(args[0])
			if err != nil {
				return err
			}
			if err := plan.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			_, err = fmt.Fprintf(stdout, "%s: %d tests OK\n", args[0], len(plan.Tests))
			return err
		},
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
