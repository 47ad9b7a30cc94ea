package dashboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/dkoosis/regdash/pkg/registry"
	"github.com/dkoosis/regdash/pkg/render"
)

// Session runs one regression pass over a registry, interactively when
// stdout is a terminal and as a line console otherwise.
type Session struct {
	Registry *registry.Registry
	Options  Options

	// Summary, when set, is the format of the report printed after the
	// session ends.
	Summary render.Format

	// FailOnFailures makes Run return a *FailedTestsError when any record
	// ends the session marked Fail.
	FailOnFailures bool

	// Now stamps the summary report. Defaults to time.Now.
	Now func() time.Time
}

// NewSession creates a session over reg.
func NewSession(reg *registry.Registry, opts Options) *Session {
	return &Session{Registry: reg, Options: opts}
}

// Run executes the session until the user quits, input ends, or ctx is
// cancelled.
func (s *Session) Run(ctx context.Context) error {
	in := s.Options.Input
	if in == nil {
		in = os.Stdin
	}
	out := s.Options.Output
	if out == nil {
		out = os.Stdout
	}

	if isTerminal(out) {
		opts := s.Options
		opts.Input, opts.Output = in, out
		opts.AltScreen = true
		if err := RunDashboard(ctx, s.Registry, opts); err != nil {
			return err
		}
	} else if err := RunNonTTY(ctx, s.Registry, in, out, s.Options); err != nil {
		return err
	}

	if s.Summary != "" {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		snap := render.Capture(s.Registry, registry.FilterAll, now())
		if err := render.Write(out, s.Summary, snap); err != nil {
			return err
		}
	}

	if s.FailOnFailures {
		if failed := s.Registry.Stats().Fail; failed > 0 {
			return &FailedTestsError{Failed: failed}
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

// FailedTestsError indicates the session ended with failing tests.
type FailedTestsError struct {
	Failed int
}

func (e *FailedTestsError) Error() string {
	return fmt.Sprintf("%d test(s) failed", e.Failed)
}
