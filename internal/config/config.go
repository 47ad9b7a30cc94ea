package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dkoosis/regdash/internal/logging"
	"github.com/dkoosis/regdash/pkg/registry"
	"github.com/dkoosis/regdash/pkg/render"
)

// Constants for default values.
const (
	ConfigName     = ".regdash"
	EnvPrefix      = "REGDASH"
	SummaryNone    = "none"
	DefaultFilter  = "all"
	DefaultSummary = SummaryNone
)

// LogConfig mirrors logging.Config with mapstructure tags.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Config is the resolved application configuration.
type Config struct {
	Seed            string    `mapstructure:"seed"`
	Filter          string    `mapstructure:"filter"`
	NoColor         bool      `mapstructure:"no_color"`
	Summary         string    `mapstructure:"summary"`
	ExitCode        bool      `mapstructure:"exit_code"`
	MetricsTextfile string    `mapstructure:"metrics_textfile"`
	Log             LogConfig `mapstructure:"log"`

	// File is the config file that was read, or empty when none was found.
	File string `mapstructure:"-"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// Path is an explicit config file; it must exist when set.
	Path string
	// SearchPaths overrides the default search directories.
	SearchPaths []string
	// Bind lets the caller bind CLI flags before values are resolved.
	Bind func(v *viper.Viper) error
}

// Load resolves configuration from flags, environment, file and defaults.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Bind != nil {
		if err := opts.Bind(v); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", "")
	v.SetDefault("filter", DefaultFilter)
	v.SetDefault("no_color", false)
	v.SetDefault("summary", DefaultSummary)
	v.SetDefault("exit_code", false)
	v.SetDefault("metrics_textfile", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", logging.DefaultMaxSizeMB)
	v.SetDefault("log.max_backups", logging.DefaultMaxBackups)
	v.SetDefault("log.max_age_days", logging.DefaultMaxAgeDays)
	v.SetDefault("log.compress", false)
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", opts.Path, err)
		}
		return nil
	}

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	paths := opts.SearchPaths
	if paths == nil {
		paths = DefaultSearchPaths()
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// DefaultSearchPaths returns the working directory followed by the user
// config directory.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "regdash"))
	}
	return paths
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := registry.ParseFilter(c.Filter); err != nil {
		return err
	}
	if _, err := c.SummaryFormat(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected text, json)", c.Log.Format)
	}
	return nil
}

// InitialFilter returns the parsed filter setting.
func (c *Config) InitialFilter() registry.Filter {
	f, _ := registry.ParseFilter(c.Filter)
	return f
}

// SummaryFormat returns the report format to print at exit, or "" for none.
func (c *Config) SummaryFormat() (render.Format, error) {
	if s := strings.TrimSpace(c.Summary); s == "" || strings.EqualFold(s, SummaryNone) {
		return "", nil
	}
	return render.ParseFormat(c.Summary)
}

// Logging converts the log section for the logging package.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		File:       c.Log.File,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}
