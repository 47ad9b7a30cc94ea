// Package logging builds the slog logger used by a regdash session.
//
// The interactive dashboard owns the terminal, so it never logs to stderr:
// records go to a rotating file when one is configured and are dropped
// otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Config describes where and how to log.
type Config struct {
	File       string // rotating log file; empty means use Fallback
	Level      string // debug, info, warn, error
	Format     string // text or json
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New returns a logger writing to cfg.File, or to fallback when no file is
// configured. The returned closer must be closed when the session ends.
func New(cfg Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotating := &lj.Logger{
			Filename:   cfg.File,
			MaxSize:    valOr(cfg.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valOr(cfg.MaxBackups, DefaultMaxBackups),
			MaxAge:     valOr(cfg.MaxAgeDays, DefaultMaxAgeDays),
			Compress:   cfg.Compress,
		}
		w, closer = rotating, rotating
	}
	if w == nil {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("unknown log format %q (expected text, json)", cfg.Format)
	}
	return slog.New(h), closer, nil
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected debug, info, warn, error)", s)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func valOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
