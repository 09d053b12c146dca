// Package slogx configures the service's structured logging and carries a
// request-scoped logger through context. Every log line is stamped with
// the service name, build version and environment so records from the
// streaming fleet can be filtered per deployment.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler, verbosity and the fields stamped on every
// record.
type Config struct {
	Service string
	Version string
	Env     string // "dev" enables source locations
	Level   string // "debug", "info", "warn", "error"
	Format  string // "text" for local development, anything else is JSON

	// Output overrides the destination, stdout when nil. Tests point this
	// at a buffer.
	Output io.Writer
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New builds the process logger and installs it as the slog default, so
// stray slog.Info calls in third-party code land in the same stream.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level, ok := levelNames[strings.ToLower(cfg.Level)]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Env == "dev",
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)
	slog.SetDefault(logger)
	return logger
}
