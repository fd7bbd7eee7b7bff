// Package logging provides the console's structured logging.
//
// The default "console" format prints compact colored lines:
//
//	[LEVEL] HH:MM:SS component: message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/stripe2qbo/console/internal/config"
)

// NewLogger creates a structured logger based on config.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = NewConsoleHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewComponentLogger creates a logger scoped to one component (e.g. "web",
// "importer"). The console handler lifts the component into the line prefix.
func NewComponentLogger(cfg config.LoggingConfig, component string) *slog.Logger {
	return NewLogger(cfg).With("component", component)
}
