// Package logging constructs the application slog.Logger from configuration.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New builds a slog.Logger writing to stderr. Format "text" produces
// colorized human-readable output via tint for local development; anything
// else produces JSON lines for log aggregation.
func New(level, format string) *slog.Logger {
	lvl := parseLevel(level)

	var h slog.Handler
	if format == "text" {
		h = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
