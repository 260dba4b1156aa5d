// Package obslog provides a slog-backed logger for the simulation
// lifecycle: force registration, step boundaries, and stability
// warnings. It is deliberately narrower than a request-serving logger
// package — there is no per-request context to thread through a
// synchronous, in-process library.
package obslog

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init initializes the package logger at the given level ("debug",
// "info", "warn", "error"; anything else falls back to "info").
func Init(levelStr string) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(levelStr),
	})
	defaultLogger = slog.New(handler)
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the package logger, initializing it at "info" level on
// first use if Init was never called.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("info")
	}
	return defaultLogger
}

// WithComponent returns a logger scoped to a named component (e.g.
// "simulation", "manybody").
func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}
