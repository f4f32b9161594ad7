// Package logger builds the slog.Logger shared by the API server, the scan
// scheduler, and the CLI commands. Level and format come straight from the
// logging section of the config file.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger writing to stderr. Level is one of "debug", "info",
// "warn", "error"; format is "json" or "text". Unrecognized values fall back
// to info-level text output.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination, so tests can capture
// what the server would have logged.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	var h slog.Handler
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// ParseLevel maps a config level string to its slog.Level, defaulting to
// info for anything it does not recognize.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
