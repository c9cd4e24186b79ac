// Package logging builds the slog logger used by the picobot commands.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled logger writing to w. format "json" selects the
// JSON handler; anything else is text.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WithRunID tags every record from the returned logger with a fresh run id.
func WithRunID(l *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return l.With("run_id", id), id
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
