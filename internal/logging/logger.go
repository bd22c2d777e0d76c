// Package logging provides the structured logger shared by castIndex
// components. It wraps log/slog with consistent field names.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with castIndex-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON logs to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// New builds a Logger from the textual format and level used on the command
// line: format is "text" or "json", level is one of debug, info, warn, error.
func New(w io.Writer, format, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextLogger(w, lvl), nil
	case "json":
		return NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// WithSession tags the logger with a session ID.
func (l *Logger) WithSession(id string) *Logger {
	return l.With("session", id)
}

// LogLoad logs loading the index from location.
func (l *Logger) LogLoad(ctx context.Context, location string, edges int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"location", location,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "index loaded",
		"location", location,
		"edges", edges,
		"duration", d,
	)
}

// LogSave logs saving the index to location.
func (l *Logger) LogSave(ctx context.Context, location string, bytes int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"location", location,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "index saved",
		"location", location,
		"bytes", bytes,
		"duration", d,
	)
}

// LogMerge logs a movie merge.
func (l *Logger) LogMerge(ctx context.Context, title string, actors int, err error) {
	if err != nil {
		l.WarnContext(ctx, "merge rejected",
			"movie", title,
			"actors", actors,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "merge completed",
		"movie", title,
		"actors", actors,
	)
}

// LogQuery logs a query of the given kind.
func (l *Logger) LogQuery(ctx context.Context, kind string, results int, err error) {
	if err != nil {
		l.DebugContext(ctx, "query failed",
			"kind", kind,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"kind", kind,
		"results", results,
	)
}
