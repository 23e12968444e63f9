package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a deliberately small, framework-agnostic logging interface.
// Every pipeline component receives one at construction.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value any
}

// Config selects the output level and format of the process logger.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format is json or text. Empty means json.
	Format string `yaml:"format" json:"format" validate:"omitempty,oneof=json text"`
}

// StdoutLogger implements Logger on top of a slog handler and prints one
// structured line per call.
type StdoutLogger struct {
	l *slog.Logger
}

// NewStdoutLogger creates a JSON logger writing to stdout at info level.
// component is optional and is attached to every line.
func NewStdoutLogger(component string) *StdoutLogger {
	return NewLogger(os.Stdout, Config{}, component)
}

// NewLogger builds a logger writing to w using cfg.
func NewLogger(w io.Writer, cfg Config, component string) *StdoutLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	l := slog.New(h)
	if component != "" {
		l = l.With(slog.String("component", component))
	}
	return &StdoutLogger{l: l}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func attrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			out = append(out, slog.String(f.Key, err.Error()))
			continue
		}
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

func (s *StdoutLogger) log(level slog.Level, msg string, fields ...Field) {
	s.l.LogAttrs(context.Background(), level, msg, attrs(fields)...)
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	s.log(slog.LevelDebug, msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.log(slog.LevelInfo, msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.log(slog.LevelWarn, msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.log(slog.LevelError, msg, fields...)
}

// With returns a child logger carrying fields on every line.
func (s *StdoutLogger) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, a := range attrs(fields) {
		args = append(args, a)
	}
	return &StdoutLogger{l: s.l.With(args...)}
}

// BadgerLogger adapts a Logger to badger's printf-style logger interface.
type BadgerLogger struct {
	Logger Logger
}

func (b BadgerLogger) Errorf(format string, args ...any) {
	b.Logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b BadgerLogger) Warningf(format string, args ...any) {
	b.Logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b BadgerLogger) Infof(format string, args ...any) {
	b.Logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b BadgerLogger) Debugf(format string, args ...any) {
	b.Logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
