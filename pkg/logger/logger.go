package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is the logging surface used across the service.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger returns a JSON logger writing to stdout.
func NewSlogLogger() Logger {
	return New(os.Stdout, slog.LevelInfo)
}

func New(w io.Writer, level slog.Level) Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h)}
}

// Discard drops every record. Handy in tests.
func Discard() Logger {
	return New(io.Discard, slog.LevelError+1)
}

func (s *slogLogger) Infof(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Warnf(format string, args ...any) {
	s.l.Warn(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Errorf(err error, format string, args ...any) {
	s.l.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}
