package logger

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// SlogLogger implements the [Logger] interface by handing records to a
// log/slog handler. Trace records use the slog level Debug-4; handlers
// built by [NewJSONLogger] label them TRACE.
type SlogLogger struct {
	handler slog.Handler
}

var _ Logger = (*SlogLogger)(nil)

// NewSlogLogger returns a new [SlogLogger] writing to handler.
// A nil handler discards all records.
func NewSlogLogger(handler slog.Handler) *SlogLogger {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(LevelOff)})
	}
	return &SlogLogger{handler: handler}
}

// NewJSONLogger returns a [SlogLogger] writing JSON lines at or above level
// to w.
func NewJSONLogger(w io.Writer, level Level) *SlogLogger {
	return NewSlogLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.Level(level),
		ReplaceAttr: replaceLevel,
	}))
}

// With returns a logger that adds the key-value pairs in args to every
// record.
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{handler: slog.New(l.handler).With(args...).Handler()}
}

// Trace logs at the trace level.
func (l *SlogLogger) Trace(msg string, args ...any) {
	l.log(slog.Level(LevelTrace), msg, args)
}

// Debug logs at the debug level.
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args)
}

// Info logs at the info level.
func (l *SlogLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args)
}

// Warn logs at the warn level.
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args)
}

// Error logs at the error level.
func (l *SlogLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
}

func (l *SlogLogger) log(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	// skip [runtime.Callers, log, the exported method]
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.handler.Handle(ctx, r)
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == slog.Level(LevelTrace) {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}
