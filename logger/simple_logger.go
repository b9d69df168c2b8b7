package logger

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

var levelPrefixes = map[Level]string{
	LevelTrace: "TRACE ",
	LevelDebug: "DEBUG ",
	LevelInfo:  "INFO ",
	LevelWarn:  "WARN ",
	LevelError: "ERROR ",
}

// SimpleLogger implements the [Logger] interface on top of a standard
// library logger. Records are written one per line, prefixed with the
// level name:
//
//	DEBUG 2024/05/15 09:30:00 msg=Rollover, unit=Day, scope=Month, carry=1
type SimpleLogger struct {
	mtx    sync.Mutex
	logger *log.Logger
	level  Level
}

var _ Logger = (*SimpleLogger)(nil)

// NewSimpleLogger returns a new [SimpleLogger] writing records at or above
// level to logger.
func NewSimpleLogger(logger *log.Logger, level Level) *SimpleLogger {
	return &SimpleLogger{
		logger: logger,
		level:  level,
	}
}

// Level returns the minimum level of the records written.
func (l *SimpleLogger) Level() Level {
	return l.level
}

// Trace logs at the trace level.
func (l *SimpleLogger) Trace(msg string, args ...any) {
	l.output(LevelTrace, msg, args)
}

// Debug logs at the debug level.
func (l *SimpleLogger) Debug(msg string, args ...any) {
	l.output(LevelDebug, msg, args)
}

// Info logs at the info level.
func (l *SimpleLogger) Info(msg string, args ...any) {
	l.output(LevelInfo, msg, args)
}

// Warn logs at the warn level.
func (l *SimpleLogger) Warn(msg string, args ...any) {
	l.output(LevelWarn, msg, args)
}

// Error logs at the error level.
func (l *SimpleLogger) Error(msg string, args ...any) {
	l.output(LevelError, msg, args)
}

// output writes the record. The prefix of the underlying logger is shared
// state, so setting it and writing happen under one lock.
func (l *SimpleLogger) output(level Level, msg string, args []any) {
	if level < l.level {
		return
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.logger.SetPrefix(levelPrefixes[level])
	_ = l.logger.Output(3, formatMessage(msg, args))
}

// formatMessage renders msg and the key-value pairs in args. A trailing
// key without a value is written on its own.
func formatMessage(msg string, args []any) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "msg=%s", msg)

	n := len(args)
	for i := 0; i < n; i += 2 {
		if i+1 < n {
			_, _ = fmt.Fprintf(&b, ", %s=%v", args[i], args[i+1])
		} else {
			_, _ = fmt.Fprintf(&b, ", %v", args[i])
		}
	}

	return b.String()
}
