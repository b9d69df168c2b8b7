// Package logger provides the leveled key-value logging used by the
// resolver and the interval command.
package logger

// Logger handles key-value log records at different severity levels.
// A resolver may share its logger between goroutines, so implementations
// must be safe for concurrent use.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoOpLogger discards all records. SetDefault(nil) installs it.
type NoOpLogger struct{}

var _ Logger = NoOpLogger{}

func (NoOpLogger) Trace(string, ...any) {}
func (NoOpLogger) Debug(string, ...any) {}
func (NoOpLogger) Info(string, ...any)  {}
func (NoOpLogger) Warn(string, ...any)  {}
func (NoOpLogger) Error(string, ...any) {}
