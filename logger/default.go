package logger

import (
	"log"
	"os"
	"sync"
)

var (
	defaultLogger Logger = NewSimpleLogger(log.New(os.Stderr, "", log.LstdFlags), LevelInfo)
	mtx           sync.RWMutex
)

// Default returns the default Logger.
func Default() Logger {
	mtx.RLock()
	defer mtx.RUnlock()
	return defaultLogger
}

// SetDefault makes l the default Logger.
// A nil l resets the default to a NoOpLogger.
func SetDefault(l Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	if l == nil {
		l = NoOpLogger{}
	}
	defaultLogger = l
}

// Trace logs at the trace level using the default logger.
func Trace(msg string, args ...any) {
	Default().Trace(msg, args...)
}

// Debug logs at the debug level using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at the info level using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at the warn level using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at the error level using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}
