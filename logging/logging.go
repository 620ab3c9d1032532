// Package logging provides the leveled, structured logger used by the assembly runner and the CLI.
// Entries written while a connection runs carry the socket and plug joints taken from the context.
package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger writes key/value entries to its appenders.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// CDebugw logs at debug level with the socket and plug of the connection carried by ctx. A context
	// marked by TraceConnections is logged whatever the level.
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	// With returns a logger that adds the given fields to every entry. It shares the level and
	// appenders of its parent.
	With(keysAndValues ...interface{}) Logger

	SetLevel(level Level)
	AddAppender(appender Appender)
}

// NewLogger returns a logger that writes Info+ entries to stdout in UTC.
func NewLogger(name string) Logger {
	return &impl{name: name, level: NewAtomicLevelAt(INFO), inUTC: true, appenders: []Appender{NewStdoutAppender()}}
}

// NewBlankLogger returns a Debug+ logger in UTC with no appenders.
func NewBlankLogger(name string) Logger {
	return &impl{name: name, level: NewAtomicLevelAt(DEBUG), inUTC: true}
}

// NewTestLogger returns a Debug+ logger that writes through the test in local time.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also keeps every entry in memory.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger := &impl{
		level:     NewAtomicLevelAt(DEBUG),
		appenders: []Appender{NewTestAppender(tb), observerCore},
	}
	return logger, observedLogs
}
