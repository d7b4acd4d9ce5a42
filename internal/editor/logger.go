package editor

import (
	"log/slog"
	"sync/atomic"
)

// newNopLogger returns a logger whose handler drops every record before
// formatting.
func newNopLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger editors use when none is given with WithLogger.
// By default the package logs nothing. Pass nil to restore that.
//
// Levels:
//   - [slog.LevelDebug]: tool switches, executed, undone and redone commands
//   - [slog.LevelWarn]: rejected input and failed external work
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
