package engine

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the logger shared by VM backends. It is a no-op logger
// until SetLogger is called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the backend logger. A nil logger restores the no-op
// logger. Backends pick it up when they create or wrap a VM.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// BackendLogger returns Logger tagged with the backend name.
func BackendLogger(name string) *zap.Logger {
	return Logger().With(zap.String("backend", name))
}
