package jvm

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the bridge logger. It is a no-op logger until SetLogger is
// called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the bridge logger. A nil logger restores the no-op
// logger. Call it before creating the VM.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
