package jvm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/jvmtest"
)

// reset forgets the installed VM.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	instance.Store(nil)
}

// install injects a fresh in-memory VM for the duration of the test.
func install(t *testing.T, exceptions bool, opts ...jvmtest.Option) (*JVM, *jvmtest.VM) {
	t.Helper()
	reset()
	t.Cleanup(reset)

	vm := jvmtest.New(opts...)
	j, err := Inject(vm, engine.V1_6, exceptions)
	require.NoError(t, err)
	return j, vm
}

// observe routes the package logger to an observer for the test.
func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

// cachedClasses is the number of class references the JVM holds forever.
func cachedClasses(j *JVM) int {
	_, classes := j.cache.len()
	return classes
}

// requireInMemoryDefault skips tests that create a VM through the default
// backend when a real one is compiled in.
func requireInMemoryDefault(t *testing.T) {
	t.Helper()
	if _, err := engine.Lookup(engine.JNIBackend); err == nil {
		t.Skip("jni backend compiled in; only one real VM per process")
	}
}
