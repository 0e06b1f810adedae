package net

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/jvm"
	"github.com/wippyai/jvm-bridge/jvmtest"
)

var logs *observer.ObservedLogs

// Exceptions are cleared and logged in this package, so failures surface
// as zero values plus a warning.
func TestMain(m *testing.M) {
	var core zapcore.Core
	core, logs = observer.New(zapcore.WarnLevel)
	jvm.SetLogger(zap.New(core))

	if _, err := jvm.Inject(jvmtest.New(), engine.V1_6, false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestInetSocketAddress(t *testing.T) {
	a, err := NewInetSocketAddress(8080)
	require.NoError(t, err)
	defer a.Release()

	port, err := a.Port()
	require.NoError(t, err)
	assert.Equal(t, int32(8080), port)

	host, err := a.Host()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", host)

	s, err := a.ToString()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0/0.0.0.0:8080", s)
}

func TestHostAddress(t *testing.T) {
	a, err := NewHostAddress("zk.internal", 2181)
	require.NoError(t, err)
	defer a.Release()

	unresolved, err := a.Unresolved()
	require.NoError(t, err)
	assert.True(t, unresolved)

	b, err := NewHostAddress("127.0.0.1", 2181)
	require.NoError(t, err)
	defer b.Release()

	unresolved, err = b.Unresolved()
	require.NoError(t, err)
	assert.False(t, unresolved)
}

func TestInetSocketAddress_PortOutOfRange(t *testing.T) {
	logs.TakeAll()

	a, err := NewInetSocketAddress(70000)
	require.NoError(t, err, "the exception is cleared, not returned")
	assert.True(t, a.IsNull())

	entries := logs.FilterMessage("exception cleared").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "java.lang.IllegalArgumentException: port out of range:70000",
		entries[0].ContextMap()["exception"])

	_, err = a.Port()
	assert.Error(t, err, "calls on a null address are rejected")
}
