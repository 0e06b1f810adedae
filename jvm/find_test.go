package jvm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/jvmtest"
	"github.com/wippyai/jvm-bridge/value"
)

var (
	file    = descriptor.Named("java/io/File")
	integer = descriptor.Named("java/lang/Integer")
	boolean = descriptor.Named("java/lang/Boolean")
)

func TestFindConstructor_Cached(t *testing.T) {
	j, _ := install(t, false)
	logs := observe(t, zapcore.DebugLevel)

	first, err := j.FindConstructor(file.Constructor().Parameter(descriptor.String))
	require.NoError(t, err)
	second, err := j.FindConstructor(file.Constructor().Parameter(descriptor.String))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, file, first.Class())
	assert.Equal(t, "(Ljava/lang/String;)V", first.Signature())
	assert.Equal(t, []descriptor.Class{descriptor.String}, first.Parameters())
	assert.Equal(t, 1, logs.FilterMessage("resolved").Len(), "second lookup is served from the cache")
}

func TestFindMethod_Concurrent(t *testing.T) {
	j, vm := install(t, false)
	logs := observe(t, zapcore.DebugLevel)
	sig := file.Method("exists").Returns(descriptor.Boolean)

	var wg sync.WaitGroup
	got := make([]*Method, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := j.FindMethod(sig)
			assert.NoError(t, err)
			got[i] = m
		}()
	}
	wg.Wait()

	for _, m := range got {
		assert.Same(t, got[0], m)
	}
	assert.Equal(t, 1, logs.FilterMessage("resolved").Len())
	assert.Equal(t, 1, cachedClasses(j))
	assert.Equal(t, 1, vm.Stats().LiveGlobals, "one global reference per cached class")
	assert.Zero(t, vm.Stats().PendingViolations)
}

func TestFind_SharesClass(t *testing.T) {
	j, vm := install(t, false)

	_, err := j.FindMethod(file.Method("exists").Returns(descriptor.Boolean))
	require.NoError(t, err)
	_, err = j.FindMethod(file.Method("isDirectory").Returns(descriptor.Boolean))
	require.NoError(t, err)
	_, err = j.FindConstructor(file.Constructor().Parameter(descriptor.String))
	require.NoError(t, err)

	assert.Equal(t, 1, cachedClasses(j))
	assert.Equal(t, 1, vm.Stats().LiveGlobals)
}

func TestFind_NotFound(t *testing.T) {
	for _, exceptions := range []bool{false, true} {
		j, vm := install(t, exceptions)

		_, err := j.FindConstructor(descriptor.Named("com/example/Missing").Constructor())
		require.ErrorIs(t, err, errors.ErrNotFound)
		assert.Contains(t, err.Error(), "class not found")

		_, err = j.FindMethod(file.Method("exists").Returns(descriptor.Int))
		require.ErrorIs(t, err, errors.ErrNotFound)
		assert.Contains(t, err.Error(), "method not found")

		_, err = j.FindStaticMethod(file.Method("exists").Returns(descriptor.Boolean))
		require.ErrorIs(t, err, errors.ErrNotFound)

		_, err = j.FindStaticFieldOfType(integer, "MAX_VALUE", descriptor.Long)
		require.ErrorIs(t, err, errors.ErrNotFound)

		_, err = j.FindConstructor(file.Constructor())
		require.ErrorIs(t, err, errors.ErrNotFound)

		if exceptions {
			assert.ErrorIs(t, err, errors.ErrException, "the Java exception is kept as the cause")
		}
		assert.Zero(t, vm.Stats().PendingViolations)
	}
}

func TestFind_NotFoundIsNotCached(t *testing.T) {
	j, vm := install(t, false)
	_, err := j.FindMethod(descriptor.Named("com/example/Late").Method("run").Returns(descriptor.Void))
	require.Error(t, err)

	require.NoError(t, vm.Define(jvmtest.Class{
		Name: "com/example/Late",
		Methods: []jvmtest.Method{{
			Name: "run",
			Sig:  "()V",
			Body: func(*jvmtest.Call) value.Value { return value.Void() },
		}},
	}))
	_, err = j.FindMethod(descriptor.Named("com/example/Late").Method("run").Returns(descriptor.Void))
	assert.NoError(t, err)
}

func TestFind_InvalidInput(t *testing.T) {
	j, _ := install(t, false)

	_, err := j.FindConstructor(descriptor.Int.Constructor())
	assert.Error(t, err)

	_, err = j.FindMethod(file.Method("<init>").Returns(descriptor.Void))
	assert.Error(t, err)

	_, err = j.FindMethod(descriptor.Named("java.io.File").Method("exists").Returns(descriptor.Boolean))
	assert.Error(t, err)

	_, err = j.FindStaticFieldOfType(integer, "MAX_VALUE", descriptor.Void)
	assert.Error(t, err)
}

func TestFindStaticField(t *testing.T) {
	j, _ := install(t, true)

	f, err := j.FindStaticField(boolean, "TRUE")
	require.NoError(t, err)
	assert.Equal(t, boolean, f.Type(), "the field type defaults to the class itself")
	assert.Equal(t, "TRUE", f.Name())

	v, err := StaticField[*Object](j, f)
	require.NoError(t, err)
	defer v.Release()

	booleanValue, err := j.FindMethod(boolean.Method("booleanValue").Returns(descriptor.Boolean))
	require.NoError(t, err)
	b, err := Call[bool](j, v, booleanValue)
	require.NoError(t, err)
	assert.True(t, b)

	maxValue, err := j.FindStaticFieldOfType(integer, "MAX_VALUE", descriptor.Int)
	require.NoError(t, err)
	n, err := StaticField[int32](j, maxValue)
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), n)

	_, err = StaticField[int64](j, maxValue)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}
