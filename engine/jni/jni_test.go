//go:build cgo && jni

package jni

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/value"
)

var (
	sharedVM     engine.VM
	sharedVMErr  error
	sharedVMOnce sync.Once
)

// testVM creates the process-wide VM once.
func testVM(t *testing.T) engine.VM {
	t.Helper()
	sharedVMOnce.Do(func() {
		sharedVM, sharedVMErr = Backend().Create([]string{"-Xrs", "-Dbridge.test=yes"}, engine.DefaultVersion)
	})
	require.NoError(t, sharedVMErr)
	return sharedVM
}

func attached(t *testing.T, vm engine.VM) engine.Env {
	t.Helper()
	runtime.LockOSThread()
	env, err := vm.AttachCurrentThread(true)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, vm.DetachCurrentThread())
		runtime.UnlockOSThread()
	})
	return env
}

func TestRegistered(t *testing.T) {
	b, err := engine.Lookup(engine.JNIBackend)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestGetEnv_Detached(t *testing.T) {
	vm := testVM(t)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	_, err := vm.GetEnv(engine.DefaultVersion)
	assert.ErrorIs(t, err, engine.ErrDetached)
}

func TestWrap_SamePointer(t *testing.T) {
	vm := testVM(t).(*VM)
	assert.Same(t, vm, Wrap(vm.Pointer()))
}

func TestSystemProperty(t *testing.T) {
	vm := testVM(t)
	env := attached(t, vm)

	system := env.FindClass("java/lang/System")
	require.False(t, system.IsNull())
	defer env.DeleteLocalRef(system)

	getProperty := env.GetStaticMethodID(system, "getProperty", "(Ljava/lang/String;)Ljava/lang/String;")
	require.NotZero(t, getProperty)

	key := env.NewString("bridge.test")
	defer env.DeleteLocalRef(key)

	got := env.CallStaticMethod(descriptor.KindObject, system, getProperty, []value.Value{value.Object(key)})
	require.False(t, env.ExceptionCheck())
	assert.Equal(t, "yes", env.GetString(got.Ref()))
}

func TestException(t *testing.T) {
	vm := testVM(t)
	env := attached(t, vm)

	integer := env.FindClass("java/lang/Integer")
	defer env.DeleteLocalRef(integer)

	parseInt := env.GetStaticMethodID(integer, "parseInt", "(Ljava/lang/String;)I")
	bad := env.NewString("not a number")
	defer env.DeleteLocalRef(bad)

	env.CallStaticMethod(descriptor.KindInt, integer, parseInt, []value.Value{value.Object(bad)})
	require.True(t, env.ExceptionCheck())
	thrown := env.ExceptionOccurred()
	env.ExceptionClear()
	assert.False(t, thrown.IsNull())
	assert.False(t, env.ExceptionCheck())
}

func TestStaticField(t *testing.T) {
	vm := testVM(t)
	env := attached(t, vm)

	integer := env.FindClass("java/lang/Integer")
	defer env.DeleteLocalRef(integer)

	maxValue := env.GetStaticFieldID(integer, "MAX_VALUE", "I")
	require.NotZero(t, maxValue)
	assert.Equal(t, int32(2147483647), env.GetStaticField(descriptor.KindInt, integer, maxValue).Int32())
}
