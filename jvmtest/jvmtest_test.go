package jvmtest

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/value"
)

func attach(t *testing.T, vm *VM) engine.Env {
	t.Helper()
	runtime.LockOSThread()
	env, err := vm.AttachCurrentThread(true)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, vm.DetachCurrentThread())
		runtime.UnlockOSThread()
	})
	return env
}

func callStatic(t *testing.T, env engine.Env, class, name, sig string, ret descriptor.Kind, args ...value.Value) value.Value {
	t.Helper()
	cls := env.FindClass(class)
	require.False(t, cls.IsNull(), "class %s", class)
	defer env.DeleteLocalRef(cls)
	mid := env.GetStaticMethodID(cls, name, sig)
	require.NotZero(t, mid, "%s.%s%s", class, name, sig)
	return env.CallStaticMethod(ret, cls, mid, args)
}

func TestBackend_Options(t *testing.T) {
	vm, err := Backend().Create([]string{"-Dbridge.mode=test", "-Dflag", "-Xmx64m"}, engine.V1_6)
	require.NoError(t, err)

	v := vm.(*VM)
	mode, ok := v.Property("bridge.mode")
	assert.True(t, ok)
	assert.Equal(t, "test", mode)
	flag, ok := v.Property("flag")
	assert.True(t, ok)
	assert.Empty(t, flag)
	assert.Equal(t, engine.V1_6, v.Version())
	assert.Equal(t, []string{"-Dbridge.mode=test", "-Dflag", "-Xmx64m"}, v.Options())

	_, err = Backend().Create([]string{"Xmx64m"}, engine.V1_6)
	assert.Error(t, err)
	_, err = Backend().Create([]string{"-D=x"}, engine.V1_6)
	assert.Error(t, err)
	_, err = Backend().Create(nil, engine.Version(7))
	assert.Error(t, err)
}

func TestBackend_Registered(t *testing.T) {
	_, err := engine.Lookup(BackendName)
	assert.NoError(t, err)
}

func TestAttach(t *testing.T) {
	vm := New()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	_, err := vm.GetEnv(engine.V1_6)
	require.ErrorIs(t, err, engine.ErrDetached)

	env, err := vm.AttachCurrentThread(false)
	require.NoError(t, err)
	daemon, attached := vm.IsDaemon()
	assert.True(t, attached)
	assert.False(t, daemon)

	again, err := vm.AttachCurrentThread(true)
	require.NoError(t, err)
	assert.Same(t, env, again, "attaching twice returns the existing env")

	got, err := vm.GetEnv(engine.V1_6)
	require.NoError(t, err)
	assert.Same(t, env, got)

	_, err = vm.GetEnv(engine.Version(0x00020000))
	assert.ErrorIs(t, err, engine.ErrVersion)

	s := env.NewString("local")
	assert.Equal(t, 1, vm.Stats().LiveLocals)
	_ = s

	require.NoError(t, vm.DetachCurrentThread())
	assert.Equal(t, 0, vm.Stats().LiveLocals, "detach frees local references")
	assert.Equal(t, 0, vm.Stats().Attached)
	assert.Panics(t, func() { env.NewString("stale") })
}

func TestAttach_PerThread(t *testing.T) {
	vm := New()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			_, err := vm.AttachCurrentThread(true)
			assert.NoError(t, err)
			assert.NoError(t, vm.DetachCurrentThread())
		}()
	}
	wg.Wait()
	s := vm.Stats()
	assert.Equal(t, int64(4), s.Attaches)
	assert.Equal(t, int64(4), s.Detaches)
	assert.Equal(t, 0, s.Attached)
}

func TestGlobalRefs(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	local := env.NewString("hello")
	global := env.NewGlobalRef(local)
	env.DeleteLocalRef(local)

	assert.Equal(t, "hello", env.GetString(global))
	assert.Equal(t, 1, vm.Stats().LiveGlobals)

	env.DeleteGlobalRef(global)
	env.DeleteGlobalRef(global)
	env.DeleteGlobalRef(0)

	s := vm.Stats()
	assert.Equal(t, 0, s.LiveGlobals)
	assert.Equal(t, int64(1), s.CreatedGlobals)
	assert.Equal(t, int64(1), s.DeletedGlobals)
	assert.Equal(t, int64(1), s.InvalidDeletes, "second delete is invalid, null is not")
	assert.True(t, env.NewGlobalRef(0).IsNull())
}

func TestFindClass_Missing(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	assert.True(t, env.FindClass("com/example/Missing").IsNull())
	require.True(t, env.ExceptionCheck())

	thrown := env.ExceptionOccurred()
	env.ExceptionClear()
	assert.False(t, env.ExceptionCheck())

	throwable := env.FindClass("java/lang/Throwable")
	toString := env.GetMethodID(throwable, "toString", "()Ljava/lang/String;")
	msg := env.CallMethod(descriptor.KindObject, thrown, toString, nil)
	assert.Equal(t, "java.lang.NoClassDefFoundError: com/example/Missing", env.GetString(msg.Ref()))
}

func TestMember_Missing(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	file := env.FindClass("java/io/File")
	assert.Zero(t, env.GetMethodID(file, "exists", "()I"))
	assert.True(t, env.ExceptionCheck())
	env.ExceptionClear()

	assert.Zero(t, env.GetStaticMethodID(file, "exists", "()Z"), "instance methods are not static")
	env.ExceptionClear()

	assert.Zero(t, env.GetStaticFieldID(file, "missing", "I"))
	env.ExceptionClear()

	object := env.FindClass(ObjectClass)
	assert.NotZero(t, env.GetMethodID(file, "hashCode", "()I"), "inherited methods resolve")
	assert.Zero(t, env.GetMethodID(file, "<init>", "()V"), "constructors are not inherited")
	env.ExceptionClear()
	assert.NotZero(t, env.GetMethodID(object, "<init>", "()V"))
	assert.Zero(t, vm.Stats().PendingViolations)
}

func TestPendingViolation(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	env.FindClass("com/example/Missing")
	env.FindClass("java/lang/String")
	assert.Equal(t, int64(1), vm.Stats().PendingViolations)
	env.ExceptionClear()
}

func TestStaticFields(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	integer := env.FindClass("java/lang/Integer")
	maxValue := env.GetStaticFieldID(integer, "MAX_VALUE", "I")
	assert.Equal(t, int32(2147483647), env.GetStaticField(descriptor.KindInt, integer, maxValue).Int32())

	boolean := env.FindClass("java/lang/Boolean")
	trueID := env.GetStaticFieldID(boolean, "TRUE", "Ljava/lang/Boolean;")
	first := env.GetStaticField(descriptor.KindObject, boolean, trueID)
	second := env.GetStaticField(descriptor.KindObject, boolean, trueID)

	booleanValue := env.GetMethodID(boolean, "booleanValue", "()Z")
	assert.True(t, env.CallMethod(descriptor.KindBoolean, first.Ref(), booleanValue, nil).Bool())

	equals := env.GetMethodID(boolean, "equals", "(Ljava/lang/Object;)Z")
	assert.True(t, env.CallMethod(descriptor.KindBoolean, first.Ref(), equals, []value.Value{second}).Bool(),
		"TRUE is a single instance")
}

func TestSystemProperties(t *testing.T) {
	vm := New(WithProperty("bridge.key", "value"))
	env := attach(t, vm)

	key := env.NewString("bridge.key")
	got := callStatic(t, env, "java/lang/System", "getProperty",
		"(Ljava/lang/String;)Ljava/lang/String;", descriptor.KindObject, value.Object(key))
	assert.Equal(t, "value", env.GetString(got.Ref()))

	missing := env.NewString("bridge.missing")
	def := env.NewString("fallback")
	got = callStatic(t, env, "java/lang/System", "getProperty",
		"(Ljava/lang/String;Ljava/lang/String;)Ljava/lang/String;", descriptor.KindObject,
		value.Object(missing), value.Object(def))
	assert.Equal(t, "fallback", env.GetString(got.Ref()))

	got = callStatic(t, env, "java/lang/System", "getProperty",
		"(Ljava/lang/String;)Ljava/lang/String;", descriptor.KindObject, value.Null())
	assert.True(t, got.Ref().IsNull())
	assert.True(t, env.ExceptionCheck())
	env.ExceptionClear()
}

func TestParseInt(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	ok := env.NewString("-42")
	got := callStatic(t, env, "java/lang/Integer", "parseInt", "(Ljava/lang/String;)I", descriptor.KindInt, value.Object(ok))
	assert.Equal(t, int32(-42), got.Int32())

	bad := env.NewString("4x2")
	got = callStatic(t, env, "java/lang/Integer", "parseInt", "(Ljava/lang/String;)I", descriptor.KindInt, value.Object(bad))
	assert.Zero(t, got.Int32(), "result is zero while an exception is pending")
	require.True(t, env.ExceptionCheck())

	thrown := env.ExceptionOccurred()
	env.ExceptionClear()
	throwable := env.FindClass("java/lang/Throwable")
	getMessage := env.GetMethodID(throwable, "getMessage", "()Ljava/lang/String;")
	msg := env.CallMethod(descriptor.KindObject, thrown, getMessage, nil)
	assert.Equal(t, `For input string: "4x2"`, env.GetString(msg.Ref()))
}

func TestFile(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	dir := t.TempDir()
	file := env.FindClass("java/io/File")
	ctor := env.GetMethodID(file, "<init>", "(Ljava/lang/String;)V")
	path := env.NewString(dir + string(os.PathSeparator))
	f := env.NewObject(file, ctor, []value.Value{value.Object(path)})
	require.False(t, f.IsNull())

	exists := env.GetMethodID(file, "exists", "()Z")
	isDirectory := env.GetMethodID(file, "isDirectory", "()Z")
	getPath := env.GetMethodID(file, "getPath", "()Ljava/lang/String;")
	deleteOnExit := env.GetMethodID(file, "deleteOnExit", "()V")

	assert.True(t, env.CallMethod(descriptor.KindBoolean, f, exists, nil).Bool())
	assert.True(t, env.CallMethod(descriptor.KindBoolean, f, isDirectory, nil).Bool())
	assert.Equal(t, dir, env.GetString(env.CallMethod(descriptor.KindObject, f, getPath, nil).Ref()))

	assert.Equal(t, descriptor.KindVoid, env.CallMethod(descriptor.KindVoid, f, deleteOnExit, nil).Kind())
	assert.Equal(t, []string{dir}, vm.DeleteOnExit())

	childCtor := env.GetMethodID(file, "<init>", "(Ljava/io/File;Ljava/lang/String;)V")
	name := env.NewString("missing.txt")
	child := env.NewObject(file, childCtor, []value.Value{value.Object(f), value.Object(name)})
	assert.False(t, env.CallMethod(descriptor.KindBoolean, child, exists, nil).Bool())
	assert.Equal(t, filepath.Join(dir, "missing.txt"),
		env.GetString(env.CallMethod(descriptor.KindObject, child, getPath, nil).Ref()))

	vm.Exit()
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "Exit removes files registered for deletion")
}

func TestFile_NullPath(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	file := env.FindClass("java/io/File")
	ctor := env.GetMethodID(file, "<init>", "(Ljava/lang/String;)V")
	assert.True(t, env.NewObject(file, ctor, []value.Value{value.Null()}).IsNull())
	assert.True(t, env.ExceptionCheck())
	env.ExceptionClear()
}

func TestInetSocketAddress(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	cls := env.FindClass("java/net/InetSocketAddress")
	ctor := env.GetMethodID(cls, "<init>", "(I)V")
	getPort := env.GetMethodID(cls, "getPort", "()I")

	addr := env.NewObject(cls, ctor, []value.Value{value.Int(8080)})
	require.False(t, addr.IsNull())
	assert.Equal(t, int32(8080), env.CallMethod(descriptor.KindInt, addr, getPort, nil).Int32())

	assert.True(t, env.NewObject(cls, ctor, []value.Value{value.Int(70000)}).IsNull())
	assert.True(t, env.ExceptionCheck())
	env.ExceptionClear()
}

func TestDefine(t *testing.T) {
	vm := New()
	require.NoError(t, vm.Define(Class{
		Name: "com/example/Greeter",
		Methods: []Method{{
			Name:   "greet",
			Sig:    "(Ljava/lang/String;)Ljava/lang/String;",
			Static: true,
			Body: func(c *Call) value.Value {
				name, _ := c.String(0)
				return c.NewString("hello " + name)
			},
		}},
	}))
	assert.Contains(t, vm.Classes(), "com/example/Greeter")

	env := attach(t, vm)
	name := env.NewString("go")
	got := callStatic(t, env, "com/example/Greeter", "greet",
		"(Ljava/lang/String;)Ljava/lang/String;", descriptor.KindObject, value.Object(name))
	assert.Equal(t, "hello go", env.GetString(got.Ref()))

	assert.Error(t, vm.Define(Class{Name: "com/example/Greeter"}), "duplicate")
	assert.Error(t, vm.Define(Class{Name: "com.example.Dotted"}))
	assert.Error(t, vm.Define(Class{Name: "com/example/Orphan", Super: "com/example/Missing"}))
	assert.Error(t, vm.Define(Class{Name: "com/example/NoBody", Methods: []Method{{Name: "f", Sig: "()V"}}}))
	assert.Error(t, vm.Define(Class{Name: "com/example/BadSig", Methods: []Method{{
		Name: "f", Sig: "(V)V", Body: func(*Call) value.Value { return value.Void() },
	}}}))
}

func TestVirtualDispatch(t *testing.T) {
	vm := New()
	env := attach(t, vm)

	thrown := env.FindClass("java/lang/IllegalStateException")
	ctor := env.GetMethodID(thrown, "<init>", "(Ljava/lang/String;)V")
	msg := env.NewString("closed")
	obj := env.NewObject(thrown, ctor, []value.Value{value.Object(msg)})

	object := env.FindClass(ObjectClass)
	toString := env.GetMethodID(object, "toString", "()Ljava/lang/String;")
	got := env.CallMethod(descriptor.KindObject, obj, toString, nil)
	assert.Equal(t, "java.lang.IllegalStateException: closed", env.GetString(got.Ref()))
}

func TestDeleteLocalRef_ForgetsHandle(t *testing.T) {
	vm := New()
	env := attach(t, vm).(*Env)

	for range 1000 {
		env.DeleteLocalRef(env.NewString("scratch"))
	}
	kept := env.NewString("kept")

	assert.Len(t, env.att.locals, 1)
	assert.Equal(t, 1, vm.Stats().LiveLocals)
	assert.Equal(t, "kept", env.GetString(kept))
}
