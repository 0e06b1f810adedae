//go:build cgo && jni

package jni

// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
)

func init() {
	engine.Register(engine.JNIBackend, Backend())
}

// VM wraps a JavaVM pointer.
type VM struct {
	jvm *C.JavaVM
}

var wrapped sync.Map // uintptr -> *VM

// Wrap adopts a JavaVM created outside this package. p must be a JavaVM*.
func Wrap(p unsafe.Pointer) *VM {
	return wrap((*C.JavaVM)(p))
}

func wrap(jvm *C.JavaVM) *VM {
	key := uintptr(unsafe.Pointer(jvm))
	if v, ok := wrapped.Load(key); ok {
		return v.(*VM)
	}
	v, _ := wrapped.LoadOrStore(key, &VM{jvm: jvm})
	return v.(*VM)
}

// Pointer returns the underlying JavaVM*.
func (vm *VM) Pointer() unsafe.Pointer {
	return unsafe.Pointer(vm.jvm)
}

func (vm *VM) GetEnv(version engine.Version) (engine.Env, error) {
	var env *C.JNIEnv
	if err := returnCode(C.bridge_get_env(vm.jvm, &env, C.jint(version))); err != nil {
		return nil, err
	}
	return &Env{env: env}, nil
}

func (vm *VM) AttachCurrentThread(daemon bool) (engine.Env, error) {
	var env *C.JNIEnv
	d := C.int(0)
	if daemon {
		d = 1
	}
	if err := returnCode(C.bridge_attach(vm.jvm, &env, d)); err != nil {
		return nil, err
	}
	return &Env{env: env}, nil
}

func (vm *VM) DetachCurrentThread() error {
	return returnCode(C.bridge_detach(vm.jvm))
}

// Backend returns the backend that embeds a HotSpot (or compatible) VM through
// JNI_CreateJavaVM. Only one VM can be created per process.
func Backend() engine.Backend {
	return engine.BackendFunc(create)
}

func create(options []string, version engine.Version) (engine.VM, error) {
	// The creating thread is attached by JNI_CreateJavaVM and has to be the
	// one that detaches.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	opts := C.bridge_alloc_options(C.int(len(options)))
	defer C.free(unsafe.Pointer(opts))

	strs := make([]*C.char, len(options))
	for i, o := range options {
		strs[i] = C.CString(o)
		C.bridge_set_option(opts, C.int(i), strs[i])
	}
	defer func() {
		for _, s := range strs {
			C.free(unsafe.Pointer(s))
		}
	}()

	var jvm *C.JavaVM
	rc := C.bridge_create_vm(&jvm, opts, C.jint(len(options)), C.jint(version))
	if err := returnCode(rc); err != nil {
		return nil, errors.New(errors.PhaseEmbed, errors.KindConfiguration).
			Cause(err).
			Detail("JNI_CreateJavaVM failed").
			Build()
	}

	vm := wrap(jvm)
	if err := vm.DetachCurrentThread(); err != nil {
		engine.BackendLogger("jni").Warn("detach after create failed", zap.Error(err))
	}
	engine.BackendLogger("jni").Debug("JVM created",
		zap.Strings("options", options),
		zap.Stringer("version", version))
	return vm, nil
}
