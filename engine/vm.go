package engine

import (
	stderrors "errors"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/value"
)

var (
	// ErrDetached is returned by VM.GetEnv when the calling thread is not attached.
	ErrDetached = stderrors.New("thread not attached")

	// ErrVersion is returned by VM.GetEnv when the version is not supported.
	ErrVersion = stderrors.New("JNI version not supported")
)

// MethodID identifies a resolved constructor or method (jmethodID).
type MethodID uintptr

// FieldID identifies a resolved field (jfieldID).
type FieldID uintptr

// VM is a running JVM.
type VM interface {
	// GetEnv returns the calling thread's Env, or ErrDetached.
	GetEnv(version Version) (Env, error)

	// AttachCurrentThread attaches the calling thread. Daemon threads do not
	// keep the VM alive at shutdown.
	AttachCurrentThread(daemon bool) (Env, error)

	// DetachCurrentThread detaches the calling thread, freeing its local references.
	DetachCurrentThread() error
}

// Env is the per-thread interface to a VM. Failing operations return zero
// results and leave an exception pending.
type Env interface {
	FindClass(name string) value.Ref
	GetMethodID(class value.Ref, name, sig string) MethodID
	GetStaticMethodID(class value.Ref, name, sig string) MethodID
	GetStaticFieldID(class value.Ref, name, sig string) FieldID

	// NewObject runs the constructor ctor on a fresh instance of class.
	NewObject(class value.Ref, ctor MethodID, args []value.Value) value.Ref

	// CallMethod invokes an instance method whose return type has kind ret.
	CallMethod(ret descriptor.Kind, obj value.Ref, method MethodID, args []value.Value) value.Value

	// CallStaticMethod invokes a static method whose return type has kind ret.
	CallStaticMethod(ret descriptor.Kind, class value.Ref, method MethodID, args []value.Value) value.Value

	// GetStaticField reads a static field of kind typ.
	GetStaticField(typ descriptor.Kind, class value.Ref, field FieldID) value.Value

	NewGlobalRef(ref value.Ref) value.Ref
	DeleteGlobalRef(ref value.Ref)
	DeleteLocalRef(ref value.Ref)

	// NewString creates a java.lang.String and returns a local reference.
	NewString(s string) value.Ref

	// GetString returns the contents of a java.lang.String.
	GetString(ref value.Ref) string

	ExceptionCheck() bool
	ExceptionOccurred() value.Ref
	ExceptionClear()
}

// Backend creates VMs from start-up options.
type Backend interface {
	// Create embeds a new VM. Options are passed through verbatim
	// ("-Dkey=value", "-Xmx64m", ...).
	Create(options []string, version Version) (VM, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(options []string, version Version) (VM, error)

func (f BackendFunc) Create(options []string, version Version) (VM, error) {
	return f(options, version)
}
