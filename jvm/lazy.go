package jvm

import (
	"sync/atomic"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/value"
)

// lazy remembers the handle resolved against one JVM.
type lazy[H any] struct {
	p atomic.Pointer[resolved[H]]
}

type resolved[H any] struct {
	jvm    *JVM
	handle *H
}

func (l *lazy[H]) get(j *JVM, resolve func() (*H, error)) (*H, error) {
	if r := l.p.Load(); r != nil && r.jvm == j {
		return r.handle, nil
	}
	h, err := resolve()
	if err != nil {
		return nil, err
	}
	l.p.Store(&resolved[H]{jvm: j, handle: h})
	return h, nil
}

// LazyConstructor resolves a constructor on first use. It is meant to be
// declared at package level next to the code that invokes it.
type LazyConstructor struct {
	finder *descriptor.ConstructorFinder
	lazy[Constructor]
}

// NewLazyConstructor captures the parameters f holds now; later additions to
// f are not seen.
func NewLazyConstructor(f *descriptor.ConstructorFinder) *LazyConstructor {
	c := f.Class().Constructor()
	for _, p := range f.Parameters() {
		c.Parameter(p)
	}
	return &LazyConstructor{finder: c}
}

func (l *LazyConstructor) Get(j *JVM) (*Constructor, error) {
	return l.get(j, func() (*Constructor, error) { return j.FindConstructor(l.finder) })
}

// Invoke resolves the constructor if needed and runs it.
func (l *LazyConstructor) Invoke(j *JVM, args ...value.Value) (*Object, error) {
	ctor, err := l.Get(j)
	if err != nil {
		return nil, err
	}
	return j.Invoke(ctor, args...)
}

// LazyMethod resolves an instance or static method on first use.
type LazyMethod struct {
	sig    descriptor.MethodSignature
	static bool
	lazy[Method]
}

func NewLazyMethod(sig descriptor.MethodSignature) *LazyMethod {
	return &LazyMethod{sig: sig}
}

func NewLazyStaticMethod(sig descriptor.MethodSignature) *LazyMethod {
	return &LazyMethod{sig: sig, static: true}
}

func (l *LazyMethod) Get(j *JVM) (*Method, error) {
	return l.get(j, func() (*Method, error) {
		if l.static {
			return j.FindStaticMethod(l.sig)
		}
		return j.FindMethod(l.sig)
	})
}

// StaticVariable reads a static field through a lazily resolved handle.
type StaticVariable[T Result] struct {
	class descriptor.Class
	typ   descriptor.Class
	name  string
	lazy[Field]
}

// NewStaticVariable describes a static field whose type is class itself.
func NewStaticVariable[T Result](class descriptor.Class, name string) *StaticVariable[T] {
	return &StaticVariable[T]{class: class, typ: class, name: name}
}

// NewStaticVariableOfType describes a static field of type typ.
func NewStaticVariableOfType[T Result](class descriptor.Class, name string, typ descriptor.Class) *StaticVariable[T] {
	return &StaticVariable[T]{class: class, typ: typ, name: name}
}

// Field resolves the field if needed.
func (v *StaticVariable[T]) Field(j *JVM) (*Field, error) {
	return v.get(j, func() (*Field, error) { return j.FindStaticFieldOfType(v.class, v.name, v.typ) })
}

// Get reads the field's current value.
func (v *StaticVariable[T]) Get(j *JVM) (T, error) {
	f, err := v.Field(j)
	if err != nil {
		var zero T
		return zero, err
	}
	return StaticField[T](j, f)
}
