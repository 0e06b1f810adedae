package jvm

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/value"
)

// Referent is anything that can stand for a Java object in a call.
type Referent interface {
	Ref() value.Ref
}

// Object owns one global reference. The zero value is null.
//
// Clone acquires a new reference, Assign releases the held reference before
// acquiring the new one, and Release deletes it. An Object that becomes
// unreachable without Release has its reference deleted by a cleanup, which
// should be treated as a leak rather than relied on. An Object is not safe
// for concurrent use.
type Object struct {
	jvm     *JVM
	ref     value.Ref
	cleanup runtime.Cleanup
}

type owned struct {
	jvm *JVM
	ref value.Ref
}

// NewObject takes ownership of raw by promoting it to a global reference.
// raw itself is left untouched; the caller still owns it.
func (j *JVM) NewObject(raw value.Ref) (*Object, error) {
	o := &Object{jvm: j}
	if raw.IsNull() {
		return o, nil
	}
	err := j.WithEnv(func(env *Env) error {
		return o.adopt(env, raw)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// adopt makes o own a new global reference to raw. o must be null.
func (o *Object) adopt(env *Env, raw value.Ref) error {
	if raw.IsNull() {
		return nil
	}
	global := env.env.NewGlobalRef(raw)
	if global.IsNull() {
		return errors.New(errors.PhaseReference, errors.KindInvalidData).
			Value(raw).
			Detail("NewGlobalRef returned null").
			Build()
	}
	o.jvm = env.jvm
	o.ref = global
	o.cleanup = runtime.AddCleanup(o, releaseLeaked, owned{jvm: env.jvm, ref: global})
	return nil
}

func releaseLeaked(r owned) {
	err := r.jvm.WithEnv(func(env *Env) error {
		env.env.DeleteGlobalRef(r.ref)
		return nil
	})
	if err != nil {
		Logger().Error("release leaked reference", zap.Error(err))
		return
	}
	Logger().Debug("released leaked reference", zap.Uint64("ref", uint64(r.ref)))
}

// Ref returns the held reference without transferring ownership. It is only
// valid while o holds it.
func (o *Object) Ref() value.Ref {
	if o == nil {
		return 0
	}
	return o.ref
}

// Value returns the reference as a call argument. The argument keeps o
// reachable until the call that receives it has returned.
func (o *Object) Value() value.Value {
	if o.IsNull() {
		return value.Null()
	}
	return value.Owned(o.ref, o)
}

func (o *Object) IsNull() bool {
	return o.Ref().IsNull()
}

// JVM returns the VM the reference belongs to, or nil for a null Object
// that was never bound.
func (o *Object) JVM() *JVM {
	if o == nil {
		return nil
	}
	return o.jvm
}

// Clone returns a new Object holding its own global reference to the same
// Java object.
func (o *Object) Clone() (*Object, error) {
	if o.IsNull() {
		return &Object{jvm: o.JVM()}, nil
	}
	clone, err := o.jvm.NewObject(o.ref)
	runtime.KeepAlive(o)
	return clone, err
}

// Assign makes o refer to the same Java object as that. The reference o
// held before is released first.
func (o *Object) Assign(that *Object) error {
	if o == that {
		return nil
	}
	if that.IsNull() {
		o.Release()
		if j := that.JVM(); j != nil {
			o.jvm = j
		}
		return nil
	}
	err := that.jvm.WithEnv(func(env *Env) error {
		o.releaseIn(env)
		return o.adopt(env, that.ref)
	})
	runtime.KeepAlive(that)
	return err
}

// Release deletes the held reference. Releasing a null Object is a no-op.
func (o *Object) Release() {
	if o.IsNull() {
		return
	}
	err := o.jvm.WithEnv(func(env *Env) error {
		o.releaseIn(env)
		return nil
	})
	if err != nil {
		Logger().Error("release reference", zap.Error(err))
	}
}

func (o *Object) releaseIn(env *Env) {
	if o.ref.IsNull() {
		return
	}
	o.cleanup.Stop()
	env.env.DeleteGlobalRef(o.ref)
	o.ref = 0
}

var objectToString = descriptor.Named("java/lang/Object").
	Method("toString").
	Returns(descriptor.String)

// ToString calls the object's toString method. A null Object yields "null".
func (o *Object) ToString() (string, error) {
	if o.IsNull() {
		return "null", nil
	}
	m, err := o.jvm.FindMethod(objectToString)
	if err != nil {
		return "", err
	}
	return Call[string](o.jvm, o, m)
}

func (o *Object) String() string {
	if o.IsNull() {
		return "null"
	}
	return value.Object(o.ref).String()
}
