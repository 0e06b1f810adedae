package jvm

import (
	"runtime"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/value"
)

// Result is the set of Go types a call or field read can produce. A string
// result requires a java.lang.String return type; *Object accepts any
// reference type.
type Result interface {
	bool | int8 | uint16 | int16 | int32 | int64 | float32 | float64 | string | *Object
}

// resultKind returns the kind T holds and its name for diagnostics.
func resultKind[T Result]() (descriptor.Kind, string) {
	var zero T
	switch any(zero).(type) {
	case bool:
		return descriptor.KindBoolean, "bool"
	case int8:
		return descriptor.KindByte, "int8"
	case uint16:
		return descriptor.KindChar, "uint16"
	case int16:
		return descriptor.KindShort, "int16"
	case int32:
		return descriptor.KindInt, "int32"
	case int64:
		return descriptor.KindLong, "int64"
	case float32:
		return descriptor.KindFloat, "float32"
	case float64:
		return descriptor.KindDouble, "float64"
	case string:
		return descriptor.KindObject, "string"
	}
	return descriptor.KindObject, "*jvm.Object"
}

// accepts checks that T can hold a value of Java type c.
func accepts[T Result](phase errors.Phase, c descriptor.Class) error {
	kind, name := resultKind[T]()
	if c.Kind() != kind || (name == "string" && c != descriptor.String) {
		return errors.TypeMismatch(phase, name, c.String())
	}
	return nil
}

// convert turns a call result into T, taking ownership of a returned local
// reference.
func convert[T Result](j *JVM, env *Env, v value.Value) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = v.Bool()
	case *int8:
		*p = v.Int8()
	case *uint16:
		*p = v.Uint16()
	case *int16:
		*p = v.Int16()
	case *int32:
		*p = v.Int32()
	case *int64:
		*p = v.Int64()
	case *float32:
		*p = v.Float32()
	case *float64:
		*p = v.Float64()
	case *string:
		if !v.Ref().IsNull() {
			*p = env.env.GetString(v.Ref())
			env.env.DeleteLocalRef(v.Ref())
		}
	case **Object:
		obj := &Object{jvm: j}
		if err := obj.adopt(env, v.Ref()); err != nil {
			return out, err
		}
		env.env.DeleteLocalRef(v.Ref())
		*p = obj
	}
	return out, nil
}

// cleared is the result of a call whose exception was cleared. A *Object
// result is a null Object rather than nil.
func cleared[T Result](j *JVM) T {
	var out T
	if p, ok := any(&out).(**Object); ok {
		*p = &Object{jvm: j}
	}
	return out
}

// Invoke runs ctor and returns the new object. If an exception is cleared
// instead of returned, the result is a null Object.
func (j *JVM) Invoke(ctor *Constructor, args ...value.Value) (*Object, error) {
	at := site{class: ctor.class.ClassName(), member: "<init>", sig: ctor.sig}
	if err := value.Check(ctor.sig, ctor.params, args); err != nil {
		return nil, err
	}

	obj := &Object{jvm: j}
	err := j.WithEnv(func(env *Env) error {
		local := env.env.NewObject(ctor.clazz, ctor.id, args)
		runtime.KeepAlive(args)
		if thrown, err := j.check(env.env, errors.PhaseInvoke, at); thrown {
			return err
		}
		defer env.env.DeleteLocalRef(local)
		return obj.adopt(env, local)
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// dispatch checks args against m, runs call on an attached thread and
// converts the result.
func dispatch[T Result](j *JVM, m *Method, args []value.Value, call func(env engine.Env) value.Value) (T, error) {
	if err := value.Check(m.sig, m.params, args); err != nil {
		return *new(T), err
	}

	var out T
	var thrown bool
	err := j.WithEnv(func(env *Env) error {
		v := call(env.env)
		runtime.KeepAlive(args)
		var err error
		if thrown, err = j.check(env.env, errors.PhaseInvoke, m.site()); thrown {
			return err
		}
		if m.ret == descriptor.Void {
			return nil
		}
		out, err = convert[T](j, env, v)
		return err
	})
	if err != nil {
		return *new(T), err
	}
	if thrown {
		return cleared[T](j), nil
	}
	return out, nil
}

func receiver(recv Referent, m *Method) error {
	if m.static {
		return errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			Class(m.class.ClassName()).
			Member(m.name).
			Signature(m.sig).
			Detail("static method called on a receiver").
			Build()
	}
	if recv == nil || recv.Ref().IsNull() {
		return errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			Class(m.class.ClassName()).
			Member(m.name).
			Signature(m.sig).
			Detail("null receiver").
			Build()
	}
	return nil
}

func notStatic(m *Method) error {
	if m.static {
		return nil
	}
	return errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
		Class(m.class.ClassName()).
		Member(m.name).
		Signature(m.sig).
		Detail("instance method called without a receiver").
		Build()
}

func void(m *Method) error {
	if m.ret != descriptor.Void {
		return errors.TypeMismatch(errors.PhaseInvoke, "void", m.ret.String())
	}
	return nil
}

// Call invokes an instance method on recv. T must be able to hold the
// method's return type.
func Call[T Result](j *JVM, recv Referent, m *Method, args ...value.Value) (T, error) {
	if err := receiver(recv, m); err != nil {
		return *new(T), err
	}
	if err := accepts[T](errors.PhaseInvoke, m.ret); err != nil {
		return *new(T), err
	}
	return dispatch[T](j, m, args, func(env engine.Env) value.Value {
		v := env.CallMethod(m.ret.Kind(), recv.Ref(), m.id, args)
		runtime.KeepAlive(recv)
		return v
	})
}

// CallVoid invokes an instance method returning void.
func CallVoid(j *JVM, recv Referent, m *Method, args ...value.Value) error {
	if err := receiver(recv, m); err != nil {
		return err
	}
	if err := void(m); err != nil {
		return err
	}
	_, err := dispatch[bool](j, m, args, func(env engine.Env) value.Value {
		v := env.CallMethod(descriptor.KindVoid, recv.Ref(), m.id, args)
		runtime.KeepAlive(recv)
		return v
	})
	return err
}

// CallStatic invokes a static method.
func CallStatic[T Result](j *JVM, m *Method, args ...value.Value) (T, error) {
	if err := notStatic(m); err != nil {
		return *new(T), err
	}
	if err := accepts[T](errors.PhaseInvoke, m.ret); err != nil {
		return *new(T), err
	}
	return dispatch[T](j, m, args, func(env engine.Env) value.Value {
		return env.CallStaticMethod(m.ret.Kind(), m.clazz, m.id, args)
	})
}

// CallStaticVoid invokes a static method returning void.
func CallStaticVoid(j *JVM, m *Method, args ...value.Value) error {
	if err := notStatic(m); err != nil {
		return err
	}
	if err := void(m); err != nil {
		return err
	}
	_, err := dispatch[bool](j, m, args, func(env engine.Env) value.Value {
		return env.CallStaticMethod(descriptor.KindVoid, m.clazz, m.id, args)
	})
	return err
}

// StaticField reads the current value of a static field.
func StaticField[T Result](j *JVM, f *Field) (T, error) {
	if err := accepts[T](errors.PhaseInvoke, f.typ); err != nil {
		return *new(T), err
	}
	var out T
	var thrown bool
	err := j.WithEnv(func(env *Env) error {
		v := env.env.GetStaticField(f.typ.Kind(), f.clazz, f.id)
		var err error
		if thrown, err = j.check(env.env, errors.PhaseInvoke, f.site()); thrown {
			return err
		}
		out, err = convert[T](j, env, v)
		return err
	})
	if err != nil {
		return *new(T), err
	}
	if thrown {
		return cleared[T](j), nil
	}
	return out, nil
}

// String creates a java.lang.String.
func (j *JVM) String(s string) (*Object, error) {
	obj := &Object{jvm: j}
	err := j.WithEnv(func(env *Env) error {
		local := env.env.NewString(s)
		if thrown, err := j.check(env.env, errors.PhaseInvoke, site{class: "java/lang/String"}); thrown {
			return err
		}
		defer env.env.DeleteLocalRef(local)
		return obj.adopt(env, local)
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}
