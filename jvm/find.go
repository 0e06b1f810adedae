package jvm

import (
	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/value"
)

func notFound(what string, at site, cause error) error {
	return errors.New(errors.PhaseResolve, errors.KindNotFound).
		Class(at.class).
		Member(at.member).
		Signature(at.sig).
		Cause(cause).
		Detail("%s not found", what).
		Build()
}

func loadable(c descriptor.Class) error {
	if c.IsZero() || c.IsPrimitive() {
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Class(c.Name()).
			Detail("%s is not a class", c).
			Build()
	}
	return c.Validate()
}

// resolve returns the cached handle for key, running fn on an attached
// thread the first time. Concurrent first lookups of one key share a single
// resolution. Failures are not cached.
func (j *JVM) resolve(key lookupKey, fn func(env engine.Env) (any, error)) (any, error) {
	if h, ok := j.cache.member(key); ok {
		return h, nil
	}
	h, err, _ := j.cache.group.Do(key.String(), func() (any, error) {
		if h, ok := j.cache.member(key); ok {
			return h, nil
		}
		var h any
		err := j.WithEnv(func(env *Env) error {
			var err error
			h, err = fn(env.env)
			return err
		})
		if err != nil {
			return nil, err
		}
		j.cache.putMember(key, h)
		Logger().Debug("resolved",
			zap.Stringer("kind", key.kind),
			zap.String("class", errors.JavaName(key.class)),
			zap.String("member", key.name),
			zap.String("signature", key.sig))
		return h, nil
	})
	return h, err
}

// classRef returns the cached global reference to a class, loading it on
// first use.
func (j *JVM) classRef(env engine.Env, c descriptor.Class) (value.Ref, error) {
	if err := loadable(c); err != nil {
		return 0, err
	}
	name := c.ClassName()
	if r, ok := j.cache.class(name); ok {
		return r, nil
	}

	r, err, _ := j.cache.group.Do("class|"+name, func() (any, error) {
		if r, ok := j.cache.class(name); ok {
			return r, nil
		}
		at := site{class: name}
		local := env.FindClass(name)
		if _, err := j.check(env, errors.PhaseResolve, at); err != nil || local.IsNull() {
			return value.Ref(0), notFound("class", at, err)
		}
		global := env.NewGlobalRef(local)
		env.DeleteLocalRef(local)
		j.cache.putClass(name, global)
		return global, nil
	})
	if err != nil {
		return 0, err
	}
	return r.(value.Ref), nil
}

// FindConstructor resolves the constructor described by f.
func (j *JVM) FindConstructor(f *descriptor.ConstructorFinder) (*Constructor, error) {
	class, params, sig := f.Class(), f.Parameters(), f.Signature()
	at := site{class: class.ClassName(), member: "<init>", sig: sig}
	key := lookupKey{kind: lookupConstructor, class: at.class, name: at.member, sig: sig}

	h, err := j.resolve(key, func(env engine.Env) (any, error) {
		clazz, err := j.classRef(env, class)
		if err != nil {
			return nil, err
		}
		id := env.GetMethodID(clazz, "<init>", sig)
		if _, err := j.check(env, errors.PhaseResolve, at); err != nil || id == 0 {
			return nil, notFound("constructor", at, err)
		}
		return &Constructor{class: class, params: params, sig: sig, clazz: clazz, id: id}, nil
	})
	if err != nil {
		return nil, err
	}
	return h.(*Constructor), nil
}

// FindMethod resolves an instance method.
func (j *JVM) FindMethod(sig descriptor.MethodSignature) (*Method, error) {
	return j.findMethod(sig, false)
}

// FindStaticMethod resolves a static method.
func (j *JVM) FindStaticMethod(sig descriptor.MethodSignature) (*Method, error) {
	return j.findMethod(sig, true)
}

func (j *JVM) findMethod(sig descriptor.MethodSignature, static bool) (*Method, error) {
	class, encoded := sig.Class(), sig.Signature()
	at := site{class: class.ClassName(), member: sig.Name(), sig: encoded}
	if sig.Name() == "" || sig.Name() == "<init>" || sig.Name() == "<clinit>" {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Class(at.class).
			Member(at.member).
			Detail("invalid method name").
			Build()
	}

	kind := lookupMethod
	if static {
		kind = lookupStaticMethod
	}
	key := lookupKey{kind: kind, class: at.class, name: at.member, sig: encoded}

	h, err := j.resolve(key, func(env engine.Env) (any, error) {
		clazz, err := j.classRef(env, class)
		if err != nil {
			return nil, err
		}
		var id engine.MethodID
		if static {
			id = env.GetStaticMethodID(clazz, sig.Name(), encoded)
		} else {
			id = env.GetMethodID(clazz, sig.Name(), encoded)
		}
		if _, err := j.check(env, errors.PhaseResolve, at); err != nil || id == 0 {
			return nil, notFound(kind.String(), at, err)
		}
		return &Method{
			class:  class,
			ret:    sig.ReturnType(),
			name:   sig.Name(),
			sig:    encoded,
			params: sig.Parameters(),
			clazz:  clazz,
			id:     id,
			static: static,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return h.(*Method), nil
}

// FindStaticField resolves a static field whose type is the class itself,
// the shape of enum constants and singletons such as Boolean.TRUE.
func (j *JVM) FindStaticField(class descriptor.Class, name string) (*Field, error) {
	return j.FindStaticFieldOfType(class, name, class)
}

// FindStaticFieldOfType resolves a static field of the given type.
func (j *JVM) FindStaticFieldOfType(class descriptor.Class, name string, typ descriptor.Class) (*Field, error) {
	at := site{class: class.ClassName(), member: name, sig: typ.Signature()}
	if name == "" || typ.IsZero() || typ == descriptor.Void {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Class(at.class).
			Member(name).
			Signature(at.sig).
			Detail("invalid field").
			Build()
	}
	key := lookupKey{kind: lookupStaticField, class: at.class, name: name, sig: at.sig}

	h, err := j.resolve(key, func(env engine.Env) (any, error) {
		clazz, err := j.classRef(env, class)
		if err != nil {
			return nil, err
		}
		id := env.GetStaticFieldID(clazz, name, at.sig)
		if _, err := j.check(env, errors.PhaseResolve, at); err != nil || id == 0 {
			return nil, notFound("field", at, err)
		}
		return &Field{class: class, typ: typ, name: name, clazz: clazz, id: id}, nil
	})
	if err != nil {
		return nil, err
	}
	return h.(*Field), nil
}
