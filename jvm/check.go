package jvm

import (
	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/value"
)

// site labels errors with the member a call was made on.
type site struct {
	class  string
	member string
	sig    string
}

// check clears a pending exception. thrown reports whether there was one;
// err is non-nil only when exceptions are propagated.
func (j *JVM) check(env engine.Env, phase errors.Phase, at site) (thrown bool, err error) {
	if !env.ExceptionCheck() {
		return false, nil
	}
	ref := env.ExceptionOccurred()
	env.ExceptionClear()
	msg := describe(env, ref)
	env.DeleteLocalRef(ref)

	if j.exceptions {
		return true, errors.New(phase, errors.KindException).
			Class(at.class).
			Member(at.member).
			Signature(at.sig).
			Detail("%s", msg).
			Build()
	}
	Logger().Warn("exception cleared",
		zap.String("exception", msg),
		zap.String("phase", string(phase)),
		zap.String("class", errors.JavaName(at.class)),
		zap.String("member", at.member))
	return true, nil
}

// describe renders a throwable with Throwable.toString. It gives up
// quietly if toString itself throws.
func describe(env engine.Env, thrown value.Ref) string {
	const unknown = "unknown exception"
	if thrown.IsNull() {
		return unknown
	}

	class := env.FindClass("java/lang/Throwable")
	if env.ExceptionCheck() || class.IsNull() {
		env.ExceptionClear()
		return unknown
	}
	defer env.DeleteLocalRef(class)

	toString := env.GetMethodID(class, "toString", "()Ljava/lang/String;")
	if env.ExceptionCheck() || toString == 0 {
		env.ExceptionClear()
		return unknown
	}

	s := env.CallMethod(descriptor.KindObject, thrown, toString, nil)
	if env.ExceptionCheck() {
		env.ExceptionClear()
		return unknown
	}
	defer env.DeleteLocalRef(s.Ref())
	return env.GetString(s.Ref())
}
