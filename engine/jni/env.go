//go:build cgo && jni

package jni

// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"unsafe"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/value"
)

// Env wraps a JNIEnv pointer. It is only valid on the thread it was obtained on.
type Env struct {
	env *C.JNIEnv
}

func (e *Env) FindClass(name string) value.Ref {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return toRef(C.jobject(C.bridge_find_class(e.env, cname)))
}

func (e *Env) GetMethodID(class value.Ref, name, sig string) engine.MethodID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	id := C.bridge_get_method_id(e.env, C.jclass(toObject(class)), cname, csig)
	return engine.MethodID(uintptr(unsafe.Pointer(id)))
}

func (e *Env) GetStaticMethodID(class value.Ref, name, sig string) engine.MethodID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	id := C.bridge_get_static_method_id(e.env, C.jclass(toObject(class)), cname, csig)
	return engine.MethodID(uintptr(unsafe.Pointer(id)))
}

func (e *Env) GetStaticFieldID(class value.Ref, name, sig string) engine.FieldID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	id := C.bridge_get_static_field_id(e.env, C.jclass(toObject(class)), cname, csig)
	return engine.FieldID(uintptr(unsafe.Pointer(id)))
}

func (e *Env) NewObject(class value.Ref, ctor engine.MethodID, args []value.Value) value.Ref {
	a := packArgs(args)
	defer freeArgs(a)
	return toRef(C.bridge_new_object(e.env, C.jclass(toObject(class)), toMethodID(ctor), a))
}

func (e *Env) CallMethod(ret descriptor.Kind, obj value.Ref, method engine.MethodID, args []value.Value) value.Value {
	a := packArgs(args)
	defer freeArgs(a)

	o, m := toObject(obj), toMethodID(method)
	switch ret {
	case descriptor.KindVoid:
		C.bridge_call_void(e.env, o, m, a)
		return value.Void()
	case descriptor.KindBoolean:
		return value.Boolean(C.bridge_call_boolean(e.env, o, m, a) != 0)
	case descriptor.KindByte:
		return value.Byte(int8(C.bridge_call_byte(e.env, o, m, a)))
	case descriptor.KindChar:
		return value.Char(uint16(C.bridge_call_char(e.env, o, m, a)))
	case descriptor.KindShort:
		return value.Short(int16(C.bridge_call_short(e.env, o, m, a)))
	case descriptor.KindInt:
		return value.Int(int32(C.bridge_call_int(e.env, o, m, a)))
	case descriptor.KindLong:
		return value.Long(int64(C.bridge_call_long(e.env, o, m, a)))
	case descriptor.KindFloat:
		return value.Float(float32(C.bridge_call_float(e.env, o, m, a)))
	case descriptor.KindDouble:
		return value.Double(float64(C.bridge_call_double(e.env, o, m, a)))
	}
	return value.Object(toRef(C.bridge_call_object(e.env, o, m, a)))
}

func (e *Env) CallStaticMethod(ret descriptor.Kind, class value.Ref, method engine.MethodID, args []value.Value) value.Value {
	a := packArgs(args)
	defer freeArgs(a)

	c, m := C.jclass(toObject(class)), toMethodID(method)
	switch ret {
	case descriptor.KindVoid:
		C.bridge_call_static_void(e.env, c, m, a)
		return value.Void()
	case descriptor.KindBoolean:
		return value.Boolean(C.bridge_call_static_boolean(e.env, c, m, a) != 0)
	case descriptor.KindByte:
		return value.Byte(int8(C.bridge_call_static_byte(e.env, c, m, a)))
	case descriptor.KindChar:
		return value.Char(uint16(C.bridge_call_static_char(e.env, c, m, a)))
	case descriptor.KindShort:
		return value.Short(int16(C.bridge_call_static_short(e.env, c, m, a)))
	case descriptor.KindInt:
		return value.Int(int32(C.bridge_call_static_int(e.env, c, m, a)))
	case descriptor.KindLong:
		return value.Long(int64(C.bridge_call_static_long(e.env, c, m, a)))
	case descriptor.KindFloat:
		return value.Float(float32(C.bridge_call_static_float(e.env, c, m, a)))
	case descriptor.KindDouble:
		return value.Double(float64(C.bridge_call_static_double(e.env, c, m, a)))
	}
	return value.Object(toRef(C.bridge_call_static_object(e.env, c, m, a)))
}

func (e *Env) GetStaticField(typ descriptor.Kind, class value.Ref, field engine.FieldID) value.Value {
	c, f := C.jclass(toObject(class)), toFieldID(field)
	switch typ {
	case descriptor.KindBoolean:
		return value.Boolean(C.bridge_get_static_boolean(e.env, c, f) != 0)
	case descriptor.KindByte:
		return value.Byte(int8(C.bridge_get_static_byte(e.env, c, f)))
	case descriptor.KindChar:
		return value.Char(uint16(C.bridge_get_static_char(e.env, c, f)))
	case descriptor.KindShort:
		return value.Short(int16(C.bridge_get_static_short(e.env, c, f)))
	case descriptor.KindInt:
		return value.Int(int32(C.bridge_get_static_int(e.env, c, f)))
	case descriptor.KindLong:
		return value.Long(int64(C.bridge_get_static_long(e.env, c, f)))
	case descriptor.KindFloat:
		return value.Float(float32(C.bridge_get_static_float(e.env, c, f)))
	case descriptor.KindDouble:
		return value.Double(float64(C.bridge_get_static_double(e.env, c, f)))
	}
	return value.Object(toRef(C.bridge_get_static_object(e.env, c, f)))
}

func (e *Env) NewGlobalRef(ref value.Ref) value.Ref {
	return toRef(C.bridge_new_global_ref(e.env, toObject(ref)))
}

func (e *Env) DeleteGlobalRef(ref value.Ref) {
	C.bridge_delete_global_ref(e.env, toObject(ref))
}

func (e *Env) DeleteLocalRef(ref value.Ref) {
	C.bridge_delete_local_ref(e.env, toObject(ref))
}

// NewString encodes s as modified UTF-8. Strings with embedded NULs are cut
// at the first NUL.
func (e *Env) NewString(s string) value.Ref {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return toRef(C.jobject(C.bridge_new_string(e.env, cs)))
}

func (e *Env) GetString(ref value.Ref) string {
	if ref.IsNull() {
		return ""
	}
	s := C.jstring(toObject(ref))
	chars := C.bridge_get_string(e.env, s)
	if chars == nil {
		return ""
	}
	defer C.bridge_release_string(e.env, s, chars)
	return C.GoString(chars)
}

func (e *Env) ExceptionCheck() bool {
	return C.bridge_exception_check(e.env) != 0
}

func (e *Env) ExceptionOccurred() value.Ref {
	return toRef(C.jobject(C.bridge_exception_occurred(e.env)))
}

func (e *Env) ExceptionClear() {
	C.bridge_exception_clear(e.env)
}
