//go:build cgo && jni

package jni

/*
#cgo LDFLAGS: -ljvm
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/value"
)

func toRef(o C.jobject) value.Ref {
	return value.Ref(uintptr(unsafe.Pointer(o)))
}

func toObject(r value.Ref) C.jobject {
	return C.jobject(unsafe.Pointer(uintptr(r)))
}

func toMethodID(id engine.MethodID) C.jmethodID {
	return C.jmethodID(unsafe.Pointer(uintptr(id)))
}

func toFieldID(id engine.FieldID) C.jfieldID {
	return C.jfieldID(unsafe.Pointer(uintptr(id)))
}

// packArgs copies args into a C-allocated jvalue array. The caller frees it.
func packArgs(args []value.Value) *C.jvalue {
	a := C.bridge_alloc_args(C.int(len(args)))
	for i, v := range args {
		ci := C.int(i)
		switch v.Kind() {
		case descriptor.KindBoolean:
			C.bridge_set_z(a, ci, C.jboolean(v.Bits()))
		case descriptor.KindByte:
			C.bridge_set_b(a, ci, C.jbyte(v.Int8()))
		case descriptor.KindChar:
			C.bridge_set_c(a, ci, C.jchar(v.Uint16()))
		case descriptor.KindShort:
			C.bridge_set_s(a, ci, C.jshort(v.Int16()))
		case descriptor.KindInt:
			C.bridge_set_i(a, ci, C.jint(v.Int32()))
		case descriptor.KindLong:
			C.bridge_set_j(a, ci, C.jlong(v.Int64()))
		case descriptor.KindFloat:
			C.bridge_set_f(a, ci, C.jfloat(v.Float32()))
		case descriptor.KindDouble:
			C.bridge_set_d(a, ci, C.jdouble(v.Float64()))
		case descriptor.KindObject:
			C.bridge_set_l(a, ci, toObject(v.Ref()))
		}
	}
	return a
}

func freeArgs(a *C.jvalue) {
	C.free(unsafe.Pointer(a))
}

// returnCode names the JNI_* status codes.
func returnCode(rc C.jint) error {
	switch rc {
	case C.JNI_OK:
		return nil
	case C.JNI_EDETACHED:
		return engine.ErrDetached
	case C.JNI_EVERSION:
		return engine.ErrVersion
	case C.JNI_ENOMEM:
		return fmt.Errorf("JNI_ENOMEM: not enough memory")
	case C.JNI_EEXIST:
		return fmt.Errorf("JNI_EEXIST: VM already created")
	case C.JNI_EINVAL:
		return fmt.Errorf("JNI_EINVAL: invalid arguments")
	}
	return fmt.Errorf("JNI_ERR (%d)", int(rc))
}
