// Package value holds the tagged-union values passed into and returned from
// JVM calls.
//
// Every argument carries its kind, so an argument list can be checked against a
// resolved signature before the call is made:
//
//	args := []value.Value{value.Object(path), value.Int(0644)}
//	if err := value.Check(sig, params, args); err != nil {
//	    return err // arity or width mismatch
//	}
package value

import (
	"fmt"
	"math"

	"github.com/wippyai/jvm-bridge/descriptor"
)

// Ref is an opaque JVM reference (jobject). The zero Ref is null.
type Ref uintptr

// IsNull reports whether r is the null reference.
func (r Ref) IsNull() bool { return r == 0 }

// Value is one JVM value: a primitive stored in bits, or a reference.
type Value struct {
	bits uint64
	ref  Ref
	kind descriptor.Kind
	// keep holds the owner of ref reachable for as long as the value is.
	keep any
}

func Boolean(b bool) Value {
	v := Value{kind: descriptor.KindBoolean}
	if b {
		v.bits = 1
	}
	return v
}

func Byte(b int8) Value     { return Value{kind: descriptor.KindByte, bits: uint64(uint8(b))} }
func Char(c uint16) Value   { return Value{kind: descriptor.KindChar, bits: uint64(c)} }
func Short(s int16) Value   { return Value{kind: descriptor.KindShort, bits: uint64(uint16(s))} }
func Int(i int32) Value     { return Value{kind: descriptor.KindInt, bits: uint64(uint32(i))} }
func Long(l int64) Value    { return Value{kind: descriptor.KindLong, bits: uint64(l)} }
func Float(f float32) Value { return Value{kind: descriptor.KindFloat, bits: uint64(math.Float32bits(f))} }
func Double(d float64) Value {
	return Value{kind: descriptor.KindDouble, bits: math.Float64bits(d)}
}

// Object wraps a reference. The value does not own r.
func Object(r Ref) Value { return Value{kind: descriptor.KindObject, ref: r} }

// Owned wraps a reference held by owner. The value keeps owner reachable, so
// a cleanup attached to owner cannot delete r while the value is in use.
func Owned(r Ref, owner any) Value {
	return Value{kind: descriptor.KindObject, ref: r, keep: owner}
}

// Null is the null reference.
func Null() Value { return Value{kind: descriptor.KindObject} }

// Void is the result of a void call.
func Void() Value { return Value{kind: descriptor.KindVoid} }

// Zero returns the zero value of kind k, used as the result of a call whose
// exception was suppressed.
func Zero(k descriptor.Kind) Value { return Value{kind: k} }

func (v Value) Kind() descriptor.Kind { return v.kind }
func (v Value) Bool() bool            { return v.bits != 0 }
func (v Value) Int8() int8            { return int8(v.bits) }
func (v Value) Uint16() uint16        { return uint16(v.bits) }
func (v Value) Int16() int16          { return int16(v.bits) }
func (v Value) Int32() int32          { return int32(v.bits) }
func (v Value) Int64() int64          { return int64(v.bits) }
func (v Value) Float32() float32      { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Float64() float64      { return math.Float64frombits(v.bits) }
func (v Value) Ref() Ref              { return v.ref }

// Bits returns the raw primitive payload, zero-extended to 64 bits.
func (v Value) Bits() uint64 { return v.bits }

// Any returns the Go form of the value: bool, int8, uint16, int16, int32,
// int64, float32, float64, Ref, or nil for void.
func (v Value) Any() any {
	switch v.kind {
	case descriptor.KindBoolean:
		return v.Bool()
	case descriptor.KindByte:
		return v.Int8()
	case descriptor.KindChar:
		return v.Uint16()
	case descriptor.KindShort:
		return v.Int16()
	case descriptor.KindInt:
		return v.Int32()
	case descriptor.KindLong:
		return v.Int64()
	case descriptor.KindFloat:
		return v.Float32()
	case descriptor.KindDouble:
		return v.Float64()
	case descriptor.KindObject:
		return v.ref
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case descriptor.KindVoid:
		return "void"
	case descriptor.KindObject:
		if v.ref.IsNull() {
			return "null"
		}
		return fmt.Sprintf("object@%#x", uintptr(v.ref))
	case descriptor.KindChar:
		return fmt.Sprintf("%q", rune(v.Uint16()))
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Any())
}
