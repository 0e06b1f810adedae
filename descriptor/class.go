package descriptor

import (
	"strings"

	"github.com/wippyai/jvm-bridge/errors"
)

// Class is an opaque, immutable descriptor for a JVM type. It is a plain value
// and holds no reference into a running VM.
type Class struct {
	name   string
	native bool
}

// Descriptors for primitive types. Void is the return type, not java.lang.Void.
var (
	Void    = Class{name: "V", native: true}
	Boolean = Class{name: "Z", native: true}
	Byte    = Class{name: "B", native: true}
	Char    = Class{name: "C", native: true}
	Short   = Class{name: "S", native: true}
	Int     = Class{name: "I", native: true}
	Long    = Class{name: "J", native: true}
	Float   = Class{name: "F", native: true}
	Double  = Class{name: "D", native: true}

	// String is java.lang.String, singled out because the bridge converts it.
	String = Class{name: "java/lang/String"}
)

var primitiveKinds = map[byte]Kind{
	'V': KindVoid,
	'Z': KindBoolean,
	'B': KindByte,
	'C': KindChar,
	'S': KindShort,
	'I': KindInt,
	'J': KindLong,
	'F': KindFloat,
	'D': KindDouble,
}

// Named returns a reference type descriptor for a fully-qualified class name
// in slash-separated form, e.g. "java/io/File". Nested classes use '$'.
func Named(name string) Class {
	return Class{name: name}
}

// ArrayOf returns the descriptor of an array whose elements are c.
func (c Class) ArrayOf() Class {
	return Class{name: "[" + c.Signature(), native: true}
}

// Signature returns the type's mangled descriptor string.
func (c Class) Signature() string {
	if c.native {
		return c.name
	}
	return "L" + c.name + ";"
}

// Name returns the name the descriptor was built from: the primitive code,
// the slash-separated class name, or the array descriptor.
func (c Class) Name() string {
	return c.name
}

// ClassName returns the name accepted by class lookup, or "" for primitives.
func (c Class) ClassName() string {
	if c.IsPrimitive() {
		return ""
	}
	return c.name
}

// IsPrimitive reports whether c is one of the primitive types (including void).
func (c Class) IsPrimitive() bool {
	return c.native && len(c.name) == 1
}

// IsArray reports whether c describes an array type.
func (c Class) IsArray() bool {
	return c.native && strings.HasPrefix(c.name, "[")
}

// IsZero reports whether c is the zero Class, which describes nothing.
func (c Class) IsZero() bool {
	return c.name == ""
}

// Kind returns the value category of the type.
func (c Class) Kind() Kind {
	if c.IsPrimitive() {
		return primitiveKinds[c.name[0]]
	}
	return KindObject
}

// Elem returns the element type of an array descriptor.
func (c Class) Elem() (Class, bool) {
	if !c.IsArray() {
		return Class{}, false
	}
	elem, err := ParseType(c.name[1:])
	if err != nil {
		return Class{}, false
	}
	return elem, true
}

// Validate reports malformed names, such as dotted or empty class names.
func (c Class) Validate() error {
	switch {
	case c.name == "":
		return errors.InvalidInput(errors.PhaseResolve, "empty class name")
	case c.native:
		if _, err := ParseType(c.name); err != nil {
			return err
		}
	case strings.ContainsAny(c.name, ".;[") || strings.HasPrefix(c.name, "/") || strings.HasSuffix(c.name, "/"):
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Class(c.name).
			Detail("class names must be slash-separated binary names").
			Build()
	}
	return nil
}

// String returns the Java source form of the type, e.g. "java.io.File" or "int[]".
func (c Class) String() string {
	if elem, ok := c.Elem(); ok {
		return elem.String() + "[]"
	}
	if c.IsPrimitive() {
		return c.Kind().String()
	}
	return errors.JavaName(c.name)
}

// Constructor creates a builder that locates a constructor of c.
func (c Class) Constructor() *ConstructorFinder {
	return &ConstructorFinder{class: c}
}

// Method creates a builder that locates a method of c named name.
func (c Class) Method(name string) *MethodFinder {
	return &MethodFinder{class: c, name: name}
}
