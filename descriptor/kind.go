package descriptor

// Kind is the value category of a type: what call primitive returns it and how
// wide its runtime representation is.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
)

var kindNames = [...]string{
	KindVoid:    "void",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindChar:    "char",
	KindShort:   "short",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Primitive reports whether values of the kind are passed by value.
func (k Kind) Primitive() bool {
	return k >= KindBoolean && k <= KindDouble
}

// Size returns the width in bytes of the kind's runtime representation.
func (k Kind) Size() int {
	switch k {
	case KindBoolean, KindByte:
		return 1
	case KindChar, KindShort:
		return 2
	case KindInt, KindFloat:
		return 4
	case KindLong, KindDouble:
		return 8
	case KindObject:
		return 8
	}
	return 0
}
