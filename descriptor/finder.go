package descriptor

import "strings"

// ConstructorFinder accumulates the parameter list of a constructor. It is
// complete as soon as all parameters are added and is passed directly to
// constructor lookup.
type ConstructorFinder struct {
	class      Class
	parameters []Class
}

// Parameter appends a parameter type and returns the same builder.
func (f *ConstructorFinder) Parameter(c Class) *ConstructorFinder {
	f.parameters = append(f.parameters, c)
	return f
}

// Class returns the class whose constructor is described.
func (f *ConstructorFinder) Class() Class {
	return f.class
}

// Parameters returns a copy of the parameter list.
func (f *ConstructorFinder) Parameters() []Class {
	return append([]Class(nil), f.parameters...)
}

// Signature returns the constructor's method descriptor, always returning void.
func (f *ConstructorFinder) Signature() string {
	return encodeMethod(f.parameters, Void)
}

// MethodFinder accumulates the parameter list of a method. Returns finishes
// the description.
type MethodFinder struct {
	class      Class
	name       string
	parameters []Class
}

// Parameter appends a parameter type and returns the same builder.
func (f *MethodFinder) Parameter(c Class) *MethodFinder {
	f.parameters = append(f.parameters, c)
	return f
}

// Returns finishes the description with the method's return type.
// Further Parameter calls on f do not affect the returned signature.
func (f *MethodFinder) Returns(c Class) MethodSignature {
	return MethodSignature{
		class:      f.class,
		name:       f.name,
		returnType: c,
		parameters: append([]Class(nil), f.parameters...),
	}
}

// MethodSignature is an immutable description of a method: owning class,
// name, parameter list and return type.
type MethodSignature struct {
	class      Class
	name       string
	returnType Class
	parameters []Class
}

// NewMethodSignature builds a signature from already decoded parts, as
// produced by ParseMethod.
func NewMethodSignature(class Class, name string, params []Class, ret Class) MethodSignature {
	return MethodSignature{
		class:      class,
		name:       name,
		returnType: ret,
		parameters: append([]Class(nil), params...),
	}
}

func (s MethodSignature) Class() Class      { return s.class }
func (s MethodSignature) Name() string      { return s.name }
func (s MethodSignature) ReturnType() Class { return s.returnType }

// Parameters returns a copy of the parameter list.
func (s MethodSignature) Parameters() []Class {
	return append([]Class(nil), s.parameters...)
}

// Signature returns the method descriptor, e.g. "(Ljava/lang/String;)Z".
func (s MethodSignature) Signature() string {
	return encodeMethod(s.parameters, s.returnType)
}

// String renders the method in Java source form for diagnostics.
func (s MethodSignature) String() string {
	var b strings.Builder
	b.WriteString(s.returnType.String())
	b.WriteByte(' ')
	b.WriteString(s.class.String())
	b.WriteByte('.')
	b.WriteString(s.name)
	b.WriteByte('(')
	for i, p := range s.parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

func encodeMethod(params []Class, ret Class) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(p.Signature())
	}
	b.WriteByte(')')
	b.WriteString(ret.Signature())
	return b.String()
}
