package jvm

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/value"
)

// Constructor is a resolved constructor. It stays valid for the life of the
// process.
type Constructor struct {
	class  descriptor.Class
	params []descriptor.Class
	sig    string
	clazz  value.Ref
	id     engine.MethodID
}

func (c *Constructor) Class() descriptor.Class { return c.class }
func (c *Constructor) Signature() string       { return c.sig }

// Parameters returns a copy of the parameter list.
func (c *Constructor) Parameters() []descriptor.Class {
	return append([]descriptor.Class(nil), c.params...)
}

func (c *Constructor) String() string {
	return c.class.String() + ".<init>" + c.sig
}

// Method is a resolved instance or static method.
type Method struct {
	class  descriptor.Class
	ret    descriptor.Class
	name   string
	sig    string
	params []descriptor.Class
	clazz  value.Ref
	id     engine.MethodID
	static bool
}

func (m *Method) Class() descriptor.Class      { return m.class }
func (m *Method) Name() string                 { return m.name }
func (m *Method) Signature() string            { return m.sig }
func (m *Method) ReturnType() descriptor.Class { return m.ret }
func (m *Method) Static() bool                 { return m.static }

// Parameters returns a copy of the parameter list.
func (m *Method) Parameters() []descriptor.Class {
	return append([]descriptor.Class(nil), m.params...)
}

func (m *Method) String() string {
	return descriptor.NewMethodSignature(m.class, m.name, m.params, m.ret).String()
}

func (m *Method) site() site {
	return site{class: m.class.ClassName(), member: m.name, sig: m.sig}
}

// Field is a resolved static field.
type Field struct {
	class descriptor.Class
	typ   descriptor.Class
	name  string
	clazz value.Ref
	id    engine.FieldID
}

func (f *Field) Class() descriptor.Class { return f.class }
func (f *Field) Name() string            { return f.name }
func (f *Field) Type() descriptor.Class  { return f.typ }

func (f *Field) String() string {
	return f.typ.String() + " " + f.class.String() + "." + f.name
}

func (f *Field) site() site {
	return site{class: f.class.ClassName(), member: f.name, sig: f.typ.Signature()}
}
