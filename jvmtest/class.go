package jvmtest

import (
	"fmt"
	"strings"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/value"
)

// ObjectClass is the root of every class hierarchy.
const ObjectClass = "java/lang/Object"

// Class declares a class for VM.Define.
type Class struct {
	Name string
	// Super defaults to java/lang/Object.
	Super   string
	Methods []Method
	Fields  []Field
}

// Method declares a constructor ("<init>"), instance or static method.
// Body returns the result; a void method returns value.Void().
type Method struct {
	Body   func(c *Call) value.Value
	Name   string
	Sig    string
	Static bool
}

// Field declares a static field. Get is called on every read.
type Field struct {
	Get  func(c *Call) value.Value
	Name string
	Sig  string
}

type memberKey struct {
	name string
	sig  string
}

type class struct {
	super   *class
	mirror  *Instance
	methods map[memberKey]*method
	statics map[memberKey]*method
	fields  map[memberKey]*field
	name    string
}

type method struct {
	body   func(c *Call) value.Value
	class  *class
	name   string
	sig    string
	params []descriptor.Class
	id     engine.MethodID
	ret    descriptor.Kind
	static bool
}

type field struct {
	get   func(c *Call) value.Value
	class *class
	name  string
	typ   descriptor.Kind
	id    engine.FieldID
}

// subclassOf reports whether c is name or inherits from it.
func (c *class) subclassOf(name string) bool {
	for k := c; k != nil; k = k.super {
		if k.name == name {
			return true
		}
	}
	return false
}

// virtual finds the most derived implementation of an instance method.
func (c *class) virtual(key memberKey) *method {
	for k := c; k != nil; k = k.super {
		if m, ok := k.methods[key]; ok {
			return m
		}
	}
	return nil
}

func (c *class) staticMethod(key memberKey) *method {
	for k := c; k != nil; k = k.super {
		if m, ok := k.statics[key]; ok {
			return m
		}
	}
	return nil
}

func (c *class) staticField(key memberKey) *field {
	for k := c; k != nil; k = k.super {
		if f, ok := k.fields[key]; ok {
			return f
		}
	}
	return nil
}

// Instance is a heap object. State carries the Go payload of built-in
// classes: the text of a String or a Throwable's message, a file path, and
// so on.
type Instance struct {
	class *class
	State any
	id    uint32
}

// ClassName returns the slash-separated name of the object's class.
func (i *Instance) ClassName() string {
	return i.class.name
}

// InstanceOf reports whether the object is an instance of the named class or
// one of its subclasses.
func (i *Instance) InstanceOf(name string) bool {
	return i.class.subclassOf(name)
}

// HashCode is the object's identity hash.
func (i *Instance) HashCode() int32 {
	return int32(i.id * 0x9e3779b1 >> 1)
}

func (i *Instance) javaName() string {
	return strings.ReplaceAll(i.class.name, "/", ".")
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s@%x", i.javaName(), uint32(i.HashCode()))
}

// Call is the context handed to a method body.
type Call struct {
	env  *Env
	This *Instance
	Args []value.Value
}

// VM returns the VM running the call.
func (c *Call) VM() *VM {
	return c.env.vm
}

// Object resolves reference argument i. Null yields nil.
func (c *Call) Object(i int) *Instance {
	return c.env.resolve(c.Args[i].Ref())
}

// String returns the text of java.lang.String argument i, or false when the
// argument is null.
func (c *Call) String(i int) (string, bool) {
	obj := c.Object(i)
	if obj == nil {
		return "", false
	}
	s, _ := obj.State.(string)
	return s, true
}

// NewString returns a local reference to a new java.lang.String.
func (c *Call) NewString(s string) value.Value {
	return value.Object(c.env.NewString(s))
}

// New allocates an uninitialised instance of a defined class.
func (c *Call) New(className string, state any) *Instance {
	return c.env.vm.newInstance(className, state)
}

// Local returns a local reference to obj. A nil obj yields null.
func (c *Call) Local(obj *Instance) value.Value {
	if obj == nil {
		return value.Null()
	}
	return value.Object(c.env.local(obj))
}

// Throw leaves a new exception of the named Throwable class pending and
// returns a void value for the body to return.
func (c *Call) Throw(className, message string) value.Value {
	c.env.throw(className, message)
	return value.Void()
}
