package jvmtest

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/internal/osthread"
	"github.com/wippyai/jvm-bridge/resource"
	"github.com/wippyai/jvm-bridge/value"
)

type ref struct {
	obj    *Instance
	thread uint64
}

// Env is the engine.Env of one attached thread.
type Env struct {
	vm  *VM
	att *attachment
}

var _ engine.Env = (*Env)(nil)

// enter guards every call. A real VM crashes on a stale or foreign Env, so
// this panics.
func (e *Env) enter() {
	if e.att.done {
		panic("jvmtest: Env used after DetachCurrentThread")
	}
	if tid := osthread.ID(); tid != e.att.thread {
		panic(fmt.Sprintf("jvmtest: Env of thread %d used on thread %d", e.att.thread, tid))
	}
}

// enterClean is enter for calls that must not run with an exception pending.
func (e *Env) enterClean() {
	e.enter()
	if e.att.pending != nil {
		e.vm.stats.pendingViolations.Add(1)
		e.vm.log.Warn("call with pending exception",
			zap.String("exception", e.att.pending.class.name))
	}
}

func (e *Env) local(obj *Instance) value.Ref {
	h := e.vm.refs.Insert(resource.ScopeLocal, &ref{obj: obj, thread: e.att.thread})
	e.att.locals[h] = struct{}{}
	return value.Ref(h)
}

// resolve maps a reference to its object. Null, deleted and foreign local
// references yield nil.
func (e *Env) resolve(r value.Ref) *Instance {
	if r.IsNull() {
		return nil
	}
	v, ok := e.vm.refs.Get(resource.Handle(r))
	if !ok {
		return nil
	}
	rr := v.(*ref)
	if scope, _ := e.vm.refs.Scope(resource.Handle(r)); scope == resource.ScopeLocal && rr.thread != e.att.thread {
		return nil
	}
	return rr.obj
}

func (e *Env) resolveClass(r value.Ref) *class {
	obj := e.resolve(r)
	if obj == nil {
		return nil
	}
	k, _ := obj.State.(*class)
	return k
}

func (e *Env) throw(className, message string) {
	obj := e.vm.newInstance(className, message)
	if obj == nil || !obj.InstanceOf("java/lang/Throwable") {
		obj = e.vm.newInstance("java/lang/NoClassDefFoundError", className)
	}
	e.att.pending = obj
	e.vm.log.Debug("exception thrown",
		zap.String("class", obj.class.name),
		zap.String("message", message))
}

func (e *Env) FindClass(name string) value.Ref {
	e.enterClean()
	k := e.vm.class(name)
	if k == nil {
		e.throw("java/lang/NoClassDefFoundError", name)
		return 0
	}
	return e.local(k.mirror)
}

func (e *Env) GetMethodID(classRef value.Ref, name, sig string) engine.MethodID {
	e.enterClean()
	k := e.resolveClass(classRef)
	if k == nil {
		e.throw("java/lang/NullPointerException", "class")
		return 0
	}
	key := memberKey{name, sig}
	var m *method
	if name == "<init>" {
		// Constructors are not inherited.
		m = k.methods[key]
	} else {
		m = k.virtual(key)
	}
	if m == nil {
		e.throw("java/lang/NoSuchMethodError", name)
		return 0
	}
	return m.id
}

func (e *Env) GetStaticMethodID(classRef value.Ref, name, sig string) engine.MethodID {
	e.enterClean()
	k := e.resolveClass(classRef)
	if k == nil {
		e.throw("java/lang/NullPointerException", "class")
		return 0
	}
	m := k.staticMethod(memberKey{name, sig})
	if m == nil {
		e.throw("java/lang/NoSuchMethodError", name)
		return 0
	}
	return m.id
}

func (e *Env) GetStaticFieldID(classRef value.Ref, name, sig string) engine.FieldID {
	e.enterClean()
	k := e.resolveClass(classRef)
	if k == nil {
		e.throw("java/lang/NullPointerException", "class")
		return 0
	}
	f := k.staticField(memberKey{name, sig})
	if f == nil {
		e.throw("java/lang/NoSuchFieldError", name)
		return 0
	}
	return f.id
}

// invoke runs a body and converts its result to a value of kind ret.
func (e *Env) invoke(m *method, this *Instance, args []value.Value, ret descriptor.Kind) value.Value {
	if len(args) != len(m.params) {
		e.throw("java/lang/IllegalArgumentException",
			fmt.Sprintf("wrong number of arguments: %d expected: %d", len(args), len(m.params)))
		return value.Zero(ret)
	}
	for i, p := range m.params {
		if args[i].Kind() != p.Kind() {
			e.throw("java/lang/IllegalArgumentException", fmt.Sprintf("argument type mismatch at %d", i))
			return value.Zero(ret)
		}
	}

	result := m.body(&Call{env: e, This: this, Args: args})
	if e.att.pending != nil || ret == descriptor.KindVoid {
		return value.Zero(ret)
	}
	if result.Kind() != ret {
		panic(fmt.Sprintf("jvmtest: %s.%s%s returned %s, caller expects %s",
			m.class.name, m.name, m.sig, result.Kind(), ret))
	}
	return result
}

func (e *Env) NewObject(classRef value.Ref, ctor engine.MethodID, args []value.Value) value.Ref {
	e.enterClean()
	k := e.resolveClass(classRef)
	m := e.vm.method(ctor)
	if k == nil || m == nil || m.name != "<init>" || m.class != k {
		e.throw("java/lang/NoSuchMethodError", "<init>")
		return 0
	}
	obj := &Instance{class: k, id: e.vm.nextID.Add(1)}
	e.invoke(m, obj, args, descriptor.KindVoid)
	if e.att.pending != nil {
		return 0
	}
	return e.local(obj)
}

func (e *Env) CallMethod(ret descriptor.Kind, objRef value.Ref, methodID engine.MethodID, args []value.Value) value.Value {
	e.enterClean()
	obj := e.resolve(objRef)
	if obj == nil {
		e.throw("java/lang/NullPointerException", "")
		return value.Zero(ret)
	}
	m := e.vm.method(methodID)
	if m == nil || m.static || m.name == "<init>" {
		e.throw("java/lang/NoSuchMethodError", "")
		return value.Zero(ret)
	}
	if impl := obj.class.virtual(memberKey{m.name, m.sig}); impl != nil {
		m = impl
	} else {
		e.throw("java/lang/IncompatibleClassChangeError", obj.class.name)
		return value.Zero(ret)
	}
	return e.invoke(m, obj, args, ret)
}

func (e *Env) CallStaticMethod(ret descriptor.Kind, classRef value.Ref, methodID engine.MethodID, args []value.Value) value.Value {
	e.enterClean()
	m := e.vm.method(methodID)
	if e.resolveClass(classRef) == nil || m == nil || !m.static {
		e.throw("java/lang/NoSuchMethodError", "")
		return value.Zero(ret)
	}
	return e.invoke(m, nil, args, ret)
}

func (e *Env) GetStaticField(typ descriptor.Kind, classRef value.Ref, fieldID engine.FieldID) value.Value {
	e.enterClean()
	f := e.vm.field(fieldID)
	if e.resolveClass(classRef) == nil || f == nil {
		e.throw("java/lang/NoSuchFieldError", "")
		return value.Zero(typ)
	}
	if f.typ != typ {
		panic(fmt.Sprintf("jvmtest: field %s.%s is %s, caller reads %s", f.class.name, f.name, f.typ, typ))
	}
	v := f.get(&Call{env: e})
	if e.att.pending != nil {
		return value.Zero(typ)
	}
	return v
}

func (e *Env) NewGlobalRef(r value.Ref) value.Ref {
	e.enter()
	obj := e.resolve(r)
	if obj == nil {
		return 0
	}
	return value.Ref(e.vm.refs.Insert(resource.ScopeGlobal, &ref{obj: obj}))
}

func (e *Env) DeleteGlobalRef(r value.Ref) {
	e.enter()
	if r.IsNull() {
		return
	}
	if _, ok := e.vm.refs.RemoveScoped(resource.Handle(r), resource.ScopeGlobal); !ok {
		e.vm.stats.invalidDeletes.Add(1)
		e.vm.log.Warn("invalid global reference deleted", zap.Uint64("ref", uint64(r)))
	}
}

func (e *Env) DeleteLocalRef(r value.Ref) {
	e.enter()
	if r.IsNull() {
		return
	}
	if _, ok := e.vm.refs.RemoveScoped(resource.Handle(r), resource.ScopeLocal); !ok {
		e.vm.stats.invalidDeletes.Add(1)
		e.vm.log.Warn("invalid local reference deleted", zap.Uint64("ref", uint64(r)))
		return
	}
	delete(e.att.locals, resource.Handle(r))
}

func (e *Env) NewString(s string) value.Ref {
	e.enter()
	return e.local(e.vm.newInstance("java/lang/String", s))
}

func (e *Env) GetString(r value.Ref) string {
	e.enter()
	obj := e.resolve(r)
	if obj == nil {
		return ""
	}
	s, _ := obj.State.(string)
	return s
}

func (e *Env) ExceptionCheck() bool {
	e.enter()
	return e.att.pending != nil
}

func (e *Env) ExceptionOccurred() value.Ref {
	e.enter()
	if e.att.pending == nil {
		return 0
	}
	return e.local(e.att.pending)
}

func (e *Env) ExceptionClear() {
	e.enter()
	e.att.pending = nil
}

// Throw leaves an exception pending on this thread, as a native method would.
func (e *Env) Throw(className, message string) {
	e.enter()
	e.throw(className, message)
}
