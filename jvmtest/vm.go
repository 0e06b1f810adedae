package jvmtest

import (
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/internal/osthread"
	"github.com/wippyai/jvm-bridge/resource"
)

// BackendName is the name the package registers with the engine.
const BackendName = "jvmtest"

func init() {
	engine.Register(BackendName, Backend())
}

// Backend returns a backend that creates a fresh VM on every Create.
// Options of the form -Dkey=value become system properties; every option
// must start with '-'.
func Backend() engine.Backend {
	return engine.BackendFunc(func(options []string, version engine.Version) (engine.VM, error) {
		if !version.Valid() {
			return nil, errors.New(errors.PhaseEmbed, errors.KindConfiguration).
				Value(version).
				Detail("unsupported version %s", version).
				Build()
		}
		opts := []Option{WithVersion(version)}
		for _, o := range options {
			if !strings.HasPrefix(o, "-") {
				return nil, errors.Configuration("unrecognized option %q", o)
			}
			if prop, ok := strings.CutPrefix(o, "-D"); ok {
				key, val, _ := strings.Cut(prop, "=")
				if key == "" {
					return nil, errors.Configuration("empty property name in %q", o)
				}
				opts = append(opts, WithProperty(key, val))
			}
		}
		vm := New(opts...)
		vm.options = append([]string(nil), options...)
		return vm, nil
	})
}

// Option configures a VM.
type Option func(*VM)

// WithProperty sets a system property.
func WithProperty(key, val string) Option {
	return func(vm *VM) { vm.props[key] = val }
}

// WithVersion sets the highest interface version GetEnv accepts.
func WithVersion(v engine.Version) Option {
	return func(vm *VM) { vm.version = v }
}

// WithLogger logs attach, detach and thrown exceptions.
func WithLogger(l *zap.Logger) Option {
	return func(vm *VM) { vm.log = l }
}

// VM is an in-memory engine.VM.
type VM struct {
	refs         *resource.Table
	log          *zap.Logger
	classes      map[string]*class
	threads      map[uint64]*attachment
	props        map[string]string
	methods      []*method
	fields       []*field
	options      []string
	deleteOnExit []string
	stats        counters
	mu           sync.RWMutex
	nextID       atomic.Uint32
	version      engine.Version
	exited       bool
}

type attachment struct {
	env     *Env
	pending *Instance
	locals  map[resource.Handle]struct{}
	thread  uint64
	daemon  bool
	done    bool
}

type counters struct {
	createdGlobals    atomic.Int64
	deletedGlobals    atomic.Int64
	invalidDeletes    atomic.Int64
	pendingViolations atomic.Int64
	attaches          atomic.Int64
	detaches          atomic.Int64
}

// Stats is a snapshot of reference and attachment activity.
type Stats struct {
	LiveGlobals    int
	LiveLocals     int
	CreatedGlobals int64
	DeletedGlobals int64
	// InvalidDeletes counts deletes of null-but-stale, already deleted or
	// wrongly scoped references.
	InvalidDeletes int64
	// PendingViolations counts calls made while an exception was pending.
	PendingViolations int64
	Attached          int
	Attaches          int64
	Detaches          int64
}

// New creates a VM with the built-in classes defined.
func New(opts ...Option) *VM {
	vm := &VM{
		refs:    resource.NewTable(),
		log:     engine.BackendLogger("jvmtest"),
		classes: make(map[string]*class),
		threads: make(map[uint64]*attachment),
		props:   make(map[string]string),
		version: engine.V1_8,
	}
	vm.props["java.version"] = "1.8.0-jvmtest"
	vm.props["java.vm.name"] = "jvmtest"
	vm.props["line.separator"] = "\n"
	vm.props["file.separator"] = string(os.PathSeparator)
	vm.props["java.io.tmpdir"] = os.TempDir()

	for _, o := range opts {
		o(vm)
	}

	vm.refs.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		if e.Scope != resource.ScopeGlobal {
			return
		}
		switch e.Type {
		case resource.EventCreated:
			vm.stats.createdGlobals.Add(1)
		case resource.EventDeleted:
			vm.stats.deletedGlobals.Add(1)
		}
	}))

	for _, c := range builtins() {
		if err := vm.Define(c); err != nil {
			panic("jvmtest: built-in " + c.Name + ": " + err.Error())
		}
	}
	return vm
}

// Define adds a class. The superclass must already be defined.
func (vm *VM) Define(c Class) error {
	if err := descriptor.Named(c.Name).Validate(); err != nil {
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if _, ok := vm.classes[c.Name]; ok {
		return defineError("class %s already defined", c.Name)
	}

	k := &class{
		name:    c.Name,
		methods: make(map[memberKey]*method),
		statics: make(map[memberKey]*method),
		fields:  make(map[memberKey]*field),
	}
	if c.Name != ObjectClass {
		superName := c.Super
		if superName == "" {
			superName = ObjectClass
		}
		super, ok := vm.classes[superName]
		if !ok {
			return errors.NotFound(errors.PhaseConfig, "superclass", superName, "", "")
		}
		k.super = super
	}

	for _, m := range c.Methods {
		params, ret, err := descriptor.ParseMethod(m.Sig)
		if err != nil {
			return err
		}
		if m.Body == nil {
			return defineError("method %s.%s%s has no body", c.Name, m.Name, m.Sig)
		}
		if m.Name == "<init>" && (m.Static || ret != descriptor.Void) {
			return defineError("constructor %s%s must be an instance method returning void", c.Name, m.Sig)
		}
		mm := &method{
			body:   m.Body,
			class:  k,
			name:   m.Name,
			sig:    m.Sig,
			params: params,
			ret:    ret.Kind(),
			static: m.Static,
		}
		vm.methods = append(vm.methods, mm)
		mm.id = engine.MethodID(len(vm.methods))

		key := memberKey{m.Name, m.Sig}
		if m.Static {
			k.statics[key] = mm
		} else {
			k.methods[key] = mm
		}
	}

	for _, f := range c.Fields {
		typ, err := descriptor.ParseType(f.Sig)
		if err != nil {
			return err
		}
		if typ == descriptor.Void || f.Get == nil {
			return defineError("invalid field %s.%s", c.Name, f.Name)
		}
		ff := &field{get: f.Get, class: k, name: f.Name, typ: typ.Kind()}
		vm.fields = append(vm.fields, ff)
		ff.id = engine.FieldID(len(vm.fields))
		k.fields[memberKey{f.Name, f.Sig}] = ff
	}

	vm.classes[c.Name] = k
	if mirrorClass, ok := vm.classes["java/lang/Class"]; ok {
		k.mirror = &Instance{class: mirrorClass, State: k, id: vm.nextID.Add(1)}
	}
	if c.Name == "java/lang/Class" {
		// Classes defined before java/lang/Class get their mirrors now.
		for _, other := range vm.classes {
			if other.mirror == nil {
				other.mirror = &Instance{class: k, State: other, id: vm.nextID.Add(1)}
			}
		}
	}
	return nil
}

func defineError(format string, args ...any) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).Detail(format, args...).Build()
}

func (vm *VM) class(name string) *class {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.classes[name]
}

func (vm *VM) method(id engine.MethodID) *method {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if id == 0 || int(id) > len(vm.methods) {
		return nil
	}
	return vm.methods[id-1]
}

func (vm *VM) field(id engine.FieldID) *field {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if id == 0 || int(id) > len(vm.fields) {
		return nil
	}
	return vm.fields[id-1]
}

func (vm *VM) newInstance(className string, state any) *Instance {
	k := vm.class(className)
	if k == nil {
		return nil
	}
	return &Instance{class: k, State: state, id: vm.nextID.Add(1)}
}

// Property returns a system property.
func (vm *VM) Property(key string) (string, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	v, ok := vm.props[key]
	return v, ok
}

// SetProperty sets a system property and returns the previous value.
func (vm *VM) SetProperty(key, val string) (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	prev, ok := vm.props[key]
	vm.props[key] = val
	return prev, ok
}

// Options returns the options the VM was created with.
func (vm *VM) Options() []string {
	return append([]string(nil), vm.options...)
}

// Version returns the highest supported interface version.
func (vm *VM) Version() engine.Version {
	return vm.version
}

// DeleteOnExit returns the paths registered through File.deleteOnExit.
func (vm *VM) DeleteOnExit() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]string(nil), vm.deleteOnExit...)
}

// Exit runs the VM's shutdown hooks: files registered for deletion are
// removed in reverse registration order. Calling Exit twice is a no-op.
func (vm *VM) Exit() {
	vm.mu.Lock()
	if vm.exited {
		vm.mu.Unlock()
		return
	}
	vm.exited = true
	paths := vm.deleteOnExit
	vm.mu.Unlock()

	for i := len(paths) - 1; i >= 0; i-- {
		if err := os.Remove(paths[i]); err != nil && !os.IsNotExist(err) {
			vm.log.Warn("delete on exit failed", zap.String("path", paths[i]), zap.Error(err))
		}
	}
}

func (vm *VM) registerDeleteOnExit(path string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.deleteOnExit = append(vm.deleteOnExit, path)
}

// Classes returns the defined class names in sorted order.
func (vm *VM) Classes() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	names := make([]string, 0, len(vm.classes))
	for name := range vm.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns a snapshot of the VM's counters.
func (vm *VM) Stats() Stats {
	vm.mu.RLock()
	attached := len(vm.threads)
	vm.mu.RUnlock()

	return Stats{
		LiveGlobals:       vm.refs.LenScoped(resource.ScopeGlobal),
		LiveLocals:        vm.refs.LenScoped(resource.ScopeLocal),
		CreatedGlobals:    vm.stats.createdGlobals.Load(),
		DeletedGlobals:    vm.stats.deletedGlobals.Load(),
		InvalidDeletes:    vm.stats.invalidDeletes.Load(),
		PendingViolations: vm.stats.pendingViolations.Load(),
		Attached:          attached,
		Attaches:          vm.stats.attaches.Load(),
		Detaches:          vm.stats.detaches.Load(),
	}
}

// IsDaemon reports whether the calling thread is attached as a daemon.
func (vm *VM) IsDaemon() (daemon, attached bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	a, ok := vm.threads[osthread.ID()]
	if !ok {
		return false, false
	}
	return a.daemon, true
}

func (vm *VM) GetEnv(version engine.Version) (engine.Env, error) {
	if !version.Valid() || version > vm.version {
		return nil, engine.ErrVersion
	}
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	a, ok := vm.threads[osthread.ID()]
	if !ok {
		return nil, engine.ErrDetached
	}
	return a.env, nil
}

func (vm *VM) AttachCurrentThread(daemon bool) (engine.Env, error) {
	tid := osthread.ID()

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if a, ok := vm.threads[tid]; ok {
		return a.env, nil
	}
	a := &attachment{thread: tid, daemon: daemon, locals: make(map[resource.Handle]struct{})}
	a.env = &Env{vm: vm, att: a}
	vm.threads[tid] = a
	vm.stats.attaches.Add(1)

	vm.log.Debug("thread attached", zap.Uint64("thread", tid), zap.Bool("daemon", daemon))
	return a.env, nil
}

func (vm *VM) DetachCurrentThread() error {
	tid := osthread.ID()

	vm.mu.Lock()
	a, ok := vm.threads[tid]
	if ok {
		delete(vm.threads, tid)
		a.done = true
	}
	vm.mu.Unlock()

	if !ok {
		return nil
	}
	for h := range a.locals {
		vm.refs.RemoveScoped(h, resource.ScopeLocal)
	}
	a.locals = nil
	vm.stats.detaches.Add(1)

	vm.log.Debug("thread detached", zap.Uint64("thread", tid))
	return nil
}
