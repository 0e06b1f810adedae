package jvm

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
)

// JVM is the process-wide embedded virtual machine. It is created once, by
// Create, CreateFromConfig, Inject or the first Get, and is never destroyed.
type JVM struct {
	vm         engine.VM
	cache      *cache
	version    engine.Version
	exceptions bool
	daemon     bool
}

var (
	mu       sync.Mutex
	instance atomic.Pointer[JVM]
)

// Created reports whether the VM exists.
func Created() bool {
	return instance.Load() != nil
}

// Get returns the VM, creating it with default options on first use.
func Get() (*JVM, error) {
	if j := instance.Load(); j != nil {
		return j, nil
	}
	mu.Lock()
	defer mu.Unlock()
	if j := instance.Load(); j != nil {
		return j, nil
	}
	backend, err := engine.Default()
	if err != nil {
		return nil, err
	}
	return embed(backend, nil, engine.DefaultVersion, false, true)
}

// Create embeds a new VM through the default backend. Options are passed
// through verbatim. Only one VM may exist per process: Create fails once one
// has been created or injected.
func Create(options []string, version engine.Version, exceptions bool) (*JVM, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := absent(); err != nil {
		return nil, err
	}
	backend, err := engine.Default()
	if err != nil {
		return nil, err
	}
	return embed(backend, options, version, exceptions, true)
}

// CreateFromConfig embeds a VM as described by cfg.
func CreateFromConfig(cfg Config) (*JVM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	version, err := cfg.JNIVersion()
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	if err := absent(); err != nil {
		return nil, err
	}

	var backend engine.Backend
	if cfg.Backend == "" {
		backend, err = engine.Default()
	} else {
		backend, err = engine.Lookup(cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return embed(backend, cfg.StartupOptions(), version, cfg.Exceptions, cfg.Attach != AttachNormal)
}

// Inject adopts a VM created elsewhere. Injecting the VM that is already
// installed is a no-op and returns the existing JVM unchanged; injecting a
// different one fails.
func Inject(vm engine.VM, version engine.Version, exceptions bool) (*JVM, error) {
	if vm == nil {
		return nil, errors.Configuration("cannot inject a nil VM")
	}
	if !version.Valid() {
		return nil, errors.New(errors.PhaseEmbed, errors.KindConfiguration).
			Value(version).
			Detail("unsupported version %s", version).
			Build()
	}

	mu.Lock()
	defer mu.Unlock()

	if j := instance.Load(); j != nil {
		if j.vm == vm {
			return j, nil
		}
		return nil, errors.Configuration("a different VM is already installed")
	}

	j := newJVM(vm, version, exceptions, true)
	instance.Store(j)
	Logger().Info("JVM injected", zap.Stringer("version", version), zap.Bool("exceptions", exceptions))
	return j, nil
}

func absent() error {
	if instance.Load() != nil {
		return errors.Configuration("JVM already created; only one VM can be embedded per process")
	}
	return nil
}

// embed must be called with mu held.
func embed(backend engine.Backend, options []string, version engine.Version, exceptions, daemon bool) (*JVM, error) {
	if !version.Valid() {
		return nil, errors.New(errors.PhaseEmbed, errors.KindConfiguration).
			Value(version).
			Detail("unsupported version %s", version).
			Build()
	}
	vm, err := backend.Create(append([]string(nil), options...), version)
	if err != nil {
		return nil, errors.New(errors.PhaseEmbed, errors.KindConfiguration).
			Cause(err).
			Detail("create VM").
			Build()
	}

	j := newJVM(vm, version, exceptions, daemon)
	instance.Store(j)
	Logger().Info("JVM created",
		zap.Strings("options", options),
		zap.Stringer("version", version),
		zap.Bool("exceptions", exceptions))
	return j, nil
}

func newJVM(vm engine.VM, version engine.Version, exceptions, daemon bool) *JVM {
	return &JVM{
		vm:         vm,
		cache:      newCache(),
		version:    version,
		exceptions: exceptions,
		daemon:     daemon,
	}
}

// VM returns the backend VM.
func (j *JVM) VM() engine.VM { return j.vm }

// Version returns the interface version threads are attached with.
func (j *JVM) Version() engine.Version { return j.version }

// Exceptions reports whether Java exceptions are returned as errors. When
// false they are logged at warn level, cleared, and calls return zero values.
func (j *JVM) Exceptions() bool { return j.exceptions }
