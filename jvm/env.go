package jvm

import (
	stderrors "errors"
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
)

// Env is an attachment of the calling goroutine's OS thread to the VM. The
// goroutine stays locked to its thread until Release.
//
// Acquisitions nest: only the outermost one on a thread attaches and
// detaches it.
type Env struct {
	jvm      *JVM
	env      engine.Env
	detach   bool
	released bool
}

type attachOptions struct {
	daemon bool
}

// AttachOption configures Attach.
type AttachOption func(*attachOptions)

// Daemon selects whether a newly attached thread is a daemon thread, one
// that does not keep the VM alive at shutdown. The default is the JVM's
// attach mode, daemon unless configured otherwise.
func Daemon(daemon bool) AttachOption {
	return func(o *attachOptions) { o.daemon = daemon }
}

// Attach makes sure the calling thread is attached and returns its Env.
// Every successful Attach must be paired with Release on the same goroutine.
func (j *JVM) Attach(opts ...AttachOption) (*Env, error) {
	o := attachOptions{daemon: j.daemon}
	for _, opt := range opts {
		opt(&o)
	}

	runtime.LockOSThread()

	env, err := j.vm.GetEnv(j.version)
	if err == nil {
		return &Env{jvm: j, env: env}, nil
	}
	if !stderrors.Is(err, engine.ErrDetached) {
		runtime.UnlockOSThread()
		return nil, errors.Attach(err)
	}

	env, err = j.vm.AttachCurrentThread(o.daemon)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, errors.Attach(err)
	}
	Logger().Debug("thread attached", zap.Bool("daemon", o.daemon))
	return &Env{jvm: j, env: env, detach: true}, nil
}

// Release ends the acquisition. The thread is detached only if this
// acquisition attached it. Calling Release twice is a no-op.
func (e *Env) Release() {
	if e == nil || e.released {
		return
	}
	e.released = true
	if e.detach {
		if err := e.jvm.vm.DetachCurrentThread(); err != nil {
			Logger().Warn("detach current thread", zap.Error(err))
		} else {
			Logger().Debug("thread detached")
		}
	}
	runtime.UnlockOSThread()
}

// Attached reports whether this acquisition attached the thread.
func (e *Env) Attached() bool { return e.detach }

// Raw returns the backend Env. It is valid until Release and only on the
// acquiring goroutine.
func (e *Env) Raw() engine.Env { return e.env }

// JVM returns the VM the Env belongs to.
func (e *Env) JVM() *JVM { return e.jvm }

// WithEnv runs fn with the calling thread attached.
func (j *JVM) WithEnv(fn func(*Env) error, opts ...AttachOption) error {
	env, err := j.Attach(opts...)
	if err != nil {
		return err
	}
	defer env.Release()
	return fn(env)
}
