// Package engine defines the contract between the bridge and a JVM
// implementation.
//
// The contract is deliberately JNI-shaped. A VM hands out one Env per attached
// OS thread, and an Env exposes the primitive operations the bridge needs:
//
//	VM   - GetEnv, AttachCurrentThread, DetachCurrentThread
//	Env  - class and member lookup, object construction, typed calls,
//	       static field reads, reference management, strings, exceptions
//
// Env operations do not return errors. As with JNI, a failing operation
// returns a zero result and leaves an exception pending; callers are expected
// to consult ExceptionCheck after every call. Package jvm does exactly that.
//
// # Backends
//
// A Backend creates VMs. Backends register themselves by name:
//
//	engine.Register("jni", jni.Backend())
//
//	b, err := engine.Default()
//	vm, err := b.Create([]string{"-Xrs"}, engine.V1_6)
//
// Default prefers the cgo JNI backend (package engine/jni, built with
// -tags jni) and falls back to the only other registered backend.
//
// # Threads
//
// Env values are bound to the OS thread they were obtained on. Callers must
// keep the goroutine locked to its thread (runtime.LockOSThread) for as long
// as they use an Env.
package engine
