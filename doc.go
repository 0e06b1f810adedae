// Package jvmbridge lets Go code embed a Java virtual machine and call into
// it through typed, cached member handles.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jvmbridge/           Root package (documentation only)
//	├── jvm/             Singleton VM, thread attachment, lookups, calls, Object
//	├── descriptor/      Class descriptors, constructor and method finders
//	├── value/           Tagged argument and result values
//	├── engine/          Backend contract: VM, Env, versions, registry
//	│   └── jni/         cgo backend over the JNI invocation API (-tags jni)
//	├── jvmtest/         In-memory VM for tests and dry runs
//	├── resource/        Reference handle table
//	├── errors/          Structured error types for debugging
//	├── java/            Wrappers for java.lang, java.io and java.net classes
//	└── cmd/jvmrun/      Smoke test, static calls and an interactive explorer
//
// # Quick Start
//
// Create the VM once, resolve handles, call:
//
//	j, err := jvm.Create([]string{"-Xrs"}, engine.V1_6, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	file := descriptor.Named("java/io/File")
//	ctor, err := j.FindConstructor(file.Constructor().Parameter(descriptor.String))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	exists, err := j.FindMethod(file.Method("exists").Returns(descriptor.Boolean))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path, _ := j.String("/tmp")
//	defer path.Release()
//	f, err := j.Invoke(ctor, path.Value())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Release()
//
//	ok, err := jvm.Call[bool](j, f, exists)
//	fmt.Println(ok) // true
//
// # Backends
//
// The jni backend is compiled only with cgo and the jni build tag. Without
// it, the jvmtest backend runs a small in-memory class library with the same
// reference and exception semantics, which is what the tests use.
//
// # Thread Safety
//
// JVM and the resolved handles are safe for concurrent use. Every call
// attaches the calling OS thread for its duration unless the caller already
// holds an Env from JVM.Attach. An Object is not safe for concurrent use.
//
// # References
//
// Every Object owns one global reference and must be released. A cleanup
// deletes references of unreachable Objects, but that path logs and should
// be treated as a leak.
package jvmbridge
