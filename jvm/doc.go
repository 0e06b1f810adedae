// Package jvm embeds a Java virtual machine and calls into it.
//
// # Lifecycle
//
// A process has at most one VM. It is created by Create or CreateFromConfig,
// adopted from a host with Inject, or created with default options by the
// first Get. There is no way back: the VM lives until the process exits.
//
//	j, err := jvm.Create([]string{"-Xrs", "-Dapp.mode=batch"}, engine.V1_8, true)
//
// # Threads
//
// Every call into the VM needs the calling OS thread to be attached. The
// package attaches on demand and detaches again, so most code never sees it.
// Code that makes many calls can hold an attachment with Attach or WithEnv;
// nested acquisitions reuse it.
//
// # Lookups
//
// Members are described with the descriptor package and resolved once:
//
//	file := descriptor.Named("java/io/File")
//	ctor, err := j.FindConstructor(file.Constructor().Parameter(descriptor.String))
//	exists, err := j.FindMethod(file.Method("exists").Returns(descriptor.Boolean))
//
// Handles are cached per JVM by class, name and signature, and concurrent
// first lookups of one member share a single resolution. LazyConstructor,
// LazyMethod and StaticVariable are package-level forms that resolve on
// first use.
//
// # Calls
//
// Arguments are value.Value and are checked against the resolved signature;
// a wrong count or kind is an ErrArgumentMismatch error, not a crash.
// Results are typed with Call, CallStatic and StaticField:
//
//	path, err := j.String(dir)
//	defer path.Release()
//	f, err := j.Invoke(ctor, path.Value())
//	defer f.Release()
//	ok, err := jvm.Call[bool](j, f, exists)
//
// # Exceptions
//
// After every call a pending Java exception is cleared. With exceptions
// enabled it is returned as an ErrException error carrying
// Throwable.toString(). Otherwise it is logged at warn level and the call
// returns a zero value: false, 0, "" or a null Object.
//
// # References
//
// An Object owns a global reference and must be released. Results of type
// *Object are owned by the caller; local references never escape the
// package.
package jvm
