// Package errors provides structured error types for the jvm-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the class, member and type signature involved, so a failed
// lookup reads like the JVM's own diagnostics.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindNotFound).
//		Class("java/io/File").
//		Member("exists").
//		Signature("()Z").
//		Detail("no such method").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseResolve, "method", "java/io/File", "exists", "()Z")
//	err := errors.Exception("java.lang.IllegalStateException: closed")
//
// All errors implement the standard error interface and support errors.Is/As.
// The kind-only sentinels (ErrNotFound, ErrException, ...) match an error of that
// kind regardless of phase.
package errors
