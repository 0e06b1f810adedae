// Package osthread identifies the calling OS thread.
//
// Attachment to a VM is per OS thread, not per goroutine. Callers must hold
// runtime.LockOSThread while the returned ID is meaningful.
package osthread
