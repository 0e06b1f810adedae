//go:build linux

package osthread

import "golang.org/x/sys/unix"

// ID returns the kernel thread ID of the calling thread.
func ID() uint64 {
	return uint64(unix.Gettid())
}
