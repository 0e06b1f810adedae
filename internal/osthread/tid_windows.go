//go:build windows

package osthread

import "golang.org/x/sys/windows"

// ID returns the Win32 thread ID of the calling thread.
func ID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
