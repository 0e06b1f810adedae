//go:build !linux && !windows

package osthread

import (
	"bytes"
	"runtime"
	"strconv"
)

// ID returns the calling goroutine's ID. With the goroutine locked to its
// thread this is as stable as the thread itself.
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(field, ' '); i >= 0 {
		field = field[:i]
	}
	id, _ := strconv.ParseUint(string(field), 10, 64)
	return id
}
