package osthread

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID_StableWhileLocked(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	first := ID()
	assert.NotZero(t, first)
	for i := 0; i < 10; i++ {
		runtime.Gosched()
		assert.Equal(t, first, ID())
	}
}

func TestID_DistinctAcrossLockedThreads(t *testing.T) {
	const n = 4
	ids := make([]uint64, n)
	release := make(chan struct{})

	var ready, done sync.WaitGroup
	ready.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			ids[i] = ID()
			ready.Done()
			<-release
		}(i)
	}
	ready.Wait()
	close(release)
	done.Wait()

	seen := make(map[uint64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate thread id %d", id)
		seen[id] = true
	}
}
