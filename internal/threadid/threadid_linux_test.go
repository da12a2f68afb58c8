//go:build linux

package threadid

import (
	"runtime"
	"testing"
)

// TestLockedGoroutinesRunOnDistinctThreads verifies that goroutines locked
// to OS threads at the same time report different thread ids.
func TestLockedGoroutinesRunOnDistinctThreads(t *testing.T) {
	const workers = 4

	ids := make(chan int, workers)
	release := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			ids <- Get()
			<-release
		}()
	}

	seen := make(map[int]bool)
	for i := 0; i < workers; i++ {
		id := <-ids
		if id <= 0 {
			t.Errorf("Get() = %d, want a positive thread id", id)
		}
		if seen[id] {
			t.Errorf("thread id %d reported twice while all workers were locked", id)
		}
		seen[id] = true
	}
	close(release)
}
