//go:build linux

package threadid

import "golang.org/x/sys/unix"

// Get returns the kernel thread id of the calling thread.
func Get() int {
	return unix.Gettid()
}
