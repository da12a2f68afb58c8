//go:build !linux

package threadid

// Get returns 0; thread ids are only reported on Linux.
func Get() int {
	return 0
}
