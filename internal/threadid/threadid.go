// Package threadid reports the operating system thread running the caller.
//
// The value is only stable while the calling goroutine is locked to its
// thread with runtime.LockOSThread.
package threadid
