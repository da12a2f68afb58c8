// Package pool caches reusable per-search scratch values.
//
// A Pool hands out one distinguished value, the owner value, through a slot
// guarded by a single atomic word. Whoever finds the slot free takes it
// without locking. While the owner value is out, every other caller pops
// from (and later pushes back to) a mutex-protected stack. A Pool used by one
// goroutine at a time therefore never touches its mutex, while a Pool shared
// by many concurrently searching goroutines takes the lock twice per search
// for all but one of them.
//
// The lock is held only for the push or pop itself. Creating a fresh value on
// a miss happens outside the lock.
//
// Usage pattern:
//
//	g := p.Get()
//	use(g.Value())
//	p.Put(g)
package pool

import (
	"sync"
	"sync/atomic"
)

// Owner slot states.
const (
	ownerUnset uint32 = iota // owner value not created yet
	ownerFree                // owner value created and available
	ownerBusy                // owner value handed out
)

// Cache is the Get/Put contract shared by Pool and SyncPool.
type Cache[T any] interface {
	Get() Guard[T]
	Put(g Guard[T])
}

// Guard is a value checked out of a Cache. It must be returned to the same
// Cache it came from, exactly once.
type Guard[T any] struct {
	value T
	owner bool
}

// Value returns the checked out value.
func (g Guard[T]) Value() T {
	return g.value
}

// IsOwner reports whether the value came through the owner fast path.
func (g Guard[T]) IsOwner() bool {
	return g.owner
}

// Pool is a thread-safe cache of values of type T.
//
// The zero value is not usable; create pools with New.
type Pool[T any] struct {
	create func() T

	// state is one of ownerUnset, ownerFree, ownerBusy.
	state atomic.Uint32
	// owner is written only by the goroutine that moved state from
	// ownerUnset to ownerBusy, and read only by goroutines that won the
	// ownerFree -> ownerBusy transition.
	owner T

	mu    sync.Mutex
	stack []T
}

// New creates an empty Pool. create is called, without any lock held,
// whenever a caller finds no cached value.
func New[T any](create func() T) *Pool[T] {
	return &Pool[T]{create: create}
}

// Get checks a value out of the pool.
func (p *Pool[T]) Get() Guard[T] {
	switch p.state.Load() {
	case ownerFree:
		if p.state.CompareAndSwap(ownerFree, ownerBusy) {
			return Guard[T]{value: p.owner, owner: true}
		}
	case ownerUnset:
		if p.state.CompareAndSwap(ownerUnset, ownerBusy) {
			p.owner = p.create()
			return Guard[T]{value: p.owner, owner: true}
		}
	}
	return p.getSlow()
}

func (p *Pool[T]) getSlow() Guard[T] {
	p.mu.Lock()
	if n := len(p.stack); n > 0 {
		v := p.stack[n-1]
		var zero T
		p.stack[n-1] = zero
		p.stack = p.stack[:n-1]
		p.mu.Unlock()
		return Guard[T]{value: v}
	}
	p.mu.Unlock()
	return Guard[T]{value: p.create()}
}

// Put returns a value obtained from Get.
func (p *Pool[T]) Put(g Guard[T]) {
	if g.owner {
		p.state.Store(ownerFree)
		return
	}
	p.mu.Lock()
	p.stack = append(p.stack, g.value)
	p.mu.Unlock()
}

// Cached returns the number of values waiting on the slow-path stack. The
// owner value is not counted.
func (p *Pool[T]) Cached() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stack)
}
