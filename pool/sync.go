package pool

import "sync"

// SyncPool implements Cache on top of sync.Pool.
//
// sync.Pool keeps per-P caches, so goroutines sharing a SyncPool rarely
// contend with each other. Values may be dropped by the garbage collector at
// any time and recreated by create.
type SyncPool[T any] struct {
	pool sync.Pool
}

// NewSync creates a SyncPool that calls create on a miss.
func NewSync[T any](create func() T) *SyncPool[T] {
	p := &SyncPool[T]{}
	p.pool.New = func() any {
		return create()
	}
	return p
}

// Get checks a value out of the pool. The returned guard never reports
// IsOwner.
func (p *SyncPool[T]) Get() Guard[T] {
	return Guard[T]{value: p.pool.Get().(T)}
}

// Put returns a value obtained from Get.
func (p *SyncPool[T]) Put(g Guard[T]) {
	p.pool.Put(g.value)
}
