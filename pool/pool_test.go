package pool

import (
	"sync"
	"sync/atomic"
	"testing"
)

type buf struct {
	id   int64
	used atomic.Int32
}

func counter() (func() *buf, *atomic.Int64) {
	var n atomic.Int64
	return func() *buf {
		return &buf{id: n.Add(1)}
	}, &n
}

// TestPoolOwnerFastPath verifies a single caller always gets the owner value
// and never allocates a second one.
func TestPoolOwnerFastPath(t *testing.T) {
	create, created := counter()
	p := New(create)

	first := p.Get()
	if !first.IsOwner() {
		t.Fatal("first Get should take the owner slot")
	}
	p.Put(first)

	for i := 0; i < 1000; i++ {
		g := p.Get()
		if !g.IsOwner() {
			t.Fatalf("iteration %d: expected owner fast path", i)
		}
		if g.Value() != first.Value() {
			t.Fatalf("iteration %d: got value %d, want owner value %d", i, g.Value().id, first.Value().id)
		}
		p.Put(g)
	}

	if created.Load() != 1 {
		t.Errorf("created %d values, want 1", created.Load())
	}
	if p.Cached() != 0 {
		t.Errorf("Cached() = %d, want 0", p.Cached())
	}
}

// TestPoolSlowPathWhileOwnerBusy verifies callers fall back to the stack
// while the owner value is checked out.
func TestPoolSlowPathWhileOwnerBusy(t *testing.T) {
	create, created := counter()
	p := New(create)

	owner := p.Get()
	a := p.Get()
	b := p.Get()

	if a.IsOwner() || b.IsOwner() {
		t.Fatal("only one guard may hold the owner slot")
	}
	if a.Value() == b.Value() || a.Value() == owner.Value() {
		t.Fatal("concurrently held guards must not share a value")
	}
	if created.Load() != 3 {
		t.Errorf("created %d values, want 3", created.Load())
	}

	p.Put(a)
	p.Put(b)
	if p.Cached() != 2 {
		t.Errorf("Cached() = %d, want 2", p.Cached())
	}

	// Stack is LIFO.
	c := p.Get()
	if c.Value() != b.Value() {
		t.Errorf("got value %d, want most recently returned %d", c.Value().id, b.Value().id)
	}
	p.Put(c)
	p.Put(owner)

	if created.Load() != 3 {
		t.Errorf("reuse should not allocate: created %d values, want 3", created.Load())
	}
}

// TestPoolConcurrentExclusive checks that no value is ever used by two
// goroutines at the same time.
func TestPoolConcurrentExclusive(t *testing.T) {
	create, created := counter()
	p := New(create)

	const goroutines = 32
	const iterations = 2000

	var wg sync.WaitGroup
	var violations atomic.Int64
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				g := p.Get()
				if g.Value().used.Add(1) != 1 {
					violations.Add(1)
				}
				g.Value().used.Add(-1)
				p.Put(g)
			}
		}()
	}
	wg.Wait()

	if violations.Load() != 0 {
		t.Errorf("%d values were shared between goroutines", violations.Load())
	}
	if n := created.Load(); n < 1 || n > goroutines {
		t.Errorf("created %d values, want between 1 and %d", n, goroutines)
	}
	if got := int64(p.Cached()) + 1; got != created.Load() {
		t.Errorf("pool holds %d values after quiescence, want %d", got, created.Load())
	}
}

// TestSyncPool exercises the sync.Pool backed Cache.
func TestSyncPool(t *testing.T) {
	create, created := counter()
	var c Cache[*buf] = NewSync(create)

	g := c.Get()
	if g.IsOwner() {
		t.Error("SyncPool guards never hold an owner slot")
	}
	if g.Value() == nil {
		t.Fatal("Get returned nil value")
	}
	c.Put(g)

	if created.Load() < 1 {
		t.Errorf("created %d values, want at least 1", created.Load())
	}
}

func BenchmarkPoolOwner(b *testing.B) {
	create, _ := counter()
	p := New(create)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Put(p.Get())
	}
}

func BenchmarkPoolShared(b *testing.B) {
	create, _ := counter()
	p := New(create)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			p.Put(p.Get())
		}
	})
}

func BenchmarkSyncPoolShared(b *testing.B) {
	create, _ := counter()
	p := NewSync(create)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			p.Put(p.Get())
		}
	})
}
