package matcher

import (
	"regexp/syntax"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/coregx/poolbench/pool"
)

// countingCache records how often the scratch pool is consulted.
type countingCache struct {
	pool.Cache[*scratch]
	gets atomic.Int64
}

func (c *countingCache) Get() pool.Guard[*scratch] {
	c.gets.Add(1)
	return c.Cache.Get()
}

// TestConcurrentSharedMatcher runs many goroutines against one Matcher and
// checks every call still sees the right answer.
func TestConcurrentSharedMatcher(t *testing.T) {
	patterns := []string{``, `Z[QZ]+`, `\d+`, `hello`}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			m := MustCompile(pattern)
			testConcurrent(t, func(int) *Matcher { return m })
		})
	}
}

// TestConcurrentClones gives every goroutine its own clone.
func TestConcurrentClones(t *testing.T) {
	m := MustCompile(`Z[QZ]+`)
	testConcurrent(t, func(int) *Matcher { return m.Clone() })
}

func testConcurrent(t *testing.T, matcherFor func(worker int) *Matcher) {
	t.Helper()

	inputs := []string{"ZQZQZQZQ", "hello 123", "nothing"}

	// Expected answers come from a separate, single-threaded clone.
	ref := matcherFor(-1).Clone()
	expected := make([]bool, len(inputs))
	for i, in := range inputs {
		expected[i] = ref.MatchString(in)
	}

	const numGoroutines = 32
	const numIterations = 500

	var wg sync.WaitGroup
	var mismatches atomic.Int64
	for g := 0; g < numGoroutines; g++ {
		m := matcherFor(g)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				for i, in := range inputs {
					if m.MatchString(in) != expected[i] {
						mismatches.Add(1)
					}
				}
			}
		}()
	}
	wg.Wait()

	if mismatches.Load() != 0 {
		t.Errorf("%d concurrent results differed from the single-threaded answer", mismatches.Load())
	}
}

// TestPrefilterSkipsPool verifies a haystack rejected by the literal
// prefilter never checks out scratch space.
func TestPrefilterSkipsPool(t *testing.T) {
	m := MustCompile(`foo|bar|qux`)
	if m.prog.literals == nil {
		t.Fatal("literal alternation should build a prefilter")
	}
	counting := &countingCache{Cache: m.pool}
	m.pool = counting

	if m.MatchString("nothing to see") {
		t.Error("unexpected match")
	}
	if counting.gets.Load() != 0 {
		t.Errorf("rejected haystack consulted the pool %d times", counting.gets.Load())
	}

	if !m.MatchString("xx bar xx") {
		t.Error("expected match")
	}
	if counting.gets.Load() != 1 {
		t.Errorf("candidate haystack consulted the pool %d times, want 1", counting.gets.Load())
	}
}

func TestLiteralSet(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`hello`, 1},
		{`foo|bar|qux`, 3},
		{`(needle)`, 1},
		{``, 0},
		{`a+`, 0},
		{`(?i)hello`, 0},
		{`foo|b.r`, 0},
	}

	for _, tt := range tests {
		re, err := syntax.Parse(tt.pattern, syntax.Perl)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.pattern, err)
		}
		if got := len(literalSet(foldLiterals(re))); got != tt.want {
			t.Errorf("%q: %d literals, want %d", tt.pattern, got, tt.want)
		}
		m := MustCompile(tt.pattern)
		if (m.prog.literals != nil) != (tt.want > 0) {
			t.Errorf("%q: prefilter built = %v, want %v", tt.pattern, m.prog.literals != nil, tt.want > 0)
		}
	}
}
