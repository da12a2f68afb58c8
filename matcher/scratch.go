package matcher

import (
	"github.com/coregx/coregex/dfa/lazy"
	"github.com/coregx/coregex/nfa"
)

// scratch holds the mutable state of one search. A scratch value is used by
// at most one goroutine at a time; the pool of the owning Matcher enforces
// that.
type scratch struct {
	prog *program

	// backtracker is used whenever its visited bitset fits the haystack.
	backtracker *nfa.BoundedBacktracker

	// dfa is built on the first haystack the backtracker cannot handle. It
	// stays nil when the lazy DFA is disabled or failed to build.
	dfa      *lazy.DFA
	dfaTried bool

	// pikevm is the fallback for everything else. Its queues are sized to
	// the NFA on creation.
	pikevm *nfa.PikeVM
}

// newScratch allocates search state for p. Only the compiled, immutable
// parts of p are read.
func newScratch(p *program) *scratch {
	return &scratch{
		prog:        p,
		backtracker: nfa.NewBoundedBacktracker(p.nfa),
		pikevm:      nfa.NewPikeVM(p.nfa),
	}
}

// isMatch runs the cheapest engine able to answer for haystack.
func (s *scratch) isMatch(haystack []byte) bool {
	if s.backtracker.CanHandle(len(haystack)) {
		return s.backtracker.IsMatch(haystack)
	}
	if d := s.lazyDFA(); d != nil {
		return d.IsMatch(haystack)
	}
	return s.pikevm.IsMatch(haystack)
}

// lazyDFA returns the DFA, building it on first use. A failed build is not
// retried.
func (s *scratch) lazyDFA() *lazy.DFA {
	if s.dfaTried {
		return s.dfa
	}
	s.dfaTried = true
	if !s.prog.config.EnableDFA {
		return nil
	}
	if d, err := lazy.CompileWithConfig(s.prog.nfa, s.prog.dfaConfig); err == nil {
		s.dfa = d
	}
	return s.dfa
}
