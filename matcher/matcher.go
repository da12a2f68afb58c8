// Package matcher provides a compiled regular expression whose search-time
// scratch space comes from a pool owned by each Matcher value.
//
// Compilation produces an immutable program: the Thompson NFA, an optional
// Aho-Corasick literal prefilter and the lazy DFA configuration. Clone is
// O(1): the copy points at the same program and starts with a brand-new,
// empty scratch pool. Giving every goroutine its own clone removes all
// contention on scratch space; sharing one Matcher makes those goroutines
// compete for a single pool.
//
// Basic usage:
//
//	m, err := matcher.Compile(`\d+`, matcher.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := 0; i < workers; i++ {
//	    m := m.Clone() // private pool for this goroutine
//	    go func() {
//	        _ = m.IsMatch(haystack)
//	    }()
//	}
package matcher

import (
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/coregex/dfa/lazy"
	"github.com/coregx/coregex/nfa"
	"github.com/coregx/poolbench/pool"
)

// program is the compiled, read-only part of a Matcher. It is shared by all
// clones.
type program struct {
	pattern   string
	config    Config
	nfa       *nfa.NFA
	dfaConfig lazy.Config

	// literals is nil unless the pattern is a plain literal set.
	literals *ahocorasick.Automaton
}

// Matcher is a compiled regular expression.
//
// IsMatch is safe for concurrent use. All concurrent callers of one Matcher
// draw scratch space from the same pool.
type Matcher struct {
	prog *program
	pool pool.Cache[*scratch]
}

// Compile parses pattern (Perl syntax, as accepted by regexp/syntax) and
// compiles it with config.
//
// Returns a *ConfigError for an invalid config and a *CompileError when the
// pattern is malformed or its NFA has more than config.NFASizeLimit states.
func Compile(pattern string, config Config) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	flags := syntax.Perl
	if !config.Unicode {
		flags &^= syntax.UnicodeGroups
	}
	if config.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	re = foldLiterals(re)

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		UTF8:              config.Unicode,
		MaxRecursionDepth: config.MaxRecursionDepth,
	})
	n, err := compiler.CompileRegexp(re)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	if n.States() > config.NFASizeLimit {
		return nil, &CompileError{Pattern: pattern, Err: ErrSizeLimit}
	}

	prog := &program{
		pattern: pattern,
		config:  config,
		nfa:     n,
		dfaConfig: lazy.DefaultConfig().
			WithMaxStates(config.MaxDFAStates).
			WithPrefilter(false),
	}
	if config.EnablePrefilter {
		prog.literals = buildPrefilter(re)
	}
	return prog.newMatcher(), nil
}

// MustCompile is like Compile with DefaultConfig but panics if the pattern
// cannot be compiled.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern, DefaultConfig())
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return m
}

func (p *program) newMatcher() *Matcher {
	create := func() *scratch {
		return newScratch(p)
	}
	m := &Matcher{prog: p}
	switch p.config.Pool {
	case PoolSync:
		m.pool = pool.NewSync(create)
	default:
		m.pool = pool.New(create)
	}
	return m
}

// Clone returns a Matcher that shares m's compiled program and owns a new,
// empty scratch pool. Nothing is recompiled.
func (m *Matcher) Clone() *Matcher {
	return m.prog.newMatcher()
}

// IsMatch reports whether haystack contains any match of the pattern.
func (m *Matcher) IsMatch(haystack []byte) bool {
	if m.prog.literals != nil && !m.prog.literals.IsMatch(haystack) {
		return false
	}
	g := m.pool.Get()
	matched := g.Value().isMatch(haystack)
	m.pool.Put(g)
	return matched
}

// MatchString reports whether s contains any match of the pattern.
func (m *Matcher) MatchString(s string) bool {
	return m.IsMatch([]byte(s))
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.prog.pattern
}

// Config returns the configuration the pattern was compiled with.
func (m *Matcher) Config() Config {
	return m.prog.config
}

// NumStates returns the number of states in the compiled NFA.
func (m *Matcher) NumStates() int {
	return m.prog.nfa.States()
}
