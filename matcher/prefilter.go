package matcher

import (
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
)

// maxPrefilterLiterals bounds the automaton built for a literal alternation.
const maxPrefilterLiterals = 256

// literalSet returns the literals of a pattern that is exactly a literal or
// an alternation of literals, or nil when the pattern is anything else.
// Case-folded and empty literals disqualify the pattern.
func literalSet(re *syntax.Regexp) [][]byte {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 || len(re.Rune) == 0 {
			return nil
		}
		return [][]byte{[]byte(string(re.Rune))}
	case syntax.OpCapture:
		return literalSet(re.Sub[0])
	case syntax.OpAlternate:
		var lits [][]byte
		for _, sub := range re.Sub {
			l := literalSet(sub)
			if l == nil {
				return nil
			}
			lits = append(lits, l...)
			if len(lits) > maxPrefilterLiterals {
				return nil
			}
		}
		return lits
	}
	return nil
}

// buildPrefilter returns an automaton that matches a haystack iff re does,
// or nil if re is not a plain literal set.
func buildPrefilter(re *syntax.Regexp) *ahocorasick.Automaton {
	lits := literalSet(re)
	if len(lits) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}
