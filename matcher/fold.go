package matcher

import (
	"regexp/syntax"
	"slices"
	"unicode"
)

// foldLiterals rewrites case-folded literals in re into explicit character
// classes, one per rune, so the NFA compiler only ever sees exact bytes.
// re is modified in place; the returned node replaces it.
func foldLiterals(re *syntax.Regexp) *syntax.Regexp {
	for i, sub := range re.Sub {
		re.Sub[i] = foldLiterals(sub)
	}
	if re.Op != syntax.OpLiteral || re.Flags&syntax.FoldCase == 0 {
		return re
	}

	subs := make([]*syntax.Regexp, 0, len(re.Rune))
	for _, r := range re.Rune {
		var class []rune
		for f := r; ; {
			class = append(class, f, f)
			f = unicode.SimpleFold(f)
			if f == r {
				break
			}
		}
		slices.Sort(class)
		subs = append(subs, &syntax.Regexp{
			Op:    syntax.OpCharClass,
			Flags: re.Flags &^ syntax.FoldCase,
			Rune:  class,
		})
	}
	if len(subs) == 1 {
		return subs[0]
	}
	return &syntax.Regexp{Op: syntax.OpConcat, Flags: re.Flags &^ syntax.FoldCase, Sub: subs}
}
