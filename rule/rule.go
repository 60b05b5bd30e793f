package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"github.com/tresoldi/alteruphono/feature"
)

// Rule is a parsed sound-change rule. Source preserves the original
// (whitespace-normalized) text for diagnostics and inversion. Context
// is nil for context-free rules; when present it contains exactly one
// FocusTok partitioning it into left and right environment.
//
// Rules are immutable; the Applier and Matcher only ever read them.
type Rule struct {
	Source  string
	Ante    []Token
	Post    []Token
	Context []Token
}

// HasContext reports whether the rule carries an environment.
func (r *Rule) HasContext() bool {
	return len(r.Context) > 0
}

// SplitContext partitions the context at its focus into the left and
// right environment patterns. The focus itself belongs to neither side;
// a syllable condition fused onto the focus stays at the end of the
// left pattern, where it gates the focus position.
func (r *Rule) SplitContext() (left, right []Token) {
	for i, tok := range r.Context {
		if _, ok := tok.(FocusTok); ok {
			return r.Context[:i], r.Context[i+1:]
		}
	}
	return r.Context, nil
}

// NeedsSyllables reports whether any context token conditions on
// syllable position, in which case appliers must hand the matcher a
// syllable map.
func (r *Rule) NeedsSyllables() bool {
	for _, tok := range r.Context {
		if _, ok := tok.(SyllableCondTok); ok {
			return true
		}
	}
	return false
}

// Invert returns the reverse rule: post rewrites to ante in the same
// context, with back-reference modifiers flipped. Correspondence sets
// swap sides pairwise, deletions become insertions. The result carries
// a regenerated Source.
func Invert(r *Rule) *Rule {
	invertSide := func(tokens []Token) []Token {
		out := make([]Token, len(tokens))
		for i, tok := range tokens {
			if br, ok := tok.(BackRefTok); ok {
				out[i] = BackRefTok{Index: br.Index, Mods: feature.InvertModifiers(br.Mods)}
				continue
			}
			out[i] = tok
		}
		return out
	}
	inv := &Rule{
		Ante:    invertSide(r.Post),
		Post:    invertSide(r.Ante),
		Context: r.Context,
	}
	source := Tokens(inv.Ante) + " > " + Tokens(inv.Post)
	if inv.HasContext() {
		source += " / " + Tokens(inv.Context)
	}
	inv.Source = source
	return inv
}
