package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"fmt"
	"strings"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/syllable"
)

// Token is one element of a rule pattern. The sum is closed: exactly
// the types in this file implement it, and consumers dispatch
// exhaustively over them.
type Token interface {
	fmt.Stringer
	isToken()
}

// SegmentTok matches (or emits) a single segment. A partial sound
// stands for a sound class and matches by feature subsumption; a
// concrete sound matches by equality.
type SegmentTok struct {
	Sound alteruphono.Sound
}

func (t SegmentTok) isToken() {}

func (t SegmentTok) String() string { return t.Sound.Grapheme }

// BoundaryTok matches a word/morpheme boundary.
type BoundaryTok struct {
	Marker string
}

func (t BoundaryTok) isToken() {}

func (t BoundaryTok) String() string { return t.Marker }

// FocusTok marks the position "_" inside a context.
type FocusTok struct{}

func (t FocusTok) isToken() {}

func (t FocusTok) String() string { return "_" }

// EmptyTok is the ":null:" token: the deletion target in post, a
// zero-width position in ante.
type EmptyTok struct{}

func (t EmptyTok) isToken() {}

func (t EmptyTok) String() string { return ":null:" }

// BackRefTok refers to the element bound by the Index-th ante token
// (0-based), optionally transformed by feature modifiers.
type BackRefTok struct {
	Index int
	Mods  []feature.Modifier
}

func (t BackRefTok) isToken() {}

func (t BackRefTok) String() string {
	return fmt.Sprintf("@%d%s", t.Index+1, feature.FormatModifiers(t.Mods))
}

// ChoiceTok matches any one of its alternatives. Alternatives are
// primitive tokens.
type ChoiceTok struct {
	Choices []Token
}

func (t ChoiceTok) isToken() {}

func (t ChoiceTok) String() string { return joinChoices(t.Choices) }

// SetTok is a correspondence set: like a choice in ante, but paired by
// position with a SetTok in post, which emits the alternative at the
// index that matched.
type SetTok struct {
	Choices []Token
}

func (t SetTok) isToken() {}

func (t SetTok) String() string { return "{" + joinChoices(t.Choices) + "}" }

// QuantifiedTok wraps a primitive token with "+" (one or more, greedy)
// or "?" (zero or one, zero tried first).
type QuantifiedTok struct {
	Inner Token
	Quant rune // '+' or '?'
}

func (t QuantifiedTok) isToken() {}

func (t QuantifiedTok) String() string { return t.Inner.String() + string(t.Quant) }

// NegationTok consumes one element that does not match its inner token.
type NegationTok struct {
	Inner Token
}

func (t NegationTok) isToken() {}

func (t NegationTok) String() string { return "!" + t.Inner.String() }

// SyllableCondTok gates the focus position on a syllable role. It
// consumes no input.
type SyllableCondTok struct {
	Position syllable.Role
}

func (t SyllableCondTok) isToken() {}

func (t SyllableCondTok) String() string {
	return "." + strings.ToLower(t.Position.String())
}

func joinChoices(choices []Token) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = c.String()
	}
	return strings.Join(parts, "|")
}

// Tokens renders a token list the way it appears in rule source.
func Tokens(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		// A syllable condition is written fused onto the focus that
		// follows it ("_.onset").
		if cond, ok := tok.(SyllableCondTok); ok {
			if i+1 < len(tokens) {
				if _, focus := tokens[i+1].(FocusTok); focus {
					continue // rendered by the focus below
				}
			}
			parts = append(parts, cond.String())
			continue
		}
		if _, ok := tok.(FocusTok); ok && i > 0 {
			if cond, fused := tokens[i-1].(SyllableCondTok); fused {
				parts = append(parts, "_"+cond.String())
				continue
			}
		}
		parts = append(parts, tok.String())
	}
	return strings.Join(parts, " ")
}
