package match

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/rule"
	"github.com/tresoldi/alteruphono/syllable"
)

// Matcher evaluates patterns over one feature system. Syllables may be
// nil when no pattern conditions on syllable position; Prior carries
// the ante bindings while a context pattern is being matched, so that
// back-references inside the context can resolve.
type Matcher struct {
	System    *feature.System
	Syllables syllable.Map
	Prior     []alteruphono.Element
}

// Result is the outcome of a match. Bindings is positional over the
// pattern: consuming tokens bind the element they consumed (a
// quantified token binds its first element), zero-width and negated
// tokens bind nil. SetChoices records, per correspondence set in
// pattern order, the index of the alternative that matched.
type Result struct {
	Matched    bool
	Bindings   []alteruphono.Element
	Span       int
	SetChoices []int
}

// NoMatch is the failed result.
var NoMatch = Result{}

// Match attempts the pattern against seq starting at offset.
func (m *Matcher) Match(seq alteruphono.Sequence, pattern []rule.Token, offset int) Result {
	if offset < 0 || offset > len(seq) {
		return NoMatch
	}
	st := &state{
		seq:        seq,
		pattern:    pattern,
		bindings:   make([]alteruphono.Element, len(pattern)),
		setChoices: make([]int, countSets(pattern)),
		setOrdinal: setOrdinals(pattern),
	}
	end, ok := m.step(st, 0, offset)
	if !ok {
		return NoMatch
	}
	return Result{
		Matched:    true,
		Bindings:   st.bindings,
		Span:       end - offset,
		SetChoices: st.setChoices,
	}
}

type state struct {
	seq        alteruphono.Sequence
	pattern    []rule.Token
	bindings   []alteruphono.Element
	setChoices []int
	setOrdinal map[int]int // pattern index → ordinal among SetToks
}

func countSets(pattern []rule.Token) int {
	n := 0
	for _, tok := range pattern {
		if _, ok := tok.(rule.SetTok); ok {
			n++
		}
	}
	return n
}

func setOrdinals(pattern []rule.Token) map[int]int {
	ordinals := make(map[int]int)
	n := 0
	for i, tok := range pattern {
		if _, ok := tok.(rule.SetTok); ok {
			ordinals[i] = n
			n++
		}
	}
	return ordinals
}

// step matches pattern[pi:] against seq[pos:], returning the end
// position on success. Bindings are written on the way down and cleared
// on backtrack.
func (m *Matcher) step(st *state, pi, pos int) (int, bool) {
	if pi == len(st.pattern) {
		return pos, true
	}
	switch tok := st.pattern[pi].(type) {

	case rule.SegmentTok, rule.BoundaryTok:
		if m.matchesAt(st, st.pattern[pi], pos) {
			st.bindings[pi] = st.seq[pos]
			if end, ok := m.step(st, pi+1, pos+1); ok {
				return end, true
			}
			st.bindings[pi] = nil
		}
		return 0, false

	case rule.BackRefTok:
		want, ok := m.resolveBackRef(st, tok)
		if ok && m.soundAt(st, pos, want) {
			st.bindings[pi] = st.seq[pos]
			if end, ok := m.step(st, pi+1, pos+1); ok {
				return end, true
			}
			st.bindings[pi] = nil
		}
		return 0, false

	case rule.FocusTok, rule.EmptyTok:
		// Zero-width anchors.
		return m.step(st, pi+1, pos)

	case rule.SyllableCondTok:
		if m.syllableHolds(tok.Position, pos) {
			return m.step(st, pi+1, pos)
		}
		return 0, false

	case rule.NegationTok:
		if pos < len(st.seq) && !m.matchesAt(st, tok.Inner, pos) {
			return m.step(st, pi+1, pos+1)
		}
		return 0, false

	case rule.ChoiceTok:
		return m.stepAlternatives(st, pi, pos, tok.Choices, -1)

	case rule.SetTok:
		return m.stepAlternatives(st, pi, pos, tok.Choices, st.setOrdinal[pi])

	case rule.QuantifiedTok:
		switch tok.Quant {
		case '?':
			// Zero-width reading first.
			st.bindings[pi] = nil
			if end, ok := m.step(st, pi+1, pos); ok {
				return end, true
			}
			if m.matchesAt(st, tok.Inner, pos) {
				st.bindings[pi] = st.seq[pos]
				if end, ok := m.step(st, pi+1, pos+1); ok {
					return end, true
				}
				st.bindings[pi] = nil
			}
			return 0, false
		default: // '+'
			// Greedy: consume as much as possible, retreat one at a
			// time until the remainder succeeds.
			max := 0
			for pos+max < len(st.seq) && m.matchesAt(st, tok.Inner, pos+max) {
				max++
			}
			for n := max; n >= 1; n-- {
				st.bindings[pi] = st.seq[pos]
				if end, ok := m.step(st, pi+1, pos+n); ok {
					return end, true
				}
			}
			st.bindings[pi] = nil
			return 0, false
		}
	}
	tracer().Errorf("unhandled pattern token %T", st.pattern[pi])
	return 0, false
}

// stepAlternatives tries the alternatives of a choice or set in order.
// setIdx is -1 for plain choices, otherwise the ordinal under which the
// matching alternative index is recorded.
func (m *Matcher) stepAlternatives(st *state, pi, pos int, choices []rule.Token, setIdx int) (int, bool) {
	for alt, choice := range choices {
		width := 1
		if _, empty := choice.(rule.EmptyTok); empty {
			width = 0
		} else if !m.matchesAt(st, choice, pos) {
			continue
		}
		if width == 1 {
			st.bindings[pi] = st.seq[pos]
		}
		if setIdx >= 0 {
			st.setChoices[setIdx] = alt
		}
		if end, ok := m.step(st, pi+1, pos+width); ok {
			return end, true
		}
		st.bindings[pi] = nil
	}
	return 0, false
}

// matchesAt evaluates a single-element token (segment, boundary,
// back-reference, negation, or choice over those) against the element
// at pos, consuming exactly one element when it holds.
func (m *Matcher) matchesAt(st *state, tok rule.Token, pos int) bool {
	if pos >= len(st.seq) {
		return false
	}
	switch t := tok.(type) {
	case rule.SegmentTok:
		return m.soundAt(st, pos, t.Sound)
	case rule.BoundaryTok:
		b, ok := st.seq[pos].(alteruphono.Boundary)
		return ok && b.Marker == t.Marker
	case rule.BackRefTok:
		want, ok := m.resolveBackRef(st, t)
		return ok && m.soundAt(st, pos, want)
	case rule.NegationTok:
		// Single-element by construction: the inner attempt sees only
		// the element at pos.
		return !m.matchesAt(st, t.Inner, pos)
	case rule.ChoiceTok:
		for _, choice := range t.Choices {
			if m.matchesAt(st, choice, pos) {
				return true
			}
		}
		return false
	}
	return false
}

// soundAt checks a sound pattern against the element at pos: partial
// sounds by feature subsumption, concrete sounds by equality. Unknown
// graphemes carry empty feature sets and compare by grapheme, so they
// can never satisfy a class-partial pattern.
func (m *Matcher) soundAt(st *state, pos int, want alteruphono.Sound) bool {
	el, ok := st.seq[pos].(alteruphono.Sound)
	if !ok {
		return false
	}
	if want.Partial {
		return m.System.PartialMatch(want.Features, el.Features)
	}
	if want.Features.Empty() && el.Features.Empty() {
		return want.Grapheme == el.Grapheme
	}
	return want.Features.Equal(el.Features)
}

// resolveBackRef produces the concrete sound a back-reference stands
// for: the bound ante element, transformed by the reference's
// modifiers. While a context pattern is matched, ante bindings arrive
// through Prior; inside ante itself, earlier bindings of the running
// match are used.
func (m *Matcher) resolveBackRef(st *state, t rule.BackRefTok) (alteruphono.Sound, bool) {
	var bound alteruphono.Element
	if m.Prior != nil {
		if t.Index < len(m.Prior) {
			bound = m.Prior[t.Index]
		}
	} else if t.Index < len(st.bindings) {
		bound = st.bindings[t.Index]
	}
	sound, ok := bound.(alteruphono.Sound)
	if !ok {
		return alteruphono.Sound{}, false
	}
	if len(t.Mods) == 0 {
		return sound, true
	}
	features := m.System.ApplyModifiers(sound.Features, t.Mods)
	return alteruphono.Sound{
		Grapheme: m.System.FeaturesToGrapheme(features),
		Features: features,
	}, true
}

// syllableHolds checks a syllable condition at the focus position. For
// the onset role the condition holds at onset-initial positions only,
// so that in a branching onset the condition singles out the outermost
// segment.
func (m *Matcher) syllableHolds(role syllable.Role, pos int) bool {
	if m.Syllables == nil {
		return false
	}
	switch role {
	case syllable.Onset:
		return m.Syllables.OnsetInitial(pos)
	default:
		return m.Syllables.At(pos) == role
	}
}
