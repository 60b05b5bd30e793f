package apply

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/match"
	"github.com/tresoldi/alteruphono/rule"
	"github.com/tresoldi/alteruphono/syllable"
)

// Forward applies a rule left to right over a sequence, splicing the
// replacement in at every position where ante and context hold. The
// pass is single and non-iterative: replacements are never re-matched.
func Forward(seq alteruphono.Sequence, r *rule.Rule, sys *feature.System) alteruphono.Sequence {
	return scan(seq, r, sys, func() bool { return true })
}

// scan is the shared forward pass; decide is consulted once per
// licensed site, so that gradient application can veto single sites.
func scan(seq alteruphono.Sequence, r *rule.Rule, sys *feature.System, decide func() bool) alteruphono.Sequence {
	var smap syllable.Map
	if r.NeedsSyllables() {
		smap = syllable.Syllabify(seq, syllable.DefaultOptions())
	}
	m := &match.Matcher{System: sys, Syllables: smap}

	out := make(alteruphono.Sequence, 0, len(seq))
	p := 0
	for p < len(seq) {
		res := m.Match(seq, r.Ante, p)
		if !res.Matched || !contextHolds(seq, r, res.Bindings, p, res.Span, sys, smap) || !decide() {
			out = append(out, seq[p])
			p++
			continue
		}
		out = append(out, replacement(r, res, sys)...)
		if res.Span == 0 {
			// Zero-width (insertion) match: carry the anchoring element
			// over so the scan advances.
			out = append(out, seq[p])
			p++
			continue
		}
		p += res.Span
	}
	return out
}

// contextHolds verifies the environment of a rule around an ante match
// at position p with the given span. The focus aligns with the start of
// the match: the left pattern must end exactly at p, the right pattern
// must hold from p+span on. Back-references inside the context resolve
// against the ante bindings.
func contextHolds(seq alteruphono.Sequence, r *rule.Rule, bindings []alteruphono.Element, p, span int, sys *feature.System, smap syllable.Map) bool {
	if !r.HasContext() {
		return true
	}
	left, right := r.SplitContext()
	m := &match.Matcher{System: sys, Syllables: smap, Prior: bindings}
	if len(left) > 0 {
		ok := false
		for start := p; start >= 0; start-- {
			if res := m.Match(seq, left, start); res.Matched && start+res.Span == p {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(right) > 0 {
		if res := m.Match(seq, right, p+span); !res.Matched {
			return false
		}
	}
	return true
}

// replacement renders the post tokens of a matched rule into elements.
func replacement(r *rule.Rule, res match.Result, sys *feature.System) []alteruphono.Element {
	out := make([]alteruphono.Element, 0, len(r.Post))
	setOrdinal := 0
	for _, tok := range r.Post {
		switch t := tok.(type) {
		case rule.SegmentTok:
			out = append(out, t.Sound)
		case rule.BoundaryTok:
			out = append(out, alteruphono.Boundary{Marker: t.Marker})
		case rule.EmptyTok:
			// Deletion: emit nothing.
		case rule.BackRefTok:
			if el := emitBackRef(t, res.Bindings, sys); el != nil {
				out = append(out, el)
			}
		case rule.SetTok:
			idx := 0
			if setOrdinal < len(res.SetChoices) {
				idx = res.SetChoices[setOrdinal]
			}
			setOrdinal++
			if idx < len(t.Choices) {
				out = append(out, primitiveElements(t.Choices[idx], res.Bindings, sys)...)
			}
		case rule.ChoiceTok:
			// Rejected by the parser; degrade to the first alternative.
			if len(t.Choices) > 0 {
				out = append(out, primitiveElements(t.Choices[0], res.Bindings, sys)...)
			}
		default:
			tracer().Debugf("ignoring post token %T", tok)
		}
	}
	return out
}

// primitiveElements renders one primitive (set/choice member) into its
// elements.
func primitiveElements(tok rule.Token, bindings []alteruphono.Element, sys *feature.System) []alteruphono.Element {
	switch t := tok.(type) {
	case rule.SegmentTok:
		return []alteruphono.Element{t.Sound}
	case rule.BoundaryTok:
		return []alteruphono.Element{alteruphono.Boundary{Marker: t.Marker}}
	case rule.BackRefTok:
		if el := emitBackRef(t, bindings, sys); el != nil {
			return []alteruphono.Element{el}
		}
	}
	return nil
}

// emitBackRef realizes a back-reference: the bound ante element,
// transformed by the reference's modifiers. Without modifiers the bound
// element is reused unchanged; with modifiers the grapheme is re-derived
// from the modified feature set. A dangling reference degrades to
// nothing.
func emitBackRef(t rule.BackRefTok, bindings []alteruphono.Element, sys *feature.System) alteruphono.Element {
	if t.Index >= len(bindings) || bindings[t.Index] == nil {
		tracer().Debugf("dangling back-reference @%d", t.Index+1)
		return nil
	}
	sound, ok := bindings[t.Index].(alteruphono.Sound)
	if !ok {
		return bindings[t.Index] // a bound boundary passes through
	}
	if len(t.Mods) == 0 {
		return sound
	}
	features := sys.ApplyModifiers(sound.Features, t.Mods)
	return alteruphono.Sound{
		Grapheme: sys.FeaturesToGrapheme(features),
		Features: features,
	}
}
