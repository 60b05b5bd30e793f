package apply

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"github.com/cnf/structhash"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/match"
	"github.com/tresoldi/alteruphono/rule"
	"github.com/tresoldi/alteruphono/syllable"
)

// Backward enumerates the sequences that could have produced seq under
// one application of the rule. The input itself is always the first
// candidate (the rule may not have applied); every position where the
// post pattern matches yields a reconstruction with the ante put back in
// its place. Reconstructions whose context does not hold, or which do
// not derive seq again under Forward, are discarded, and duplicates are
// removed by value. A rule whose ante contains a negation yields only
// the input itself.
func Backward(seq alteruphono.Sequence, r *rule.Rule, sys *feature.System) []alteruphono.Sequence {
	candidates := []alteruphono.Sequence{seq.Clone()}
	seen := map[string]bool{hashSequence(seq): true}

	if !invertible(r.Ante) {
		tracer().Debugf("rule %q has a non-invertible ante, identity candidate only", r.Source)
		return candidates
	}

	pattern, backrefs := postPattern(r.Post)
	m := &match.Matcher{System: sys}
	for p := 0; p <= len(seq); p++ {
		res := m.Match(seq, pattern, p)
		if !res.Matched {
			continue
		}
		proto, bindings := reconstructAnte(r, res, backrefs, sys)
		candidate := make(alteruphono.Sequence, 0, len(seq)-res.Span+len(proto))
		candidate = append(candidate, seq[:p]...)
		candidate = append(candidate, proto...)
		candidate = append(candidate, seq[p+res.Span:]...)

		if r.HasContext() {
			var smap syllable.Map
			if r.NeedsSyllables() {
				smap = syllable.Syllabify(candidate, syllable.DefaultOptions())
			}
			if !contextHolds(candidate, r, bindings, p, len(proto), sys, smap) {
				continue
			}
		}
		// A reconstruction is only a proto-form if it actually derives
		// the observed sequence: the injected site may interact with
		// its neighborhood (greedy quantifiers, earlier match sites)
		// and produce something else forward.
		if !Forward(candidate, r, sys).Equal(seq) {
			continue
		}
		if key := hashSequence(candidate); !seen[key] {
			seen[key] = true
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// invertible reports whether an ante can be reconstructed from a post
// match. Negations carry no information about what stood there.
func invertible(ante []rule.Token) bool {
	for _, tok := range ante {
		switch t := tok.(type) {
		case rule.NegationTok:
			return false
		case rule.QuantifiedTok:
			if _, neg := t.Inner.(rule.NegationTok); neg {
				return false
			}
		}
	}
	return true
}

// postPattern turns the post side into a matchable pattern. Back-
// references cannot resolve while matching post (there are no ante
// bindings yet); each becomes a wildcard segment, and its position is
// recorded so reconstruction can invert the element it bound.
func postPattern(post []rule.Token) ([]rule.Token, map[int]rule.BackRefTok) {
	pattern := make([]rule.Token, len(post))
	backrefs := make(map[int]rule.BackRefTok)
	for i, tok := range post {
		if br, ok := tok.(rule.BackRefTok); ok {
			backrefs[i] = br
			pattern[i] = rule.SegmentTok{Sound: alteruphono.Sound{Grapheme: "*", Partial: true}}
			continue
		}
		pattern[i] = tok
	}
	return pattern, backrefs
}

// reconstructAnte builds the proto segment run for one post match,
// together with positional ante bindings for context verification.
func reconstructAnte(r *rule.Rule, res match.Result, backrefs map[int]rule.BackRefTok, sys *feature.System) ([]alteruphono.Element, []alteruphono.Element) {
	bindings := make([]alteruphono.Element, len(r.Ante))
	slot := make([]int, len(r.Ante)) // ante index → position in proto, -1 if none
	var proto []alteruphono.Element

	emit := func(i int, el alteruphono.Element) {
		slot[i] = len(proto)
		bindings[i] = el
		proto = append(proto, el)
	}
	for i, tok := range r.Ante {
		slot[i] = -1
		switch t := tok.(type) {
		case rule.SegmentTok:
			emit(i, t.Sound)
		case rule.BoundaryTok:
			emit(i, alteruphono.Boundary{Marker: t.Marker})
		case rule.EmptyTok:
			// An insertion read backward consumes nothing.
		case rule.SetTok:
			idx := setChoiceFor(r, res, i)
			if idx < len(t.Choices) {
				if els := primitiveElements(t.Choices[idx], bindings, sys); len(els) > 0 {
					emit(i, els[0])
				}
			}
		case rule.ChoiceTok:
			// The forward direction lost which alternative matched;
			// reconstruct the first one.
			if els := primitiveElements(t.Choices[0], bindings, sys); len(els) > 0 {
				emit(i, els[0])
			}
		case rule.QuantifiedTok:
			// One repetition stands in for the run; the optional
			// reading reconstructs as absent.
			if t.Quant == '+' {
				if seg, ok := t.Inner.(rule.SegmentTok); ok {
					emit(i, seg.Sound)
				}
			}
		case rule.BackRefTok:
			if t.Index < i && bindings[t.Index] != nil {
				emit(i, bindings[t.Index])
			}
		}
	}

	// Post back-references override the ante position they point at:
	// the element observed in the daughter form, with the modifier
	// chain inverted, is the proto value.
	for postIdx, br := range backrefs {
		if br.Index >= len(r.Ante) || postIdx >= len(res.Bindings) {
			continue
		}
		observed, ok := res.Bindings[postIdx].(alteruphono.Sound)
		if !ok {
			continue
		}
		protoSound := observed
		if len(br.Mods) > 0 {
			features := sys.ApplyModifiers(observed.Features, feature.InvertModifiers(br.Mods))
			protoSound = alteruphono.Sound{
				Grapheme: sys.FeaturesToGrapheme(features),
				Features: features,
			}
		}
		bindings[br.Index] = protoSound
		if at := slot[br.Index]; at >= 0 {
			proto[at] = protoSound
		} else {
			proto = append(proto, protoSound)
			slot[br.Index] = len(proto) - 1
		}
	}
	return proto, bindings
}

// setChoiceFor finds the matched alternative for the ante set at token
// index i, by pairing ante and post sets in order.
func setChoiceFor(r *rule.Rule, res match.Result, i int) int {
	ordinal := 0
	for j := 0; j < i; j++ {
		if _, ok := r.Ante[j].(rule.SetTok); ok {
			ordinal++
		}
	}
	if ordinal < len(res.SetChoices) {
		return res.SetChoices[ordinal]
	}
	return 0
}

// hashSequence computes a value-identity key for dedup. Feature sets
// are part of the identity: two spellings of the same segment collide,
// homographs with different features do not.
func hashSequence(seq alteruphono.Sequence) string {
	parts := make([]string, len(seq))
	for i, el := range seq {
		if sound, ok := el.(alteruphono.Sound); ok {
			// Unknown graphemes carry no features and compare by spelling.
			if sound.Features.Empty() {
				parts[i] = sound.Grapheme
			} else {
				parts[i] = sound.Features.String()
			}
			continue
		}
		parts[i] = el.String()
	}
	hash, err := structhash.Hash(struct {
		Elements []string
	}{Elements: parts}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return hash
}
