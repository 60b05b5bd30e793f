package syllable

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"github.com/tresoldi/alteruphono"
)

// Role is the syllable position of one sequence index.
type Role int

//go:generate stringer -type=Role
const (
	None Role = iota // unassigned (empty map positions)
	Onset
	Nucleus
	Coda
	Break // word/morpheme boundary
)

// Scale maps feature labels to sonority ranks. An element's sonority is
// the highest rank of any of its labels; elements with no ranked label
// count as rank 0.
type Scale map[string]int

// DefaultScale is the shipped sonority ranking.
func DefaultScale() Scale {
	return Scale{
		"vowel":       5,
		"approximant": 4,
		"lateral":     4,
		"trill":       3,
		"tap":         3,
		"nasal":       2,
		"fricative":   1,
		"stop":        0,
	}
}

// Options configure the syllabifier.
type Options struct {
	AllowSCluster bool  // an onset may begin with /s/ against the SSP
	MaxOnset      int   // maximal onset length
	MaxCoda       int   // maximal coda length
	Scale         Scale // sonority ranking; nil selects DefaultScale
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		AllowSCluster: true,
		MaxOnset:      3,
		MaxCoda:       2,
		Scale:         DefaultScale(),
	}
}

func (o Options) scale() Scale {
	if o.Scale == nil {
		return DefaultScale()
	}
	return o.Scale
}

// Map assigns a Role to every index of the sequence it was computed
// for.
type Map []Role

// At returns the role at an index; out-of-range indexes read as Break.
func (m Map) At(i int) Role {
	if i < 0 || i >= len(m) {
		return Break
	}
	return m[i]
}

// OnsetInitial reports whether index i is the first position of an
// onset span. Syllable-position conditions on rules test this, so that
// in a complex onset only the outermost segment counts as being "in
// onset position".
func (m Map) OnsetInitial(i int) bool {
	return m.At(i) == Onset && (i == 0 || m[i-1] != Onset)
}

// sonority ranks one element; boundaries rank -1.
func sonority(el alteruphono.Element, scale Scale) int {
	if el.IsBoundary() {
		return -1
	}
	sound, ok := el.(alteruphono.Sound)
	if !ok {
		return 0
	}
	rank := 0
	for _, label := range sound.Features.Labels() {
		if r, scaled := scale[label]; scaled && r > rank {
			rank = r
		}
	}
	return rank
}

// Syllabify computes the role map of a sequence. It is deterministic
// and side-effect free: the same sequence and options always yield the
// same map.
func Syllabify(seq alteruphono.Sequence, opts Options) Map {
	scale := opts.scale()
	nucleusRank := 0
	for _, r := range scale {
		if r > nucleusRank {
			nucleusRank = r
		}
	}

	roles := make(Map, len(seq))
	ranks := make([]int, len(seq))
	for i, el := range seq {
		ranks[i] = sonority(el, scale)
		switch {
		case el.IsBoundary():
			roles[i] = Break
		case ranks[i] >= nucleusRank:
			roles[i] = Nucleus
		default:
			roles[i] = None
		}
	}

	// Assign each maximal run of unassigned consonants, looking at what
	// anchors it on either side.
	i := 0
	for i < len(seq) {
		if roles[i] != None {
			i++
			continue
		}
		j := i
		for j < len(seq) && roles[j] == None {
			j++
		}
		leftNucleus := i > 0 && roles[i-1] == Nucleus
		rightNucleus := j < len(seq) && roles[j] == Nucleus
		assignCluster(roles, ranks, seq, i, j, leftNucleus, rightNucleus, opts)
		i = j
	}
	return roles
}

// assignCluster distributes the consonants of seq[from:to] between the
// coda of the syllable on the left and the onset of the syllable on the
// right.
func assignCluster(roles Map, ranks []int, seq alteruphono.Sequence, from, to int, leftNucleus, rightNucleus bool, opts Options) {
	switch {
	case rightNucleus:
		// The right syllable takes as long an onset as the SSP permits;
		// the rest falls to the left coda (rule: maximize onsets).
		onsetStart := to - maxOnsetLen(ranks, seq, from, to, opts)
		if !leftNucleus {
			// Word-initial cluster: nothing on the left can host a
			// coda, the whole cluster stays in the onset.
			onsetStart = from
		}
		for k := from; k < onsetStart; k++ {
			roles[k] = Coda
		}
		for k := onsetStart; k < to; k++ {
			roles[k] = Onset
		}
		if !leftNucleus && to-from > opts.MaxOnset {
			tracer().Debugf("initial onset of length %d exceeds maximum %d", to-from, opts.MaxOnset)
		}
	case leftNucleus:
		// Trailing cluster: coda of the last syllable. A coda longer
		// than the maximum cannot trigger a split here, as that would
		// force an empty nucleus; the extra segments stay attached.
		for k := from; k < to; k++ {
			roles[k] = Coda
		}
		if to-from > opts.MaxCoda {
			tracer().Debugf("final coda of length %d exceeds maximum %d", to-from, opts.MaxCoda)
		}
	default:
		// No nucleus on either side (e.g. a vowelless form): read the
		// cluster as an onset looking for a nucleus that never comes.
		for k := from; k < to; k++ {
			roles[k] = Onset
		}
	}
}

// maxOnsetLen finds the longest suffix of seq[from:to] that is a legal
// onset: sonority non-decreasing toward the nucleus, no longer than
// MaxOnset, optionally led by /s/ against the SSP.
func maxOnsetLen(ranks []int, seq alteruphono.Sequence, from, to int, opts Options) int {
	limit := to - from
	if opts.MaxOnset < limit {
		limit = opts.MaxOnset
	}
	for length := limit; length > 0; length-- {
		if legalOnset(ranks, seq, to-length, to, opts) {
			return length
		}
	}
	return 0
}

func legalOnset(ranks []int, seq alteruphono.Sequence, from, to int, opts Options) bool {
	start := from
	if opts.AllowSCluster && to-from > 1 {
		if sound, ok := seq[from].(alteruphono.Sound); ok && sound.Grapheme == "s" {
			start = from + 1
		}
	}
	for k := start + 1; k < to; k++ {
		if ranks[k] < ranks[k-1] {
			return false
		}
	}
	return true
}
