package alteruphono

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// --- Feature sets -----------------------------------------------------------

// FeatureSet is an immutable, unordered collection of feature labels.
// The zero value is the empty set. Labels are kept in a canonical sorted
// order internally, so that two sets with the same members compare equal
// under Equal and render identically under String.
type FeatureSet struct {
	labels []string
}

// NewFeatureSet builds a feature set from labels. Duplicates and empty
// strings are dropped.
func NewFeatureSet(labels ...string) FeatureSet {
	if len(labels) == 0 {
		return FeatureSet{}
	}
	set := treeset.NewWith(utils.StringComparator)
	for _, label := range labels {
		if label != "" {
			set.Add(label)
		}
	}
	if set.Size() == 0 {
		return FeatureSet{}
	}
	fs := FeatureSet{labels: make([]string, 0, set.Size())}
	for _, v := range set.Values() {
		fs.labels = append(fs.labels, v.(string))
	}
	return fs
}

// ParseFeatureSet splits a whitespace-separated label list, as found in
// the NAME column of the sounds table, into a feature set.
func ParseFeatureSet(text string) FeatureSet {
	return NewFeatureSet(strings.Fields(text)...)
}

// Len returns the number of labels in the set.
func (fs FeatureSet) Len() int {
	return len(fs.labels)
}

// Empty is true for the set with no labels.
func (fs FeatureSet) Empty() bool {
	return len(fs.labels) == 0
}

// Has checks membership of a single label.
func (fs FeatureSet) Has(label string) bool {
	for _, l := range fs.labels {
		if l == label {
			return true
		}
	}
	return false
}

// Labels returns the labels in canonical order. The returned slice is a
// copy; callers may not mutate a set through it.
func (fs FeatureSet) Labels() []string {
	out := make([]string, len(fs.labels))
	copy(out, fs.labels)
	return out
}

// Equal compares two sets by membership.
func (fs FeatureSet) Equal(other FeatureSet) bool {
	if len(fs.labels) != len(other.labels) {
		return false
	}
	for i, l := range fs.labels {
		if other.labels[i] != l {
			return false
		}
	}
	return true
}

// SubsetOf is true iff every label of fs is in other. This is the
// subsumption relation used for class-partial sounds.
func (fs FeatureSet) SubsetOf(other FeatureSet) bool {
	for _, l := range fs.labels {
		if !other.Has(l) {
			return false
		}
	}
	return true
}

// Union returns a new set holding the labels of both sets.
func (fs FeatureSet) Union(other FeatureSet) FeatureSet {
	return NewFeatureSet(append(fs.Labels(), other.labels...)...)
}

// Without returns a new set with the given labels removed.
func (fs FeatureSet) Without(labels ...string) FeatureSet {
	drop := func(l string) bool {
		for _, d := range labels {
			if d == l {
				return true
			}
		}
		return false
	}
	kept := make([]string, 0, len(fs.labels))
	for _, l := range fs.labels {
		if !drop(l) {
			kept = append(kept, l)
		}
	}
	return FeatureSet{labels: kept}
}

// SymmetricDifference returns the labels present in exactly one of the
// two sets.
func (fs FeatureSet) SymmetricDifference(other FeatureSet) []string {
	var diff []string
	for _, l := range fs.labels {
		if !other.Has(l) {
			diff = append(diff, l)
		}
	}
	for _, l := range other.labels {
		if !fs.Has(l) {
			diff = append(diff, l)
		}
	}
	return diff
}

// String renders the set as "[a,b,c]" in canonical order.
func (fs FeatureSet) String() string {
	return "[" + strings.Join(fs.labels, ",") + "]"
}

// --- Elements ---------------------------------------------------------------

// Element is a position in a phonological sequence: either a Sound or a
// Boundary. The sum is closed; no other types implement it.
type Element interface {
	IsBoundary() bool
	String() string
	equalElement(Element) bool
}

// Sound is a phonological segment. Partial sounds stand for sound
// classes ("V", "C", …): their features are a subset which any matching
// segment must carry. Concrete sounds must match exactly.
//
// Sounds are values; once constructed they are never mutated.
type Sound struct {
	Grapheme string
	Features FeatureSet
	Partial  bool
}

// IsBoundary is part of the Element interface.
func (s Sound) IsBoundary() bool { return false }

func (s Sound) String() string { return s.Grapheme }

// Equal compares two sounds. Two sounds with known features are equal
// iff their feature sets are equal; sounds with no features (unknown
// graphemes) compare by grapheme.
func (s Sound) Equal(other Sound) bool {
	if s.Partial != other.Partial {
		return false
	}
	if s.Features.Empty() && other.Features.Empty() {
		return s.Grapheme == other.Grapheme
	}
	return s.Features.Equal(other.Features)
}

func (s Sound) equalElement(other Element) bool {
	o, ok := other.(Sound)
	return ok && s.Equal(o)
}

// BoundaryMarker is the canonical word/morpheme edge marker.
const BoundaryMarker = "#"

// Boundary is a pseudo-segment marking a word or morpheme edge.
type Boundary struct {
	Marker string
}

// NewBoundary returns the canonical "#" boundary.
func NewBoundary() Boundary {
	return Boundary{Marker: BoundaryMarker}
}

// IsBoundary is part of the Element interface.
func (b Boundary) IsBoundary() bool { return true }

func (b Boundary) String() string { return b.Marker }

func (b Boundary) equalElement(other Element) bool {
	o, ok := other.(Boundary)
	return ok && o.Marker == b.Marker
}

// ElementsEqual compares two elements by value.
func ElementsEqual(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equalElement(b)
}

// --- Sequences --------------------------------------------------------------

// Sequence is an ordered list of elements. Sequences are shared
// read-only; operations on them return new sequences.
type Sequence []Element

// String renders the sequence as space-separated graphemes and markers,
// the same shape the sequence parser accepts.
func (seq Sequence) String() string {
	parts := make([]string, len(seq))
	for i, el := range seq {
		parts[i] = el.String()
	}
	return strings.Join(parts, " ")
}

// Equal compares two sequences element-wise.
func (seq Sequence) Equal(other Sequence) bool {
	if len(seq) != len(other) {
		return false
	}
	for i, el := range seq {
		if !ElementsEqual(el, other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy; elements are immutable values, so a
// shallow copy is a full copy.
func (seq Sequence) Clone() Sequence {
	out := make(Sequence, len(seq))
	copy(out, seq)
	return out
}
