package alteruphono

import (
	"testing"
)

func TestFeatureSetCanonical(t *testing.T) {
	fs := NewFeatureSet("voiced", "bilabial", "voiced", "stop", "")
	if fs.Len() != 3 {
		t.Errorf("expected 3 labels after dedup, got %d", fs.Len())
	}
	labels := fs.Labels()
	if labels[0] != "bilabial" || labels[1] != "stop" || labels[2] != "voiced" {
		t.Errorf("labels not in canonical order: %v", labels)
	}
	other := NewFeatureSet("stop", "voiced", "bilabial")
	if !fs.Equal(other) {
		t.Errorf("expected %s == %s", fs, other)
	}
}

func TestFeatureSetSubset(t *testing.T) {
	pattern := NewFeatureSet("consonant")
	target := NewFeatureSet("consonant", "voiced", "bilabial", "stop")
	if !pattern.SubsetOf(target) {
		t.Errorf("expected %s ⊆ %s", pattern, target)
	}
	if target.SubsetOf(pattern) {
		t.Errorf("did not expect %s ⊆ %s", target, pattern)
	}
	if !NewFeatureSet().SubsetOf(pattern) {
		t.Errorf("empty set must subsume everything")
	}
}

func TestFeatureSetOps(t *testing.T) {
	a := NewFeatureSet("voiced", "stop")
	b := NewFeatureSet("stop", "nasal")
	union := a.Union(b)
	if union.Len() != 3 {
		t.Errorf("union expected 3 labels, got %s", union)
	}
	diff := a.SymmetricDifference(b)
	if len(diff) != 2 {
		t.Errorf("symmetric difference expected 2 labels, got %v", diff)
	}
	if got := a.Without("voiced"); got.Has("voiced") || !got.Has("stop") {
		t.Errorf("Without removed the wrong labels: %s", got)
	}
	if a.Has("voiced") == false {
		t.Errorf("Without must not mutate the receiver")
	}
}

func TestSoundEquality(t *testing.T) {
	p1 := Sound{Grapheme: "p", Features: NewFeatureSet("voiceless", "bilabial", "stop", "consonant")}
	p2 := Sound{Grapheme: "p", Features: NewFeatureSet("stop", "bilabial", "voiceless", "consonant")}
	if !p1.Equal(p2) {
		t.Errorf("same features must compare equal")
	}
	unknown1 := Sound{Grapheme: "ʘ"}
	unknown2 := Sound{Grapheme: "ʘ"}
	unknown3 := Sound{Grapheme: "ǂ"}
	if !unknown1.Equal(unknown2) {
		t.Errorf("unknown graphemes compare by grapheme")
	}
	if unknown1.Equal(unknown3) {
		t.Errorf("distinct unknown graphemes must differ")
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := Sequence{
		NewBoundary(),
		Sound{Grapheme: "a", Features: NewFeatureSet("open", "front", "unrounded", "vowel")},
		Sound{Grapheme: "p", Features: NewFeatureSet("voiceless", "bilabial", "stop", "consonant")},
		NewBoundary(),
	}
	if got := seq.String(); got != "# a p #" {
		t.Errorf("expected \"# a p #\", got %q", got)
	}
	if !seq.Equal(seq.Clone()) {
		t.Errorf("clone must compare equal")
	}
}
