package feature

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"strings"
	"unicode/utf8"

	"github.com/czcorpus/cnc-gokit/collections"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/geometry"
	"github.com/tresoldi/alteruphono/resources"
)

// invEntry is one sound of the inventory, ordered by grapheme length
// and then lexicographically, so that a linear scan keeping the first
// strict minimum realizes the tie-break rule of FeaturesToGrapheme.
type invEntry struct {
	grapheme string
	features alteruphono.FeatureSet
}

func (e *invEntry) Compare(other collections.Comparable) int {
	o, ok := other.(*invEntry)
	if !ok {
		return -1
	}
	la, lb := utf8.RuneCountInString(e.grapheme), utf8.RuneCountInString(o.grapheme)
	if la != lb {
		return la - lb
	}
	return strings.Compare(e.grapheme, o.grapheme)
}

type classDef struct {
	description string
	features    alteruphono.FeatureSet
	graphemes   []string
}

// System is a named feature system: the bidirectional grapheme ↔
// feature-set mapping over one inventory, plus feature arithmetic.
// Systems are immutable after construction and safe for concurrent use.
type System struct {
	name      string
	geom      *geometry.Geometry
	names     map[string]string // grapheme → descriptive name
	sounds    map[string]alteruphono.FeatureSet
	classes   map[string]classDef
	inventory []*invEntry // sorted, see invEntry.Compare
}

// New builds a system from the resource tables and a geometry. A nil
// geometry selects the default tree.
func New(name string, geom *geometry.Geometry) (*System, error) {
	if geom == nil {
		geom = geometry.Default()
	}
	names, err := resources.Sounds()
	if err != nil {
		return nil, err
	}
	classTable, err := resources.Classes()
	if err != nil {
		return nil, err
	}
	sys := &System{
		name:    name,
		geom:    geom,
		names:   names,
		sounds:  make(map[string]alteruphono.FeatureSet, len(names)),
		classes: make(map[string]classDef, len(classTable)),
	}
	tree := new(collections.BinTree[*invEntry])
	tree.UniqValues = true
	for grapheme, soundName := range names {
		fs := alteruphono.ParseFeatureSet(soundName)
		sys.sounds[grapheme] = fs
		tree.Add(&invEntry{grapheme: grapheme, features: fs})
	}
	sys.inventory = tree.ToSlice()
	for letter, cls := range classTable {
		sys.classes[letter] = classDef{
			description: cls.Description,
			features:    alteruphono.ParseFeatureSet(cls.Features),
			graphemes:   cls.Graphemes,
		}
	}
	tracer().Infof("feature system %q: %d sounds, %d classes", name, len(sys.sounds), len(sys.classes))
	return sys, nil
}

// Name returns the system name.
func (sys *System) Name() string { return sys.name }

// GraphemeToFeatures returns the canonical feature set of an atomic
// grapheme. The second result is false for unknown graphemes.
func (sys *System) GraphemeToFeatures(grapheme string) (alteruphono.FeatureSet, bool) {
	fs, ok := sys.sounds[grapheme]
	return fs, ok
}

// SoundName returns the descriptive name of a grapheme.
func (sys *System) SoundName(grapheme string) (string, bool) {
	name, ok := sys.names[grapheme]
	return name, ok
}

// FeaturesToGrapheme returns the inventory grapheme whose feature set
// is closest to fs under SoundDistance. Ties go to the shortest
// grapheme, then lexicographic order. An empty inventory yields "".
func (sys *System) FeaturesToGrapheme(fs alteruphono.FeatureSet) string {
	best := ""
	bestDist := 0.0
	for i, entry := range sys.inventory {
		d := sys.geom.SoundDistance(fs, entry.features)
		if i == 0 || d < bestDist {
			best, bestDist = entry.grapheme, d
			if d == 0 {
				break
			}
		}
	}
	return best
}

// IsClass reports whether a grapheme names a sound class of this
// system.
func (sys *System) IsClass(grapheme string) bool {
	_, ok := sys.classes[grapheme]
	return ok
}

// ClassFeatures returns the partial feature set required by a sound
// class.
func (sys *System) ClassFeatures(letter string) (alteruphono.FeatureSet, bool) {
	cls, ok := sys.classes[letter]
	if !ok {
		return alteruphono.FeatureSet{}, false
	}
	return cls.features, true
}

// ClassGraphemes returns the explicit member graphemes of a class.
func (sys *System) ClassGraphemes(letter string) ([]string, bool) {
	cls, ok := sys.classes[letter]
	if !ok {
		return nil, false
	}
	out := make([]string, len(cls.graphemes))
	copy(out, cls.graphemes)
	return out, true
}

// AddFeatures inserts labels into a feature set. Each inserted label
// first evicts its geometric siblings, so that asserting one pole of a
// contrast retracts the other pole and competing sibling contrasts.
// Labels unknown to the geometry are inserted opaquely.
func (sys *System) AddFeatures(base alteruphono.FeatureSet, added alteruphono.FeatureSet) alteruphono.FeatureSet {
	out := base
	for _, label := range added.Labels() {
		if siblings := sys.geom.SiblingsOf(label); len(siblings) > 0 {
			out = out.Without(siblings...)
		} else {
			tracer().Debugf("label %q unknown to geometry, inserting opaquely", label)
		}
		out = out.Union(alteruphono.NewFeatureSet(label))
	}
	return out
}

// ApplyModifiers applies a modifier list to a feature set: removals
// drop exactly the named label; additions go through AddFeatures.
func (sys *System) ApplyModifiers(base alteruphono.FeatureSet, mods []Modifier) alteruphono.FeatureSet {
	out := base
	for _, m := range mods {
		if m.Remove {
			out = out.Without(m.Label)
			continue
		}
		out = sys.AddFeatures(out, alteruphono.NewFeatureSet(m.Label))
	}
	return out
}

// PartialMatch is true iff every label of pattern is present in target.
// This is the subsumption relation used for class-partial sounds.
func (sys *System) PartialMatch(pattern, target alteruphono.FeatureSet) bool {
	return pattern.SubsetOf(target)
}

// FeatureDistance delegates to the geometry.
func (sys *System) FeatureDistance(a, b string) int {
	return sys.geom.FeatureDistance(a, b)
}

// SoundDistance delegates to the geometry.
func (sys *System) SoundDistance(a, b alteruphono.FeatureSet) float64 {
	return sys.geom.SoundDistance(a, b)
}

// Geometry exposes the system's geometry tree.
func (sys *System) Geometry() *geometry.Geometry {
	return sys.geom
}
