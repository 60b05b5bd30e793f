package geometry

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"fmt"
	"sync"

	"github.com/tresoldi/alteruphono"
)

// UnknownDistance is the tree distance reported for labels the geometry
// does not know about.
const UnknownDistance = 128

// Node is a node of the feature-geometry tree. A node is either a
// feature node, carrying a pair of polar-opposite labels, or a geometry
// node, grouping child nodes. Nodes are built once and never mutated.
type Node struct {
	name     string
	positive string
	negative string
	children []*Node
}

// Feature creates a feature node with its two polar labels.
func Feature(name, positive, negative string) *Node {
	return &Node{name: name, positive: positive, negative: negative}
}

// Group creates a geometry node over child nodes.
func Group(name string, children ...*Node) *Node {
	return &Node{name: name, children: children}
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// IsFeature is true for feature nodes, false for geometry nodes.
func (n *Node) IsFeature() bool { return n.positive != "" }

// Positive returns the positive polar label of a feature node.
func (n *Node) Positive() string { return n.positive }

// Negative returns the negative polar label of a feature node.
func (n *Node) Negative() string { return n.negative }

// Children returns the child nodes of a geometry node.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) String() string {
	if n.IsFeature() {
		return fmt.Sprintf("<%s: %s|%s>", n.name, n.positive, n.negative)
	}
	return fmt.Sprintf("<%s: %d children>", n.name, len(n.children))
}

// Geometry is a compiled feature-geometry tree with label and parent
// indexes. It is immutable after construction and safe for concurrent
// use.
type Geometry struct {
	root      *Node
	nodeOf    map[string]*Node // label → feature node holding it
	parentOf  map[*Node]*Node
	nodeDepth map[*Node]int
}

// New compiles a tree into a Geometry. It fails if a feature label
// appears in more than one node.
func New(root *Node) (*Geometry, error) {
	g := &Geometry{
		root:      root,
		nodeOf:    make(map[string]*Node),
		parentOf:  make(map[*Node]*Node),
		nodeDepth: make(map[*Node]int),
	}
	var walk func(n *Node, parent *Node, depth int) error
	walk = func(n *Node, parent *Node, depth int) error {
		g.parentOf[n] = parent
		g.nodeDepth[n] = depth
		if n.IsFeature() {
			for _, label := range []string{n.positive, n.negative} {
				if prev, dup := g.nodeOf[label]; dup {
					return fmt.Errorf("feature label %q in nodes %s and %s", label, prev.name, n.name)
				}
				g.nodeOf[label] = n
			}
		}
		for _, child := range n.children {
			if err := walk(child, n, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, nil, 0); err != nil {
		return nil, err
	}
	tracer().Debugf("compiled geometry with %d labels", len(g.nodeOf))
	return g, nil
}

// AllFeatures returns every label the geometry knows, positive and
// negative alike.
func (g *Geometry) AllFeatures() alteruphono.FeatureSet {
	labels := make([]string, 0, len(g.nodeOf))
	for label := range g.nodeOf {
		labels = append(labels, label)
	}
	return alteruphono.NewFeatureSet(labels...)
}

// FindFeature returns the feature node holding a label, or nil.
func (g *Geometry) FindFeature(label string) *Node {
	return g.nodeOf[label]
}

// FindParent returns the parent of the node holding a label, or nil.
func (g *Geometry) FindParent(label string) *Node {
	node := g.nodeOf[label]
	if node == nil {
		return nil
	}
	return g.parentOf[node]
}

// SiblingsOf returns the labels mutually exclusive with the given one:
// the polar partner in the same node, plus the labels of the parent's
// other feature-node children. Geometry-node siblings contribute
// nothing; their contrasts are independent dimensions.
func (g *Geometry) SiblingsOf(label string) []string {
	node := g.nodeOf[label]
	if node == nil {
		return nil
	}
	var siblings []string
	if node.positive == label {
		siblings = append(siblings, node.negative)
	} else {
		siblings = append(siblings, node.positive)
	}
	parent := g.parentOf[node]
	if parent == nil {
		return siblings
	}
	for _, child := range parent.children {
		if child == node || !child.IsFeature() {
			continue
		}
		siblings = append(siblings, child.positive, child.negative)
	}
	return siblings
}

// PolarOpposites is true iff the two labels are the positive and
// negative poles of the same feature node.
func (g *Geometry) PolarOpposites(a, b string) bool {
	node := g.nodeOf[a]
	if node == nil || node != g.nodeOf[b] {
		return false
	}
	return a != b
}

// labelDepth treats labels as leaves below their feature node.
func (g *Geometry) labelDepth(label string) (int, bool) {
	node, ok := g.nodeOf[label]
	if !ok {
		return 0, false
	}
	return g.nodeDepth[node] + 1, true
}

// FeatureDistance returns the tree-edge distance between two labels,
// depth(a) + depth(b) − 2·depth(LCA). Unknown labels yield
// UnknownDistance.
func (g *Geometry) FeatureDistance(a, b string) int {
	na, nb := g.nodeOf[a], g.nodeOf[b]
	if na == nil || nb == nil {
		return UnknownDistance
	}
	if a == b {
		return 0
	}
	if na == nb {
		return 2 // polar pair: up to the shared node and down again
	}
	da, _ := g.labelDepth(a)
	db, _ := g.labelDepth(b)
	lca := g.lowestCommonAncestor(na, nb)
	return da + db - 2*g.nodeDepth[lca]
}

func (g *Geometry) lowestCommonAncestor(a, b *Node) *Node {
	seen := make(map[*Node]bool)
	for n := a; n != nil; n = g.parentOf[n] {
		seen[n] = true
	}
	for n := b; n != nil; n = g.parentOf[n] {
		if seen[n] {
			return n
		}
	}
	return g.root
}

// SoundDistance compares two feature sets: each label in the symmetric
// difference contributes 1/(1+depth), normalized by the total weight of
// the union. Identical sets are at distance 0, fully disjoint sets at
// 1. Labels unknown to the geometry weigh as depth-0 labels.
func (g *Geometry) SoundDistance(a, b alteruphono.FeatureSet) float64 {
	weight := func(label string) float64 {
		depth, known := g.labelDepth(label)
		if !known {
			depth = 0
		}
		return 1.0 / float64(1+depth)
	}
	var diff, union float64
	for _, label := range a.Union(b).Labels() {
		w := weight(label)
		union += w
		if a.Has(label) != b.Has(label) {
			diff += w
		}
	}
	if diff == 0 {
		return 0
	}
	return diff / union
}

// --- Default tree -----------------------------------------------------------

var defaultOnce struct {
	sync.Once
	g *Geometry
}

// Default returns the geometry used by the shipped feature system. The
// tree covers the vocabulary of the embedded resource tables. It is
// built once per process.
func Default() *Geometry {
	defaultOnce.Do(func() {
		root := Group("root",
			Feature("type", "consonant", "vowel"),
			Group("laryngeal",
				Feature("phonation", "voiced", "voiceless"),
				Group("timing",
					Feature("aspiration", "aspirated", "unaspirated"),
				),
				Group("initiation",
					Feature("airstream", "ejective", "implosive"),
				),
			),
			Group("manner",
				Feature("stricture", "stop", "fricative"),
				Feature("release", "affricate", "unreleased"),
				Feature("nasality", "nasal", "oral"),
				Feature("rhotic", "trill", "tap"),
				Feature("resonance", "approximant", "lateral"),
			),
			Group("place",
				Feature("labial", "bilabial", "labiodental"),
				Feature("anterior", "dental", "alveolar"),
				Feature("posterior", "postalveolar", "retroflex"),
				Feature("lingual", "palatal", "velar"),
				Feature("radical", "uvular", "pharyngeal"),
				Feature("guttural", "glottal", "epiglottal"),
			),
			Group("vocalic",
				Group("height",
					Feature("aperture", "close", "open"),
					Feature("midrange", "close-mid", "open-mid"),
				),
				Group("backness",
					Feature("horizontal", "front", "back"),
					Feature("interior", "central", "peripheral"),
				),
				Feature("roundness", "rounded", "unrounded"),
				Group("quantity",
					Feature("length", "long", "short"),
				),
			),
		)
		g, err := New(root)
		if err != nil {
			panic(err) // the shipped tree is statically well-formed
		}
		defaultOnce.g = g
	})
	return defaultOnce.g
}
