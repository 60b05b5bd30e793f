package match

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/rule"
	"github.com/tresoldi/alteruphono/syllable"
)

func fixture(t *testing.T) (*feature.System, *rule.Parser) {
	t.Helper()
	sys, err := feature.Get(feature.DefaultName)
	if err != nil {
		t.Fatalf("cannot build default feature system: %v", err)
	}
	return sys, rule.NewParser(sys)
}

// anteOf parses a rule and returns its ante pattern.
func anteOf(t *testing.T, p *rule.Parser, text string) []rule.Token {
	t.Helper()
	r, err := p.ParseRule(text)
	if err != nil {
		t.Fatalf("rule %q did not parse: %v", text, err)
	}
	return r.Ante
}

func TestMatchConcreteSegment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alteruphono.match")
	defer teardown()
	//
	sys, p := fixture(t)
	seq := p.ParseSequence("# a p a #")
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "p > b")

	res := m.Match(seq, pattern, 2)
	if !res.Matched || res.Span != 1 {
		t.Fatalf("expected a 1-element match at 2, got %+v", res)
	}
	if !alteruphono.ElementsEqual(res.Bindings[0], seq[2]) {
		t.Errorf("binding must be the consumed element")
	}
	if m.Match(seq, pattern, 1).Matched {
		t.Errorf("p must not match a")
	}
	if m.Match(seq, pattern, 0).Matched {
		t.Errorf("p must not match a boundary")
	}
}

func TestMatchClassPartial(t *testing.T) {
	sys, p := fixture(t)
	seq := p.ParseSequence("# a p a #")
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "C > :null: / _ #")

	if !m.Match(seq, pattern, 2).Matched {
		t.Errorf("C must match p")
	}
	if m.Match(seq, pattern, 1).Matched {
		t.Errorf("C must not match a vowel")
	}
	// Unknown graphemes carry no features and never satisfy a class.
	unknown := p.ParseSequence("# ʘ #")
	if m.Match(unknown, pattern, 1).Matched {
		t.Errorf("C must not match an unknown grapheme")
	}
}

func TestMatchBoundary(t *testing.T) {
	sys, p := fixture(t)
	seq := p.ParseSequence("# a #")
	m := &Matcher{System: sys}
	pattern := []rule.Token{rule.BoundaryTok{Marker: "#"}}
	if !m.Match(seq, pattern, 0).Matched {
		t.Errorf("# must match a boundary")
	}
	if m.Match(seq, pattern, 1).Matched {
		t.Errorf("# must not match a sound")
	}
}

func TestMatchChoice(t *testing.T) {
	sys, p := fixture(t)
	seq := p.ParseSequence("# b a #")
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "p|b > f")
	res := m.Match(seq, pattern, 1)
	if !res.Matched || res.Span != 1 {
		t.Fatalf("choice must match its second alternative, got %+v", res)
	}
	if res.Bindings[0] == nil {
		t.Errorf("choice must bind the matched alternative's element")
	}
}

func TestMatchSetRecordsAlternative(t *testing.T) {
	sys, p := fixture(t)
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "{p|b} > {f|v}")

	seq := p.ParseSequence("# p a b a #")
	res := m.Match(seq, pattern, 1)
	if !res.Matched || len(res.SetChoices) != 1 || res.SetChoices[0] != 0 {
		t.Errorf("expected alternative 0 at position 1, got %+v", res.SetChoices)
	}
	res = m.Match(seq, pattern, 3)
	if !res.Matched || res.SetChoices[0] != 1 {
		t.Errorf("expected alternative 1 at position 3, got %+v", res.SetChoices)
	}
}

// Negation consumes exactly one element when it succeeds.
func TestMatchNegationSingleElement(t *testing.T) {
	sys, p := fixture(t)
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "!p > :null: / _ #")

	seq := p.ParseSequence("# a t #")
	res := m.Match(seq, pattern, 2)
	if !res.Matched || res.Span != 1 {
		t.Fatalf("!p must consume exactly one element, got %+v", res)
	}
	if res.Bindings[0] != nil {
		t.Errorf("negation binds nothing")
	}
	pseq := p.ParseSequence("# a p #")
	if m.Match(pseq, pattern, 2).Matched {
		t.Errorf("!p must not match p")
	}
	if m.Match(seq, pattern, 3).Matched == false {
		// position 3 is the final boundary: !p holds for any element
		t.Errorf("!p must match a boundary")
	}
	if m.Match(seq, pattern, 4).Matched {
		t.Errorf("negation still needs an element to consume")
	}
}

func TestMatchNegatedChoice(t *testing.T) {
	sys, p := fixture(t)
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "!p|b > :null: / _ #")
	seq := p.ParseSequence("# t b #")
	if !m.Match(seq, pattern, 1).Matched {
		t.Errorf("!p|b must match t")
	}
	if m.Match(seq, pattern, 2).Matched {
		t.Errorf("!p|b must not match b")
	}
}

// C+ needs at least one consonant and backtracks until the remainder
// fits.
func TestMatchQuantifierPlus(t *testing.T) {
	sys, p := fixture(t)
	m := &Matcher{System: sys}

	seq := p.ParseSequence("# a s t #")
	plain := anteOf(t, p, "C+ > :null: / _ #")
	res := m.Match(seq, plain, 2)
	if !res.Matched || res.Span != 2 {
		t.Fatalf("C+ must greedily take the whole cluster, got %+v", res)
	}
	if !alteruphono.ElementsEqual(res.Bindings[0], seq[2]) {
		t.Errorf("a quantified token binds its first element")
	}
	if m.Match(seq, plain, 1).Matched {
		t.Errorf("C+ must not match zero consonants")
	}

	// The trailing t forces the greedy run to give one back.
	withTail := anteOf(t, p, "C+ t > s")
	res = m.Match(seq, withTail, 2)
	if !res.Matched || res.Span != 2 {
		t.Fatalf("C+ must backtrack to let the tail match, got %+v", res)
	}
}

func TestMatchQuantifierOptional(t *testing.T) {
	sys, p := fixture(t)
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "a C? # > a")

	short := p.ParseSequence("# a #")
	res := m.Match(short, pattern, 1)
	if !res.Matched || res.Span != 2 {
		t.Fatalf("C? must accept zero matches, got %+v", res)
	}
	long := p.ParseSequence("# a t #")
	res = m.Match(long, pattern, 1)
	if !res.Matched || res.Span != 3 {
		t.Fatalf("C? must accept one match when needed, got %+v", res)
	}
}

func TestMatchBackRefInContext(t *testing.T) {
	sys, p := fixture(t)
	seq := p.ParseSequence("# a p p a #")
	// A geminate context: the element after the focus equals the bound
	// ante segment.
	r, err := p.ParseRule("C > :null: / _ @1")
	if err != nil {
		t.Fatal(err)
	}
	anteRes := (&Matcher{System: sys}).Match(seq, r.Ante, 2)
	if !anteRes.Matched {
		t.Fatal("ante must match the first p")
	}
	_, right := r.SplitContext()
	ctx := &Matcher{System: sys, Prior: anteRes.Bindings}
	if !ctx.Match(seq, right, 3).Matched {
		t.Errorf("@1 in context must match the following identical segment")
	}
	if ctx.Match(seq, right, 4).Matched {
		t.Errorf("@1 must not match a different segment")
	}
}

func TestMatchSyllableCondition(t *testing.T) {
	sys, p := fixture(t)
	seq := p.ParseSequence("# a p t a #")
	smap := syllable.Syllabify(seq, syllable.DefaultOptions())
	m := &Matcher{System: sys, Syllables: smap}
	cond := []rule.Token{rule.SyllableCondTok{Position: syllable.Onset}}

	if res := m.Match(seq, cond, 2); !res.Matched || res.Span != 0 {
		t.Errorf("onset condition must hold at the onset-initial p")
	}
	if m.Match(seq, cond, 3).Matched {
		t.Errorf("onset condition must not hold inside a branching onset")
	}
	nucleus := []rule.Token{rule.SyllableCondTok{Position: syllable.Nucleus}}
	if !m.Match(seq, nucleus, 1).Matched {
		t.Errorf("nucleus condition must hold at a")
	}
	// Without a map, syllable conditions never hold.
	bare := &Matcher{System: sys}
	if bare.Match(seq, cond, 2).Matched {
		t.Errorf("conditions require a syllable map")
	}
}

func TestMatchOffsets(t *testing.T) {
	sys, p := fixture(t)
	seq := p.ParseSequence("# a p a #")
	m := &Matcher{System: sys}
	pattern := anteOf(t, p, "p > b")
	if m.Match(seq, pattern, -1).Matched || m.Match(seq, pattern, 9).Matched {
		t.Errorf("out-of-range offsets must not match")
	}
	if m.Match(seq, pattern, len(seq)).Matched {
		t.Errorf("a consuming pattern cannot match at the end")
	}
}
