package syllable

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/rule"
)

func parseSeq(t *testing.T, text string) alteruphono.Sequence {
	t.Helper()
	sys, err := feature.Get(feature.DefaultName)
	if err != nil {
		t.Fatalf("cannot build default feature system: %v", err)
	}
	return rule.NewParser(sys).ParseSequence(text)
}

func rolesOf(m Map) string {
	parts := make([]string, len(m))
	for i, r := range m {
		parts[i] = strings.ToLower(r.String())
	}
	return strings.Join(parts, " ")
}

func TestSyllabifyCV(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alteruphono.syllable")
	defer teardown()
	//
	seq := parseSeq(t, "# p a t a #")
	m := Syllabify(seq, DefaultOptions())
	if got := rolesOf(m); got != "break onset nucleus onset nucleus break" {
		t.Errorf("unexpected roles: %s", got)
	}
}

func TestSyllabifyMedialCluster(t *testing.T) {
	// Both stops of "pt" form a licit (non-falling) onset, so the
	// maximize-onsets rule assigns the whole cluster to the right
	// syllable; only the p is onset-initial.
	seq := parseSeq(t, "# a p t a #")
	m := Syllabify(seq, DefaultOptions())
	if got := rolesOf(m); got != "break nucleus onset onset nucleus break" {
		t.Errorf("unexpected roles: %s", got)
	}
	if !m.OnsetInitial(2) {
		t.Errorf("p must be onset-initial")
	}
	if m.OnsetInitial(3) {
		t.Errorf("t must not be onset-initial")
	}
}

func TestSyllabifyFallingClusterSplits(t *testing.T) {
	// "rt" falls in sonority (3 → 0), so the r stays in the left coda
	// and only the t opens the next syllable.
	seq := parseSeq(t, "# a r t a #")
	m := Syllabify(seq, DefaultOptions())
	if got := rolesOf(m); got != "break nucleus coda onset nucleus break" {
		t.Errorf("unexpected roles: %s", got)
	}
}

func TestSyllabifyFinalCoda(t *testing.T) {
	seq := parseSeq(t, "# a s t #")
	m := Syllabify(seq, DefaultOptions())
	if got := rolesOf(m); got != "break nucleus coda coda break" {
		t.Errorf("unexpected roles: %s", got)
	}
}

func TestSyllabifySCluster(t *testing.T) {
	seq := parseSeq(t, "# a s p a #")
	withS := DefaultOptions()
	m := Syllabify(seq, withS)
	if got := rolesOf(m); got != "break nucleus onset onset nucleus break" {
		t.Errorf("s-cluster must join the onset: %s", got)
	}

	noS := DefaultOptions()
	noS.AllowSCluster = false
	m = Syllabify(seq, noS)
	if got := rolesOf(m); got != "break nucleus coda onset nucleus break" {
		t.Errorf("without the exception the s falls to the coda: %s", got)
	}
}

func TestSyllabifyMaxOnset(t *testing.T) {
	seq := parseSeq(t, "# a p t a #")
	opts := DefaultOptions()
	opts.MaxOnset = 1
	m := Syllabify(seq, opts)
	if got := rolesOf(m); got != "break nucleus coda onset nucleus break" {
		t.Errorf("onset cap must push consonants to the left coda: %s", got)
	}
}

func TestSyllabifyNoNucleus(t *testing.T) {
	seq := parseSeq(t, "# s t #")
	m := Syllabify(seq, DefaultOptions())
	if got := rolesOf(m); got != "break onset onset break" {
		t.Errorf("a vowelless form reads as onset: %s", got)
	}
}

// Same input, same options, same map.
func TestSyllabifyStability(t *testing.T) {
	seq := parseSeq(t, "# s t r a m p f #")
	first := Syllabify(seq, DefaultOptions())
	for i := 0; i < 5; i++ {
		again := Syllabify(seq, DefaultOptions())
		if rolesOf(first) != rolesOf(again) {
			t.Fatalf("syllabification is not stable: %s vs %s", rolesOf(first), rolesOf(again))
		}
	}
}

func TestMapAtOutOfRange(t *testing.T) {
	m := Map{Nucleus}
	if m.At(-1) != Break || m.At(1) != Break {
		t.Errorf("out-of-range positions must read as boundary")
	}
}

func TestLoadOptions(t *testing.T) {
	cfg := `
allow_s_cluster: false
max_onset: 2
sonority:
  vowel: 9
  nasal: 3
`
	opts, err := LoadOptions(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if opts.AllowSCluster {
		t.Errorf("allow_s_cluster not applied")
	}
	if opts.MaxOnset != 2 {
		t.Errorf("max_onset not applied: %d", opts.MaxOnset)
	}
	if opts.MaxCoda != DefaultOptions().MaxCoda {
		t.Errorf("absent keys must keep defaults")
	}
	if opts.Scale["vowel"] != 9 || opts.Scale["nasal"] != 3 {
		t.Errorf("sonority scale not replaced: %v", opts.Scale)
	}
}

func TestLoadOptionsBadYAML(t *testing.T) {
	if _, err := LoadOptions(strings.NewReader("max_onset: [oops")); err == nil {
		t.Errorf("expected an error for malformed YAML")
	}
}
