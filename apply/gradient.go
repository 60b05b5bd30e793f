package apply

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"math/rand"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/rule"
)

// Gradient applies a rule probabilistically: each licensed site is
// rewritten with probability strength (clamped to [0,1]), decided by a
// deterministic seeded generator. Strength ≥ 1 degenerates to Forward,
// strength ≤ 0 to the identity. The only error is a rule that does not
// parse.
func Gradient(seq alteruphono.Sequence, ruleText string, strength float64, seed int64, sys *feature.System) (alteruphono.Sequence, error) {
	var err error
	if sys == nil {
		if sys, err = feature.Default(); err != nil {
			return nil, err
		}
	}
	r, err := rule.NewParser(sys).ParseRule(ruleText)
	if err != nil {
		return nil, err
	}
	switch {
	case strength >= 1:
		return Forward(seq, r, sys), nil
	case strength <= 0:
		return seq.Clone(), nil
	}
	rng := rand.New(rand.NewSource(seed))
	tracer().Debugf("gradient application of %q at strength %.3f", r.Source, strength)
	return scan(seq, r, sys, func() bool { return rng.Float64() < strength }), nil
}
