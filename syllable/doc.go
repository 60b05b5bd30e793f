/*
Package syllable groups a segment sequence into onset/nucleus/coda
spans, following the Sonority Sequencing Principle: onsets rise in
sonority toward the nucleus, codas fall away from it. Sonority is read
off a configurable scale keyed by feature labels; the default scale
ranks vowels over approximants and laterals, over trills and taps, over
nasals, over fricatives, over stops.

Syllabification is a pure function: it allocates a role map over the
input and touches no global state. Rules that condition on syllable
position consult the map through the matcher.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package syllable

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.syllable'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.syllable")
}
