/*
Package feature implements feature systems: named, bidirectional
mappings between graphemes and feature sets, together with feature
arithmetic under the constraints of the feature geometry.

A system answers four kinds of questions: what features a grapheme has,
which grapheme best renders a feature set, whether a partial feature set
subsumes a concrete one, and how far apart two sounds are. A
process-wide registry holds systems by name; the default system is
constructed lazily from the embedded resource tables on first use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package feature

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.feature'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.feature")
}
