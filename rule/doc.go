/*
Package rule parses sound-change rules and segment sequences into
immutable values.

A rule in the notation

	ANTE > POST / CONTEXT

is lexed into whitespace-separated tokens and parsed into a Rule value
over a closed token sum: concrete and class-partial segments,
boundaries, the focus position, the empty (deletion/insertion) token,
back-references with feature modifiers, choices, correspondence sets,
quantifiers, negations and syllable-position conditions. Parsing either
succeeds completely or fails with a ParseError naming the offending
token; a parsed Rule is never mutated afterwards.

Sequence parsing is total: unknown graphemes become sounds with empty
feature sets rather than errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package rule

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.rule'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.rule")
}
