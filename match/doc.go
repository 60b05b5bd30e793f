/*
Package match evaluates rule patterns against segment sequences.

The matcher consumes pattern tokens in order, binding each to
consecutive elements of the input starting at an offset. Backtracking
is depth-first: greedy one-or-more quantifiers retreat one repetition
at a time, optional quantifiers try the zero-width reading first, and
choices are attempted left to right. Negation is single-element by
construction. The matcher borrows the sequence and the pattern and
allocates nothing persistent beyond the returned result.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package match

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.match'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.match")
}
