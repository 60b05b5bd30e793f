/*
Package apply executes sound-change rules over segment sequences.

Forward application simulates change: a single deterministic
left-to-right pass that rewrites every context-licensed match of the
ante pattern and never re-scans its own output. Backward application
enumerates possible proto-forms: every position where the post pattern
matches yields a reconstruction with the ante put back in its place and
back-reference modifiers inverted; reconstructions whose context fails
or which do not derive the input again forward are dropped, and
duplicates are removed. The input itself is always among the
candidates, since the rule need not have applied; a rule with a negated
ante yields nothing else. Gradient application is a thin wrapper that
applies the forward rewrite at each site with a seeded probability.

Application is total on parse-valid inputs: nothing here returns an
error for a rule that parsed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package apply

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.apply'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.apply")
}
