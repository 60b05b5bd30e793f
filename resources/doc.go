/*
Package resources loads the read-only tabular data the engine is built
on: the sound inventory (grapheme → descriptive name), the feature-value
alias table (value → feature) and the sound classes (class letter →
description, required features, member graphemes).

The default tables ship embedded in the binary. Loaders are memoized for
process lifetime; the returned maps are logically immutable and must not
be modified by callers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.resources'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.resources")
}
