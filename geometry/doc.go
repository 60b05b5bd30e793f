/*
Package geometry models a feature-geometry tree after Clements & Hume
(1995). Feature contrasts live in the leaves of the tree as pairs of
polar-opposite labels; inner nodes group contrasts into articulatory
dimensions. Two things follow from the tree shape:

■ mutual exclusivity: the two labels of a feature node exclude each
other, and sibling feature nodes under the same parent exclude each
other's labels. Feature arithmetic uses this to drop stale contrasts
when a new one is asserted.

■ distance: the tree-edge distance between two labels, and a weighted
distance between whole sounds in which deeper (more specific) contrasts
contribute less.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package geometry

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.geometry'.
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.geometry")
}
