/*
Package alterepl/main provides an interactive command line tool for the
sound-change engine. Users set a current rule and apply it forward,
backward or gradiently to segment sequences; syllabification, sound
distances and JSON output are available for inspection. The REPL serves
as a sandbox for developing rule sets before running them in batch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alteruphono.repl'
func tracer() tracing.Trace {
	return tracing.Select("alteruphono.repl")
}
