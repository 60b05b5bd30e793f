/*
Package alteruphono is a sound-change engine for historical linguistics.

Sound change is modeled with rewrite rules in the classical notation

	ANTE > POST / CONTEXT

where ANTE is a pattern over phonological segments, POST its
replacement, and CONTEXT an optional environment with a focus position.
Rules are applied in two directions: forward, simulating language
change, and backward, enumerating the proto-forms that could have
produced an observed form. Package structure is as follows:

■ resources: embedded tabular data (sound inventory, feature-value
aliases, sound classes) with memoized loaders.

■ geometry: a feature-geometry tree (after Clements & Hume 1995)
defining mutual exclusivity between contrasts and weighted distances
between sounds.

■ feature: bidirectional grapheme↔feature-set systems, feature
arithmetic under geometry constraints, and a process-wide registry of
named systems.

■ rule: the rule and sequence parsers, producing immutable rule values
over a closed token sum type.

■ syllable: a small syllabifier based on the Sonority Sequencing
Principle, for rules that condition on syllable position.

■ match: the pattern matcher, with backtracking over quantifiers,
choices, correspondence sets, negation and syllable conditions.

■ apply: forward, backward and gradient rule application.

The base package contains the shared data model used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/
package alteruphono
