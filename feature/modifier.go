package feature

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"fmt"
	"strings"
)

// Modifier is one entry of a feature-modifier list: add a label
// ("+voiced", bare "voiced") or remove one ("-voiced"). Removal drops
// the named label and only that label; addition additionally drops the
// label's geometric siblings, see System.ApplyModifiers.
type Modifier struct {
	Label  string
	Remove bool
}

func (m Modifier) String() string {
	if m.Remove {
		return "-" + m.Label
	}
	return "+" + m.Label
}

// ParseModifiers parses a modifier list of the form "[+f,-g,h]". The
// surrounding brackets are optional; entries are comma-separated. An
// entry with no label is an error.
func ParseModifiers(text string) ([]Modifier, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	parts := strings.Split(text, ",")
	mods := make([]Modifier, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		remove := false
		switch {
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		case strings.HasPrefix(part, "-"):
			part = part[1:]
			remove = true
		}
		if part == "" {
			return nil, fmt.Errorf("empty label in modifier list")
		}
		mods = append(mods, Modifier{Label: part, Remove: remove})
	}
	return mods, nil
}

// InvertModifiers flips every modifier: additions become removals and
// removals become additions. This is the inversion used when a rule is
// applied backward.
func InvertModifiers(mods []Modifier) []Modifier {
	if mods == nil {
		return nil
	}
	inverted := make([]Modifier, len(mods))
	for i, m := range mods {
		inverted[i] = Modifier{Label: m.Label, Remove: !m.Remove}
	}
	return inverted
}

// FormatModifiers renders a modifier list back to its bracketed source
// form.
func FormatModifiers(mods []Modifier) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}
