package resources

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/sounds.tsv data/features.tsv data/classes.tsv
var dataFS embed.FS

// ResourceError reports a missing or malformed resource table, or a
// uniqueness violation within one.
type ResourceError struct {
	Resource string // table name ("sounds", "features", "classes")
	Line     int    // 1-based data line, 0 when not line-specific
	Msg      string
}

func (e *ResourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("resource %s, line %d: %s", e.Resource, e.Line, e.Msg)
	}
	return fmt.Sprintf("resource %s: %s", e.Resource, e.Msg)
}

// Class is one row of the classes table: a one-letter sound class with
// its required features and its explicit member graphemes.
type Class struct {
	Letter      string
	Description string
	Features    string   // space-separated feature values, conjunctive
	Graphemes   []string // explicit members, in table order
}

// --- Table reading ----------------------------------------------------------

// readTable parses a tab-separated table with a header row and a fixed
// column count.
func readTable(name string, columns int) ([][]string, error) {
	f, err := dataFS.Open("data/" + name + ".tsv")
	if err != nil {
		return nil, &ResourceError{Resource: name, Msg: "missing resource: " + err.Error()}
	}
	defer f.Close()
	return parseTable(name, f, columns)
}

func parseTable(name string, r io.Reader, columns int) ([][]string, error) {
	rd := csv.NewReader(r)
	rd.Comma = '\t'
	rd.LazyQuotes = true
	rd.FieldsPerRecord = columns
	records, err := rd.ReadAll()
	if err != nil {
		return nil, &ResourceError{Resource: name, Msg: "malformed table: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, &ResourceError{Resource: name, Msg: "empty table"}
	}
	tracer().Debugf("resource %s: %d data rows", name, len(records)-1)
	return records[1:], nil // drop header
}

// --- Memoized loaders -------------------------------------------------------

var soundsOnce struct {
	sync.Once
	m   map[string]string
	err error
}

// Sounds returns the grapheme → descriptive-name map. The name of a
// sound doubles as its feature-value list.
func Sounds() (map[string]string, error) {
	soundsOnce.Do(func() {
		rows, err := readTable("sounds", 2)
		if err != nil {
			soundsOnce.err = err
			return
		}
		m := make(map[string]string, len(rows))
		for i, row := range rows {
			grapheme, name := row[0], row[1]
			if grapheme == "" {
				soundsOnce.err = &ResourceError{Resource: "sounds", Line: i + 1, Msg: "empty grapheme"}
				return
			}
			if _, dup := m[grapheme]; dup {
				soundsOnce.err = &ResourceError{Resource: "sounds", Line: i + 1,
					Msg: "duplicate grapheme " + grapheme}
				return
			}
			m[grapheme] = name
		}
		soundsOnce.m = m
	})
	return soundsOnce.m, soundsOnce.err
}

var featuresOnce struct {
	sync.Once
	m   map[string]string
	err error
}

// Features returns the value → feature alias map, e.g. "voiced" →
// "phonation". Every value belongs to exactly one feature.
func Features() (map[string]string, error) {
	featuresOnce.Do(func() {
		rows, err := readTable("features", 2)
		if err != nil {
			featuresOnce.err = err
			return
		}
		m := make(map[string]string, len(rows))
		for i, row := range rows {
			value, feat := row[0], row[1]
			if value == "" || feat == "" {
				featuresOnce.err = &ResourceError{Resource: "features", Line: i + 1, Msg: "empty value or feature"}
				return
			}
			if _, dup := m[value]; dup {
				featuresOnce.err = &ResourceError{Resource: "features", Line: i + 1,
					Msg: "duplicate value " + value}
				return
			}
			m[value] = feat
		}
		featuresOnce.m = m
	})
	return featuresOnce.m, featuresOnce.err
}

var classesOnce struct {
	sync.Once
	m   map[string]Class
	err error
}

// Classes returns the class-letter → class map.
func Classes() (map[string]Class, error) {
	classesOnce.Do(func() {
		rows, err := readTable("classes", 4)
		if err != nil {
			classesOnce.err = err
			return
		}
		m := make(map[string]Class, len(rows))
		for i, row := range rows {
			letter := row[0]
			if letter == "" || letter != strings.ToUpper(letter) {
				classesOnce.err = &ResourceError{Resource: "classes", Line: i + 1,
					Msg: "class letter must be uppercase: " + letter}
				return
			}
			if _, dup := m[letter]; dup {
				classesOnce.err = &ResourceError{Resource: "classes", Line: i + 1,
					Msg: "duplicate class " + letter}
				return
			}
			m[letter] = Class{
				Letter:      letter,
				Description: row[1],
				Features:    row[2],
				Graphemes:   strings.Fields(row[3]),
			}
		}
		classesOnce.m = m
	})
	return classesOnce.m, classesOnce.err
}

// --- Convenience derivations ------------------------------------------------

// FeatureValues inverts the features table into feature → sorted values.
func FeatureValues() (map[string][]string, error) {
	features, err := Features()
	if err != nil {
		return nil, err
	}
	inv := make(map[string][]string)
	for value, feat := range features {
		inv[feat] = append(inv[feat], value)
	}
	for feat := range inv {
		sort.Strings(inv[feat])
	}
	return inv, nil
}

// ClassGraphemes maps each class letter to its member graphemes.
func ClassGraphemes() (map[string][]string, error) {
	classes, err := Classes()
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string, len(classes))
	for letter, cls := range classes {
		m[letter] = cls.Graphemes
	}
	return m, nil
}

// ClassFeatures maps each class letter to its required-feature string.
func ClassFeatures() (map[string]string, error) {
	classes, err := Classes()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(classes))
	for letter, cls := range classes {
		m[letter] = cls.Features
	}
	return m, nil
}
