package syllable

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML shape of a syllabifier configuration.
// Absent keys keep their defaults.
type fileConfig struct {
	AllowSCluster *bool          `yaml:"allow_s_cluster"`
	MaxOnset      *int           `yaml:"max_onset"`
	MaxCoda       *int           `yaml:"max_coda"`
	Sonority      map[string]int `yaml:"sonority"`
}

// LoadOptions reads a YAML syllabifier configuration, merging it over
// DefaultOptions. A sonority map in the file replaces the default scale
// wholesale.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	raw, err := io.ReadAll(r)
	if err != nil {
		return opts, fmt.Errorf("reading syllabifier config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return opts, fmt.Errorf("parsing syllabifier config: %w", err)
	}
	if cfg.AllowSCluster != nil {
		opts.AllowSCluster = *cfg.AllowSCluster
	}
	if cfg.MaxOnset != nil {
		opts.MaxOnset = *cfg.MaxOnset
	}
	if cfg.MaxCoda != nil {
		opts.MaxCoda = *cfg.MaxCoda
	}
	if cfg.Sonority != nil {
		opts.Scale = Scale(cfg.Sonority)
	}
	tracer().Infof("syllabifier config: onset≤%d coda≤%d s-cluster=%v", opts.MaxOnset, opts.MaxCoda, opts.AllowSCluster)
	return opts, nil
}

// LoadOptionsFile reads a YAML syllabifier configuration from a file.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultOptions(), fmt.Errorf("opening syllabifier config: %w", err)
	}
	defer f.Close()
	return LoadOptions(f)
}
