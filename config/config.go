// SPDX-License-Identifier: MIT
// Package config loads solver options from YAML.
//
// A document names one section per solver; each section overlays the
// solver's DefaultOptions, so omitted keys keep their defaults:
//
//	itml:
//	  gamma: 2
//	  bounds: [0.5, 4]
//	sdml:
//	  policy: shrink
//	mmc:
//	  diagonal: true
//	lsml:
//	  max_iter: 200
//	  verbose: true
//
// Unknown keys are rejected. Loggers and observers are not part of the
// document; attach them with WithTrace.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmetric/itml"
	"github.com/katalvlaran/lvmetric/lsml"
	"github.com/katalvlaran/lvmetric/mmc"
	"github.com/katalvlaran/lvmetric/sdml"
	"github.com/katalvlaran/lvmetric/solver"
)

// Solvers holds the options of every solver.
type Solvers struct {
	ITML itml.Options `yaml:"itml"`
	SDML sdml.Options `yaml:"sdml"`
	MMC  mmc.Options  `yaml:"mmc"`
	LSML lsml.Options `yaml:"lsml"`
}

// Default returns every solver at its DefaultOptions.
func Default() Solvers {
	return Solvers{
		ITML: itml.DefaultOptions(),
		SDML: sdml.DefaultOptions(),
		MMC:  mmc.DefaultOptions(),
		LSML: lsml.DefaultOptions(),
	}
}

// Parse decodes a YAML document over Default and validates the result.
// An empty document yields Default. Errors wrap solver.ErrConfiguration.
func Parse(data []byte) (Solvers, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Solvers{}, solver.Config("config: parse", err)
	}
	if err := cfg.Validate(); err != nil {
		return Solvers{}, err
	}

	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Solvers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Solvers{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Solvers{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate runs every section's Validate and returns the first failure.
func (s Solvers) Validate() error {
	if err := s.ITML.Validate(); err != nil {
		return err
	}
	if err := s.SDML.Validate(); err != nil {
		return err
	}
	if err := s.MMC.Validate(); err != nil {
		return err
	}

	return s.LSML.Validate()
}

// WithTrace returns a copy of s with t installed in every section.
// The Verbose flag of t replaces the per-section values.
func (s Solvers) WithTrace(t solver.Trace) Solvers {
	s.ITML.Trace = t
	s.SDML.Trace = t
	s.MMC.Trace = t
	s.LSML.Trace = t

	return s
}

// Marshal encodes s as YAML. Parse(Marshal(s)) reproduces s without its
// loggers and observers.
func (s Solvers) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return out, nil
}
