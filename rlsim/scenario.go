// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rlsim

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/emer/simbrain/odorworld"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

// Placement is the starting location and heading of an entity
type Placement struct {
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Heading float32 `yaml:"heading"`
}

// EntitySpec is an entity placed by a scenario.  Smell and Dispersion
// override the defaults for its type.
type EntitySpec struct {
	Name       string                `yaml:"name"`
	Type       odorworld.EntityTypes `yaml:"type"`
	X          float32               `yaml:"x"`
	Y          float32               `yaml:"y"`
	Smell      []float32             `yaml:"smell,omitempty"`
	Dispersion float32               `yaml:"dispersion,omitempty"`
}

// Scenario is the arrangement of the world for a set of trials
type Scenario struct {
	Name     string       `yaml:"name"`
	Desc     string       `yaml:"desc"`
	Mouse    Placement    `yaml:"mouse"`
	Entities []EntitySpec `yaml:"entities"`
	Goals    []string     `yaml:"goals"`
}

// Validate checks that names are unique and that the goals are entities
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("Scenario: missing name")
	}
	nms := make(map[string]bool, len(sc.Entities))
	for _, es := range sc.Entities {
		if es.Name == "" || es.Name == MouseName || nms[es.Name] {
			return fmt.Errorf("Scenario %s: invalid or duplicate entity name %q", sc.Name, es.Name)
		}
		nms[es.Name] = true
	}
	if len(sc.Goals) == 0 {
		return fmt.Errorf("Scenario %s: no goals", sc.Name)
	}
	for _, gl := range sc.Goals {
		if !nms[gl] {
			return fmt.Errorf("Scenario %s: goal %q is not an entity", sc.Name, gl)
		}
	}
	return nil
}

// ReadScenarios reads a YAML list of scenarios, validating each.
// Scenario names must be unique.
func ReadScenarios(r io.Reader) ([]*Scenario, error) {
	var scs []*Scenario
	if err := yaml.NewDecoder(r).Decode(&scs); err != nil {
		return nil, fmt.Errorf("ReadScenarios: %w", err)
	}
	nms := make(map[string]bool, len(scs))
	for i, sc := range scs {
		if sc == nil {
			return nil, fmt.Errorf("ReadScenarios: empty scenario entry at index %d", i)
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		if nms[sc.Name] {
			return nil, fmt.Errorf("ReadScenarios: duplicate scenario name %q", sc.Name)
		}
		nms[sc.Name] = true
	}
	return scs, nil
}

// OpenScenarios reads scenarios from a YAML file
func OpenScenarios(filename string) ([]*Scenario, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadScenarios(fp)
}

// DefaultScenarios returns the built-in scenarios
func DefaultScenarios() []*Scenario {
	var scs []*Scenario
	if err := yaml.Unmarshal(defaultScenarios, &scs); err != nil {
		panic(err) // embedded file is fixed
	}
	return scs
}

// ScenarioByName returns the scenario of given name
func ScenarioByName(scs []*Scenario, name string) (*Scenario, error) {
	for _, sc := range scs {
		if sc != nil && sc.Name == name {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("no scenario named %q", name)
}

// DefaultSmell returns the smell vector of an entity type: one component
// per type of object, with the last component the reward value
func DefaultSmell(typ odorworld.EntityTypes) []float32 {
	switch typ {
	case odorworld.Swiss:
		return []float32{1, 0, 0, 0, 0, 1}
	case odorworld.Candle:
		return []float32{0, 1, 0, 0, 0, -1}
	case odorworld.Flower:
		return []float32{0, 0, 1, 0, 0, 1}
	case odorworld.Fish:
		return []float32{0, 0, 0, 1, 0, 0}
	case odorworld.Bell:
		return []float32{0, 0, 0, 0, 1, 0}
	}
	return nil
}
