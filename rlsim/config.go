// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rlsim

import (
	"fmt"
	"log"

	"github.com/goki/ki/kit"
	"github.com/goki/ki/toml"
)

// Config has the parameters for running the simulation.  The TD and trial
// parameters are the initial values of the ControlPanel fields.
type Config struct {
	NTrials      int     `def:"5" min:"0" desc:"number of trials per Run"`
	Alpha        float32 `def:"5" min:"0" desc:"learning rate"`
	Lambda       float32 `def:"0" min:"0" max:"1" desc:"eligibility trace decay"`
	Epsilon      float32 `def:"0.25" min:"0" max:"1" desc:"probability of choosing a random vehicle instead of the winner"`
	Gamma        float32 `def:"0.4" min:"0" max:"1" desc:"discount factor"`
	HitRadius    float32 `def:"70" desc:"the goal is reached when the distance to a goal entity, truncated to an integer, is below this"`
	MaxSteps     int     `def:"10000" desc:"maximum ticks per trial -- 0 = no limit, only the goal or Stop ends a trial"`
	PredLrate    float32 `def:"0.1" desc:"learning rate of the sensory prediction groups"`
	Seed         int64   `def:"1" desc:"random seed for weights, exploration and noise"`
	Scenario     string  `def:"All-Three" desc:"name of the scenario to load"`
	ScenarioFile string  `desc:"optional YAML file of scenarios, replacing the built-in ones"`
	Width        float32 `def:"600" desc:"width of the world"`
	Height       float32 `def:"400" desc:"height of the world"`
	LogFile      string  `desc:"if set, the trial log is saved to this CSV file after each Run"`
	DBFile       string  `desc:"if set, runs and trials are recorded in this SQLite database"`
	WtsFile      string  `desc:"if set, the network weights are saved to this file after each Run (.gz for gzip)"`
	Verbose      bool    `desc:"log progress for each trial"`
}

// Defaults sets the default values from the def tags
func (cfg *Config) Defaults() {
	if err := kit.SetFromDefaultTags(cfg); err != nil {
		log.Println(err)
	}
}

// LoadConfig returns the default config, with values from the given TOML
// file if it is non-empty.  Fields absent from the file keep their defaults.
func LoadConfig(file string) (*Config, error) {
	cfg := &Config{}
	if err := kit.SetFromDefaultTags(cfg); err != nil {
		return nil, err
	}
	if file == "" {
		return cfg, nil
	}
	if err := toml.Open(cfg, file); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	return cfg, nil
}
