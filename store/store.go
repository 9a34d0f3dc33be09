// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps the history of simulation runs and their trials
// in a SQLite database.
package store

import "time"

// Run is one batch of trials, with the parameters it was run with
type Run struct {
	ID       int64     `desc:"database id -- set by BeginRun"`
	Scenario string    `desc:"name of the scenario run"`
	Seed     int64     `desc:"random seed"`
	Gamma    float32   `desc:"TD discount factor"`
	Lambda   float32   `desc:"eligibility trace decay"`
	Epsilon  float32   `desc:"exploration probability"`
	Alpha    float32   `desc:"learning rate"`
	Started  time.Time `desc:"start time"`
	NTrials  int       `desc:"number of trials recorded -- computed by Runs"`
}

// Trial is the summary of one trial of a run
type Trial struct {
	RunID   int64   `desc:"run this trial belongs to"`
	Trial   int     `desc:"trial number within the run"`
	Steps   int     `desc:"number of ticks in the trial"`
	Reward  float32 `desc:"summed reward over the trial"`
	TDError float32 `desc:"mean absolute TD error over the trial"`
	Goal    bool    `desc:"true if the goal was reached, false if stopped or out of steps"`
	Secs    float64 `desc:"wall-clock duration in seconds"`
}
