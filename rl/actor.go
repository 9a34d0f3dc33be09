// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import "github.com/emer/simbrain/network"

// Actor learns the fan-in of the output unit chosen on the previous step:
// w += alpha * DA * x(t-1), so that actions followed by a positive TD error
// become more likely to win.
type Actor struct {
	fanIn
	Winner int     `inactive:"+" desc:"output unit chosen on the previous step -- -1 if none"`
	DA     float32 `inactive:"+" desc:"dopamine (TD error) value"`
}

// NewActor returns an actor over given projections into the output group
func NewActor(pjs ...*network.Prjn) (*Actor, error) {
	ac := &Actor{Winner: -1}
	if err := ac.config(pjs); err != nil {
		return nil, err
	}
	return ac, nil
}

func (ac *Actor) GetDA() float32   { return ac.DA }
func (ac *Actor) SetDA(da float32) { ac.DA = da }

// Init resets the saved activations and winner
func (ac *Actor) Init() {
	ac.init()
	ac.Winner = -1
	ac.DA = 0
}

// Learn updates the previous winner's fan-in from DA
func (ac *Actor) Learn(tp *TDParams) {
	if ac.Winner < 0 {
		return
	}
	ac.learnUnit(ac.Winner, tp.Alpha*ac.DA)
}

// Step saves the winner and current sending activations for the next step
func (ac *Actor) Step(winner int) {
	ac.Winner = winner
	ac.save()
}
