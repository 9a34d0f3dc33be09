// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import "github.com/emer/emergent/erand"

// WTAParams configure winner-take-all selection for a group: the unit with
// the largest net input wins (first one on ties), and with UseRandom a
// uniformly random unit wins instead with probability RandomProb.
type WTAParams struct {
	On         bool    `desc:"use winner-take-all selection instead of the update rule"`
	WinAct     float32 `viewif:"On" def:"1" desc:"activation of the winning unit"`
	LoseAct    float32 `viewif:"On" def:"0" desc:"activation of all other units"`
	UseRandom  bool    `viewif:"On" desc:"with probability RandomProb, choose the winner at random -- used for exploration"`
	RandomProb float32 `viewif:"UseRandom" def:"0.1" min:"0" max:"1" desc:"probability of choosing a random winner"`

	rnd erand.Rand
}

func (wt *WTAParams) Defaults() {
	wt.WinAct = 1
	wt.LoseAct = 0
	wt.RandomProb = 0.1
}

func (wt *WTAParams) Update() {
}

// SetRand sets a private random source -- nil uses the global source
func (wt *WTAParams) SetRand(rnd erand.Rand) {
	wt.rnd = rnd
}

// RandomWin returns true if this update should pick a random winner
func (wt *WTAParams) RandomWin() bool {
	if !wt.UseRandom || wt.RandomProb <= 0 {
		return false
	}
	return erand.BoolP32(wt.RandomProb, -1, randOpt(wt.rnd)...)
}

// randIdx returns a random index in [0, n)
func (wt *WTAParams) randIdx(n int) int {
	return int(erand.IntZeroN(int64(n), -1, randOpt(wt.rnd)...))
}

// MaxInputIdx returns the index of the unit with the largest net input,
// skipping units that are off.  -1 if there are none.
func MaxInputIdx(gp *Group) int {
	mx := -1
	var mxv float32
	for ni := range gp.Neurons {
		nrn := &gp.Neurons[ni]
		if nrn.IsOff() {
			continue
		}
		if mx < 0 || nrn.Input > mxv {
			mx = ni
			mxv = nrn.Input
		}
	}
	return mx
}

// Select picks the winner for the group from the current net inputs and
// sets all activations: winner = WinAct, others = LoseAct.
// Returns the winner index, -1 for an empty group.
func (wt *WTAParams) Select(gp *Group) int {
	nn := len(gp.Neurons)
	if nn == 0 {
		return -1
	}
	var win int
	if wt.RandomWin() {
		win = wt.randIdx(nn)
	} else {
		win = MaxInputIdx(gp)
	}
	for ni := range gp.Neurons {
		nrn := &gp.Neurons[ni]
		if ni == win {
			nrn.Act = wt.WinAct
		} else {
			nrn.Act = wt.LoseAct
		}
	}
	return win
}
