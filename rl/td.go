// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

// TDParams are the temporal differences learning parameters
type TDParams struct {
	Gamma   float32 `def:"0.4" min:"0" max:"1" desc:"discount factor on the next value estimate"`
	Lambda  float32 `def:"0" min:"0" max:"1" desc:"eligibility trace decay -- 0 = no traces, only the previous inputs are eligible"`
	Alpha   float32 `def:"5" min:"0" desc:"learning rate"`
	Epsilon float32 `def:"0.25" min:"0" max:"1" desc:"probability of choosing a random output instead of the winner, for exploration"`
}

func (tp *TDParams) Defaults() {
	tp.Gamma = 0.4
	tp.Lambda = 0
	tp.Alpha = 5
	tp.Epsilon = 0.25
}

// TraceDecay is the per-step decay of eligibility traces: Gamma * Lambda
func (tp *TDParams) TraceDecay() float32 {
	return tp.Gamma * tp.Lambda
}

// TDError returns the temporal differences error: reward + gamma * vNext - vPrev,
// where vNext is the value estimate for the current step and vPrev that of
// the previous step.
func TDError(reward, vNext, vPrev, gamma float32) float32 {
	return reward + gamma*vNext - vPrev
}

// TDError returns the temporal differences error using Gamma
func (tp *TDParams) TDError(reward, vNext, vPrev float32) float32 {
	return TDError(reward, vNext, vPrev, tp.Gamma)
}
