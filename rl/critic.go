// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"github.com/emer/simbrain/network"
)

// Critic learns the value V(t) = sum(w * x(t)) over projections into one
// receiving unit.  Learning is w += alpha * DA * e, where the eligibility
// e = gamma * lambda * e + x(t-1) (just x(t-1) when lambda is 0).
type Critic struct {
	fanIn
	Ri     int         `desc:"index of the value unit in the receiving group"`
	Traces [][]float32 `desc:"eligibility trace for each synapse of each projection"`
	Val    float32     `inactive:"+" desc:"value estimate computed on this step"`
	ValPrv float32     `inactive:"+" desc:"value estimate of the previous step"`
	DA     float32     `inactive:"+" desc:"dopamine (TD error) value"`
}

// NewCritic returns a critic over given projections into unit ri
func NewCritic(ri int, pjs ...*network.Prjn) (*Critic, error) {
	cr := &Critic{Ri: ri}
	if err := cr.config(pjs); err != nil {
		return nil, err
	}
	cr.Traces = make([][]float32, len(pjs))
	for i, pj := range pjs {
		cr.Traces[i] = make([]float32, len(pj.Syns))
	}
	return cr, nil
}

func (cr *Critic) GetDA() float32   { return cr.DA }
func (cr *Critic) SetDA(da float32) { cr.DA = da }

// Init resets traces, saved activations and values, e.g., at the start of a trial
func (cr *Critic) Init() {
	cr.init()
	for _, tr := range cr.Traces {
		for i := range tr {
			tr[i] = 0
		}
	}
	cr.Val = 0
	cr.ValPrv = 0
	cr.DA = 0
}

// Value computes and returns the value estimate from the current sending activations
func (cr *Critic) Value() float32 {
	cr.Val = cr.net(cr.Ri)
	return cr.Val
}

// Learn updates the weights from DA and the eligibility traces
func (cr *Critic) Learn(tp *TDParams) {
	decay := tp.TraceDecay()
	for i, pj := range cr.Prjns {
		if !pj.Learn {
			continue
		}
		tr := cr.Traces[i]
		if len(tr) != len(pj.Syns) {
			tr = make([]float32, len(pj.Syns))
			cr.Traces[i] = tr
		}
		for _, idx := range pj.RecvSyns(cr.Ri) {
			tr[idx] = decay*tr[idx] + cr.Prv[i][pj.Syns[idx].Si]
			pj.DWt(idx, tp.Alpha*cr.DA*tr[idx])
		}
	}
}

// Step saves the current value and sending activations for the next step
func (cr *Critic) Step() {
	cr.ValPrv = cr.Val
	cr.save()
}
