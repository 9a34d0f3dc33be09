// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/simbrain/network"
)

// RWDelta is the Rescorla-Wagner prediction error: actual - predicted
func RWDelta(actual, pred float32) float32 {
	return actual - pred
}

// Predictor learns to predict the next activations of a target group from
// projections into a prediction group of the same size, by the delta rule:
// w += Lrate * (target(t) - pred(t-1)) * x(t-1).  The mean absolute error
// is its DA.
type Predictor struct {
	fanIn
	Target *network.Group `desc:"group whose next activations are predicted"`
	Lrate  float32        `def:"0.1" desc:"learning rate"`
	Pred   []float32      `inactive:"+" desc:"prediction made on the previous step"`
	Err    []float32      `inactive:"+" desc:"prediction error for each unit on this step"`
	DA     float32        `inactive:"+" desc:"mean absolute prediction error"`
}

// NewPredictor returns a predictor of target over given projections
func NewPredictor(target *network.Group, pjs ...*network.Prjn) (*Predictor, error) {
	pr := &Predictor{Target: target, Lrate: 0.1}
	if err := pr.config(pjs); err != nil {
		return nil, err
	}
	n := target.NUnits()
	if len(pjs) > 0 && pjs[0].Recv.NUnits() != n {
		return nil, fmt.Errorf("Predictor: prediction group %s has %d units, target %s has %d", pjs[0].Recv.Nm, pjs[0].Recv.NUnits(), target.Nm, n)
	}
	pr.Pred = make([]float32, n)
	pr.Err = make([]float32, n)
	return pr, nil
}

func (pr *Predictor) GetDA() float32   { return pr.DA }
func (pr *Predictor) SetDA(da float32) { pr.DA = da }

// Init resets the saved activations and prediction
func (pr *Predictor) Init() {
	pr.init()
	for i := range pr.Pred {
		pr.Pred[i] = 0
		pr.Err[i] = 0
	}
	pr.DA = 0
}

// Error computes the error of the previous prediction against the
// current target activations, returning the mean absolute error
func (pr *Predictor) Error() float32 {
	sum := float32(0)
	for i := range pr.Err {
		pr.Err[i] = RWDelta(pr.Target.Neurons[i].Act, pr.Pred[i])
		sum += math32.Abs(pr.Err[i])
	}
	if len(pr.Err) > 0 {
		pr.DA = sum / float32(len(pr.Err))
	}
	return pr.DA
}

// Learn applies the delta rule for each predicting unit
func (pr *Predictor) Learn() {
	for ri, er := range pr.Err {
		if er != 0 {
			pr.learnUnit(ri, pr.Lrate*er)
		}
	}
}

// Step makes the next prediction from the current sending activations,
// sets it as the activation of the prediction group, and saves the
// sending activations for the next step
func (pr *Predictor) Step() {
	for i := range pr.Pred {
		pr.Pred[i] = pr.net(i)
	}
	if len(pr.Prjns) > 0 {
		pr.Prjns[0].Recv.SetActs(pr.Pred)
	}
	pr.save()
}
