// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import "github.com/emer/emergent/erand"

// LinearParams implement the linear update rule:
// val = Slope * (input + bias) (+ noise), optionally rectified at 0,
// then clipped to Bound if clipping is on.
type LinearParams struct {
	Slope float32      `def:"1" desc:"multiplier on input + bias"`
	Relu  bool         `desc:"rectify: values below 0 are set to 0 before clipping"`
	Bound BoundsParams `view:"inline" desc:"clipping bounds -- [-1, 1] by default"`
	Noise NoiseParams  `view:"inline" desc:"additive noise, applied before rectification and clipping"`
}

func (lp *LinearParams) RuleType() RuleTypes { return Linear }

func (lp *LinearParams) Defaults() {
	lp.Slope = 1
	lp.Relu = false
	lp.Bound.Set(true, -1, 1)
	lp.Noise.Defaults()
	lp.Update()
}

func (lp *LinearParams) Update() {
	lp.Noise.Update()
}

func (lp *LinearParams) Bounds() *BoundsParams  { return &lp.Bound }
func (lp *LinearParams) SetRand(rnd erand.Rand) { lp.Noise.SetRand(rnd) }

// ActFmInput computes the linear activation of in + bias.
func (lp *LinearParams) ActFmInput(in, act, bias float32) float32 {
	val := lp.Noise.AddNoise(lp.Slope * (in + bias))
	if lp.Relu && val < 0 {
		val = 0
	}
	return lp.Bound.ClipAct(val)
}

// Deriv returns the slope within the unclipped range, else 0
func (lp *LinearParams) Deriv(val float32) float32 {
	if lp.Relu && val < 0 {
		return 0
	}
	if lp.Bound.Clip {
		out := lp.Slope * val
		if out <= lp.Bound.Range.Min || out >= lp.Bound.Range.Max {
			return 0
		}
	}
	return lp.Slope
}
