// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/goki/ki/kit"
)

// DecayTypes determine how the decay magnitude is computed
type DecayTypes int32

//go:generate stringer -type=DecayTypes

var KiT_DecayTypes = kit.Enums.AddEnum(DecayTypesN, kit.NotBitFlag, nil)

func (ev DecayTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *DecayTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Relative decay is a fraction of the distance to the baseline
	Relative DecayTypes = iota

	// Absolute decay is a fixed amount per update
	Absolute

	DecayTypesN
)

// DecayParams implement standard decay of activation toward a baseline.
// The summed value in + act + bias is moved toward BaseLine by either
// Fraction * |val - BaseLine| (Relative) or Amount (Absolute), and never
// past BaseLine.
type DecayParams struct {
	Type     DecayTypes   `desc:"Relative (fraction of the distance to the baseline) vs. Absolute (fixed amount) decay"`
	Amount   float32      `def:"0.1" viewif:"Type=Absolute" desc:"amount by which the activation is changed each update for Absolute decay"`
	Fraction float32      `def:"0.1" viewif:"Type=Relative" min:"0" max:"1" desc:"proportion of the distance between the current value and the baseline by which the activation is changed each update for Relative decay"`
	BaseLine float32      `def:"0" desc:"value toward which activation decays"`
	Bound    BoundsParams `view:"inline" desc:"clipping bounds -- [-1, 1] by default"`
	Noise    NoiseParams  `view:"inline" desc:"additive noise, applied before clipping"`
}

func (dp *DecayParams) RuleType() RuleTypes { return Decay }

func (dp *DecayParams) Defaults() {
	dp.Type = Relative
	dp.Amount = 0.1
	dp.Fraction = 0.1
	dp.BaseLine = 0
	dp.Bound.Set(true, -1, 1)
	dp.Noise.Defaults()
	dp.Update()
}

func (dp *DecayParams) Update() {
	dp.Noise.Update()
}

func (dp *DecayParams) Bounds() *BoundsParams  { return &dp.Bound }
func (dp *DecayParams) SetRand(rnd erand.Rand) { dp.Noise.SetRand(rnd) }

// DecayVal returns the decay magnitude for given summed value
func (dp *DecayParams) DecayVal(val float32) float32 {
	if dp.Type == Relative {
		return dp.Fraction * math32.Abs(val-dp.BaseLine)
	}
	return dp.Amount
}

// DecayToward moves val toward BaseLine by the decay magnitude,
// stopping at BaseLine instead of overshooting it.
// An infinite val (from an overflowing sum) stays infinite.
func (dp *DecayParams) DecayToward(val float32) float32 {
	if math32.IsInf(val, 0) {
		return val
	}
	dv := dp.DecayVal(val)
	if dv >= math32.Abs(val-dp.BaseLine) {
		return dp.BaseLine
	}
	switch {
	case val < dp.BaseLine:
		val += dv
		if val > dp.BaseLine {
			val = dp.BaseLine
		}
	case val > dp.BaseLine:
		val -= dv
		if val < dp.BaseLine {
			val = dp.BaseLine
		}
	}
	return val
}

// ActFmInput computes the decayed activation from in + act + bias,
// adding noise and clipping as configured.
func (dp *DecayParams) ActFmInput(in, act, bias float32) float32 {
	val := dp.DecayToward(in + act + bias)
	val = dp.Noise.AddNoise(val)
	return dp.Bound.ClipAct(val)
}

// Deriv is 1 for decay -- it is not a differentiable squashing function
func (dp *DecayParams) Deriv(val float32) float32 {
	return 1
}
