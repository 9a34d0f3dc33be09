// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/goki/ki/kit"
)

// SquashTypes are the sigmoid-like squashing functions
type SquashTypes int32

//go:generate stringer -type=SquashTypes

var KiT_SquashTypes = kit.Enums.AddEnum(SquashTypesN, kit.NotBitFlag, nil)

func (ev SquashTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SquashTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Logistic is (upper - lower) / (1 + exp(-slope * x)) + lower
	Logistic SquashTypes = iota

	// Arctan is an arctangent scaled to [lower, upper] with given slope at the midpoint
	Arctan

	// Tanh is a hyperbolic tangent scaled to [lower, upper] with given slope at the midpoint
	Tanh

	// NoisyXX1 is the noisy x/(x+1) rate-code function scaled to [lower, upper]
	NoisyXX1

	SquashTypesN
)

// derivDelta is the step used for numerical derivatives
const derivDelta = float32(1.0e-3)

// SigmoidParams implement the discrete sigmoidal update rule:
// val = input + bias (+ noise), passed through the squashing function
// with the Bound.Range as [lower, upper] and given Slope.
type SigmoidParams struct {
	Squash SquashTypes  `desc:"which squashing function to use"`
	Slope  float32      `def:"1" min:"0" desc:"slope of the squashing function at its midpoint (gain for NoisyXX1)"`
	Bound  BoundsParams `view:"inline" desc:"Range gives lower and upper bounds of the output -- [0, 1] by default -- output is always within range so Clip is not used"`
	XX1    XX1Params    `viewif:"Squash=NoisyXX1" view:"inline" desc:"parameters for the NoisyXX1 function"`
	Noise  NoiseParams  `view:"inline" desc:"additive noise, applied before squashing"`
}

func (sp *SigmoidParams) RuleType() RuleTypes { return Sigmoidal }

func (sp *SigmoidParams) Defaults() {
	sp.Squash = Logistic
	sp.Slope = 1
	sp.Bound.Set(true, 0, 1)
	sp.XX1.Defaults()
	sp.Noise.Defaults()
	sp.Update()
}

func (sp *SigmoidParams) Update() {
	sp.XX1.Update()
	sp.Noise.Update()
}

func (sp *SigmoidParams) Bounds() *BoundsParams  { return &sp.Bound }
func (sp *SigmoidParams) SetRand(rnd erand.Rand) { sp.Noise.SetRand(rnd) }

// ActFmInput computes the squashed activation of in + bias.
// The current activation is not used.
func (sp *SigmoidParams) ActFmInput(in, act, bias float32) float32 {
	val := sp.Noise.AddNoise(in + bias)
	return sp.Value(val)
}

// Value returns the squashing function value at val
func (sp *SigmoidParams) Value(val float32) float32 {
	up := sp.Bound.Range.Max
	lw := sp.Bound.Range.Min
	diff := up - lw
	if diff == 0 {
		return lw
	}
	switch sp.Squash {
	case Arctan:
		a := math32.Pi * sp.Slope / diff
		return sp.inRange((diff/math32.Pi)*math32.Atan(a*val) + 0.5*(up+lw))
	case Tanh:
		a := 2 * sp.Slope / diff
		return sp.inRange(0.5*diff*math32.Tanh(a*val) + 0.5*(up+lw))
	case NoisyXX1:
		return lw + diff*sp.XX1.NoisyXX1(sp.Slope*val-sp.XX1.Thr)
	default:
		return diff/(1+math32.Exp(-sp.Slope*val)) + lw
	}
}

// inRange keeps v within [lower, upper] against rounding at the asymptotes
func (sp *SigmoidParams) inRange(v float32) float32 {
	return math32.Min(math32.Max(v, sp.Bound.Range.Min), sp.Bound.Range.Max)
}

// Deriv returns the derivative of the squashing function at val
func (sp *SigmoidParams) Deriv(val float32) float32 {
	up := sp.Bound.Range.Max
	lw := sp.Bound.Range.Min
	diff := up - lw
	if diff == 0 {
		return 0
	}
	switch sp.Squash {
	case Arctan:
		a := math32.Pi * sp.Slope / diff
		av := a * val
		return sp.Slope / (1 + av*av)
	case Tanh:
		th := math32.Tanh(2 * sp.Slope * val / diff)
		return sp.Slope * (1 - th*th)
	case NoisyXX1:
		return (sp.Value(val+derivDelta) - sp.Value(val-derivDelta)) / (2 * derivDelta)
	default:
		sg := 1 / (1 + math32.Exp(-sp.Slope*val))
		return diff * sp.Slope * sg * (1 - sg)
	}
}
