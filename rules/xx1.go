// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import "github.com/chewxy/math32"

// XX1Params are the Noisy X/(X+1) activation function parameters.
// The basic x/(x+1) sigmoid is convolved with a gaussian noise kernel,
// producing a graded level of output even slightly below threshold.
// A hand-optimized piece-wise approximation is used instead of a lookup table.
type XX1Params struct {
	Thr          float32 `def:"0.5" desc:"threshold value Theta (Q) for firing output activation"`
	Gain         float32 `def:"100,40,20" min:"0" desc:"gain (gamma) of the function -- lower values give more graded output"`
	NVar         float32 `def:"0.005,0.01" min:"0" desc:"variance of the Gaussian noise kernel convolved with XX1 -- determines curvature near threshold"`
	SigMult      float32 `def:"0.33" view:"-" json:"-" xml:"-" desc:"multiplier on sigmoid used for computing values for x < 0"`
	SigMultPow   float32 `def:"0.8" view:"-" json:"-" xml:"-" desc:"power for computing SigMultEff as function of Gain * NVar"`
	SigGain      float32 `def:"3" view:"-" json:"-" xml:"-" desc:"gain multipler on x for sigmoid used for x < 0"`
	InterpRange  float32 `def:"0.01" view:"-" json:"-" xml:"-" desc:"interpolation range above zero"`
	GainCorRange float32 `def:"10" view:"-" json:"-" xml:"-" desc:"range in units of NVar over which to apply gain correction"`
	GainCor      float32 `def:"0.1" view:"-" json:"-" xml:"-" desc:"gain correction multiplier"`

	SigGainNVar float32 `view:"-" json:"-" xml:"-" desc:"SigGain / NVar"`
	SigMultEff  float32 `view:"-" json:"-" xml:"-" desc:"SigMult * pow(Gain * NVar, SigMultPow)"`
	SigValAt0   float32 `view:"-" json:"-" xml:"-" desc:"0.5 * SigMultEff -- used for interpolation"`
	InterpVal   float32 `view:"-" json:"-" xml:"-" desc:"function value at InterpRange - SigValAt0 -- for interpolation"`
}

func (xp *XX1Params) Defaults() {
	xp.Thr = 0.5
	xp.Gain = 100
	xp.NVar = 0.005
	xp.SigMult = 0.33
	xp.SigMultPow = 0.8
	xp.SigGain = 3.0
	xp.InterpRange = 0.01
	xp.GainCorRange = 10.0
	xp.GainCor = 0.1
	xp.Update()
}

func (xp *XX1Params) Update() {
	xp.SigGainNVar = xp.SigGain / xp.NVar
	xp.SigMultEff = xp.SigMult * math32.Pow(xp.Gain*xp.NVar, xp.SigMultPow)
	xp.SigValAt0 = 0.5 * xp.SigMultEff
	xp.InterpVal = xp.XX1GainCor(xp.InterpRange) - xp.SigValAt0
}

// XX1 computes the basic x/(x+1) function, which is 1 at +Inf
func (xp *XX1Params) XX1(x float32) float32 {
	if math32.IsInf(x, 1) {
		return 1
	}
	return x / (x + 1)
}

// XX1GainCor computes x/(x+1) with gain correction within GainCorRange
func (xp *XX1Params) XX1GainCor(x float32) float32 {
	gainCorFact := (xp.GainCorRange - (x / xp.NVar)) / xp.GainCorRange
	if gainCorFact < 0 {
		return xp.XX1(xp.Gain * x)
	}
	newGain := xp.Gain * (1 - xp.GainCor*gainCorFact)
	return xp.XX1(newGain * x)
}

// NoisyXX1 computes the noisy x/(x+1) function for x = value above threshold.
// Output is in [0, 1).
func (xp *XX1Params) NoisyXX1(x float32) float32 {
	switch {
	case x < 0:
		return xp.SigMultEff / (1 + math32.Exp(-(x * xp.SigGainNVar)))
	case x < xp.InterpRange:
		interp := 1 - ((xp.InterpRange - x) / xp.InterpRange)
		return xp.SigValAt0 + interp*xp.InterpVal
	default:
		return xp.XX1GainCor(x)
	}
}
