// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package odorworld

import (
	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// DecayFuncs are the shapes of fall-off with distance
type DecayFuncs int32

//go:generate stringer -type=DecayFuncs

var KiT_DecayFuncs = kit.Enums.AddEnum(DecayFuncsN, kit.NotBitFlag, nil)

func (ev DecayFuncs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *DecayFuncs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// LinearDecay falls off linearly from Peak at distance 0 to 0 at Dispersion
	LinearDecay DecayFuncs = iota

	// GaussianDecay is Peak * exp(-d^2 / (2 sigma^2)) with sigma = Dispersion / 3
	GaussianDecay

	// StepDecay is Peak within Dispersion, 0 beyond
	StepDecay

	DecayFuncsN
)

// DecayFunction scales a stimulus by distance from its source
type DecayFunction struct {
	Func       DecayFuncs `desc:"shape of the fall-off"`
	Dispersion float32    `def:"100" min:"0" desc:"distance over which the stimulus falls off -- values beyond it are 0 (or nearly so for GaussianDecay)"`
	Peak       float32    `def:"1" desc:"value at distance 0"`
}

func (df *DecayFunction) Defaults() {
	df.Func = LinearDecay
	df.Dispersion = 100
	df.Peak = 1
}

// Scale returns the scaling factor at given distance
func (df *DecayFunction) Scale(dist float32) float32 {
	if df.Dispersion <= 0 {
		return 0
	}
	switch df.Func {
	case GaussianDecay:
		sig := df.Dispersion / 3
		return df.Peak * math32.Exp(-(dist*dist)/(2*sig*sig))
	case StepDecay:
		if dist <= df.Dispersion {
			return df.Peak
		}
		return 0
	default:
		if dist >= df.Dispersion {
			return 0
		}
		return df.Peak * (df.Dispersion - dist) / df.Dispersion
	}
}
