// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import "github.com/emer/emergent/erand"

// NoiseParams contains parameters for additive activation noise.
// The distribution is specified with the standard erand.RndParams,
// and any of the erand distributions can be used.
type NoiseParams struct {
	erand.RndParams
	On bool `desc:"add noise to the activation before clipping"`

	rnd erand.Rand
}

func (np *NoiseParams) Defaults() {
	np.RndParams.Defaults()
	np.On = false
	np.Dist = erand.Uniform
	np.Mean = 0
	np.Var = 0.1
}

func (np *NoiseParams) Update() {
}

// SetRand sets a private random source, which makes the noise
// sequence reproducible for a given seed.  nil reverts to the
// global source.
func (np *NoiseParams) SetRand(rnd erand.Rand) {
	np.rnd = rnd
}

// Sample returns one noise value -- 0 if noise is off
func (np *NoiseParams) Sample() float32 {
	if !np.On {
		return 0
	}
	if np.rnd == nil {
		return float32(np.Gen(-1))
	}
	return float32(np.Gen(-1, np.rnd))
}

// AddNoise adds a noise sample to val if noise is on
func (np *NoiseParams) AddNoise(val float32) float32 {
	if !np.On {
		return val
	}
	return val + np.Sample()
}
