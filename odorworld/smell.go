// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package odorworld

// SmellSource is a vector of smell values emitted by an entity,
// falling off with distance
type SmellSource struct {
	Vec   []float32     `desc:"smell vector at distance 0 (scaled by Decay.Peak)"`
	Decay DecayFunction `view:"inline" desc:"fall-off with distance"`
}

// NewSmellSource returns a smell source with given vector and dispersion,
// with linear decay and peak 1
func NewSmellSource(vec []float32, dispersion float32) *SmellSource {
	ss := &SmellSource{Vec: append([]float32(nil), vec...)}
	ss.Decay.Defaults()
	ss.Decay.Dispersion = dispersion
	return ss
}

// AddStimulus adds the smell vector at given distance into vals,
// for the overlapping length
func (ss *SmellSource) AddStimulus(vals []float32, dist float32) {
	sc := ss.Decay.Scale(dist)
	if sc == 0 {
		return
	}
	for i, v := range ss.Vec {
		if i >= len(vals) {
			break
		}
		vals[i] += sc * v
	}
}
