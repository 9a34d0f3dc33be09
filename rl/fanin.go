// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/simbrain/network"
)

// fanIn is a set of projections into one receiving group, with the
// sending activations saved on the previous step
type fanIn struct {
	Prjns []*network.Prjn
	Prv   [][]float32
}

func (fi *fanIn) config(pjs []*network.Prjn) error {
	for i, pj := range pjs {
		if pj == nil {
			return fmt.Errorf("rl: projection %d is nil", i)
		}
		if pj.Recv != pjs[0].Recv {
			return fmt.Errorf("rl: projection %s does not project into %s", pj.Name(), pjs[0].Recv.Nm)
		}
	}
	fi.Prjns = pjs
	fi.Prv = make([][]float32, len(pjs))
	for i, pj := range pjs {
		fi.Prv[i] = make([]float32, pj.Send.NUnits())
	}
	return nil
}

// init zeroes the saved activations
func (fi *fanIn) init() {
	for _, pv := range fi.Prv {
		for i := range pv {
			pv[i] = 0
		}
	}
}

// save saves the current sending activations
func (fi *fanIn) save() {
	for i, pj := range fi.Prjns {
		for ni := range pj.Send.Neurons {
			fi.Prv[i][ni] = pj.Send.Neurons[ni].Act
		}
	}
}

// net returns the summed weighted current sending activations into unit ri
func (fi *fanIn) net(ri int) float32 {
	sum := float32(0)
	for _, pj := range fi.Prjns {
		sum += pj.RecvInput(ri, pj.Send.Acts())
	}
	return sum
}

// learnUnit adds lrate * prv sending activation to each weight into unit ri
func (fi *fanIn) learnUnit(ri int, lrate float32) {
	for i, pj := range fi.Prjns {
		if !pj.Learn || ri < 0 || ri >= len(pj.RSyns) {
			continue
		}
		for _, idx := range pj.RecvSyns(ri) {
			pj.DWt(idx, lrate*fi.Prv[i][pj.Syns[idx].Si])
		}
	}
}
