// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import (
	"log"

	"github.com/emer/simbrain/network"
)

// GroupActs returns a Producer of the activations of the group
func GroupActs(gp *network.Group) Producer {
	return ProducerFunc(gp.Acts)
}

// GroupVar returns a Producer of the given neuron variable across the group.
// An invalid variable name is logged and produces nil.
func GroupVar(gp *network.Group, varNm string) Producer {
	var vals []float32
	return ProducerFunc(func() []float32 {
		if err := gp.UnitVals(&vals, varNm); err != nil {
			log.Println(err)
			return nil
		}
		out := make([]float32, len(vals))
		copy(out, vals)
		return out
	})
}

// UnitAct returns a Producer of the activation of one unit
func UnitAct(gp *network.Group, idx int) Producer {
	return Scalar(func() float32 {
		if nrn := gp.Neuron(idx); nrn != nil {
			return nrn.Act
		}
		return 0
	})
}

// GroupInputs returns a Consumer that adds values into the net inputs of
// the group, which is the standard way to drive a group from a sensor
func GroupInputs(gp *network.Group) Consumer {
	return ConsumerFunc(gp.AddInputs)
}

// GroupClamp returns a Consumer that clamps the group activations to the values
func GroupClamp(gp *network.Group) Consumer {
	return ConsumerFunc(gp.ApplyExt)
}

// UnitClamp returns a Consumer that clamps one unit to the first value
func UnitClamp(gp *network.Group, idx int) Consumer {
	return ScalarConsumer(func(val float32) {
		if nrn := gp.Neuron(idx); nrn != nil {
			nrn.SetClamped(true)
			nrn.Ext = val
			nrn.Act = val
		}
	})
}

// UnitInput returns a Consumer that adds the first value into the net input of one unit
func UnitInput(gp *network.Group, idx int) Consumer {
	return ScalarConsumer(func(val float32) {
		if nrn := gp.Neuron(idx); nrn != nil {
			nrn.Input += val
		}
	})
}
