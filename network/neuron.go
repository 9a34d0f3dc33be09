// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"

	"github.com/goki/ki/bitflag"
	"github.com/goki/ki/kit"
)

// NeuronVars are the names of the float32 neuron variables, in the order
// returned by VarByIndex
var NeuronVars = []string{"Act", "ActPrv", "Input", "Bias", "Ext"}

// NeuronVarsMap is the map between NeuronVars and their index
var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

// Neuron holds the state of one unit.  Bounds ([floor, ceiling]) are held
// by the update rule of the Group that the neuron belongs to.
type Neuron struct {
	Flags  NeurFlags `desc:"bit flags for binary state variables"`
	Act    float32   `desc:"current activation"`
	ActPrv float32   `desc:"activation on the previous update"`
	Input  float32   `desc:"net input accumulated from synapses and couplings this update -- cleared after each update"`
	Bias   float32   `desc:"bias added to the input by the update rule"`
	Ext    float32   `desc:"external value -- clamped units hold Act = Ext"`
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return nrn.Act
	case 1:
		return nrn.ActPrv
	case 2:
		return nrn.Input
	case 3:
		return nrn.Bias
	case 4:
		return nrn.Ext
	}
	return 0
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Neuron VarByName: variable name %v not valid", varNm)
	}
	return nrn.VarByIndex(i), nil
}

func (nrn *Neuron) HasFlag(flag NeurFlags) bool {
	return bitflag.Has32(int32(nrn.Flags), int(flag))
}

func (nrn *Neuron) SetFlag(flag NeurFlags) {
	bitflag.Set32((*int32)(&nrn.Flags), int(flag))
}

func (nrn *Neuron) ClearFlag(flag NeurFlags) {
	bitflag.Clear32((*int32)(&nrn.Flags), int(flag))
}

// IsOff returns true if the neuron has been turned off (lesioned)
func (nrn *Neuron) IsOff() bool {
	return nrn.HasFlag(NeurOff)
}

// IsClamped returns true if the activation is held at Ext
func (nrn *Neuron) IsClamped() bool {
	return nrn.HasFlag(NeurClamped)
}

// SetClamped sets or clears the clamped flag
func (nrn *Neuron) SetClamped(clamp bool) {
	if clamp {
		nrn.SetFlag(NeurClamped)
	} else {
		nrn.ClearFlag(NeurClamped)
	}
}

// NeurFlags are bit-flags encoding relevant binary state for neurons
type NeurFlags int32

//go:generate stringer -type=NeurFlags

var KiT_NeurFlags = kit.Enums.AddEnum(NeurFlagsN, kit.BitFlag, nil)

func (ev NeurFlags) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NeurFlags) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The neuron flags
const (
	// NeurOff flag indicates that this neuron has been turned off (i.e., lesioned)
	NeurOff NeurFlags = iota

	// NeurClamped flag indicates that the activation is held at Ext and
	// not computed by the update rule
	NeurClamped

	NeurFlagsN
)
