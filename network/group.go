// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"log"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/simbrain/rules"
	"github.com/goki/gi/giv"
	"github.com/goki/ki/ints"
)

// Group is a named set of neurons that share one update rule.
// The rule is selected by RuleType among the concrete rule params,
// so that all of them can be styled by params Sheets
// (e.g., "Group.Decay.Fraction").
type Group struct {
	Nm       string              `desc:"name of the group -- must be unique within the network"`
	Cls      string              `desc:"class for applying parameter styles, can be space separated multple tags"`
	Off      bool                `desc:"inactivate this group -- no updating and no sending"`
	RuleType rules.RuleTypes     `desc:"which update rule the neurons in this group use"`
	Decay    rules.DecayParams   `viewif:"RuleType=Decay" view:"inline" desc:"decay rule parameters"`
	Sigmoid  rules.SigmoidParams `viewif:"RuleType=Sigmoidal" view:"inline" desc:"sigmoidal rule parameters"`
	Linear   rules.LinearParams  `viewif:"RuleType=Linear" view:"inline" desc:"linear rule parameters"`
	WTA      WTAParams           `view:"inline" desc:"winner-take-all selection -- when on, replaces the update rule"`
	Neurons  []Neuron            `desc:"slice of neurons for this group"`
	Labels   []string            `desc:"optional per-unit labels, e.g., for coupling by unit name"`
	Buf      ActBuffer           `view:"-" desc:"current and previous activations, updated each Cycle"`
	Winner   int                 `inactive:"+" desc:"index of the winning unit on the last update, for WTA groups -- -1 if none"`
	Index    int                 `inactive:"+" desc:"index of this group in the network"`
	RcvPrjns []*Prjn             `desc:"receiving projections into this group"`
	SndPrjns []*Prjn             `desc:"sending projections from this group"`
	Network  *Network            `copy:"-" json:"-" xml:"-" view:"-" desc:"the network we belong to"`
}

// Name, TypeName and Class make Group a params.Styler
func (gp *Group) Name() string     { return gp.Nm }
func (gp *Group) TypeName() string { return "Group" }
func (gp *Group) Class() string    { return gp.Cls }
func (gp *Group) Label() string    { return gp.Nm }
func (gp *Group) NUnits() int      { return len(gp.Neurons) }

// Config allocates n neurons with given rule type and sets defaults
func (gp *Group) Config(name string, n int, rt rules.RuleTypes) {
	gp.Nm = name
	gp.RuleType = rt
	gp.Neurons = make([]Neuron, n)
	gp.Buf.Init(n)
	gp.Winner = -1
	gp.Defaults()
}

// Defaults sets default parameters for all rules
func (gp *Group) Defaults() {
	gp.Decay.Defaults()
	gp.Sigmoid.Defaults()
	gp.Linear.Defaults()
	gp.WTA.Defaults()
}

// UpdateParams updates all params given any changes that might have been made to individual values
func (gp *Group) UpdateParams() {
	gp.Decay.Update()
	gp.Sigmoid.Update()
	gp.Linear.Update()
	gp.WTA.Update()
}

// Rule returns the active update rule of this group
func (gp *Group) Rule() rules.Rule {
	switch gp.RuleType {
	case rules.Sigmoidal:
		return &gp.Sigmoid
	case rules.Linear:
		return &gp.Linear
	default:
		return &gp.Decay
	}
}

// SetRuleType switches the update rule.  An out-of-range type is an error.
func (gp *Group) SetRuleType(rt rules.RuleTypes) error {
	if rt < 0 || rt >= rules.RuleTypesN {
		return fmt.Errorf("Group %s SetRuleType: invalid rule type: %v", gp.Nm, rt)
	}
	gp.RuleType = rt
	return nil
}

// SetRand sets the random source for all rules and WTA selection
func (gp *Group) SetRand(rnd erand.Rand) {
	gp.Decay.SetRand(rnd)
	gp.Sigmoid.SetRand(rnd)
	gp.Linear.SetRand(rnd)
	gp.WTA.SetRand(rnd)
}

// SetLabels sets the per-unit labels -- extra labels are ignored
func (gp *Group) SetLabels(lbls ...string) {
	gp.Labels = make([]string, len(gp.Neurons))
	copy(gp.Labels, lbls)
}

// UnitByLabel returns the index of the unit with given label, or error
func (gp *Group) UnitByLabel(lbl string) (int, error) {
	for i, l := range gp.Labels {
		if l == lbl {
			return i, nil
		}
	}
	return -1, fmt.Errorf("Group %s UnitByLabel: no unit labeled: %q", gp.Nm, lbl)
}

// Neuron returns the neuron at given index, or nil if out of range
func (gp *Group) Neuron(idx int) *Neuron {
	if idx < 0 || idx >= len(gp.Neurons) {
		return nil
	}
	return &gp.Neurons[idx]
}

// ApplyParams applies given parameter style Sheet to this group and its
// receiving projections.  Calls UpdateParams if anything set.
func (gp *Group) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	app, err := pars.Apply(gp, setMsg)
	if app {
		gp.UpdateParams()
		applied = true
	}
	if err != nil {
		rerr = err
	}
	for _, pj := range gp.RcvPrjns {
		app, err = pj.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// NonDefaultParams returns a listing of all parameters in the group that
// are not at their default values -- useful for setting param styles etc.
func (gp *Group) NonDefaultParams() string {
	nds := giv.StructNonDefFieldsStr(gp, gp.Nm)
	for _, pj := range gp.RcvPrjns {
		nds += pj.NonDefaultParams()
	}
	return nds
}

//////////////////////////////////////////////////////////////////////////////////////
//  Activations

// InitActs zeroes activations, inputs and the activation buffer.
// Clamped units are set to their Ext value.
func (gp *Group) InitActs() {
	for ni := range gp.Neurons {
		nrn := &gp.Neurons[ni]
		nrn.Input = 0
		nrn.ActPrv = 0
		nrn.Act = 0
		if nrn.IsClamped() {
			nrn.Act = nrn.Ext
		}
	}
	gp.Buf.Reset()
	gp.Winner = -1
	gp.syncBuf()
}

// InitInputs zeroes the accumulated net inputs
func (gp *Group) InitInputs() {
	for ni := range gp.Neurons {
		gp.Neurons[ni].Input = 0
	}
}

// AddInputs adds vals into the net inputs of the units, up to the shorter length.
// This is the default way that external values enter a group.
func (gp *Group) AddInputs(vals []float32) {
	n := ints.MinInt(len(vals), len(gp.Neurons))
	for ni := 0; ni < n; ni++ {
		gp.Neurons[ni].Input += vals[ni]
	}
}

// ApplyExt clamps the units to vals: Ext and Act are set, and the units hold
// these activations until UnClamp.
func (gp *Group) ApplyExt(vals []float32) {
	n := ints.MinInt(len(vals), len(gp.Neurons))
	for ni := 0; ni < n; ni++ {
		nrn := &gp.Neurons[ni]
		nrn.SetClamped(true)
		nrn.Ext = vals[ni]
		nrn.Act = vals[ni]
	}
	gp.syncBuf()
}

// UnClamp clears the clamped flag on all units
func (gp *Group) UnClamp() {
	for ni := range gp.Neurons {
		gp.Neurons[ni].SetClamped(false)
	}
}

// SetActs sets the activations directly (forced), without clamping
func (gp *Group) SetActs(vals []float32) {
	n := ints.MinInt(len(vals), len(gp.Neurons))
	for ni := 0; ni < n; ni++ {
		gp.Neurons[ni].Act = vals[ni]
	}
	gp.syncBuf()
}

// Acts returns a copy of the current activations
func (gp *Group) Acts() []float32 {
	acts := make([]float32, len(gp.Neurons))
	for ni := range gp.Neurons {
		acts[ni] = gp.Neurons[ni].Act
	}
	return acts
}

// UnitVals fills in values of given variable name on units,
// for each unit in the group, into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (gp *Group) UnitVals(vals *[]float32, varNm string) error {
	vidx, ok := NeuronVarsMap[varNm]
	if !ok {
		return fmt.Errorf("Group %s UnitVals: variable name %v not valid", gp.Nm, varNm)
	}
	nn := len(gp.Neurons)
	if *vals == nil || cap(*vals) < nn {
		*vals = make([]float32, nn)
	} else if len(*vals) < nn {
		*vals = (*vals)[0:nn]
	}
	for ni := range gp.Neurons {
		(*vals)[ni] = gp.Neurons[ni].VarByIndex(vidx)
	}
	return nil
}

// SendInputs sends current activations through all sending projections
func (gp *Group) SendInputs() {
	if gp.Off {
		return
	}
	for _, pj := range gp.SndPrjns {
		if pj.Off || pj.Recv.Off {
			continue
		}
		pj.SendInputs()
	}
}

// UpdateActs computes new activations from the accumulated inputs.
// Off and clamped units hold their activations.
func (gp *Group) UpdateActs() {
	if gp.Off {
		return
	}
	gp.Buf.Shift()
	for ni := range gp.Neurons {
		nrn := &gp.Neurons[ni]
		nrn.ActPrv = nrn.Act
	}
	if gp.WTA.On {
		gp.Winner = gp.WTA.Select(gp)
		gp.syncBuf()
		return
	}
	rl := gp.Rule()
	for ni := range gp.Neurons {
		nrn := &gp.Neurons[ni]
		if nrn.IsOff() {
			continue
		}
		if nrn.IsClamped() {
			nrn.Act = nrn.Ext
			continue
		}
		nrn.Act = rl.ActFmInput(nrn.Input, nrn.Act, nrn.Bias)
	}
	gp.syncBuf()
}

// Update is a standalone update of this group from its current inputs,
// which are then cleared.
func (gp *Group) Update() {
	gp.UpdateActs()
	gp.InitInputs()
}

// syncBuf copies the neuron activations into Buf.Cur
func (gp *Group) syncBuf() {
	if len(gp.Buf.Cur) != len(gp.Neurons) {
		log.Printf("Group %s: activation buffer not initialized -- use Config\n", gp.Nm)
		gp.Buf.Init(len(gp.Neurons))
	}
	for ni := range gp.Neurons {
		gp.Buf.Cur[ni] = gp.Neurons[ni].Act
	}
}
