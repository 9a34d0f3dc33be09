// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/weights"
	"github.com/emer/etable/minmax"
	"github.com/goki/gi/giv"
	"github.com/goki/ki/indent"
)

// SynapseVars are the synapse variables that can be read by name
var SynapseVars = []string{"Wt", "DWt"}

// Synapse holds state for one weighted connection
type Synapse struct {
	Wt  float32 `desc:"synaptic weight value"`
	DWt float32 `desc:"change in synaptic weight from the last learning update"`
	Si  int32   `desc:"index of the sending unit"`
	Ri  int32   `desc:"index of the receiving unit"`
}

// VarByName returns synapse variable by name
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	switch varNm {
	case "Wt":
		return sy.Wt, nil
	case "DWt":
		return sy.DWt, nil
	}
	return 0, fmt.Errorf("Synapse VarByName: variable name %v not valid", varNm)
}

// WtInitParams specify the initial random weight distribution and the
// range that weights are kept within.
type WtInitParams struct {
	erand.RndParams
	Range minmax.F32 `desc:"weights are clipped to this range whenever they are set or learned"`
}

func (wp *WtInitParams) Defaults() {
	wp.RndParams.Defaults()
	wp.Dist = erand.Uniform
	wp.Mean = 0
	wp.Var = 0.1
	wp.Range.Set(-10, 10)
}

// Gen generates a weight value clipped to Range, using rnd,
// or the global source if nil
func (wp *WtInitParams) Gen(rnd erand.Rand) float32 {
	wt := wp.RndParams.Gen(-1, randOpt(rnd)...)
	return wp.Range.ClipVal(float32(wt))
}

// Prjn is a projection of weighted synapses from a sending to a
// receiving group.  Synapses are stored in one list, indexed by
// receiving unit (RSyns) and by sending unit (SSyns).
type Prjn struct {
	Off    bool         `desc:"inactivate this projection -- no sending"`
	Cls    string       `desc:"class for applying parameter styles, can be space separated multple tags"`
	Notes  string       `desc:"can record notes about this projection here"`
	Send   *Group       `desc:"sending group"`
	Recv   *Group       `desc:"receiving group"`
	Pat    Pattern      `desc:"pattern of connectivity"`
	Learn  bool         `desc:"learning is enabled for this projection"`
	WtInit WtInitParams `view:"inline" desc:"initial weights and weight range"`
	Syns   []Synapse    `desc:"synaptic state values"`
	RSyns  [][]int      `view:"-" desc:"indexes into Syns for each receiving unit, in the order added"`
	SSyns  [][]int      `view:"-" desc:"indexes into Syns for each sending unit, in the order added"`
}

// Name is the standard name of the projection: SendNameToRecvName
func (pj *Prjn) Name() string     { return pj.Send.Nm + "To" + pj.Recv.Nm }
func (pj *Prjn) TypeName() string { return "Prjn" }
func (pj *Prjn) Class() string    { return pj.Pat.Name() + " " + pj.Cls }
func (pj *Prjn) Label() string    { return pj.Name() }

// Defaults sets default parameter values
func (pj *Prjn) Defaults() {
	pj.WtInit.Defaults()
	pj.Learn = false
}

// UpdateParams updates all params given any changes that might have been made to individual values
func (pj *Prjn) UpdateParams() {
}

// Build constructs the synapses from the pattern
func (pj *Prjn) Build() error {
	if pj.Send == nil || pj.Recv == nil || pj.Pat == nil {
		return fmt.Errorf("Prjn Build: sending group, receiving group and pattern must all be set")
	}
	ns := len(pj.Send.Neurons)
	nr := len(pj.Recv.Neurons)
	pj.Syns = nil
	pj.RSyns = make([][]int, nr)
	pj.SSyns = make([][]int, ns)
	for _, cn := range pj.Pat.Connect(ns, nr, pj.Send == pj.Recv) {
		pj.addSyn(cn.Si, cn.Ri, 0)
	}
	return nil
}

func (pj *Prjn) addSyn(si, ri int, wt float32) int {
	idx := len(pj.Syns)
	pj.Syns = append(pj.Syns, Synapse{Wt: wt, Si: int32(si), Ri: int32(ri)})
	pj.RSyns[ri] = append(pj.RSyns[ri], idx)
	pj.SSyns[si] = append(pj.SSyns[si], idx)
	return idx
}

// AddSyn adds a synapse between given send, recv unit indexes with given
// weight (clipped to WtInit.Range), or sets the weight if it already exists.
func (pj *Prjn) AddSyn(si, ri int, wt float32) (*Synapse, error) {
	if si < 0 || si >= len(pj.SSyns) || ri < 0 || ri >= len(pj.RSyns) {
		return nil, fmt.Errorf("Prjn %s AddSyn: unit index out of range: send: %d recv: %d", pj.Name(), si, ri)
	}
	if sy := pj.Syn(si, ri); sy != nil {
		sy.Wt = pj.WtInit.Range.ClipVal(wt)
		return sy, nil
	}
	idx := pj.addSyn(si, ri, pj.WtInit.Range.ClipVal(wt))
	return &pj.Syns[idx], nil
}

// Syn returns the synapse between given send, recv unit indexes (nil if none)
func (pj *Prjn) Syn(si, ri int) *Synapse {
	if ri < 0 || ri >= len(pj.RSyns) {
		return nil
	}
	for _, idx := range pj.RSyns[ri] {
		if int(pj.Syns[idx].Si) == si {
			return &pj.Syns[idx]
		}
	}
	return nil
}

// SynTry returns the synapse between given send, recv unit indexes,
// with an error if there is no such synapse
func (pj *Prjn) SynTry(si, ri int) (*Synapse, error) {
	sy := pj.Syn(si, ri)
	if sy == nil {
		return nil, fmt.Errorf("Prjn %s SynTry: no synapse from send: %d to recv: %d", pj.Name(), si, ri)
	}
	return sy, nil
}

// SetWt sets the weight of the existing synapse, clipped to range
func (pj *Prjn) SetWt(si, ri int, wt float32) error {
	sy, err := pj.SynTry(si, ri)
	if err != nil {
		return err
	}
	sy.Wt = pj.WtInit.Range.ClipVal(wt)
	return nil
}

// RecvSyns returns the indexes into Syns of the synapses into given receiving unit
func (pj *Prjn) RecvSyns(ri int) []int {
	return pj.RSyns[ri]
}

// SynVals sets values of given variable name for each synapse, into given float32 slice
// (only resized if not big enough).  Returns error on invalid var name.
func (pj *Prjn) SynVals(vals *[]float32, varNm string) error {
	ns := len(pj.Syns)
	if *vals == nil || cap(*vals) < ns {
		*vals = make([]float32, ns)
	} else if len(*vals) < ns {
		*vals = (*vals)[0:ns]
	}
	for i := range pj.Syns {
		v, err := pj.Syns[i].VarByName(varNm)
		if err != nil {
			return err
		}
		(*vals)[i] = v
	}
	return nil
}

// InitWts initializes all weights from WtInit, using rnd (global source if nil)
func (pj *Prjn) InitWts(rnd erand.Rand) {
	for i := range pj.Syns {
		sy := &pj.Syns[i]
		sy.Wt = pj.WtInit.Gen(rnd)
		sy.DWt = 0
	}
}

// SetAllWts sets all weights to the given value (clipped)
func (pj *Prjn) SetAllWts(wt float32) {
	wt = pj.WtInit.Range.ClipVal(wt)
	for i := range pj.Syns {
		pj.Syns[i].Wt = wt
		pj.Syns[i].DWt = 0
	}
}

// DWt adds dwt to the weight of synapse at given index, clipped to range,
// recording the actual change in DWt
func (pj *Prjn) DWt(idx int, dwt float32) {
	sy := &pj.Syns[idx]
	nw := pj.WtInit.Range.ClipVal(sy.Wt + dwt)
	sy.DWt = nw - sy.Wt
	sy.Wt = nw
}

// SendInputs adds Wt * sending activation into the Input of each receiving unit
func (pj *Prjn) SendInputs() {
	rn := pj.Recv.Neurons
	sn := pj.Send.Neurons
	for i := range pj.Syns {
		sy := &pj.Syns[i]
		snr := &sn[sy.Si]
		if snr.IsOff() {
			continue
		}
		rn[sy.Ri].Input += sy.Wt * snr.Act
	}
}

// RecvInput returns the weighted sum of sending activations into given
// receiving unit, from the given activations of the sending group
func (pj *Prjn) RecvInput(ri int, sendActs []float32) float32 {
	sum := float32(0)
	for _, idx := range pj.RSyns[ri] {
		sy := &pj.Syns[idx]
		sum += sy.Wt * sendActs[sy.Si]
	}
	return sum
}

// ApplyParams applies given parameter style Sheet to this projection.
// Calls UpdateParams if anything set.
func (pj *Prjn) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	app, err := pars.Apply(pj, setMsg)
	if app {
		pj.UpdateParams()
	}
	return app, err
}

// NonDefaultParams returns a listing of all parameters in the projection that
// are not at their default values -- useful for setting param styles etc.
func (pj *Prjn) NonDefaultParams() string {
	return giv.StructNonDefFieldsStr(pj, pj.Name())
}

//////////////////////////////////////////////////////////////////////////////////////
//  Weights File

// WriteWtsJSON writes the weights from this projection from the receiver-side perspective
// in a JSON text format.
func (pj *Prjn) WriteWtsJSON(w io.Writer, depth int) {
	nr := len(pj.RSyns)
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", pj.Send.Nm)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"MetaData\": {\n")))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Pattern\": %q\n", pj.Pat.Name())))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Rs\": [\n"))
	depth++
	nw := 0
	for ri := 0; ri < nr; ri++ {
		if len(pj.RSyns[ri]) > 0 {
			nw++
		}
	}
	wi := 0
	for ri := 0; ri < nr; ri++ {
		syns := pj.RSyns[ri]
		nc := len(syns)
		if nc == 0 {
			continue
		}
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("{\n"))
		depth++
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"Ri\": %v,\n", ri)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"N\": %v,\n", nc)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Si\": [ "))
		for ci, idx := range syns {
			w.Write([]byte(fmt.Sprintf("%v", pj.Syns[idx].Si)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("],\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Wt\": [ "))
		for ci, idx := range syns {
			w.Write([]byte(strconv.FormatFloat(float64(pj.Syns[idx].Wt), 'g', weights.Prec, 32)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("]\n"))
		depth--
		w.Write(indent.TabBytes(depth))
		wi++
		if wi == nw {
			w.Write([]byte("}\n"))
		} else {
			w.Write([]byte("},\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}")) // note: leave unterminated as outer loop needs to add , or just \n depending
}

// SetWts sets the weights for this projection from weights.Prjn decoded values.
// Synapses that do not exist are added, so that explicit connectivity
// is restored from the file.
func (pj *Prjn) SetWts(pw *weights.Prjn) error {
	var err error
	for i := range pw.Rs {
		pr := &pw.Rs[i]
		for si := range pr.Si {
			if si >= len(pr.Wt) {
				break
			}
			if _, er := pj.AddSyn(pr.Si[si], pr.Ri, pr.Wt[si]); er != nil {
				err = er
			}
		}
	}
	return err
}

// WtMean returns the mean weight, 0 if no synapses
func (pj *Prjn) WtMean() float32 {
	if len(pj.Syns) == 0 {
		return 0
	}
	sum := float32(0)
	for i := range pj.Syns {
		sum += pj.Syns[i].Wt
	}
	return sum / float32(len(pj.Syns))
}
