// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/timer"
	"github.com/emer/simbrain/rules"
	"github.com/goki/kigen/ordmap"
)

// Network holds the groups and projections of a network, and updates them
// synchronously once per Cycle.
type Network struct {
	Nm       string                      `desc:"overall name of network -- helps discriminate if there are multiple"`
	Groups   *ordmap.Map[string, *Group] `desc:"groups in the order added, keyed by name -- names must be unique"`
	Prjns    []*Prjn                     `desc:"all projections in the order added"`
	WtsFile  string                      `desc:"filename of last weights file loaded or saved"`
	MetaData map[string]string           `desc:"optional metadata that is saved in network weights files -- e.g., can indicate number of trials that were trained"`
	RndSeed  int64                       `inactive:"+" desc:"random seed set by SetRandSeed -- 0 if the global source is used"`
	Cycles   int                         `inactive:"+" desc:"number of Cycle updates since InitActs"`
	FunTimes map[string]*timer.Time      `view:"-" desc:"timers for each major function (step of processing)"`

	rnd erand.Rand
}

// NewNetwork returns a new, empty network with given name
func NewNetwork(name string) *Network {
	nt := &Network{Nm: name}
	nt.Groups = ordmap.New[string, *Group]()
	nt.FunTimes = make(map[string]*timer.Time)
	return nt
}

func (nt *Network) Name() string  { return nt.Nm }
func (nt *Network) Label() string { return nt.Nm }
func (nt *Network) NGroups() int  { return nt.Groups.Len() }

// Group returns the group at given index
func (nt *Network) Group(idx int) *Group { return nt.Groups.ValByIdx(idx) }

// GroupByName returns a group by looking it up by name (nil if not found).
func (nt *Network) GroupByName(name string) *Group {
	gp, _ := nt.Groups.ValByKey(name)
	return gp
}

// GroupByNameTry returns a group by looking it up by name -- emits a log error message
// if group is not found
func (nt *Network) GroupByNameTry(name string) (*Group, error) {
	gp := nt.GroupByName(name)
	if gp == nil {
		err := fmt.Errorf("Group named: %v not found in Network: %v", name, nt.Nm)
		log.Println(err)
		return nil, err
	}
	return gp, nil
}

// AllGroups returns the groups in the order added
func (nt *Network) AllGroups() []*Group {
	n := nt.Groups.Len()
	gps := make([]*Group, n)
	for i := 0; i < n; i++ {
		gps[i] = nt.Groups.ValByIdx(i)
	}
	return gps
}

// AddGroup adds a new group with given name, number of units and rule type.
// Names must be unique: a duplicate name is logged and nil is returned.
func (nt *Network) AddGroup(name string, n int, rt rules.RuleTypes) *Group {
	if nt.GroupByName(name) != nil {
		log.Printf("Network %s AddGroup: group named %q already exists\n", nt.Nm, name)
		return nil
	}
	gp := &Group{}
	gp.Config(name, n, rt)
	gp.Network = nt
	gp.Index = nt.Groups.Len()
	if nt.rnd != nil {
		gp.SetRand(nt.rnd)
	}
	nt.Groups.Add(name, gp)
	return gp
}

// AddWTA adds a winner-take-all group with n units
func (nt *Network) AddWTA(name string, n int) *Group {
	gp := nt.AddGroup(name, n, rules.Linear)
	if gp != nil {
		gp.WTA.On = true
	}
	return gp
}

// ConnectGroups establishes a projection between two groups using the
// given pattern, and builds its synapses.  Weights are initialized from
// WtInit.
func (nt *Network) ConnectGroups(send, recv *Group, pat Pattern) *Prjn {
	if rp, ok := pat.(RandPattern); ok && nt.rnd != nil {
		rp.SetRand(nt.rnd)
	}
	pj := &Prjn{Send: send, Recv: recv, Pat: pat}
	pj.Defaults()
	if err := pj.Build(); err != nil {
		log.Println(err)
		return nil
	}
	pj.InitWts(nt.rnd)
	recv.RcvPrjns = append(recv.RcvPrjns, pj)
	send.SndPrjns = append(send.SndPrjns, pj)
	nt.Prjns = append(nt.Prjns, pj)
	return pj
}

// ConnectGroupNames establishes a projection between two groups, referenced by name,
// returning an error if either group is not found.
func (nt *Network) ConnectGroupNames(send, recv string, pat Pattern) (*Prjn, error) {
	sgp, err := nt.GroupByNameTry(send)
	if err != nil {
		return nil, err
	}
	rgp, err := nt.GroupByNameTry(recv)
	if err != nil {
		return nil, err
	}
	return nt.ConnectGroups(sgp, rgp, pat), nil
}

// FindPrjn returns the first projection from send to recv, nil if none
func (nt *Network) FindPrjn(send, recv *Group) *Prjn {
	for _, pj := range recv.RcvPrjns {
		if pj.Send == send {
			return pj
		}
	}
	return nil
}

// PrjnByName returns the projection with given name (SendToRecv), or error
func (nt *Network) PrjnByName(name string) (*Prjn, error) {
	for _, pj := range nt.Prjns {
		if pj.Name() == name {
			return pj, nil
		}
	}
	return nil, fmt.Errorf("Prjn named: %v not found in Network: %v", name, nt.Nm)
}

// ConnectUnits makes (or sets the weight of) a single synapse from unit si
// in send to unit ri in recv.  An Explicit projection between the two groups
// is created if needed.  Range sets the weight range of a new projection,
// ignored if the projection already exists.
func (nt *Network) ConnectUnits(send *Group, si int, recv *Group, ri int, wt float32, rng ...float32) (*Synapse, error) {
	var pj *Prjn
	for _, p := range recv.RcvPrjns {
		if p.Send == send {
			if _, ok := p.Pat.(*Explicit); ok {
				pj = p
				break
			}
		}
	}
	if pj == nil {
		pj = nt.ConnectGroups(send, recv, &Explicit{})
		if pj == nil {
			return nil, fmt.Errorf("Network %s ConnectUnits: could not connect %s to %s", nt.Nm, send.Nm, recv.Nm)
		}
		if len(rng) == 2 {
			pj.WtInit.Range.Set(rng[0], rng[1])
		}
	}
	return pj.AddSyn(si, ri, wt)
}

// SetRandSeed gives the network, its groups and its random connection
// patterns a private random source with given seed, for reproducible runs.
func (nt *Network) SetRandSeed(seed int64) {
	nt.RndSeed = seed
	nt.rnd = erand.NewSysRand(seed)
	for _, gp := range nt.AllGroups() {
		gp.SetRand(nt.rnd)
	}
}

// Rand returns the private random source, nil if using the global source
func (nt *Network) Rand() erand.Rand {
	return nt.rnd
}

// InitWts initializes the weights of all learning projections from their WtInit params.
// Projections with Learn off keep their configured weights.
func (nt *Network) InitWts() {
	for _, pj := range nt.Prjns {
		if pj.Learn {
			pj.InitWts(nt.rnd)
		}
	}
}

// InitActs fully initializes activation state -- not weights
func (nt *Network) InitActs() {
	for _, gp := range nt.AllGroups() {
		gp.InitActs()
	}
	nt.Cycles = 0
}

// UpdateParams updates all the derived parameters if any have changed, for all groups
// and projections
func (nt *Network) UpdateParams() {
	for _, gp := range nt.AllGroups() {
		gp.UpdateParams()
	}
	for _, pj := range nt.Prjns {
		pj.UpdateParams()
	}
}

// Cycle runs one synchronous update of all groups
func (nt *Network) Cycle() {
	nt.CycleGroups(nt.AllGroups()...)
}

// CycleGroups runs one synchronous update of the given groups: all of their
// receiving projections send first, then all of them update, and then
// their inputs are cleared.  Other groups are unchanged.
func (nt *Network) CycleGroups(gps ...*Group) {
	nt.FunTimerStart("SendInputs")
	for _, gp := range gps {
		if gp.Off {
			continue
		}
		for _, pj := range gp.RcvPrjns {
			if pj.Off || pj.Send.Off {
				continue
			}
			pj.SendInputs()
		}
	}
	nt.FunTimerStop("SendInputs")
	nt.FunTimerStart("UpdateActs")
	for _, gp := range gps {
		gp.UpdateActs()
	}
	nt.FunTimerStop("UpdateActs")
	for _, gp := range gps {
		gp.InitInputs()
	}
	nt.Cycles++
}

// InitInputs clears the inputs of all groups
func (nt *Network) InitInputs() {
	for _, gp := range nt.AllGroups() {
		gp.InitInputs()
	}
}

// ApplyParams applies given parameter style Sheet to groups and prjns in this network.
// Calls UpdateParams to ensure derived parameters are all updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, gp := range nt.AllGroups() {
		app, err := gp.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// NonDefaultParams returns a listing of all parameters in the Network that
// are not at their default values -- useful for setting param styles etc.
func (nt *Network) NonDefaultParams() string {
	nds := ""
	for _, gp := range nt.AllGroups() {
		nds += gp.NonDefaultParams()
	}
	return nds
}

// SizeReport returns a string reporting the size of each group and projection
// in the network, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, gp := range nt.AllGroups() {
		nn := len(gp.Neurons)
		nmem := nn*int(unsafe.Sizeof(Neuron{})) + 2*nn*4
		neur += nn
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Sends To:\n", gp.Nm, nn, (datasize.ByteSize)(nmem).HumanReadable())
		for _, pj := range gp.SndPrjns {
			ns := len(pj.Syns)
			syn += ns
			pmem := ns*int(unsafe.Sizeof(Synapse{})) + 2*ns*int(unsafe.Sizeof(int(0)))
			synMem += pmem
			fmt.Fprintf(&b, "\t%14s:\t Syns: %d\t SynnMem: %v\n", pj.Recv.Nm, ns, (datasize.ByteSize)(pmem).HumanReadable())
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", nt.Nm, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}

//////////////////////////////////////////////////////////////////////////////////////
//  Timing

// TimerReport reports the amount of time spent in each function
func (nt *Network) TimerReport() {
	fmt.Printf("TimerReport: %v\n", nt.Nm)
	fmt.Printf("\tFunction Name\tTotal Secs\tPct\n")
	nfn := len(nt.FunTimes)
	fnms := make([]string, 0, nfn)
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.StringSlice(fnms).Sort()
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (pcts[i] / tot)
		}
		fmt.Printf("\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], pct)
	}
	fmt.Printf("\tTotal   \t%6.4g\n", tot)
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
