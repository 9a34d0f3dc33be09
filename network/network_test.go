// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/params"
	"github.com/emer/simbrain/rules"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

var ParamSets = map[string]*params.Sheet{
	"Base": {
		{Sel: "Group", Desc: "all groups",
			Params: params.Params{
				"Group.Decay.Fraction": "0.3",
			}},
		{Sel: ".Motor", Desc: "motor groups",
			Params: params.Params{
				"Group.Linear.Slope": "2",
			}},
		{Sel: "#Output", Desc: "output only",
			Params: params.Params{
				"Group.Decay.BaseLine": "0.2",
			}},
		{Sel: "Prjn", Desc: "for reproducibility, identical weights",
			Params: params.Params{
				"Prjn.WtInit.Var": "0",
			}},
	},
}

func MakeTestNet(t *testing.T) *Network {
	net := NewNetwork("TestNet")
	in := net.AddGroup("Input", 2, rules.Linear)
	out := net.AddGroup("Output", 2, rules.Decay)
	if in == nil || out == nil {
		t.Fatal("AddGroup failed")
	}
	pj := net.ConnectGroups(in, out, NewFull())
	if pj == nil {
		t.Fatal("ConnectGroups failed")
	}
	pj.SetAllWts(0.5)
	return net
}

func TestNetCycle(t *testing.T) {
	net := MakeTestNet(t)
	in := net.GroupByName("Input")
	out := net.GroupByName("Output")
	in.ApplyExt([]float32{1, 0.5})
	net.Cycle()
	// in = .5 * 1 + .5 * .5 = .75, decays 10% toward 0
	for ni, nrn := range out.Neurons {
		if math32.Abs(nrn.Act-0.675) > difTol {
			t.Errorf("out unit %d act: %v cor: 0.675", ni, nrn.Act)
		}
		if nrn.Input != 0 {
			t.Errorf("out unit %d input not cleared: %v", ni, nrn.Input)
		}
		if out.Buf.Cur[ni] != nrn.Act || out.Buf.Prv[ni] != 0 {
			t.Errorf("out unit %d buffer: cur: %v prv: %v", ni, out.Buf.Cur[ni], out.Buf.Prv[ni])
		}
	}
	if in.Neurons[0].Act != 1 || in.Neurons[1].Act != 0.5 {
		t.Errorf("clamped inputs changed: %v", in.Acts())
	}
	net.Cycle()
	if math32.Abs(out.Buf.Prv[0]-0.675) > difTol {
		t.Errorf("prv after 2nd cycle: %v", out.Buf.Prv[0])
	}
	if net.Cycles != 2 {
		t.Errorf("cycles: %d", net.Cycles)
	}
	net.InitActs()
	if out.Neurons[0].Act != 0 || in.Neurons[0].Act != 1 || net.Cycles != 0 {
		t.Errorf("InitActs: out: %v in: %v", out.Acts(), in.Acts())
	}
}

func TestSynchronousUpdate(t *testing.T) {
	net := NewNetwork("Chain")
	a := net.AddGroup("A", 1, rules.Linear)
	b := net.AddGroup("B", 1, rules.Linear)
	c := net.AddGroup("C", 1, rules.Linear)
	net.ConnectGroups(a, b, NewOneToOne()).SetAllWts(1)
	net.ConnectGroups(b, c, NewOneToOne()).SetAllWts(1)
	a.ApplyExt([]float32{1})
	net.Cycle()
	if b.Neurons[0].Act != 1 || c.Neurons[0].Act != 0 {
		t.Errorf("cycle 1: b: %v c: %v", b.Neurons[0].Act, c.Neurons[0].Act)
	}
	net.Cycle()
	if c.Neurons[0].Act != 1 {
		t.Errorf("cycle 2: c: %v", c.Neurons[0].Act)
	}
}

func TestCycleGroups(t *testing.T) {
	net := NewNetwork("Sub")
	a := net.AddGroup("A", 1, rules.Linear)
	b := net.AddGroup("B", 1, rules.Linear)
	c := net.AddGroup("C", 1, rules.Linear)
	net.ConnectGroups(a, b, NewOneToOne()).SetAllWts(1)
	net.ConnectGroups(a, c, NewOneToOne()).SetAllWts(1)
	a.ApplyExt([]float32{0.5})
	net.CycleGroups(b)
	if b.Neurons[0].Act != 0.5 || c.Neurons[0].Act != 0 {
		t.Errorf("b: %v c: %v", b.Neurons[0].Act, c.Neurons[0].Act)
	}
}

func TestAddInputs(t *testing.T) {
	net := NewNetwork("Ext")
	g := net.AddGroup("G", 3, rules.Linear)
	g.AddInputs([]float32{0.2, -0.4})
	g.AddInputs([]float32{0.1, 0.1, 0.1, 5})
	net.Cycle()
	cor := []float32{0.3, -0.3, 0.1}
	for i, c := range cor {
		if math32.Abs(g.Neurons[i].Act-c) > difTol {
			t.Errorf("unit %d: %v cor: %v", i, g.Neurons[i].Act, c)
		}
	}
}

func TestWTA(t *testing.T) {
	net := NewNetwork("WTA")
	in := net.AddGroup("In", 3, rules.Linear)
	wta := net.AddWTA("Out", 3)
	net.ConnectGroups(in, wta, NewOneToOne()).SetAllWts(1)
	in.ApplyExt([]float32{0.1, 0.7, 0.3})
	net.Cycle()
	if wta.Winner != 1 {
		t.Errorf("winner: %d cor: 1", wta.Winner)
	}
	cor := []float32{0, 1, 0}
	for i, c := range cor {
		if wta.Neurons[i].Act != c {
			t.Errorf("unit %d: %v cor: %v", i, wta.Neurons[i].Act, c)
		}
	}

	wta.WTA.UseRandom = true
	wta.WTA.RandomProb = 1
	wta.SetRand(erand.NewSysRand(7))
	wins := map[int]int{}
	for i := 0; i < 60; i++ {
		net.Cycle()
		nwin := 0
		for _, nrn := range wta.Neurons {
			if nrn.Act == wta.WTA.WinAct {
				nwin++
			}
		}
		if nwin != 1 {
			t.Fatalf("iteration %d: %d winners", i, nwin)
		}
		wins[wta.Winner]++
	}
	if len(wins) != 3 {
		t.Errorf("random winners should cover all units: %v", wins)
	}

	wta.WTA.RandomProb = 0
	net.Cycle()
	if wta.Winner != 1 {
		t.Errorf("RandomProb 0 winner: %d cor: 1", wta.Winner)
	}
}

func checkConns(t *testing.T, cons []Conn, same, selfCon bool) {
	t.Helper()
	has := map[Conn]bool{}
	for _, cn := range cons {
		if has[cn] {
			t.Errorf("duplicate connection: %v", cn)
		}
		has[cn] = true
		if same && !selfCon && cn.Si == cn.Ri {
			t.Errorf("self connection: %v", cn)
		}
	}
}

func TestSparse(t *testing.T) {
	sp := NewSparse(0.5)
	sp.SetRand(erand.NewSysRand(1))
	cons := sp.Connect(10, 10, true)
	if len(cons) != 45 {
		t.Errorf("sparse .5 of 90: %d cor: 45", len(cons))
	}
	checkConns(t, cons, true, false)

	sp.SelfCon = true
	cons = sp.Connect(10, 10, true)
	if len(cons) != 50 {
		t.Errorf("sparse .5 of 100: %d cor: 50", len(cons))
	}

	sp.SelfCon = false
	sp.EqualizeEfferents = true
	cons = sp.Connect(10, 10, true)
	checkConns(t, cons, true, false)
	if len(cons) > 50 || len(cons) < 25 {
		t.Errorf("equalized count out of range: %d", len(cons))
	}
	nper := make([]int, 10)
	for _, cn := range cons {
		nper[cn.Si]++
	}
	for si, n := range nper {
		if n > 5 {
			t.Errorf("equalized sender %d has %d connections > 5", si, n)
		}
	}
}

func TestFixedDegree(t *testing.T) {
	for _, dir := range []DegreeDirs{In, Out} {
		fd := NewFixedDegree(3, dir)
		fd.SetRand(erand.NewSysRand(2))
		cons := fd.Connect(10, 10, true)
		checkConns(t, cons, true, false)
		if len(cons) != 30 {
			t.Errorf("%v: %d connections cor: 30", dir, len(cons))
		}
		cnt := make([]int, 10)
		for _, cn := range cons {
			if dir == In {
				cnt[cn.Ri]++
			} else {
				cnt[cn.Si]++
			}
		}
		for i, n := range cnt {
			if n != 3 {
				t.Errorf("%v unit %d degree: %d", dir, i, n)
			}
		}
	}
	fd := NewFixedDegree(5, Out)
	if cons := fd.Connect(2, 3, false); len(cons) != 6 {
		t.Errorf("degree capped by pool: %d cor: 6", len(cons))
	}
}

func TestConnectUnits(t *testing.T) {
	net := NewNetwork("Units")
	a := net.AddGroup("A", 2, rules.Linear)
	b := net.AddGroup("B", 2, rules.Linear)
	if _, err := net.ConnectUnits(a, 0, b, 1, 250, -500, 500); err != nil {
		t.Fatal(err)
	}
	sy, err := net.ConnectUnits(a, 1, b, 0, 900)
	if err != nil {
		t.Fatal(err)
	}
	if sy.Wt != 500 {
		t.Errorf("weight not clipped to range: %v", sy.Wt)
	}
	pj := net.FindPrjn(a, b)
	if pj == nil || len(pj.Syns) != 2 || len(b.RcvPrjns) != 1 {
		t.Fatalf("explicit prjn not shared")
	}
	if _, err := net.ConnectUnits(a, 5, b, 0, 1); err == nil {
		t.Errorf("out of range unit should fail")
	}
	if _, err := pj.SynTry(1, 1); err == nil {
		t.Errorf("missing synapse should fail")
	}
}

func TestGroupByName(t *testing.T) {
	net := MakeTestNet(t)
	if _, err := net.GroupByNameTry("Hidden"); err == nil {
		t.Errorf("missing group should fail")
	}
	if net.AddGroup("Input", 3, rules.Decay) != nil {
		t.Errorf("duplicate group name should fail")
	}
	if net.NGroups() != 2 || net.Group(1).Nm != "Output" {
		t.Errorf("group order wrong")
	}
	if _, err := net.ConnectGroupNames("Input", "Nope", NewFull()); err == nil {
		t.Errorf("connect to missing group should fail")
	}
	if _, err := net.PrjnByName("InputToOutput"); err != nil {
		t.Error(err)
	}
}

func TestApplyParams(t *testing.T) {
	net := MakeTestNet(t)
	net.GroupByName("Input").Cls = "Motor"
	app, err := net.ApplyParams(ParamSets["Base"], false)
	if err != nil {
		t.Fatal(err)
	}
	if !app {
		t.Errorf("no params applied")
	}
	in := net.GroupByName("Input")
	out := net.GroupByName("Output")
	if in.Decay.Fraction != 0.3 || out.Decay.Fraction != 0.3 {
		t.Errorf("Decay.Fraction: %v %v", in.Decay.Fraction, out.Decay.Fraction)
	}
	if in.Linear.Slope != 2 || out.Linear.Slope != 1 {
		t.Errorf("class selector: in: %v out: %v", in.Linear.Slope, out.Linear.Slope)
	}
	if out.Decay.BaseLine != 0.2 || in.Decay.BaseLine != 0 {
		t.Errorf("name selector: in: %v out: %v", in.Decay.BaseLine, out.Decay.BaseLine)
	}
	if net.Prjns[0].WtInit.Var != 0 {
		t.Errorf("prjn WtInit.Var: %v", net.Prjns[0].WtInit.Var)
	}
	nd := net.NonDefaultParams()
	if !strings.Contains(nd, "Fraction") {
		t.Errorf("NonDefaultParams missing Fraction:\n%s", nd)
	}
}

func TestWtsRoundTrip(t *testing.T) {
	mk := func(seed int64) *Network {
		net := NewNetwork("RT")
		net.SetRandSeed(seed)
		a := net.AddGroup("A", 4, rules.Linear)
		b := net.AddGroup("B", 3, rules.Sigmoidal)
		pj := net.ConnectGroups(a, b, NewFull())
		pj.Learn = true
		pj.WtInit.Var = 1
		net.InitWts()
		return net
	}
	src := mk(1)
	src.MetaData = map[string]string{"Trials": "5"}
	if _, err := src.ConnectUnits(src.GroupByName("B"), 2, src.GroupByName("A"), 0, 0.25); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := src.WriteWtsJSON(&buf); err != nil {
		t.Fatal(err)
	}

	dst := mk(2)
	bg, ag := dst.GroupByName("B"), dst.GroupByName("A")
	dst.ConnectGroups(bg, ag, &Explicit{})
	if err := dst.ReadWtsJSON(&buf); err != nil {
		t.Fatal(err)
	}
	cmp := func(a, b *Prjn) {
		if len(a.Syns) != len(b.Syns) {
			t.Fatalf("%s syn count: %d vs %d", a.Name(), len(a.Syns), len(b.Syns))
		}
		for i := range a.Syns {
			sa := a.Syns[i]
			sb := b.Syn(int(sa.Si), int(sa.Ri))
			if sb == nil || math32.Abs(sa.Wt-sb.Wt) > 1.0e-3 {
				t.Errorf("%s syn %d: %v vs %v", a.Name(), i, sa, sb)
			}
		}
	}
	for i := range src.Prjns {
		cmp(src.Prjns[i], dst.Prjns[i])
	}
	if dst.MetaData["Trials"] != "5" {
		t.Errorf("metadata not restored: %v", dst.MetaData)
	}

	fn := filepath.Join(t.TempDir(), "rt.wts.gz")
	if err := src.SaveWtsJSON(fn); err != nil {
		t.Fatal(err)
	}
	dst2 := mk(3)
	dst2.ConnectGroups(dst2.GroupByName("B"), dst2.GroupByName("A"), &Explicit{})
	if err := dst2.OpenWtsJSON(fn); err != nil {
		t.Fatal(err)
	}
	for i := range src.Prjns {
		cmp(src.Prjns[i], dst2.Prjns[i])
	}
	if dst2.WtsFile != fn {
		t.Errorf("WtsFile: %q", dst2.WtsFile)
	}
}

func TestSizeReport(t *testing.T) {
	net := MakeTestNet(t)
	rep := net.SizeReport()
	for _, nm := range []string{"Input", "Output", "TestNet"} {
		if !strings.Contains(rep, nm) {
			t.Errorf("SizeReport missing %s:\n%s", nm, rep)
		}
	}
	net.Cycle()
	if _, ok := net.FunTimes["SendInputs"]; !ok {
		t.Errorf("SendInputs timer not recorded")
	}
}

func TestActBuffer(t *testing.T) {
	var ab ActBuffer
	ab.Init(3)
	ab.Set([]float32{1, 2, 3, 4})
	ab.Shift()
	ab.Set([]float32{2})
	if ab.Delta(0) != 1 || ab.Delta(2) != 0 || ab.Len() != 3 {
		t.Errorf("buffer: cur: %v prv: %v", ab.Cur, ab.Prv)
	}
	ab.Reset()
	if ab.Cur[0] != 0 || ab.Prv[2] != 0 {
		t.Errorf("reset: cur: %v prv: %v", ab.Cur, ab.Prv)
	}
}

func TestUnitVals(t *testing.T) {
	net := MakeTestNet(t)
	in := net.GroupByName("Input")
	in.SetLabels("L", "R")
	in.SetActs([]float32{0.3, 0.6})
	var vals []float32
	if err := in.UnitVals(&vals, "Act"); err != nil {
		t.Fatal(err)
	}
	if vals[1] != 0.6 {
		t.Errorf("UnitVals: %v", vals)
	}
	if err := in.UnitVals(&vals, "Spike"); err == nil {
		t.Errorf("bad var should fail")
	}
	if idx, err := in.UnitByLabel("R"); err != nil || idx != 1 {
		t.Errorf("UnitByLabel: %d %v", idx, err)
	}
	if err := in.SetRuleType(rules.RuleTypesN); err == nil {
		t.Errorf("invalid rule type should fail")
	}
}

func TestWtInitSeeded(t *testing.T) {
	for dist := erand.Uniform; dist < erand.RndDistsN; dist++ {
		var wts [2][]float32
		for i := range wts {
			pj := MakeTestNet(t).Prjns[0]
			pj.WtInit.Dist = dist
			pj.WtInit.Mean = 0.2
			pj.WtInit.Var = 0.3
			pj.WtInit.Par = 2
			pj.InitWts(erand.NewSysRand(3))
			if err := pj.SynVals(&wts[i], "Wt"); err != nil {
				t.Fatal(err)
			}
		}
		for j, wt := range wts[0] {
			if wt != wts[1][j] {
				t.Errorf("dist %v syn %d: %v != %v with the same seed", dist, j, wt, wts[1][j])
			}
			if math32.IsNaN(wt) || wt < -10 || wt > 10 {
				t.Errorf("dist %v syn %d: %v out of range", dist, j, wt)
			}
		}
	}
}
