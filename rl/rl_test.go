// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/simbrain/network"
	"github.com/emer/simbrain/rules"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

// makeFanIn returns a net with a 2 unit Input projecting with zero
// learnable weights into a Linear group of n units
func makeFanIn(t *testing.T, n int) (*network.Network, *network.Group, *network.Prjn) {
	net := network.NewNetwork("RL")
	in := net.AddGroup("Input", 2, rules.Linear)
	out := net.AddGroup("Output", n, rules.Linear)
	pj := net.ConnectGroups(in, out, network.NewFull())
	if pj == nil {
		t.Fatal("ConnectGroups failed")
	}
	pj.Learn = true
	pj.SetAllWts(0)
	return net, in, pj
}

func TestTDError(t *testing.T) {
	td := TDError(1.0, 0.2, 0.5, 0.4)
	if math32.Abs(td-1.1) > difTol {
		t.Errorf("TDError: got %v, cor 1.1", td)
	}
	tp := TDParams{}
	tp.Defaults()
	if tp.Gamma != 0.4 || tp.Alpha != 5 || tp.Epsilon != 0.25 || tp.Lambda != 0 {
		t.Errorf("TDParams defaults: %+v", tp)
	}
	if v := tp.TDError(0, 1, 0); math32.Abs(v-0.4) > difTol {
		t.Errorf("TDParams.TDError: got %v, cor 0.4", v)
	}
}

func TestCritic(t *testing.T) {
	_, in, pj := makeFanIn(t, 1)
	cr, err := NewCritic(0, pj)
	if err != nil {
		t.Fatal(err)
	}
	in.ApplyExt([]float32{1, 0.5})
	cr.Step()
	tp := TDParams{Gamma: 0.5, Lambda: 0, Alpha: 0.5}
	cr.SetDA(1)
	cr.Learn(&tp)
	if v := cr.Value(); math32.Abs(v-0.625) > difTol {
		t.Errorf("value after learning: got %v, cor 0.625", v)
	}

	// traces: second learn with lambda 1 has trace .5 * 1 + 1 = 1.5
	cr.Init()
	pj.SetAllWts(0)
	cr.Step()
	cr.SetDA(1)
	tp.Lambda = 1
	cr.Learn(&tp)
	cr.Learn(&tp)
	if w := pj.Syn(0, 0).Wt; math32.Abs(w-1.25) > difTol {
		t.Errorf("trace learning: got %v, cor 1.25", w)
	}

	if _, err := NewCritic(0, nil); err == nil {
		t.Errorf("nil projection should fail")
	}
}

func TestActor(t *testing.T) {
	_, in, pj := makeFanIn(t, 2)
	ac, err := NewActor(pj)
	if err != nil {
		t.Fatal(err)
	}
	tp := TDParams{Alpha: 1}
	ac.SetDA(2)
	ac.Learn(&tp) // no winner yet
	if pj.WtMean() != 0 {
		t.Errorf("actor learned without a winner")
	}
	in.ApplyExt([]float32{1, 0.5})
	ac.Step(1)
	ac.Learn(&tp)
	if w := pj.Syn(0, 1).Wt; math32.Abs(w-2) > difTol {
		t.Errorf("winner fan-in: got %v, cor 2", w)
	}
	if w := pj.Syn(1, 1).Wt; math32.Abs(w-1) > difTol {
		t.Errorf("winner fan-in: got %v, cor 1", w)
	}
	if w := pj.Syn(0, 0).Wt; w != 0 {
		t.Errorf("loser fan-in changed: %v", w)
	}
}

func TestPredictor(t *testing.T) {
	net := network.NewNetwork("Pred")
	bias := net.AddGroup("Bias", 1, rules.Linear)
	tgt := net.AddGroup("Target", 2, rules.Linear)
	pred := net.AddGroup("Pred", 2, rules.Linear)
	pj := net.ConnectGroups(bias, pred, network.NewFull())
	pj.Learn = true
	pj.SetAllWts(0)
	pr, err := NewPredictor(tgt, pj)
	if err != nil {
		t.Fatal(err)
	}
	bias.ApplyExt([]float32{1})
	for i := 0; i < 300; i++ {
		tgt.ApplyExt([]float32{0.3, 0.7})
		pr.Error()
		pr.Learn()
		pr.Step()
	}
	if pr.GetDA() > 1.0e-3 {
		t.Errorf("prediction error did not converge: %v", pr.GetDA())
	}
	if a := pred.Acts(); math32.Abs(a[1]-0.7) > 1.0e-3 {
		t.Errorf("prediction acts: %v, cor [0.3 0.7]", a)
	}

	small := net.AddGroup("Small", 1, rules.Linear)
	if _, err := NewPredictor(small, pj); err == nil {
		t.Errorf("size mismatch should fail")
	}
}

func TestSendDA(t *testing.T) {
	_, _, pj := makeFanIn(t, 1)
	cr, _ := NewCritic(0, pj)
	ac, _ := NewActor(pj)
	var sd SendDA
	sd.Add(cr, ac)
	sd.SendDA(0.7)
	if cr.GetDA() != 0.7 || ac.GetDA() != 0.7 {
		t.Errorf("SendDA: critic %v actor %v", cr.GetDA(), ac.GetDA())
	}
}
