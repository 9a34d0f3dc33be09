// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"encoding/json"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

var testIns = []float32{-3e38, -1e37, -1000, -10, -2.5, -1, -0.5, -0.1, 0, 0.05, 0.3, 0.9, 1, 1.5, 3, 10, 1000, 1e37, 3e38}

func TestDecayClip(t *testing.T) {
	dp := DecayParams{}
	dp.Defaults()
	dp.Noise.On = true
	dp.Noise.Var = 5
	dp.SetRand(erand.NewSysRand(1))
	for _, typ := range []DecayTypes{Relative, Absolute} {
		dp.Type = typ
		for _, in := range testIns {
			for _, act := range []float32{-1, 0, 0.5, 1} {
				for _, bias := range []float32{-2, 0, 2, 3e38} {
					v := dp.ActFmInput(in, act, bias)
					if math32.IsNaN(v) || v < dp.Bound.Floor() || v > dp.Bound.Ceiling() {
						t.Errorf("decay %v out of bounds: in: %v act: %v bias: %v -> %v", typ, in, act, bias, v)
					}
				}
			}
		}
	}
}

func TestDecayNoOvershoot(t *testing.T) {
	dp := DecayParams{}
	dp.Defaults()
	dp.Bound.Clip = false
	dp.BaseLine = 0.5
	dp.Type = Absolute
	dp.Amount = 0.3

	vals := []float32{-2, 0, 0.3, 0.45, 0.5, 0.6, 0.7, 0.9, 3}
	for _, val := range vals {
		dv := dp.DecayVal(val)
		got := dp.ActFmInput(val, 0, 0)
		var cor float32
		switch {
		case val < dp.BaseLine:
			cor = math32.Min(val+dv, dp.BaseLine)
		case val > dp.BaseLine:
			cor = math32.Max(val-dv, dp.BaseLine)
		default:
			cor = val
		}
		if math32.Abs(got-cor) > difTol {
			t.Errorf("absolute decay: val: %v got: %v cor: %v", val, got, cor)
		}
	}

	dp.Type = Relative
	dp.Fraction = 0.25
	for _, val := range vals {
		got := dp.ActFmInput(val, 0, 0)
		cor := val - 0.25*(val-dp.BaseLine)
		if math32.Abs(got-cor) > difTol {
			t.Errorf("relative decay: val: %v got: %v cor: %v", val, got, cor)
		}
	}
}

func TestDecaySum(t *testing.T) {
	dp := DecayParams{}
	dp.Defaults()
	// in + act + bias = 0.5, relative .1 toward 0 = 0.45
	got := dp.ActFmInput(0.2, 0.2, 0.1)
	if math32.Abs(got-0.45) > difTol {
		t.Errorf("decay sum: got %v, cor 0.45", got)
	}
}

func TestSigmoidBounds(t *testing.T) {
	sp := SigmoidParams{}
	sp.Defaults()
	bounds := [][2]float32{{0, 1}, {-1, 1}, {-3, 7}}
	for sq := Logistic; sq < SquashTypesN; sq++ {
		sp.Squash = sq
		for _, bd := range bounds {
			sp.Bound.Range.Set(bd[0], bd[1])
			for _, slope := range []float32{0.1, 1, 10} {
				sp.Slope = slope
				for _, in := range testIns {
					v := sp.ActFmInput(in, 0, 0)
					if math32.IsNaN(v) || v < bd[0] || v > bd[1] {
						t.Errorf("%v out of bounds %v: slope: %v in: %v -> %v", sq, bd, slope, in, v)
					}
				}
			}
		}
	}
}

func TestSigmoidMidpoint(t *testing.T) {
	sp := SigmoidParams{}
	sp.Defaults()
	sp.Bound.Range.Set(-1, 1)
	for _, sq := range []SquashTypes{Logistic, Arctan, Tanh} {
		sp.Squash = sq
		if v := sp.Value(0); math32.Abs(v) > difTol {
			t.Errorf("%v midpoint: %v", sq, v)
		}
	}
}

func TestSigmoidDeriv(t *testing.T) {
	sp := SigmoidParams{}
	sp.Defaults()
	sp.Bound.Range.Set(-1, 2)
	sp.Slope = 1.5
	const h = float32(1.0e-2)
	for _, sq := range []SquashTypes{Logistic, Arctan, Tanh} {
		sp.Squash = sq
		for _, x := range []float32{-2, -0.5, 0, 0.3, 1, 2} {
			num := (sp.Value(x+h) - sp.Value(x-h)) / (2 * h)
			an := sp.Deriv(x)
			if math32.Abs(num-an) > 1.0e-2 {
				t.Errorf("%v deriv at %v: analytic: %v numeric: %v", sq, x, an, num)
			}
		}
	}
}

func TestLinear(t *testing.T) {
	lp := LinearParams{}
	lp.Defaults()
	lp.Slope = 2
	lp.Bound.Range.Set(-100, 200)
	if v := lp.ActFmInput(3, 0, 1); v != 8 {
		t.Errorf("linear: got %v, cor 8", v)
	}
	if v := lp.ActFmInput(300, 0, 0); v != 200 {
		t.Errorf("linear clip: got %v, cor 200", v)
	}
	lp.Relu = true
	if v := lp.ActFmInput(-3, 0, 0); v != 0 {
		t.Errorf("linear relu: got %v, cor 0", v)
	}
}

func TestIncrementDecrement(t *testing.T) {
	bp := BoundsParams{}
	bp.Set(true, -1, 1)
	if v := bp.Increment(0.9, 0.5); v != 1 {
		t.Errorf("increment: got %v, cor 1", v)
	}
	if v := bp.Increment(1.5, 0.5); v != 1.5 {
		t.Errorf("increment above ceiling: got %v, cor 1.5", v)
	}
	if v := bp.Decrement(-0.9, 0.5); v != -1 {
		t.Errorf("decrement: got %v, cor -1", v)
	}
}

func TestNewRule(t *testing.T) {
	for typ := Decay; typ < RuleTypesN; typ++ {
		rl, err := NewRule(typ)
		if err != nil {
			t.Fatal(err)
		}
		if rl.RuleType() != typ {
			t.Errorf("NewRule %v returned %v", typ, rl.RuleType())
		}
	}
	if _, err := NewRule(RuleTypesN); err == nil {
		t.Errorf("NewRule should fail on invalid type")
	}
	rl, err := NewRuleByName("Sigmoidal")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rl.(*SigmoidParams); !ok {
		t.Errorf("NewRuleByName Sigmoidal returned %T", rl)
	}
	if _, err := NewRuleByName("Spiking"); err == nil {
		t.Errorf("NewRuleByName should fail on unknown name")
	}
}

func TestRuleTypesJSON(t *testing.T) {
	b, err := json.Marshal(Linear)
	if err != nil {
		t.Fatal(err)
	}
	var typ RuleTypes
	if err := json.Unmarshal(b, &typ); err != nil {
		t.Fatal(err)
	}
	if typ != Linear {
		t.Errorf("json: %s decoded to %v", b, typ)
	}
}

func TestNoiseSeeded(t *testing.T) {
	for dist := erand.Uniform; dist < erand.RndDistsN; dist++ {
		mk := func() *DecayParams {
			dp := &DecayParams{}
			dp.Defaults()
			dp.Bound.Clip = false
			dp.Noise.On = true
			dp.Noise.Dist = dist
			dp.Noise.Var = 0.2
			dp.Noise.Par = 2
			if dist == erand.Poisson {
				dp.Noise.Var = 5
			}
			dp.SetRand(erand.NewSysRand(42))
			return dp
		}
		a := mk()
		b := mk()
		for i := 0; i < 20; i++ {
			va := a.ActFmInput(0.3, 0, 0)
			vb := b.ActFmInput(0.3, 0, 0)
			if va != vb {
				t.Errorf("%v: seeded noise differs at %d: %v vs %v", dist, i, va, vb)
			}
		}
	}
}

func TestSigmoidExtremes(t *testing.T) {
	sp := SigmoidParams{}
	sp.Defaults()
	sp.Squash = NoisyXX1
	for _, in := range []float32{1e37, 3e38} {
		if v := sp.ActFmInput(in, 0, 0); v != 1 {
			t.Errorf("NoisyXX1 at %v: %v cor: 1", in, v)
		}
		if v := sp.ActFmInput(-in, 0, 0); math32.IsNaN(v) || v < 0 || v > 1 {
			t.Errorf("NoisyXX1 at %v: %v out of bounds", -in, v)
		}
	}
	if v := sp.XX1.XX1(math32.Inf(1)); v != 1 {
		t.Errorf("XX1 at +Inf: %v cor: 1", v)
	}
}

func TestDecayOverflow(t *testing.T) {
	dp := DecayParams{}
	dp.Defaults()
	if v := dp.ActFmInput(3e38, 0, 3e38); v != dp.Bound.Ceiling() {
		t.Errorf("decay of overflowing sum: %v cor: %v", v, dp.Bound.Ceiling())
	}
	if v := dp.ActFmInput(-3e38, -3e38, 0); v != dp.Bound.Floor() {
		t.Errorf("decay of overflowing negative sum: %v cor: %v", v, dp.Bound.Floor())
	}
	bp := BoundsParams{}
	bp.Set(true, -1, 1)
	if v := bp.ClipAct(math32.NaN()); v != -1 {
		t.Errorf("ClipAct NaN: %v cor: -1", v)
	}
}

func TestXX1(t *testing.T) {
	xx1 := XX1Params{}
	xx1.Defaults()

	tstx := []float32{-0.05, -0.04, -0.03, -0.02, -0.01, 0, .01, .02, .03, .04, .05, .1, .2, .3, .4, .5}
	cory := []float32{1.7735989e-14, 7.155215e-12, 2.8866178e-09, 1.1645374e-06, 0.00046864923, 0.094767615, 0.47916666, 0.65277773, 0.742268, 0.7967479, 0.8333333, 0.90909094, 0.95238096, 0.96774197, 0.9756098, 0.98039216}

	for i := range tstx {
		y := xx1.NoisyXX1(tstx[i])
		dif := math32.Abs(y - cory[i])
		if dif > 1.0e-10 {
			t.Errorf("XX1 err: idx: %v, x: %v, y: %v, cor y: %v, dif: %v", i, tstx[i], y, cory[i], dif)
		}
	}
}
