// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

// Rule is the interface for all neuron update rules.
// A Rule is stateless apart from its configuration (and its noise
// source), so one Rule can be applied to every unit in a group.
type Rule interface {
	// RuleType returns the type of this rule
	RuleType() RuleTypes

	// Defaults sets default parameter values
	Defaults()

	// Update must be called after any changes to parameters
	Update()

	// ActFmInput computes the new activation for a unit with given net input,
	// current activation and bias.
	ActFmInput(in, act, bias float32) float32

	// Deriv returns the derivative of the activation function at given
	// net input value, for use in learning rules.
	Deriv(val float32) float32

	// Bounds returns the clipping / output bounds of the rule
	Bounds() *BoundsParams

	// SetRand sets the random source used for noise -- nil uses the global source
	SetRand(rnd erand.Rand)
}

// RuleTypes are the different kinds of update rules
type RuleTypes int32

//go:generate stringer -type=RuleTypes

var KiT_RuleTypes = kit.Enums.AddEnum(RuleTypesN, kit.NotBitFlag, nil)

func (ev RuleTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *RuleTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The update rule types
const (
	// Decay moves summed activation toward a baseline
	Decay RuleTypes = iota

	// Sigmoidal squashes input + bias through a sigmoid-like function
	Sigmoidal

	// Linear is slope * (input + bias), optionally rectified, then clipped
	Linear

	RuleTypesN
)

// NewRule returns a new rule of given type, with defaults set.
// An unknown type is an error.
func NewRule(typ RuleTypes) (Rule, error) {
	var rl Rule
	switch typ {
	case Decay:
		rl = &DecayParams{}
	case Sigmoidal:
		rl = &SigmoidParams{}
	case Linear:
		rl = &LinearParams{}
	default:
		return nil, fmt.Errorf("rules.NewRule: unknown rule type: %v", typ)
	}
	rl.Defaults()
	return rl, nil
}

// NewRuleByName returns a new rule from the string name of its type
// (e.g., "Decay", "Sigmoidal", "Linear").
func NewRuleByName(name string) (Rule, error) {
	var typ RuleTypes
	if err := typ.FromString(name); err != nil {
		return nil, fmt.Errorf("rules.NewRuleByName: %w", err)
	}
	return NewRule(typ)
}

//////////////////////////////////////////////////////////////////////////////////////
//  BoundsParams

// BoundsParams specify the [floor, ceiling] range of activations and
// whether activations are clipped to it.
type BoundsParams struct {
	Clip  bool       `def:"true" desc:"whether to clip activations to Range after each update"`
	Range minmax.F32 `desc:"Min = floor (lower bound), Max = ceiling (upper bound) of activation"`
}

// Set sets the clipping state and range
func (bp *BoundsParams) Set(clip bool, floor, ceil float32) {
	bp.Clip = clip
	bp.Range.Set(floor, ceil)
}

// ClipAct clips the activation to the range if Clip is on.
// NaN is clipped to the floor.
func (bp *BoundsParams) ClipAct(val float32) float32 {
	if !bp.Clip {
		return val
	}
	if math32.IsNaN(val) {
		return bp.Range.Min
	}
	return bp.Range.ClipVal(val)
}

// Floor returns the lower bound
func (bp *BoundsParams) Floor() float32 { return bp.Range.Min }

// Ceiling returns the upper bound
func (bp *BoundsParams) Ceiling() float32 { return bp.Range.Max }

// Increment adds inc to act, respecting the ceiling when clipping --
// a unit already at or above the ceiling is left unchanged.
func (bp *BoundsParams) Increment(act, inc float32) float32 {
	if bp.Clip && act >= bp.Range.Max {
		return act
	}
	return bp.ClipAct(act + inc)
}

// Decrement subtracts dec from act, respecting the floor when clipping --
// a unit already at or below the floor is left unchanged.
func (bp *BoundsParams) Decrement(act, dec float32) float32 {
	if bp.Clip && act <= bp.Range.Min {
		return act
	}
	return bp.ClipAct(act - dec)
}
