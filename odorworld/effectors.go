// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package odorworld

import "github.com/goki/ki/kit"

// Effector accumulates commands during a tick, and acts on its entity
// when applied.  Commands from several couplings add up.
type Effector interface {
	// Name is the unique name of the effector on its entity
	Name() string

	// Consume adds the first value to the pending command
	Consume(vals []float32)

	// Amount returns the pending command
	Amount() float32

	// Apply acts on the entity with the pending command and clears it
	Apply(en *Entity)

	// Clear clears the pending command
	Clear()
}

// StraightMovement moves the entity forward by Amount * Scale
type StraightMovement struct {
	Nm    string  `desc:"name of the effector"`
	Scale float32 `def:"0.5" desc:"distance moved per unit of command"`
	Amt   float32 `inactive:"+" desc:"pending command"`
}

func NewStraightMovement(name string) *StraightMovement {
	return &StraightMovement{Nm: name, Scale: 0.5}
}

func (sm *StraightMovement) Name() string    { return sm.Nm }
func (sm *StraightMovement) Amount() float32 { return sm.Amt }
func (sm *StraightMovement) Clear()          { sm.Amt = 0 }

func (sm *StraightMovement) Consume(vals []float32) {
	if len(vals) > 0 {
		sm.Amt += vals[0]
	}
}

func (sm *StraightMovement) Apply(en *Entity) {
	if sm.Amt != 0 {
		en.MoveForward(sm.Amt * sm.Scale)
	}
	sm.Amt = 0
}

// TurnDirs are the directions of Turning effectors
type TurnDirs int32

//go:generate stringer -type=TurnDirs

var KiT_TurnDirs = kit.Enums.AddEnum(TurnDirsN, kit.NotBitFlag, nil)

func (ev TurnDirs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *TurnDirs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// TurnLeft turns counter-clockwise
	TurnLeft TurnDirs = iota

	// TurnRight turns clockwise
	TurnRight

	TurnDirsN
)

// Turning turns the entity by Amount * Scale degrees in its direction
type Turning struct {
	Nm    string   `desc:"name of the effector"`
	Dir   TurnDirs `desc:"direction of turning"`
	Scale float32  `def:"0.1" desc:"degrees turned per unit of command"`
	Amt   float32  `inactive:"+" desc:"pending command"`
}

func NewTurning(name string, dir TurnDirs) *Turning {
	return &Turning{Nm: name, Dir: dir, Scale: 0.1}
}

func (tu *Turning) Name() string    { return tu.Nm }
func (tu *Turning) Amount() float32 { return tu.Amt }
func (tu *Turning) Clear()          { tu.Amt = 0 }

func (tu *Turning) Consume(vals []float32) {
	if len(vals) > 0 {
		tu.Amt += vals[0]
	}
}

func (tu *Turning) Apply(en *Entity) {
	if tu.Amt != 0 {
		deg := tu.Amt * tu.Scale
		if tu.Dir == TurnRight {
			deg = -deg
		}
		en.Turn(deg)
	}
	tu.Amt = 0
}
