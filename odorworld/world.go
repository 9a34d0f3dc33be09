// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package odorworld

import (
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
)

// World is a flat rectangular world of entities, one of which is the
// agent whose sensors and effectors are exposed through the env.Env interface.
// Positions are clamped to [0, Width] x [0, Height].
type World struct {
	Nm       string                      `desc:"name of this world"`
	Dsc      string                      `desc:"description of this world"`
	Width    float32                     `def:"600" desc:"width of the world"`
	Height   float32                     `def:"400" desc:"height of the world"`
	Entities []*Entity                   `desc:"all entities, in order added"`
	Agent    *Entity                     `desc:"the agent whose sensors are the env states and effectors the env actions"`
	Run      env.Ctr                     `view:"inline" desc:"current run, as provided during Init"`
	Epoch    env.Ctr                     `view:"inline" desc:"epoch counter -- incremented by caller"`
	Trial    env.Ctr                     `view:"inline" desc:"trial counter -- incremented by NewTrial"`
	Tick     env.Ctr                     `view:"inline" desc:"tick within the trial -- incremented by Step"`
	states   map[string]*etensor.Float32
}

// NewWorld returns a new empty world of given size
func NewWorld(name string, width, height float32) *World {
	wl := &World{Nm: name, Width: width, Height: height}
	wl.Run.Scale = env.Run
	wl.Epoch.Scale = env.Epoch
	wl.Trial.Scale = env.Trial
	wl.Tick.Scale = env.Tick
	return wl
}

func (wl *World) Name() string { return wl.Nm }
func (wl *World) Desc() string { return wl.Dsc }

// AddEntity adds the entity, which must have a unique name
func (wl *World) AddEntity(en *Entity) error {
	if en == nil {
		return fmt.Errorf("World %s AddEntity: nil entity", wl.Nm)
	}
	if _, err := wl.EntityByName(en.Nm); err == nil {
		return fmt.Errorf("World %s AddEntity: entity named %q already exists", wl.Nm, en.Nm)
	}
	en.World = wl
	wl.Entities = append(wl.Entities, en)
	wl.ClampPos(en)
	return nil
}

// RemoveEntity removes the entity of given name.  The agent cannot be removed.
func (wl *World) RemoveEntity(name string) error {
	for i, en := range wl.Entities {
		if en.Nm != name {
			continue
		}
		if en == wl.Agent {
			return fmt.Errorf("World %s RemoveEntity: cannot remove the agent %q", wl.Nm, name)
		}
		wl.Entities = append(wl.Entities[:i], wl.Entities[i+1:]...)
		en.World = nil
		return nil
	}
	return fmt.Errorf("World %s RemoveEntity: no entity named %q", wl.Nm, name)
}

// NewEntity adds a new entity of given type at given location
func (wl *World) NewEntity(name string, typ EntityTypes, x, y float32) (*Entity, error) {
	en := &Entity{Nm: name, Type: typ}
	en.SetPos(x, y)
	if err := wl.AddEntity(en); err != nil {
		return nil, err
	}
	return en, nil
}

// SetAgent sets the agent, which must already be in the world
func (wl *World) SetAgent(en *Entity) error {
	if en == nil || en.World != wl {
		return fmt.Errorf("World %s SetAgent: entity is not in this world", wl.Nm)
	}
	wl.Agent = en
	wl.states = nil
	return nil
}

// EntityByName returns the entity of given name, or error
func (wl *World) EntityByName(name string) (*Entity, error) {
	for _, en := range wl.Entities {
		if en.Nm == name {
			return en, nil
		}
	}
	return nil, fmt.Errorf("World %s: no entity named %q", wl.Nm, name)
}

// EntitiesOfType returns all entities of given type
func (wl *World) EntitiesOfType(typ EntityTypes) []*Entity {
	var ents []*Entity
	for _, en := range wl.Entities {
		if en.Type == typ {
			ents = append(ents, en)
		}
	}
	return ents
}

// Nearest returns the entity among ents nearest to from (excluding from itself),
// and its distance -- nil if none
func (wl *World) Nearest(from *Entity, ents []*Entity) (*Entity, float32) {
	var near *Entity
	mind := float32(math32.MaxFloat32)
	for _, en := range ents {
		if en == from {
			continue
		}
		d := from.DistTo(en)
		if d < mind {
			near = en
			mind = d
		}
	}
	return near, mind
}

// ClampPos keeps the entity within the world bounds
func (wl *World) ClampPos(en *Entity) {
	if wl.Width > 0 {
		en.Pos.X = math32.Max(0, math32.Min(en.Pos.X, wl.Width))
	}
	if wl.Height > 0 {
		en.Pos.Y = math32.Max(0, math32.Min(en.Pos.Y, wl.Height))
	}
}

// UpdateSensors updates the sensors of all entities
func (wl *World) UpdateSensors() {
	for _, en := range wl.Entities {
		en.UpdateSensors()
	}
}

// ApplyEffectors applies the pending effector commands of all entities,
// keeping them in bounds
func (wl *World) ApplyEffectors() {
	for _, en := range wl.Entities {
		if len(en.Effectors) == 0 {
			continue
		}
		en.ApplyEffectors()
		wl.ClampPos(en)
	}
}

// Init initializes counters for a new run and updates sensors
func (wl *World) Init(run int) {
	wl.Run.Scale = env.Run
	wl.Epoch.Scale = env.Epoch
	wl.Trial.Scale = env.Trial
	wl.Tick.Scale = env.Tick
	wl.Run.Init()
	wl.Epoch.Init()
	wl.Trial.Init()
	wl.Tick.Init()
	wl.Run.Cur = run
	wl.Trial.Cur = -1 // first NewTrial = 0
	for _, en := range wl.Entities {
		en.ClearEffectors()
	}
	wl.UpdateSensors()
}

// NewTrial starts a new trial: increments the trial counter, resets
// the tick and clears pending effector commands
func (wl *World) NewTrial() {
	wl.Trial.Incr()
	wl.Tick.Init()
	for _, en := range wl.Entities {
		en.ClearEffectors()
	}
	wl.UpdateSensors()
}

// Step applies effector commands, then updates sensors for the new positions
func (wl *World) Step() bool {
	wl.Epoch.Same()
	wl.Trial.Same()
	wl.ApplyEffectors()
	wl.UpdateSensors()
	wl.Tick.Incr()
	return true
}

func (wl *World) Validate() error {
	if wl.Width <= 0 || wl.Height <= 0 {
		return fmt.Errorf("World %s: size must be positive: %v x %v", wl.Nm, wl.Width, wl.Height)
	}
	if wl.Agent == nil {
		return fmt.Errorf("World %s: no agent set", wl.Nm)
	}
	return nil
}

func (wl *World) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Epoch, env.Trial, env.Tick}
}

func (wl *World) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return wl.Run.Query()
	case env.Epoch:
		return wl.Epoch.Query()
	case env.Trial:
		return wl.Trial.Query()
	case env.Tick:
		return wl.Tick.Query()
	}
	return -1, -1, false
}

// States are the agent's sensors, by sensor name
func (wl *World) States() env.Elements {
	if wl.Agent == nil {
		return nil
	}
	els := make(env.Elements, len(wl.Agent.Sensors))
	for i, sn := range wl.Agent.Sensors {
		els[i] = env.Element{sn.Name(), []int{len(sn.Values())}, nil}
	}
	return els
}

// State returns the current values of the agent's sensor of given name
func (wl *World) State(element string) etensor.Tensor {
	if wl.Agent == nil {
		return nil
	}
	sn, err := wl.Agent.SensorByName(element)
	if err != nil {
		log.Println(err)
		return nil
	}
	vals := sn.Values()
	if wl.states == nil {
		wl.states = make(map[string]*etensor.Float32)
	}
	tsr, ok := wl.states[element]
	if !ok || tsr.Len() != len(vals) {
		tsr = etensor.NewFloat32([]int{len(vals)}, nil, nil)
		wl.states[element] = tsr
	}
	copy(tsr.Values, vals)
	return tsr
}

// Actions are the agent's effectors, each taking one command value
func (wl *World) Actions() env.Elements {
	if wl.Agent == nil {
		return nil
	}
	els := make(env.Elements, len(wl.Agent.Effectors))
	for i, ef := range wl.Agent.Effectors {
		els[i] = env.Element{ef.Name(), []int{1}, nil}
	}
	return els
}

// Action adds the first value of input to the agent's effector of given
// name, applied at the next Step
func (wl *World) Action(element string, input etensor.Tensor) {
	if wl.Agent == nil || input == nil || input.Len() == 0 {
		return
	}
	ef, err := wl.Agent.EffectorByName(element)
	if err != nil {
		log.Println(err)
		return
	}
	ef.Consume([]float32{float32(input.FloatVal1D(0))})
}

// Compile-time check that implements Env interface
var _ env.Env = (*World)(nil)
