// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package odorworld

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// EntityTypes are the kinds of things in the world
type EntityTypes int32

//go:generate stringer -type=EntityTypes

var KiT_EntityTypes = kit.Enums.AddEnum(EntityTypesN, kit.NotBitFlag, nil)

func (ev EntityTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *EntityTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// UnmarshalYAML allows entity types to be given by name in YAML files
func (ev *EntityTypes) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return ev.FromString(s)
}

// The entity types
const (
	Mouse EntityTypes = iota
	Swiss
	Flower
	Candle
	Fish
	Bell
	Cow
	Steak

	EntityTypesN
)

// Entity is one thing in the world, e.g., an agent or an object
type Entity struct {
	Nm        string       `desc:"name of the entity -- must be unique in the world"`
	Type      EntityTypes  `desc:"type of entity -- what object sensors detect"`
	Pos       mat32.Vec2   `desc:"location in the world"`
	Heading   float32      `desc:"direction the entity faces, in degrees counter-clockwise from +x, in [0, 360)"`
	Smell     *SmellSource `desc:"smell emitted by this entity -- nil if none"`
	Sensors   []Sensor     `desc:"sensors, updated each world step"`
	Effectors []Effector   `desc:"effectors, applied each world step"`
	World     *World       `copy:"-" json:"-" xml:"-" view:"-" desc:"the world we belong to"`
}

func (en *Entity) Name() string { return en.Nm }

// SetPos sets the location
func (en *Entity) SetPos(x, y float32) {
	en.Pos = mat32.NewVec2(x, y)
}

// SetHeading sets the heading in degrees, normalized to [0, 360)
func (en *Entity) SetHeading(deg float32) {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	en.Heading = deg
}

// Turn turns by given degrees: positive is counter-clockwise (left)
func (en *Entity) Turn(deg float32) {
	en.SetHeading(en.Heading + deg)
}

// MoveForward moves the entity dist along its heading
func (en *Entity) MoveForward(dist float32) {
	en.Pos = en.PointAt(0, dist)
}

// PointAt returns the point at given distance along the heading rotated by angle degrees
func (en *Entity) PointAt(angle, dist float32) mat32.Vec2 {
	rad := (en.Heading + angle) * math32.Pi / 180
	return mat32.NewVec2(en.Pos.X+dist*math32.Cos(rad), en.Pos.Y+dist*math32.Sin(rad))
}

// DistTo returns the distance to the other entity
func (en *Entity) DistTo(oe *Entity) float32 {
	return en.Pos.DistTo(oe.Pos)
}

// AddSensor adds a sensor.  Sensor names must be unique on an entity.
func (en *Entity) AddSensor(sn Sensor) error {
	if _, err := en.SensorByName(sn.Name()); err == nil {
		return fmt.Errorf("Entity %s AddSensor: sensor named %q already exists", en.Nm, sn.Name())
	}
	en.Sensors = append(en.Sensors, sn)
	return nil
}

// SensorByName returns the sensor with given name, or error
func (en *Entity) SensorByName(name string) (Sensor, error) {
	for _, sn := range en.Sensors {
		if sn.Name() == name {
			return sn, nil
		}
	}
	return nil, fmt.Errorf("Entity %s: no sensor named %q", en.Nm, name)
}

// AddEffector adds an effector.  Effector names must be unique on an entity.
func (en *Entity) AddEffector(ef Effector) error {
	if _, err := en.EffectorByName(ef.Name()); err == nil {
		return fmt.Errorf("Entity %s AddEffector: effector named %q already exists", en.Nm, ef.Name())
	}
	en.Effectors = append(en.Effectors, ef)
	return nil
}

// EffectorByName returns the effector with given name, or error
func (en *Entity) EffectorByName(name string) (Effector, error) {
	for _, ef := range en.Effectors {
		if ef.Name() == name {
			return ef, nil
		}
	}
	return nil, fmt.Errorf("Entity %s: no effector named %q", en.Nm, name)
}

// AddDefaultEffectors adds the standard movement effectors if not already present:
// "Straight", "Left" and "Right"
func (en *Entity) AddDefaultEffectors() {
	if _, err := en.EffectorByName("Straight"); err != nil {
		en.AddEffector(NewStraightMovement("Straight"))
	}
	if _, err := en.EffectorByName("Left"); err != nil {
		en.AddEffector(NewTurning("Left", TurnLeft))
	}
	if _, err := en.EffectorByName("Right"); err != nil {
		en.AddEffector(NewTurning("Right", TurnRight))
	}
}

// UpdateSensors updates all sensors from the current world state
func (en *Entity) UpdateSensors() {
	for _, sn := range en.Sensors {
		sn.Update(en)
	}
}

// ApplyEffectors applies and resets all effector commands
func (en *Entity) ApplyEffectors() {
	for _, ef := range en.Effectors {
		ef.Apply(en)
	}
}

// ClearEffectors resets all pending effector commands
func (en *Entity) ClearEffectors() {
	for _, ef := range en.Effectors {
		ef.Clear()
	}
}
