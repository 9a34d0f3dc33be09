// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package odorworld

// Sensor reads the world from the point of view of the entity it is on
type Sensor interface {
	// Name is the unique name of the sensor on its entity
	Name() string

	// Update computes the sensor values from the current world state
	Update(en *Entity)

	// Values returns the current values -- not a copy
	Values() []float32

	// Produce returns a copy of the current values, for couplings
	Produce() []float32
}

// SensorLoc is the location of a sensor relative to its entity:
// Radius along the heading rotated by Angle degrees (positive = left)
type SensorLoc struct {
	Angle  float32 `desc:"angle in degrees relative to the heading -- positive is to the left"`
	Radius float32 `desc:"distance from the entity"`
}

// ObjectSensor detects entities of one type: its value is the sum over
// all such entities of Decay.Scale(distance from the sensor location)
type ObjectSensor struct {
	Nm      string        `desc:"name of the sensor"`
	ObjType EntityTypes   `desc:"type of entity to detect"`
	Loc     SensorLoc     `view:"inline" desc:"location of the sensor"`
	Decay   DecayFunction `view:"inline" desc:"fall-off of the detection with distance"`
	Val     []float32     `inactive:"+" desc:"current value -- one element"`
}

// NewObjectSensor returns a new object sensor with linear decay
func NewObjectSensor(name string, typ EntityTypes, radius, angle float32) *ObjectSensor {
	osn := &ObjectSensor{Nm: name, ObjType: typ, Loc: SensorLoc{Angle: angle, Radius: radius}}
	osn.Decay.Defaults()
	osn.Val = make([]float32, 1)
	return osn
}

func (osn *ObjectSensor) Name() string       { return osn.Nm }
func (osn *ObjectSensor) Values() []float32  { return osn.Val }
func (osn *ObjectSensor) Produce() []float32 { return []float32{osn.Val[0]} }

func (osn *ObjectSensor) Update(en *Entity) {
	osn.Val[0] = 0
	if en.World == nil {
		return
	}
	loc := en.PointAt(osn.Loc.Angle, osn.Loc.Radius)
	for _, oe := range en.World.Entities {
		if oe == en || oe.Type != osn.ObjType {
			continue
		}
		osn.Val[0] += osn.Decay.Scale(loc.DistTo(oe.Pos))
	}
}

// SmellSensor sums the smell vectors of all other entities at the
// sensor location
type SmellSensor struct {
	Nm  string    `desc:"name of the sensor"`
	Loc SensorLoc `view:"inline" desc:"location of the sensor"`
	Val []float32 `inactive:"+" desc:"current smell vector"`
}

// NewSmellSensor returns a new smell sensor with n smell components
func NewSmellSensor(name string, n int, radius, angle float32) *SmellSensor {
	return &SmellSensor{Nm: name, Loc: SensorLoc{Angle: angle, Radius: radius}, Val: make([]float32, n)}
}

func (ss *SmellSensor) Name() string      { return ss.Nm }
func (ss *SmellSensor) Values() []float32 { return ss.Val }

func (ss *SmellSensor) Produce() []float32 {
	return append([]float32(nil), ss.Val...)
}

func (ss *SmellSensor) Update(en *Entity) {
	for i := range ss.Val {
		ss.Val[i] = 0
	}
	if en.World == nil {
		return
	}
	loc := en.PointAt(ss.Loc.Angle, ss.Loc.Radius)
	for _, oe := range en.World.Entities {
		if oe == en || oe.Smell == nil {
			continue
		}
		oe.Smell.AddStimulus(ss.Val, loc.DistTo(oe.Pos))
	}
}
