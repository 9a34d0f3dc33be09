// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicles

import (
	"fmt"
	"log"

	"github.com/emer/etable/minmax"
	"github.com/emer/simbrain/coupling"
	"github.com/emer/simbrain/network"
	"github.com/emer/simbrain/odorworld"
	"github.com/emer/simbrain/rules"
	"github.com/goki/ki/kit"
)

// VehicleTypes are the kinds of Braitenberg vehicles
type VehicleTypes int32

//go:generate stringer -type=VehicleTypes

var KiT_VehicleTypes = kit.Enums.AddEnum(VehicleTypesN, kit.NotBitFlag, nil)

func (ev VehicleTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *VehicleTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Pursuer turns toward the sensed object
	Pursuer VehicleTypes = iota

	// Avoider turns away from the sensed object
	Avoider

	VehicleTypesN
)

// Unit indexes within a vehicle group
const (
	InL = iota
	InR
	TurnL
	Speed
	TurnR

	NUnits
)

// Params are the vehicle network parameters
type Params struct {
	TurnWt  float32    `def:"250" desc:"weight from each sensor unit to its turning unit"`
	WtRange minmax.F32 `desc:"weight range of the vehicle synapses -- [-500, 500] by default"`
	SpeedWt float32    `def:"5" desc:"weight from each sensor unit to the speed unit"`
	Speed   float32    `def:"3" desc:"activation of the speed unit when clamped"`
	Clamp   bool       `def:"true" desc:"clamp the speed unit at Speed -- otherwise it is driven by its inputs"`
	Bounds  minmax.F32 `desc:"activation bounds of all vehicle units -- [-100, 200] by default"`
}

func (vp *Params) Defaults() {
	vp.TurnWt = 250
	vp.WtRange.Set(-500, 500)
	vp.SpeedWt = 5
	vp.Speed = 3
	vp.Clamp = true
	vp.Bounds.Set(-100, 200)
}

// Vehicle is one vehicle built on an agent
type Vehicle struct {
	Nm      string                `desc:"name of the vehicle, and of its network group"`
	Type    VehicleTypes          `desc:"pursuer or avoider"`
	ObjType odorworld.EntityTypes `desc:"type of object sensed"`
	Group   *network.Group        `desc:"the vehicle's network group"`
	Agent   *odorworld.Entity     `desc:"the agent the vehicle drives"`
	Left    odorworld.Sensor      `desc:"left sensor"`
	Right   odorworld.Sensor      `desc:"right sensor"`
	Cpls    []*coupling.Coupling  `desc:"couplings made for this vehicle"`
}

// SpeedAct returns the current activation of the speed unit
func (vh *Vehicle) SpeedAct() float32 {
	return vh.Group.Neurons[Speed].Act
}

// Builder adds vehicles to a network, connecting them to agents through
// a coupling manager
type Builder struct {
	Net    *network.Network  `desc:"network that vehicle groups are added to"`
	Cpls   *coupling.Manager `desc:"coupling manager that sensor and effector couplings are added to"`
	Params Params            `view:"inline" desc:"parameters for new vehicles"`
}

// NewBuilder returns a builder with default params
func NewBuilder(net *network.Network, cm *coupling.Manager) *Builder {
	vb := &Builder{Net: net, Cpls: cm}
	vb.Params.Defaults()
	return vb
}

// ObjectSensors returns the agent's left / right object sensors for
// given object type, named e.g. "SwissL" and "SwissR", adding them if not
// already present.  Left is at +angle.
func ObjectSensors(agent *odorworld.Entity, objType odorworld.EntityTypes, radius, angle float32) (left, right odorworld.Sensor) {
	get := func(nm string, ang float32) odorworld.Sensor {
		if sn, err := agent.SensorByName(nm); err == nil {
			return sn
		}
		sn := odorworld.NewObjectSensor(nm, objType, radius, ang)
		agent.AddSensor(sn)
		return sn
	}
	return get(objType.String()+"L", angle), get(objType.String()+"R", -angle)
}

// AddPursuer adds a vehicle turning toward objType
func (vb *Builder) AddPursuer(name string, agent *odorworld.Entity, objType odorworld.EntityTypes, left, right odorworld.Sensor) (*Vehicle, error) {
	return vb.AddVehicle(name, agent, Pursuer, objType, left, right)
}

// AddAvoider adds a vehicle turning away from objType
func (vb *Builder) AddAvoider(name string, agent *odorworld.Entity, objType odorworld.EntityTypes, left, right odorworld.Sensor) (*Vehicle, error) {
	return vb.AddVehicle(name, agent, Avoider, objType, left, right)
}

// AddVehicle adds a vehicle group to the network, wires its synapses, and
// couples the sensors to its input units and its motor units to the agent's
// "Straight", "Left" and "Right" effectors (added if missing).
func (vb *Builder) AddVehicle(name string, agent *odorworld.Entity, typ VehicleTypes, objType odorworld.EntityTypes, left, right odorworld.Sensor) (*Vehicle, error) {
	if agent == nil || left == nil || right == nil {
		return nil, fmt.Errorf("Builder AddVehicle %s: agent and sensors must be non-nil", name)
	}
	vp := &vb.Params
	gp := vb.Net.AddGroup(name, NUnits, rules.Linear)
	if gp == nil {
		return nil, fmt.Errorf("Builder AddVehicle: group named %q already exists", name)
	}
	gp.Cls = "Vehicle " + typ.String()
	gp.Linear.Bound.Set(true, vp.Bounds.Min, vp.Bounds.Max)
	gp.SetLabels(objType.String()+" (L)", objType.String()+" (R)", "Left", "Speed", "Right")
	gp.Neurons[InL].SetClamped(true)
	gp.Neurons[InR].SetClamped(true)
	if vp.Clamp {
		nrn := &gp.Neurons[Speed]
		nrn.SetClamped(true)
		nrn.Ext = vp.Speed
		nrn.Act = vp.Speed
	}

	lto, rto := TurnL, TurnR
	if typ == Avoider {
		lto, rto = TurnR, TurnL
	}
	syns := []struct {
		si, ri int
		wt float32
	}{
		{InL, lto, vp.TurnWt},
		{InR, rto, vp.TurnWt},
		{InL, Speed, vp.SpeedWt},
		{InR, Speed, vp.SpeedWt},
	}
	for _, s := range syns {
		if _, err := vb.Net.ConnectUnits(gp, s.si, gp, s.ri, s.wt, vp.WtRange.Min, vp.WtRange.Max); err != nil {
			return nil, err
		}
	}

	vh := &Vehicle{Nm: name, Type: typ, ObjType: objType, Group: gp, Agent: agent, Left: left, Right: right}
	agent.AddDefaultEffectors()
	straight, _ := agent.EffectorByName("Straight")
	turnL, _ := agent.EffectorByName("Left")
	turnR, _ := agent.EffectorByName("Right")
	cpls := []struct {
		nm  string
		src coupling.Producer
		dst coupling.Consumer
	}{
		{name + ":" + left.Name(), left, coupling.UnitClamp(gp, InL)},
		{name + ":" + right.Name(), right, coupling.UnitClamp(gp, InR)},
		{name + ":Speed", coupling.UnitAct(gp, Speed), straight},
		{name + ":Left", coupling.UnitAct(gp, TurnL), turnL},
		{name + ":Right", coupling.UnitAct(gp, TurnR), turnR},
	}
	for _, c := range cpls {
		cp, err := vb.Cpls.Couple(c.nm, c.src, c.dst)
		if err != nil {
			log.Println(err)
			return nil, err
		}
		vh.Cpls = append(vh.Cpls, cp)
	}
	return vh, nil
}

// SetActive turns the vehicle's motor couplings on or off.  Sensor
// couplings stay on so that the input units track the sensors.
func (vh *Vehicle) SetActive(on bool) {
	for i, cp := range vh.Cpls {
		if i >= 2 {
			cp.Off = !on
		}
	}
}
