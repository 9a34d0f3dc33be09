// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coupling moves values between components once per tick:
// a Producer (e.g., a sensor or a group's activations) is read and its
// values are handed to a Consumer (e.g., a group's inputs or an effector).
// Couplings are updated by a Manager in the order they were added.
package coupling

import (
	"fmt"
	"log"

	"github.com/goki/kigen/ordmap"
)

// Producer is a source of values
type Producer interface {
	Produce() []float32
}

// Consumer accepts values.  When the number of values differs from what the
// consumer holds, only the overlap is used.
type Consumer interface {
	Consume(vals []float32)
}

// ProducerFunc adapts a function to a Producer
type ProducerFunc func() []float32

func (pf ProducerFunc) Produce() []float32 { return pf() }

// ConsumerFunc adapts a function to a Consumer
type ConsumerFunc func(vals []float32)

func (cf ConsumerFunc) Consume(vals []float32) { cf(vals) }

// Scalar adapts a scalar function to a Producer of one value
func Scalar(fun func() float32) Producer {
	return ProducerFunc(func() []float32 { return []float32{fun()} })
}

// ScalarConsumer adapts a scalar setter to a Consumer that uses the first value
func ScalarConsumer(fun func(val float32)) Consumer {
	return ConsumerFunc(func(vals []float32) {
		if len(vals) > 0 {
			fun(vals[0])
		}
	})
}

// Coupling transfers the values of Src to Dst on each Update
type Coupling struct {
	Nm   string    `desc:"name of the coupling -- must be unique within a Manager"`
	Off  bool      `desc:"turn this coupling off -- no transfer on Update"`
	Src  Producer  `desc:"source of values"`
	Dst  Consumer  `desc:"destination of values"`
	Last []float32 `view:"-" desc:"values transferred on the last Update"`
}

// Update transfers the current values from Src to Dst
func (cp *Coupling) Update() {
	if cp.Off {
		return
	}
	cp.Last = cp.Src.Produce()
	cp.Dst.Consume(cp.Last)
}

// Manager holds couplings keyed by name and updates them in insertion order
type Manager struct {
	Nm        string                         `desc:"name of this manager"`
	Couplings *ordmap.Map[string, *Coupling] `desc:"couplings in the order added, keyed by name"`
}

// NewManager returns a new empty manager
func NewManager(name string) *Manager {
	return &Manager{Nm: name, Couplings: ordmap.New[string, *Coupling]()}
}

// Couple adds a new coupling from src to dst.
// Names must be unique: a duplicate name is an error.
func (cm *Manager) Couple(name string, src Producer, dst Consumer) (*Coupling, error) {
	if src == nil || dst == nil {
		return nil, fmt.Errorf("Manager %s Couple %s: producer and consumer must both be non-nil", cm.Nm, name)
	}
	if cm.ByName(name) != nil {
		return nil, fmt.Errorf("Manager %s Couple: coupling named %q already exists", cm.Nm, name)
	}
	cp := &Coupling{Nm: name, Src: src, Dst: dst}
	cm.Couplings.Add(name, cp)
	return cp, nil
}

// MustCouple adds a coupling, logging any error.  Returns nil on error.
func (cm *Manager) MustCouple(name string, src Producer, dst Consumer) *Coupling {
	cp, err := cm.Couple(name, src, dst)
	if err != nil {
		log.Println(err)
	}
	return cp
}

// ByName returns the coupling with given name, nil if none
func (cm *Manager) ByName(name string) *Coupling {
	cp, _ := cm.Couplings.ValByKey(name)
	return cp
}

// Names returns the coupling names in update order
func (cm *Manager) Names() []string {
	return cm.Couplings.Keys()
}

// Remove removes the coupling with given name
func (cm *Manager) Remove(name string) error {
	if !cm.Couplings.DeleteKey(name) {
		return fmt.Errorf("Manager %s Remove: no coupling named %q", cm.Nm, name)
	}
	return nil
}

// Len returns the number of couplings
func (cm *Manager) Len() int {
	return cm.Couplings.Len()
}

// Update updates all couplings once, in insertion order
func (cm *Manager) Update() {
	for _, kv := range cm.Couplings.Order {
		kv.Val.Update()
	}
}
