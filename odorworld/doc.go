// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package odorworld is a simple continuous 2D world of entities (a mouse,
cheese, flowers, candles, ...) for agents driven by networks.

Positions are in world units with y pointing up.  Headings are in degrees,
counter-clockwise from the +x axis, so that a sensor at a positive angle
relative to the heading is on the left of the entity.

Entities can carry a SmellSource: a vector of smell values that falls off
with distance according to a DecayFunction.  Sensors on an agent read the
world at a point offset from the agent (Radius along Heading + Angle):
ObjectSensor detects entities of one type, SmellSensor sums smell vectors.
Effectors (StraightMovement, Turning) accumulate commands during a tick and
move the agent when the World is stepped.

World implements the emergent env.Env interface: each sensor of the agent
is a State element, and each effector is an Action element.
*/
package odorworld
