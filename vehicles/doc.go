// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vehicles builds Braitenberg vehicles: small five-unit network
groups that couple a pair of left / right object sensors on an odor world
agent to its turning and forward-movement effectors.

A Pursuer connects each sensor unit to the turning unit on the same side,
so that the agent turns toward the stronger signal.  An Avoider crosses the
connections and turns away.  The speed unit is clamped by default, and
also receives a small input from both sensors for use when it is unclamped.
*/
package vehicles
