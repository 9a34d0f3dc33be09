// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package network provides the network structure that the update rules run on:
Neurons organized into named Groups, each Group sharing one update rule,
Prjns (projections) of weighted Synapses between Groups, and the Network
container that updates everything once per Cycle.

The update within a Cycle is synchronous (buffered): all groups first send
their current activations through their projections into the Input of the
receiving units, and only then does every group compute its new activations.
External inputs (e.g., from sensor couplings) are added into Input before the
Cycle, and Input is cleared at the end of it.

A Group can alternatively act as a winner-take-all (WTA) selector, which sets
exactly one unit to the winning activation, optionally choosing a random
winner with a given probability for exploration.

Groups and projections are styled with emergent params Sheets (TypeName
"Group" and "Prjn"), and learned weights are saved and loaded in the
standard emergent weights JSON format.
*/
package network
