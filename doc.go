// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package simbrain is the overall repository for the Simbrain numeric core
implemented in Go: neuron update rules, networks of groups and projections,
an odor world with sensors and effectors, couplings between the two,
Braitenberg vehicles, and a TD-learning simulation that learns which
vehicle to use.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* rules: the Decay, Sigmoidal and Linear neuron update rules, with their
bounds, noise and derivatives.

* network: neurons, groups, projections with their connection patterns,
winner-take-all groups, the activation buffer, and weights save / load.

* odorworld: a 2D world of entities with smells, object and smell sensors,
and movement effectors.  The World implements the emergent env.Env interface.

* coupling: producer -> consumer couplings between world sensors / effectors
and network groups, updated in a fixed order each tick.

* vehicles: builds pursuer and avoider Braitenberg vehicles into a network.

* rl: TD error, critic, actor and Rescorla-Wagner predictor learning.

* store: SQLite history of simulation runs and trials.

* rlsim: the RL vehicles simulation: config, control panel, scenarios,
the tick loop, and trial logs.

* examples/rlvehicles: command-line program that runs rlsim.
*/
package simbrain
