// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rl provides temporal differences (TD) reinforcement learning on
top of network projections, with a dopamine-like (DA) broadcast of the
TD error to the learners.

* `da.go` defines a simple `DAReceiver` interface for getting and
  setting dopamine values, and a `SendDA` list of receivers.

* `td.go` has the TD parameters (gamma, lambda, alpha, epsilon) and
  the TD error: r(t) + gamma V(t) - V(t-1).

* `critic.go` learns the value V over the projections into one unit,
  with optional eligibility traces.  `actor.go` learns the fan-in of the
  output unit that won on the previous step.

* `rw.go` has a Rescorla-Wagner (delta rule) `Predictor`, which learns
  to predict the next activations of a group, with the prediction error
  as its DA.

All learning uses the sending activations saved on the previous step, so
the order per step is: compute the new value, compute and send DA,
Learn, then Step to save the current activations.
*/
package rl
