// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rules provides the neuron update rules: pure functions that map
the (input, activation, bias) of a unit plus a set of parameters onto the
new activation of that unit for one simulation tick.

The rule variants are:

* Decay: the summed input + activation + bias is moved toward a baseline
by a relative (fraction of distance) or absolute (fixed amount) decay,
never overshooting the baseline.

* Sigmoidal: input + bias is passed through a squashing function
(logistic, arctan, tanh or noisy x/(x+1)) scaled to [lower, upper] bounds.
The analytic derivative is available for learning rules.

* Linear: slope * (input + bias), optionally rectified, then clipped.

All rules share BoundsParams (clipping range) and NoiseParams (optional
additive noise from any erand distribution, which can be made
deterministic by giving it a seeded erand.SysRand).
*/
package rules
