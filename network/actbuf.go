// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import "github.com/goki/ki/ints"

// ActBuffer holds the current and previous activation vectors for a group
// of units.  Shift is called before each update so that Prv always holds
// the activations of the previous update.
type ActBuffer struct {
	Cur []float32 `desc:"current activations"`
	Prv []float32 `desc:"activations on the previous update"`
}

// Init allocates both vectors for n units, zeroed
func (ab *ActBuffer) Init(n int) {
	ab.Cur = make([]float32, n)
	ab.Prv = make([]float32, n)
}

// Len returns the number of units
func (ab *ActBuffer) Len() int {
	return len(ab.Cur)
}

// Shift copies Cur into Prv
func (ab *ActBuffer) Shift() {
	copy(ab.Prv, ab.Cur)
}

// Set copies vals into Cur, up to the shorter of the two lengths
func (ab *ActBuffer) Set(vals []float32) {
	n := ints.MinInt(len(vals), len(ab.Cur))
	copy(ab.Cur[:n], vals[:n])
}

// Reset zeroes both vectors
func (ab *ActBuffer) Reset() {
	for i := range ab.Cur {
		ab.Cur[i] = 0
		ab.Prv[i] = 0
	}
}

// Delta returns Cur[i] - Prv[i]
func (ab *ActBuffer) Delta(i int) float32 {
	return ab.Cur[i] - ab.Prv[i]
}
