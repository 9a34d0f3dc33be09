// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

// DAReceiver is an interface for a learner with a dopamine neuromodulator
type DAReceiver interface {
	// GetDA returns the dopamine level
	GetDA() float32

	// SetDA sets the dopamine level
	SetDA(da float32)
}

// SendDA is a list of receivers to send dopamine to
type SendDA []DAReceiver

// SendDA sends dopamine to all receivers
func (sd *SendDA) SendDA(da float32) {
	for _, rc := range *sd {
		rc.SetDA(da)
	}
}

// Add adds given receiver(s) to list
func (sd *SendDA) Add(rc ...DAReceiver) {
	*sd = append(*sd, rc...)
}
