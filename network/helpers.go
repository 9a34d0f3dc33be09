// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"sort"

	"github.com/emer/emergent/erand"
)

// randOpt returns the optional random source argument for erand
// functions -- none for the global source
func randOpt(rnd erand.Rand) []erand.Rand {
	if rnd == nil {
		return nil
	}
	return []erand.Rand{rnd}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
