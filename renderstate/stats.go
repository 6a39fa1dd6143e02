// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderstate

import "fmt"

// Stats contains layer bookkeeping statistics.
type Stats struct {
	// Layers is the number of live (registered, not closed) layers.
	Layers int

	// Allocated is the number of live layers with a texture.
	Allocated int

	// AllocatedBytes is the texture memory held by live layers.
	AllocatedBytes uint64
}

// String returns a human-readable string of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("Layers[%d live, %d allocated, %.1f KB]",
		s.Layers, s.Allocated, float64(s.AllocatedBytes)/1024)
}
