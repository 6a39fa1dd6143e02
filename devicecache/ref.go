// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package devicecache

import (
	"weak"

	"github.com/gogpu/hwlayer/gpucore"
)

// Ref is a weak reference to a Caches. It does not keep the cache
// reachable; once the cache is collected or terminated it reports
// IsInitialized() == false and a nil TextureState.
type Ref struct {
	ptr weak.Pointer[Caches]
}

func newRef(c *Caches) *Ref {
	return &Ref{ptr: weak.Make(c)}
}

// Caches returns the referenced cache, or nil if it has been collected.
func (r *Ref) Caches() *Caches {
	return r.ptr.Value()
}

// IsInitialized reports whether the referenced cache is still live.
func (r *Ref) IsInitialized() bool {
	c := r.ptr.Value()
	return c != nil && c.IsInitialized()
}

// TextureState returns the live binding tracker or nil.
func (r *Ref) TextureState() gpucore.BindingTracker {
	c := r.ptr.Value()
	if c == nil {
		return nil
	}
	ts := c.TextureState()
	if ts == nil {
		return nil
	}
	return ts
}

var _ gpucore.StateCache = (*Ref)(nil)
