// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package devicecache

import (
	"sync"

	"github.com/gogpu/hwlayer/gpucore"
)

// binding is the texture bound on one unit.
type binding struct {
	target gpucore.TextureTarget
	id     gpucore.TextureID
}

// TextureState tracks the texture bound on each texture unit so that
// redundant driver bind calls are skipped.
//
// Only BindTexture and ActivateTexture reach the driver. UnbindTexture,
// ForgetTexture and the reset methods only update the tracker: once a handle is gone its
// stale binding is harmless, but a later bind of a reused handle must not
// be elided.
//
// TextureState is safe for concurrent use, although driver calls are only
// meaningful on the goroutine that owns the device context.
type TextureState struct {
	mu      sync.Mutex
	driver  gpucore.Driver
	unit    int
	bound   []binding
	binds   uint64
	elided  uint64
	unbinds uint64
}

// newTextureState creates a tracker with units texture units.
func newTextureState(driver gpucore.Driver, units int) *TextureState {
	return &TextureState{
		driver: driver,
		bound:  make([]binding, units),
	}
}

// Units returns the number of tracked texture units.
func (s *TextureState) Units() int {
	return len(s.bound)
}

// ActiveUnit returns the currently selected texture unit.
func (s *TextureState) ActiveUnit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unit
}

// ActivateTexture selects the unit subsequent binds apply to.
// Out of range units are ignored.
func (s *TextureState) ActivateTexture(unit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if unit < 0 || unit >= len(s.bound) || unit == s.unit {
		return
	}
	s.driver.ActiveTexture(unit)
	s.unit = unit
}

// ResetActiveTexture forgets the selected unit so the next activation
// always reaches the driver.
func (s *TextureState) ResetActiveTexture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unit = -1
}

// BindTexture binds id to target on the active unit unless it is already
// bound there.
func (s *TextureState) BindTexture(target gpucore.TextureTarget, id gpucore.TextureID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unit := s.unit
	if unit < 0 {
		s.driver.ActiveTexture(0)
		s.unit, unit = 0, 0
	}
	b := binding{target: target, id: id}
	if s.bound[unit] == b {
		s.elided++
		return
	}
	s.driver.BindTexture(target, id)
	s.bound[unit] = b
	s.binds++
}

// UnbindTexture clears every unit that has id bound. It tolerates handles
// that are not bound anywhere.
func (s *TextureState) UnbindTexture(id gpucore.TextureID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unbinds++
	for i := range s.bound {
		if s.bound[i].id == id {
			s.bound[i] = binding{}
		}
	}
}

// ForgetTexture drops id from every unit without counting an unbind.
// Drivers recycle deleted names, so a stale entry would elide the first
// bind of the next texture given the same handle.
func (s *TextureState) ForgetTexture(id gpucore.TextureID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bound {
		if s.bound[i].id == id {
			s.bound[i] = binding{}
		}
	}
}

// ResetBoundTextures forgets all tracked bindings, e.g. after the context
// was recreated and the driver state no longer matches.
func (s *TextureState) ResetBoundTextures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.bound)
}

// Bound returns the texture bound on unit, or InvalidID.
func (s *TextureState) Bound(unit int) gpucore.TextureID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if unit < 0 || unit >= len(s.bound) {
		return gpucore.InvalidID
	}
	return s.bound[unit].id
}

// BindingStats contains tracker counters.
type BindingStats struct {
	// Binds is the number of bind calls forwarded to the driver.
	Binds uint64

	// Elided is the number of redundant binds that were skipped.
	Elided uint64

	// Unbinds is the number of UnbindTexture calls.
	Unbinds uint64
}

// Stats returns the tracker counters.
func (s *TextureState) Stats() BindingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BindingStats{Binds: s.binds, Elided: s.elided, Unbinds: s.unbinds}
}

var _ gpucore.BindingTracker = (*TextureState)(nil)
