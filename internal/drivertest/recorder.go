// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drivertest provides a recording gpucore.Driver for tests and for
// running the layer lifecycle without a device.
package drivertest

import (
	"fmt"
	"sync"

	"github.com/gogpu/hwlayer/gpucore"
)

// Op names a recorded driver call.
type Op string

// Recorded operations.
const (
	OpGen    Op = "gen"
	OpBind   Op = "bind"
	OpActive Op = "active"
	OpDelete Op = "delete"
)

// Call is one recorded driver call.
type Call struct {
	Op     Op
	Target gpucore.TextureTarget
	ID     gpucore.TextureID
	Unit   int
	Desc   gpucore.TextureDesc
}

// String returns a compact form such as "bind 2D #3".
func (c Call) String() string {
	switch c.Op {
	case OpActive:
		return fmt.Sprintf("%s unit%d", c.Op, c.Unit)
	case OpGen:
		return fmt.Sprintf("%s %dx%d #%d", c.Op, c.Desc.Width, c.Desc.Height, c.ID)
	case OpBind:
		return fmt.Sprintf("%s %s #%d", c.Op, c.Target, c.ID)
	default:
		return fmt.Sprintf("%s #%d", c.Op, c.ID)
	}
}

// Recorder is a gpucore.Driver that hands out sequential handles and
// records every call. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	api   gpucore.API
	next  gpucore.TextureID
	live  map[gpucore.TextureID]gpucore.TextureDesc
	calls []Call

	// FailGen makes GenTexture return InvalidID.
	FailGen bool

	// ReuseNames hands out the lowest free handle, the way glGenTextures
	// recycles deleted names.
	ReuseNames bool
}

// NewRecorder creates a recorder reporting api.
func NewRecorder(api gpucore.API) *Recorder {
	return &Recorder{
		api:  api,
		next: 1,
		live: make(map[gpucore.TextureID]gpucore.TextureDesc),
	}
}

// API returns the API the recorder was created with.
func (r *Recorder) API() gpucore.API { return r.api }

// GenTexture records an allocation and returns a fresh handle.
func (r *Recorder) GenTexture(desc gpucore.TextureDesc) gpucore.TextureID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := gpucore.InvalidID
	if !r.FailGen {
		id = r.nextID()
		r.live[id] = desc
	}
	r.calls = append(r.calls, Call{Op: OpGen, ID: id, Target: desc.Target, Desc: desc})
	return id
}

func (r *Recorder) nextID() gpucore.TextureID {
	if r.ReuseNames {
		for id := gpucore.TextureID(1); ; id++ {
			if _, ok := r.live[id]; !ok {
				return id
			}
		}
	}
	id := r.next
	r.next++
	return id
}

// BindTexture records a bind.
func (r *Recorder) BindTexture(target gpucore.TextureTarget, id gpucore.TextureID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: OpBind, Target: target, ID: id})
}

// ActiveTexture records a unit selection.
func (r *Recorder) ActiveTexture(unit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: OpActive, Unit: unit})
}

// DeleteTexture records a deletion.
func (r *Recorder) DeleteTexture(id gpucore.TextureID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
	r.calls = append(r.calls, Call{Op: OpDelete, ID: id})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Live returns the number of allocated, not yet deleted handles.
func (r *Recorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Reset clears the recorded calls but keeps live handles.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

var _ gpucore.Driver = (*Recorder)(nil)
