// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderstate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/devicecache"
	"github.com/gogpu/hwlayer/gpucore"
	"github.com/gogpu/hwlayer/internal/renderthread"
	"github.com/gogpu/hwlayer/layer"
)

// ErrNilCaches is returned when a RenderState is created without caches.
var ErrNilCaches = errors.New("renderstate: nil caches")

// ErrUnknownAPI is returned when the cache driver has no layer variant.
var ErrUnknownAPI = errors.New("renderstate: no layer variant for API")

// Executor runs tasks on the thread that owns the device context.
// *renderthread.Thread is the default implementation.
type Executor interface {
	// Post queues fn without waiting.
	Post(fn func()) error
	// Call runs fn and waits for it to finish.
	Call(fn func()) error
	// Close runs pending tasks and stops accepting new ones.
	Close()
}

// RenderState is the per-context owner of layer bookkeeping. It tracks
// live layers, fans context loss out to them, and runs deferred resets on
// the context's render thread.
//
// RenderState is safe for concurrent use. Layers themselves are not; the
// work it does on them (context loss, deferred resets, stats) runs on the
// executor.
type RenderState struct {
	mu     sync.Mutex
	caches *devicecache.Caches
	thread Executor
	layers map[layer.Layer]struct{}
}

// Option configures a RenderState during creation.
type Option func(*options)

type options struct {
	queueSize int
	executor  Executor
}

// WithQueueSize sets how many deferred tasks may be pending before Post
// blocks.
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}

// WithExecutor runs deferred work on e instead of a built-in render
// thread. RenderState.Close closes e.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// New creates a RenderState for caches and starts its render thread.
// The caches are not initialized here; that stays the owner's call.
func New(caches *devicecache.Caches, opts ...Option) (*RenderState, error) {
	if caches == nil {
		return nil, ErrNilCaches
	}
	o := options{queueSize: renderthread.DefaultQueueSize}
	for _, opt := range opts {
		opt(&o)
	}
	thread := o.executor
	if thread == nil {
		thread = renderthread.New(o.queueSize)
	}
	return &RenderState{
		caches: caches,
		thread: thread,
		layers: make(map[layer.Layer]struct{}),
	}, nil
}

// Caches returns the device state cache.
func (rs *RenderState) Caches() *devicecache.Caches {
	return rs.caches
}

// CreateLayer creates an unallocated layer of the variant matching the
// cache driver's API and registers it.
func (rs *RenderState) CreateLayer(width, height int, opts ...layer.Option) (layer.Layer, error) {
	driver := rs.caches.Driver()
	opts = append(opts, layer.WithRegistry(rs))
	switch driver.API() {
	case gpucore.APIOpenGL:
		l, err := layer.NewGLLayer(driver, rs.caches.Ref(), width, height, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case gpucore.APIWebGPU:
		l, err := layer.NewWGPULayer(driver, rs.caches.Ref(), width, height, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAPI, driver.API())
	}
}

// Register adds l to the live set. Layers created with
// layer.WithRegistry(rs) call it themselves.
func (rs *RenderState) Register(l layer.Layer) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.layers[l] = struct{}{}
}

// Unregister removes l from the live set.
func (rs *RenderState) Unregister(l layer.Layer) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.layers, l)
}

// snapshot returns the live layers.
func (rs *RenderState) snapshot() []layer.Layer {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]layer.Layer, 0, len(rs.layers))
	for l := range rs.layers {
		out = append(out, l)
	}
	return out
}

// OnContextLost invalidates every live layer and terminates the cache.
// No driver call is made. The fan-out runs on the executor, ordered after
// any reset already queued, so a deferred reset and the context loss never
// both act on one allocation. It must not be called from a task running on
// the executor.
func (rs *RenderState) OnContextLost() {
	rs.onExecutor(func() {
		layers := rs.snapshot()
		hwlayer.Logger().Info("renderstate: context lost", "layers", len(layers))
		for _, l := range layers {
			l.ResetOnContextLoss()
		}
		rs.caches.Terminate()
	})
}

// OnContextCreated initializes the cache for a new context. Layers stay
// unallocated until their next EnsureAllocated.
func (rs *RenderState) OnContextCreated() {
	rs.caches.Init()
}

// DeferReset queues l.Reset on the render thread. The reset re-checks the
// cache when it runs, so it is safe even if the cache is torn down before
// then.
func (rs *RenderState) DeferReset(l layer.Layer) error {
	if err := rs.thread.Post(l.Reset); err != nil {
		return fmt.Errorf("defer reset: %w", err)
	}
	return nil
}

// InvalidateBindings makes the cache forget the selected texture unit and
// every tracked binding, after a host drew with the context outside the
// cache. The next activation and binds reach the driver again.
func (rs *RenderState) InvalidateBindings() error {
	return rs.thread.Call(func() {
		if ts := rs.caches.TextureState(); ts != nil {
			ts.ResetActiveTexture()
			ts.ResetBoundTextures()
		}
	})
}

// Run executes fn on the render thread and waits for it.
func (rs *RenderState) Run(fn func()) error {
	return rs.thread.Call(fn)
}

// Post queues fn on the render thread without waiting.
func (rs *RenderState) Post(fn func()) error {
	return rs.thread.Post(fn)
}

// Stats returns layer bookkeeping statistics. Layer state is read on the
// executor; like OnContextLost it must not be called from a task on it.
func (rs *RenderState) Stats() Stats {
	var s Stats
	rs.onExecutor(func() {
		layers := rs.snapshot()
		s = Stats{Layers: len(layers)}
		for _, l := range layers {
			if l.IsAllocated() {
				s.Allocated++
				s.AllocatedBytes += l.SizeBytes()
			}
		}
	})
	return s
}

// onExecutor runs fn on the executor and waits. Once the executor is
// closed no task can touch layers any more, so fn runs on the caller.
func (rs *RenderState) onExecutor(fn func()) {
	if err := rs.thread.Call(fn); err != nil {
		fn()
	}
}

// Close runs every pending deferred task and stops the executor.
// Live layers are left untouched.
func (rs *RenderState) Close() {
	rs.thread.Close()
}
