// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package devicecache

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/gpucore"
)

// ErrNilDriver is returned when a cache is created without a driver.
var ErrNilDriver = errors.New("devicecache: nil driver")

// DefaultMaxTextureUnits is the number of texture units tracked by default.
const DefaultMaxTextureUnits = 4

// Caches holds the device state shared by every layer of one device
// context: the driver and the texture binding tracker.
//
// Caches has its own init/teardown lifecycle. Layers never own it; they
// keep a [Ref] and re-check [Caches.IsInitialized] before deferred work.
type Caches struct {
	mu sync.Mutex

	driver       gpucore.Driver
	maxUnits     int
	textureState *TextureState

	initialized atomic.Bool
}

// Option configures a Caches during creation.
type Option func(*options)

type options struct {
	maxTextureUnits int
}

// WithMaxTextureUnits sets how many texture units the tracker follows.
// Values below 1 are ignored.
func WithMaxTextureUnits(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTextureUnits = n
		}
	}
}

// New creates an uninitialized cache for driver.
// Call Init before handing it to layers.
func New(driver gpucore.Driver, opts ...Option) (*Caches, error) {
	if driver == nil {
		return nil, ErrNilDriver
	}
	o := options{maxTextureUnits: DefaultMaxTextureUnits}
	for _, opt := range opts {
		opt(&o)
	}
	return &Caches{
		driver:   driver,
		maxUnits: o.maxTextureUnits,
	}, nil
}

// Init creates the tracker and marks the cache live.
// Calling Init on a live cache is a no-op.
func (c *Caches) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized.Load() {
		return
	}
	c.textureState = newTextureState(c.driver, c.maxUnits)
	c.initialized.Store(true)

	hwlayer.Logger().Info("devicecache: initialized",
		"api", c.driver.API(), "units", c.maxUnits)
}

// Terminate tears the cache down. Deferred work that still holds a Ref
// observes IsInitialized() == false from here on.
func (c *Caches) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized.Load() {
		return
	}
	c.initialized.Store(false)
	c.textureState = nil

	hwlayer.Logger().Info("devicecache: terminated", "api", c.driver.API())
}

// IsInitialized reports whether the cache is live.
func (c *Caches) IsInitialized() bool {
	return c.initialized.Load()
}

// Driver returns the driver the cache was created for.
func (c *Caches) Driver() gpucore.Driver {
	return c.driver
}

// TextureState returns the binding tracker, or nil after Terminate.
func (c *Caches) TextureState() *TextureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.textureState
}

// Ref returns a non-owning reference to c.
func (c *Caches) Ref() *Ref {
	return newRef(c)
}
