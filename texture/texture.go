// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture provides a single lazily allocated GPU texture resource.
//
// A [Texture] starts unallocated (handle 0). Its handle is created on
// demand, bound through the shared binding tracker, and returned to 0 by
// one of three deliberately separate paths:
//
//   - Release: context is valid; unbind from the tracker and delete, or
//     only forget the handle if the tracker is already gone
//   - Destroy: owner is going away; delete only
//   - Invalidate: context is gone; forget the handle, no driver call
//
// Texture is not safe for concurrent use. All calls are expected on the
// goroutine that owns the device context.
package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/gpucore"
)

// Texture construction errors.
var (
	// ErrInvalidDimensions is returned for non-positive sizes.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrNilDriver is returned when no driver is given.
	ErrNilDriver = errors.New("texture: nil driver")

	// ErrNilCache is returned when no state cache is given.
	ErrNilCache = errors.New("texture: nil state cache")
)

// formatDefaulter is implemented by drivers whose surface dictates the
// preferred layer format.
type formatDefaulter interface {
	DefaultFormat() gputypes.TextureFormat
}

// Texture is a GPU texture handle with a fixed target and size.
type Texture struct {
	id     gpucore.TextureID
	desc   gpucore.TextureDesc
	driver gpucore.Driver
	cache  gpucore.StateCache
}

// New creates an unallocated texture. No driver call is made.
// A zero format takes the driver's DefaultFormat when it has one, then
// the gpucore defaults fill what is still zero.
func New(driver gpucore.Driver, cache gpucore.StateCache, desc gpucore.TextureDesc) (*Texture, error) {
	if driver == nil {
		return nil, ErrNilDriver
	}
	if cache == nil {
		return nil, ErrNilCache
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, desc.Width, desc.Height)
	}
	if f, ok := driver.(formatDefaulter); ok && desc.Format == gputypes.TextureFormatUndefined {
		desc.Format = f.DefaultFormat()
	}
	return &Texture{
		desc:   desc.WithDefaults(),
		driver: driver,
		cache:  cache,
	}, nil
}

// ID returns the driver handle, InvalidID when unallocated.
func (t *Texture) ID() gpucore.TextureID {
	return t.id
}

// IsAllocated reports whether a driver resource exists.
func (t *Texture) IsAllocated() bool {
	return !t.id.IsZero()
}

// Target returns the fixed binding kind.
func (t *Texture) Target() gpucore.TextureTarget {
	return t.desc.Target
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.desc.Width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.desc.Height
}

// Format returns the pixel format.
func (t *Texture) Format() gputypes.TextureFormat {
	return t.desc.Format
}

// Desc returns the allocation descriptor.
func (t *Texture) Desc() gpucore.TextureDesc {
	return t.desc
}

// API returns the backend of the texture's driver.
func (t *Texture) API() gpucore.API {
	return t.driver.API()
}

// SizeBytes returns the memory the texture occupies while allocated.
func (t *Texture) SizeBytes() uint64 {
	if t.id.IsZero() {
		return 0
	}
	return t.desc.SizeBytes()
}

// Allocate creates the driver resource if none exists.
// A driver that cannot allocate leaves the texture unallocated.
func (t *Texture) Allocate() {
	if !t.id.IsZero() {
		return
	}
	t.id = t.driver.GenTexture(t.desc)
	if t.id.IsZero() {
		hwlayer.Logger().Warn("texture: driver allocation failed",
			"label", t.desc.Label, "width", t.desc.Width, "height", t.desc.Height)
		return
	}
	// The driver may hand out a recycled name the tracker still lists.
	if ts := t.cache.TextureState(); ts != nil {
		ts.ForgetTexture(t.id)
	}
}

// Bind makes the texture the active binding for its target.
// An unallocated texture has nothing to bind.
func (t *Texture) Bind() {
	if t.id.IsZero() {
		return
	}
	if ts := t.cache.TextureState(); ts != nil {
		ts.BindTexture(t.desc.Target, t.id)
	}
}

// Release unbinds and deletes the driver resource and resets the handle.
// The tracker is fetched once: when the cache has been torn down it is
// nil and the handle is only forgotten, as with Invalidate. Release
// reports whether the driver resource was deleted.
func (t *Texture) Release() bool {
	if t.id.IsZero() {
		return false
	}
	ts := t.cache.TextureState()
	if ts == nil {
		t.id = gpucore.InvalidID
		return false
	}
	ts.UnbindTexture(t.id)
	t.driver.DeleteTexture(t.id)
	t.id = gpucore.InvalidID
	return true
}

// Destroy deletes the driver resource without unbinding it. The tracker
// entry is dropped so a recycled handle is bound again.
func (t *Texture) Destroy() {
	if t.id.IsZero() {
		return
	}
	if ts := t.cache.TextureState(); ts != nil {
		ts.ForgetTexture(t.id)
	}
	t.driver.DeleteTexture(t.id)
	t.id = gpucore.InvalidID
}

// Invalidate forgets the handle without any driver call. Use it only when
// the device context has already been destroyed.
func (t *Texture) Invalidate() {
	t.id = gpucore.InvalidID
}

// Cache returns the state cache the texture binds through.
func (t *Texture) Cache() gpucore.StateCache {
	return t.cache
}

// String returns a string representation of the texture.
func (t *Texture) String() string {
	status := "unallocated"
	if !t.id.IsZero() {
		status = fmt.Sprintf("#%d", t.id)
	}
	return fmt.Sprintf("Texture[%s %s %dx%d %s %s]",
		t.desc.Label, t.desc.Target, t.desc.Width, t.desc.Height, t.driver.API(), status)
}
