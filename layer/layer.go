// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwlayer/gpucore"
)

// Layer construction errors.
var (
	// ErrAPIMismatch is returned when the driver belongs to a different
	// device API than the layer variant.
	ErrAPIMismatch = errors.New("layer: driver API does not match layer API")

	// ErrUnsupportedTarget is returned when a variant cannot sample the
	// requested texture target.
	ErrUnsupportedTarget = errors.New("layer: unsupported texture target")
)

// Layer is an off-screen render target backed by exactly one GPU texture.
//
// The texture is allocated lazily and may go back to unallocated many
// times over the layer's life. "Not allocated" is a normal state: every
// method has a no-op behavior for it and none return errors.
//
// Layers are not safe for concurrent use. Calls are expected on the
// goroutine that owns the device context; Reset may additionally run as
// deferred work after the device cache was torn down.
type Layer interface {
	// Width returns the layer width in pixels.
	Width() int

	// Height returns the layer height in pixels.
	Height() int

	// API returns the device API the layer belongs to.
	API() gpucore.API

	// Label returns the render node name, or "" when no node is attached.
	Label() string

	// SetRenderNode attaches the node used for diagnostic labels.
	SetRenderNode(n RenderNode)

	// Handle returns the texture handle, InvalidID when unallocated.
	Handle() gpucore.TextureID

	// IsAllocated reports whether the texture exists.
	IsAllocated() bool

	// SizeBytes returns the memory used by the allocated texture.
	SizeBytes() uint64

	// EnsureAllocated allocates the texture before the layer is first
	// rendered into. It is idempotent.
	EnsureAllocated()

	// Bind makes the layer's texture the active binding for sampling.
	Bind()

	// ResetOnContextLoss forgets the texture after the device context was
	// destroyed. No driver call is made.
	ResetOnContextLoss()

	// Reset releases the texture while the context is presumed valid. When
	// the device cache is no longer initialized the release is skipped
	// and only the handle is reset.
	Reset()

	// Close destroys the texture and ends the layer's life.
	Close()
}

// RenderNode is the scene-graph node a layer renders. Only its name is
// used, to label diagnostics.
type RenderNode interface {
	Name() string
}

// Registry tracks live layers. It is notified on construction and Close.
type Registry interface {
	Register(l Layer)
	Unregister(l Layer)
}

// Option configures a layer during creation.
type Option func(*options)

type options struct {
	node     RenderNode
	target   gpucore.TextureTarget
	format   gputypes.TextureFormat
	label    string
	registry Registry
}

// WithRenderNode attaches the scene-graph node rendered into the layer.
func WithRenderNode(n RenderNode) Option {
	return func(o *options) {
		o.node = n
	}
}

// WithTarget sets the texture target. The default is Target2D.
func WithTarget(t gpucore.TextureTarget) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithFormat sets the texture pixel format. The default is the driver's
// preferred format, or gpucore.DefaultFormat.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLabel sets the driver debug label of the texture.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithRegistry registers the layer with r for its whole life.
func WithRegistry(r Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}
