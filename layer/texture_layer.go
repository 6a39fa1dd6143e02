// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/gpucore"
	"github.com/gogpu/hwlayer/texture"
)

// textureLayer is the backend-agnostic state machine shared by all layer
// variants. The variant embeds it and passes itself as self so the
// registry sees the exported type.
type textureLayer struct {
	api      gpucore.API
	texture  *texture.Texture
	node     RenderNode
	registry Registry
	self     Layer
	closed   bool
}

// init builds the texture and registers self. No driver call is made.
func (l *textureLayer) init(self Layer, api gpucore.API, driver gpucore.Driver,
	cache gpucore.StateCache, width, height int, o options) error {
	if driver != nil && driver.API() != api {
		return fmt.Errorf("%w: layer %s, driver %s", ErrAPIMismatch, api, driver.API())
	}
	tex, err := texture.New(driver, cache, gpucore.TextureDesc{
		Label:  o.label,
		Target: o.target,
		Width:  width,
		Height: height,
		Format: o.format,
	})
	if err != nil {
		return fmt.Errorf("layer: %w", err)
	}
	l.api = api
	l.texture = tex
	l.node = o.node
	l.registry = o.registry
	l.self = self
	if l.registry != nil {
		l.registry.Register(self)
	}
	return nil
}

// trace logs a lifecycle operation with the layer's label and size.
func (l *textureLayer) trace(op string) {
	log := hwlayer.Logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.Debug(fmt.Sprintf("%s HW Layer DisplayList %s %dx%d",
		op, l.Label(), l.Width(), l.Height()),
		"api", l.api, "handle", l.texture.ID())
}

// Width returns the layer width in pixels.
func (l *textureLayer) Width() int { return l.texture.Width() }

// Height returns the layer height in pixels.
func (l *textureLayer) Height() int { return l.texture.Height() }

// API returns the device API the layer belongs to.
func (l *textureLayer) API() gpucore.API { return l.api }

// Label returns the render node name or "".
func (l *textureLayer) Label() string {
	if l.node == nil {
		return ""
	}
	return l.node.Name()
}

// SetRenderNode attaches the node used for diagnostic labels.
func (l *textureLayer) SetRenderNode(n RenderNode) { l.node = n }

// Handle returns the texture handle.
func (l *textureLayer) Handle() gpucore.TextureID { return l.texture.ID() }

// IsAllocated reports whether the texture exists.
func (l *textureLayer) IsAllocated() bool { return l.texture.IsAllocated() }

// SizeBytes returns the memory used by the allocated texture.
func (l *textureLayer) SizeBytes() uint64 { return l.texture.SizeBytes() }

// Texture returns the owned texture resource.
func (l *textureLayer) Texture() *texture.Texture { return l.texture }

// Closed reports whether Close has been called.
func (l *textureLayer) Closed() bool { return l.closed }

// EnsureAllocated allocates the texture if needed. A closed layer stays
// unallocated.
func (l *textureLayer) EnsureAllocated() {
	if l.closed || l.texture.IsAllocated() {
		return
	}
	l.texture.Allocate()
	l.trace("Allocate")
}

// Bind binds the texture for sampling; a no-op while unallocated.
func (l *textureLayer) Bind() {
	l.texture.Bind()
}

// ResetOnContextLoss forgets the texture without any driver call.
func (l *textureLayer) ResetOnContextLoss() {
	if !l.texture.IsAllocated() {
		return
	}
	l.trace("ContextLost")
	l.texture.Invalidate()
}

// Reset releases the texture, or only forgets it when the device cache
// has been torn down. Reset may run as deferred work, so liveness is
// checked by the release itself rather than by the caller.
func (l *textureLayer) Reset() {
	if !l.texture.IsAllocated() {
		return
	}
	l.trace("Reset")
	if !l.texture.Release() {
		hwlayer.Logger().Debug("layer: cache gone, reset forgot the handle", "label", l.Label())
	}
}

// Close deletes the texture and unregisters the layer. It is idempotent.
func (l *textureLayer) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if l.texture.IsAllocated() {
		l.trace("Destroy")
		l.texture.Destroy()
	}
	if l.registry != nil {
		l.registry.Unregister(l.self)
	}
}

// String returns a string representation of the layer.
func (l *textureLayer) String() string {
	return fmt.Sprintf("%sLayer[%q %s]", l.api, l.Label(), l.texture)
}
