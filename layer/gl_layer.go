// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/gogpu/hwlayer/gpucore"
)

// GLLayer is a layer owned by an OpenGL context.
//
// GL contexts can be destroyed out from under the layer; the owner must
// then call ResetOnContextLoss, never Reset or Close, since any GL call
// against the dead context is undefined.
type GLLayer struct {
	textureLayer
}

// NewGLLayer creates an unallocated GL layer. driver must be an OpenGL
// driver and cache the device state cache of the same context.
//
// Example:
//
//	caches.Init()
//	l, err := layer.NewGLLayer(caches.Driver(), caches.Ref(), 256, 256,
//	    layer.WithRenderNode(node))
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
//	l.EnsureAllocated()
//	l.Bind()
func NewGLLayer(driver gpucore.Driver, cache gpucore.StateCache, width, height int, opts ...Option) (*GLLayer, error) {
	o := options{target: gpucore.Target2D}
	for _, opt := range opts {
		opt(&o)
	}
	l := &GLLayer{}
	if err := l.init(l, gpucore.APIOpenGL, driver, cache, width, height, o); err != nil {
		return nil, err
	}
	return l, nil
}

// Ensure GLLayer implements Layer.
var _ Layer = (*GLLayer)(nil)
