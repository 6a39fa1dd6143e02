// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"fmt"

	"github.com/gogpu/hwlayer/gpucore"
)

// WGPULayer is a layer owned by a WebGPU HAL device. It shares the state
// machine of GLLayer; device loss maps to ResetOnContextLoss.
//
// WebGPU has no external sampler target, so only Target2D is accepted.
type WGPULayer struct {
	textureLayer
}

// NewWGPULayer creates an unallocated WebGPU layer.
func NewWGPULayer(driver gpucore.Driver, cache gpucore.StateCache, width, height int, opts ...Option) (*WGPULayer, error) {
	o := options{target: gpucore.Target2D}
	for _, opt := range opts {
		opt(&o)
	}
	if o.target != gpucore.Target2D {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedTarget, o.target, gpucore.APIWebGPU)
	}
	l := &WGPULayer{}
	if err := l.init(l, gpucore.APIWebGPU, driver, cache, width, height, o); err != nil {
		return nil, err
	}
	return l, nil
}

// Ensure WGPULayer implements Layer.
var _ Layer = (*WGPULayer)(nil)
