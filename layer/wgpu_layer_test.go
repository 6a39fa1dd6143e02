// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwlayer/devicecache"
	"github.com/gogpu/hwlayer/gpucore"
	"github.com/gogpu/hwlayer/internal/drivertest"
)

func TestNewWGPULayer(t *testing.T) {
	rec := drivertest.NewRecorder(gpucore.APIWebGPU)
	caches, _ := devicecache.New(rec)
	caches.Init()

	l, err := NewWGPULayer(rec, caches.Ref(), 128, 64, WithFormat(gputypes.TextureFormatBGRA8Unorm))
	if err != nil {
		t.Fatalf("NewWGPULayer() error = %v", err)
	}
	if l.API() != gpucore.APIWebGPU {
		t.Errorf("API() = %v, want WebGPU", l.API())
	}
	if l.Texture().Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", l.Texture().Format())
	}

	l.EnsureAllocated()
	l.Bind()
	l.ResetOnContextLoss()
	if rec.Count(drivertest.OpDelete) != 0 {
		t.Error("device loss should not delete")
	}
}

func TestNewWGPULayerErrors(t *testing.T) {
	glDriver := drivertest.NewRecorder(gpucore.APIOpenGL)
	wgpuDriver := drivertest.NewRecorder(gpucore.APIWebGPU)
	caches, _ := devicecache.New(wgpuDriver)

	if _, err := NewWGPULayer(glDriver, caches.Ref(), 8, 8); !errors.Is(err, ErrAPIMismatch) {
		t.Errorf("GL driver: error = %v, want ErrAPIMismatch", err)
	}
	if _, err := NewWGPULayer(wgpuDriver, caches.Ref(), 8, 8, WithTarget(gpucore.TargetExternal)); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("external target: error = %v, want ErrUnsupportedTarget", err)
	}
}

func TestLayerVariantsArePolymorphic(t *testing.T) {
	glRec := drivertest.NewRecorder(gpucore.APIOpenGL)
	glCaches, _ := devicecache.New(glRec)
	glCaches.Init()
	wgpuRec := drivertest.NewRecorder(gpucore.APIWebGPU)
	wgpuCaches, _ := devicecache.New(wgpuRec)
	wgpuCaches.Init()

	gl, err := NewGLLayer(glRec, glCaches.Ref(), 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	wg, err := NewWGPULayer(wgpuRec, wgpuCaches.Ref(), 16, 16)
	if err != nil {
		t.Fatal(err)
	}

	for _, l := range []Layer{gl, wg} {
		l.EnsureAllocated()
		l.Bind()
		l.Reset()
		if l.IsAllocated() {
			t.Errorf("%v: still allocated after Reset", l.API())
		}
		l.Close()
	}
	if glRec.Live() != 0 || wgpuRec.Live() != 0 {
		t.Errorf("leaked handles: gl=%d wgpu=%d", glRec.Live(), wgpuRec.Live())
	}
}
