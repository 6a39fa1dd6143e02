package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/hwlayer/backend"
	"github.com/gogpu/hwlayer/devicecache"
	"github.com/gogpu/hwlayer/gpucore"
	"github.com/gogpu/hwlayer/layer"
)

// countingDevice wraps a hal.Device and counts texture calls.
type countingDevice struct {
	hal.Device
	created, destroyed, views, viewsDestroyed int
}

func (d *countingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.created++
	return d.Device.CreateTexture(desc)
}

func (d *countingDevice) DestroyTexture(t hal.Texture) {
	d.destroyed++
	d.Device.DestroyTexture(t)
}

func (d *countingDevice) CreateTextureView(t hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.views++
	return d.Device.CreateTextureView(t, desc)
}

func (d *countingDevice) DestroyTextureView(v hal.TextureView) {
	d.viewsDestroyed++
	d.Device.DestroyTextureView(v)
}

func newCountingDriver(t *testing.T) (*Driver, *countingDevice) {
	t.Helper()
	base, cleanup, err := NewNoopDriver()
	if err != nil {
		t.Fatalf("NewNoopDriver() error = %v", err)
	}
	t.Cleanup(cleanup)
	dev := &countingDevice{Device: base.device}
	d, err := NewDriver(dev)
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	return d, dev
}

func TestNewDriverNil(t *testing.T) {
	if _, err := NewDriver(nil); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("NewDriver(nil) error = %v, want ErrNilHALDevice", err)
	}
}

func TestDriverLifecycle(t *testing.T) {
	d, dev := newCountingDriver(t)

	if d.API() != gpucore.APIWebGPU {
		t.Errorf("API() = %v, want WebGPU", d.API())
	}

	id := d.GenTexture(gpucore.TextureDesc{Label: "layer", Width: 64, Height: 64})
	if id.IsZero() {
		t.Fatal("GenTexture returned InvalidID")
	}
	if d.Live() != 1 {
		t.Errorf("Live() = %d, want 1", d.Live())
	}

	d.BindTexture(gpucore.Target2D, id)
	d.BindTexture(gpucore.Target2D, id)
	if dev.views != 1 {
		t.Errorf("views created = %d, want 1", dev.views)
	}
	if d.BoundTexture(0) != id {
		t.Errorf("BoundTexture(0) = %d, want %d", d.BoundTexture(0), id)
	}

	d.DeleteTexture(id)
	d.DeleteTexture(id)
	if dev.destroyed != 1 || dev.viewsDestroyed != 1 {
		t.Errorf("destroyed textures=%d views=%d, want 1 and 1", dev.destroyed, dev.viewsDestroyed)
	}
	if d.BoundTexture(0) != gpucore.InvalidID || d.BoundView(0) != nil {
		t.Error("deleted texture should no longer be bound")
	}
	if d.Live() != 0 {
		t.Errorf("Live() = %d, want 0", d.Live())
	}
}

func TestDriverUnits(t *testing.T) {
	d, _ := newCountingDriver(t)
	a := d.GenTexture(gpucore.TextureDesc{Width: 8, Height: 8})
	b := d.GenTexture(gpucore.TextureDesc{Width: 8, Height: 8})

	d.ActiveTexture(0)
	d.BindTexture(gpucore.Target2D, a)
	d.ActiveTexture(1)
	d.BindTexture(gpucore.Target2D, b)

	if d.BoundTexture(0) != a || d.BoundTexture(1) != b {
		t.Fatalf("bound = %d,%d, want %d,%d", d.BoundTexture(0), d.BoundTexture(1), a, b)
	}

	d.BindTexture(gpucore.Target2D, gpucore.InvalidID)
	if d.BoundTexture(1) != gpucore.InvalidID || d.BoundView(1) != nil {
		t.Error("binding InvalidID should clear the unit")
	}
}

func TestBindUnknownTextureIgnored(t *testing.T) {
	d, dev := newCountingDriver(t)
	d.BindTexture(gpucore.Target2D, 42)
	if dev.views != 0 || d.BoundTexture(0) != gpucore.InvalidID {
		t.Error("binding an unknown handle should be ignored")
	}
}

// halProvider is a gpucontext.DeviceProvider exposing a HAL device.
// Methods the driver does not use fall through to the nil embedded
// provider.
type halProvider struct {
	gpucontext.DeviceProvider
	device any
	format gputypes.TextureFormat
}

func (p halProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p halProvider) HalDevice() any                        { return p.device }

// plainProvider has no HAL access.
type plainProvider struct {
	gpucontext.DeviceProvider
}

func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }

func TestNewDriverFromProvider(t *testing.T) {
	base, cleanup, err := NewNoopDriver()
	if err != nil {
		t.Fatalf("NewNoopDriver() error = %v", err)
	}
	defer cleanup()

	d, err := NewDriverFromProvider(halProvider{device: base.device, format: gputypes.TextureFormatBGRA8Unorm})
	if err != nil {
		t.Fatalf("NewDriverFromProvider() error = %v", err)
	}
	if d.DefaultFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("DefaultFormat() = %v, want BGRA8Unorm", d.DefaultFormat())
	}

	if _, err := NewDriverFromProvider(plainProvider{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("plain provider error = %v, want ErrNoHALAccess", err)
	}
	if _, err := NewDriverFromProvider(halProvider{device: "not a device"}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("wrong HalDevice type error = %v, want ErrNoHALAccess", err)
	}
}

func TestWGPULayerOnNoopDevice(t *testing.T) {
	d, dev := newCountingDriver(t)
	caches, err := devicecache.New(d)
	if err != nil {
		t.Fatal(err)
	}
	caches.Init()

	l, err := layer.NewWGPULayer(d, caches.Ref(), 256, 256)
	if err != nil {
		t.Fatalf("NewWGPULayer() error = %v", err)
	}
	l.EnsureAllocated()
	l.EnsureAllocated()
	l.Bind()
	if dev.created != 1 || dev.views != 1 {
		t.Errorf("created=%d views=%d, want 1 and 1", dev.created, dev.views)
	}

	l.ResetOnContextLoss()
	if dev.destroyed != 0 {
		t.Errorf("device loss destroyed %d textures, want 0", dev.destroyed)
	}

	l.EnsureAllocated()
	l.Close()
	if dev.destroyed != 1 {
		t.Errorf("Close destroyed %d textures, want 1", dev.destroyed)
	}
}

func TestNoopBackendRegistered(t *testing.T) {
	d, release, err := backend.Open(backend.BackendNoop)
	if err != nil {
		t.Fatalf("backend.Open(noop) error = %v", err)
	}
	defer release()
	if d.API() != gpucore.APIWebGPU {
		t.Errorf("API() = %v, want WebGPU", d.API())
	}
}

func TestNoopDriverComesFromProvider(t *testing.T) {
	d, release, err := NewNoopDriver()
	if err != nil {
		t.Fatalf("NewNoopDriver() error = %v", err)
	}
	defer release()
	// An undefined surface format keeps the package default.
	if d.DefaultFormat() != gpucore.DefaultFormat {
		t.Errorf("DefaultFormat() = %v, want %v", d.DefaultFormat(), gpucore.DefaultFormat)
	}
}
