package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/hwlayer/backend"
	"github.com/gogpu/hwlayer/gpucore"
)

// ErrNoAdapter is returned when the noop backend reports no adapter.
var ErrNoAdapter = errors.New("native: no adapter available")

// halDeviceProvider exposes a HAL device the way a host application's
// device provider does. Only SurfaceFormat and HalDevice are served; the
// embedded provider is nil, as a headless device has no surface or
// wgpu-level handles.
type halDeviceProvider struct {
	gpucontext.DeviceProvider
	device hal.Device
}

func (p *halDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

func (p *halDeviceProvider) HalDevice() any { return p.device }

// NewNoopDriver creates a driver on the wgpu noop HAL. It performs no GPU
// work and is used for headless runs. The returned function releases the
// device and instance.
func NewNoopDriver() (*Driver, func(), error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("native: create noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, ErrNoAdapter
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, fmt.Errorf("native: open noop device: %w", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	d, err := NewDriverFromProvider(&halDeviceProvider{device: openDev.Device})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return d, cleanup, nil
}

func init() {
	backend.Register(backend.BackendNoop, func() (gpucore.Driver, func(), error) {
		d, release, err := NewNoopDriver()
		if err != nil {
			return nil, nil, err
		}
		return d, release, nil
	})
}
