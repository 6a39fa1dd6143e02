// Package native provides a WebGPU HAL texture driver using gogpu/wgpu.
package native

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/gpucore"
)

// Driver errors.
var (
	// ErrNilHALDevice is returned when creating a driver without a HAL device.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrNoHALAccess is returned when a device provider does not expose HAL.
	ErrNoHALAccess = errors.New("native: provider does not expose a HAL device")
)

// halTexture is a HAL texture and its lazily created sampling view.
type halTexture struct {
	texture hal.Texture
	view    hal.TextureView
	hasView bool
	desc    gpucore.TextureDesc
}

// Driver implements gpucore.Driver on a hal.Device.
//
// HAL has no global binding state, so BindTexture records the sampling
// view per texture unit for the compositor to put in its bind group.
//
// Thread Safety: Driver is safe for concurrent use. All resource
// operations are protected by a mutex.
type Driver struct {
	mu     sync.Mutex
	device hal.Device

	// defaultFormat replaces an undefined format in descriptors.
	defaultFormat gputypes.TextureFormat

	// ID generation; 0 is never handed out.
	nextID atomic.Uint32

	textures map[gpucore.TextureID]*halTexture
	unit     int
	bound    map[int]gpucore.TextureID
}

// NewDriver creates a driver for device.
func NewDriver(device hal.Device) (*Driver, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	d := &Driver{
		device:        device,
		defaultFormat: gpucore.DefaultFormat,
		textures:      make(map[gpucore.TextureID]*halTexture),
		bound:         make(map[int]gpucore.TextureID),
	}
	d.nextID.Store(1)
	return d, nil
}

// NewDriverFromProvider creates a driver for the HAL device behind a host
// application's device provider. The provider must implement HalDevice()
// returning a hal.Device. The provider's surface format becomes the
// default texture format.
func NewDriverFromProvider(provider gpucontext.DeviceProvider) (*Driver, error) {
	hp, ok := provider.(interface {
		HalDevice() any
	})
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHALAccess, hp.HalDevice())
	}
	d, err := NewDriver(device)
	if err != nil {
		return nil, err
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		d.defaultFormat = f
	}
	return d, nil
}

// API returns gpucore.APIWebGPU.
func (d *Driver) API() gpucore.API {
	return gpucore.APIWebGPU
}

// DefaultFormat returns the format used for descriptors without one.
func (d *Driver) DefaultFormat() gputypes.TextureFormat {
	return d.defaultFormat
}

// GenTexture creates a HAL texture. It returns InvalidID if the device
// rejects the descriptor.
func (d *Driver) GenTexture(desc gpucore.TextureDesc) gpucore.TextureID {
	if desc.Format == gputypes.TextureFormatUndefined {
		desc.Format = d.defaultFormat
	}
	desc = desc.WithDefaults()

	//nolint:gosec // G115: layer dimensions are validated positive
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		hwlayer.Logger().Warn("native: create texture failed",
			"label", desc.Label, "width", desc.Width, "height", desc.Height, "err", err)
		return gpucore.InvalidID
	}

	id := gpucore.TextureID(d.nextID.Add(1) - 1)

	d.mu.Lock()
	d.textures[id] = &halTexture{texture: tex, desc: desc}
	d.mu.Unlock()

	return id
}

// ActiveTexture selects the unit subsequent binds apply to.
func (d *Driver) ActiveTexture(unit int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unit = unit
}

// BindTexture records id as the texture sampled on the active unit,
// creating its view on first bind. Binding InvalidID clears the unit.
func (d *Driver) BindTexture(target gpucore.TextureTarget, id gpucore.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id.IsZero() {
		delete(d.bound, d.unit)
		return
	}
	ht, ok := d.textures[id]
	if !ok {
		return
	}
	if !ht.hasView {
		view, err := d.device.CreateTextureView(ht.texture, &hal.TextureViewDescriptor{
			Label:     ht.desc.Label + "_view",
			Format:    ht.desc.Format,
			Dimension: target.ViewDimension(),
			Aspect:    gputypes.TextureAspectAll,
		})
		if err != nil {
			hwlayer.Logger().Warn("native: create texture view failed", "id", id, "err", err)
			return
		}
		ht.view = view
		ht.hasView = true
	}
	d.bound[d.unit] = id
}

// DeleteTexture destroys the view and texture behind id.
func (d *Driver) DeleteTexture(id gpucore.TextureID) {
	d.mu.Lock()
	ht, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
		for unit, b := range d.bound {
			if b == id {
				delete(d.bound, unit)
			}
		}
	}
	d.mu.Unlock()

	if !ok {
		return
	}
	if ht.hasView {
		d.device.DestroyTextureView(ht.view)
	}
	d.device.DestroyTexture(ht.texture)
}

// BoundView returns the view sampled on unit, or nil.
func (d *Driver) BoundView(unit int) hal.TextureView {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.bound[unit]
	if !ok {
		return nil
	}
	if ht := d.textures[id]; ht != nil {
		return ht.view
	}
	return nil
}

// BoundTexture returns the handle sampled on unit, or InvalidID.
func (d *Driver) BoundTexture(unit int) gpucore.TextureID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bound[unit]
}

// Texture returns the HAL texture behind id, or nil.
func (d *Driver) Texture(id gpucore.TextureID) hal.Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ht := d.textures[id]; ht != nil {
		return ht.texture
	}
	return nil
}

// Live returns the number of textures not yet deleted.
func (d *Driver) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures)
}

var _ gpucore.Driver = (*Driver)(nil)
