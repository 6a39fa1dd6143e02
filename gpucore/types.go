package gpucore

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureID is an opaque driver-assigned handle to a GPU texture.
// The zero value means no driver resource exists.
type TextureID uint32

// InvalidID is the zero value, representing an unallocated texture.
const InvalidID TextureID = 0

// IsZero reports whether the handle is unallocated.
func (id TextureID) IsZero() bool {
	return id == InvalidID
}

// API identifies the device API backend that owns a resource.
type API uint8

const (
	// APIOpenGL is the OpenGL (ES) backend.
	APIOpenGL API = iota + 1

	// APIWebGPU is the WebGPU HAL backend.
	APIWebGPU
)

// String returns a human-readable name for the API.
func (a API) String() string {
	switch a {
	case APIOpenGL:
		return "OpenGL"
	case APIWebGPU:
		return "WebGPU"
	default:
		return fmt.Sprintf("API(%d)", uint8(a))
	}
}

// TextureTarget is the sampling/binding kind of a texture.
// It is fixed for the lifetime of a texture resource.
type TextureTarget uint8

const (
	// Target2D is a regular two-dimensional texture.
	Target2D TextureTarget = iota

	// TargetExternal is an opaque externally produced image
	// (GL_TEXTURE_EXTERNAL_OES and friends).
	TargetExternal
)

// String returns a human-readable name for the target.
func (t TextureTarget) String() string {
	switch t {
	case Target2D:
		return "2D"
	case TargetExternal:
		return "External"
	default:
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
}

// ViewDimension maps the target to the WebGPU view dimension used when
// sampling it. External images are sampled as plain 2D views.
func (t TextureTarget) ViewDimension() gputypes.TextureViewDimension {
	return gputypes.TextureViewDimension2D
}

// DefaultFormat is the pixel format used when a layer does not choose one.
const DefaultFormat = gputypes.TextureFormatRGBA8Unorm

// DefaultUsage is the usage of a layer texture: rendered into, then sampled
// by the compositor, and readable for device-space readback.
const DefaultUsage = gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc

// TextureDesc describes a texture to allocate.
// This mirrors the WebGPU GPUTextureDescriptor for the fields a layer needs.
type TextureDesc struct {
	// Label is an optional debug label.
	Label string

	// Target is the binding kind.
	Target TextureTarget

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// Format is the pixel format. Zero means DefaultFormat.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used. Zero means DefaultUsage.
	Usage gputypes.TextureUsage
}

// BytesPerPixel returns the size of one pixel of the descriptor's format.
func (d TextureDesc) BytesPerPixel() int {
	switch d.Format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatR16Float:
		return 2
	case gputypes.TextureFormatRG16Float, gputypes.TextureFormatR32Float:
		return 4
	case gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatRG32Float:
		return 8
	case gputypes.TextureFormatRGBA32Float:
		return 16
	default:
		// RGBA8 and BGRA8 variants.
		return 4
	}
}

// SizeBytes returns the memory footprint of the described texture.
func (d TextureDesc) SizeBytes() uint64 {
	if d.Width <= 0 || d.Height <= 0 {
		return 0
	}
	//nolint:gosec // G115: dimensions are validated positive
	return uint64(d.Width * d.Height * d.BytesPerPixel())
}

// WithDefaults returns a copy of d with zero format and usage filled in.
func (d TextureDesc) WithDefaults() TextureDesc {
	if d.Format == gputypes.TextureFormatUndefined {
		d.Format = DefaultFormat
	}
	if d.Usage == 0 {
		d.Usage = DefaultUsage
	}
	return d
}
