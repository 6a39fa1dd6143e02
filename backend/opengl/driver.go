// Package opengl provides an OpenGL 3.3 core texture driver using go-gl.
//
// The driver issues GL calls directly, so every method must run on the
// goroutine that owns the current GL context (see renderstate.Run).
package opengl

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/gpucore"
)

// TextureExternalOES is GL_TEXTURE_EXTERNAL_OES. Desktop GL has no such
// target, so external layers fall back to GL_TEXTURE_2D there.
const TextureExternalOES = 0x8D65

// Driver implements gpucore.Driver on the current OpenGL context.
//
// Storage for a texture is specified on its first bind, so GenTexture
// never changes the binding state the device cache tracks.
type Driver struct {
	externalOES bool
	pending     map[gpucore.TextureID]gpucore.TextureDesc
}

// Option configures a Driver.
type Option func(*Driver)

// WithExternalOES makes TargetExternal bind to GL_TEXTURE_EXTERNAL_OES.
// Use it only on contexts exposing OES_EGL_image_external.
func WithExternalOES() Option {
	return func(d *Driver) {
		d.externalOES = true
	}
}

// NewDriver loads GL function pointers for the current context and
// returns a driver for it.
func NewDriver(opts ...Option) (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	d := &Driver{pending: make(map[gpucore.TextureID]gpucore.TextureDesc)}
	for _, opt := range opts {
		opt(d)
	}
	hwlayer.Logger().Info("opengl: driver ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return d, nil
}

// API returns gpucore.APIOpenGL.
func (d *Driver) API() gpucore.API {
	return gpucore.APIOpenGL
}

// GenTexture generates a texture name. It returns InvalidID if GL hands
// out none.
func (d *Driver) GenTexture(desc gpucore.TextureDesc) gpucore.TextureID {
	var name uint32
	gl.GenTextures(1, &name)
	if name == 0 {
		hwlayer.Logger().Warn("opengl: glGenTextures returned 0", "label", desc.Label)
		return gpucore.InvalidID
	}
	id := gpucore.TextureID(name)
	d.pending[id] = desc.WithDefaults()
	return id
}

// ActiveTexture selects texture unit GL_TEXTURE0+unit.
func (d *Driver) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) //nolint:gosec // G115: unit is range-checked by the cache
}

// BindTexture binds id to target on the active unit, allocating storage
// the first time a 2D texture is bound.
func (d *Driver) BindTexture(target gpucore.TextureTarget, id gpucore.TextureID) {
	glTarget := d.glTarget(target)
	gl.BindTexture(glTarget, uint32(id))

	desc, ok := d.pending[id]
	if !ok {
		return
	}
	delete(d.pending, id)
	if glTarget != gl.TEXTURE_2D {
		// External images are backed by the producer's buffer.
		return
	}
	internal, format, xtype := glFormat(desc.Format)
	//nolint:gosec // G115: layer dimensions are validated positive
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, xtype, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if e := gl.GetError(); e != gl.NO_ERROR {
		hwlayer.Logger().Warn("opengl: texture storage failed",
			"label", desc.Label, "width", desc.Width, "height", desc.Height, "glError", e)
	}
}

// DeleteTexture deletes the texture name id.
func (d *Driver) DeleteTexture(id gpucore.TextureID) {
	delete(d.pending, id)
	name := uint32(id)
	gl.DeleteTextures(1, &name)
}

func (d *Driver) glTarget(t gpucore.TextureTarget) uint32 {
	if t == gpucore.TargetExternal && d.externalOES {
		return TextureExternalOES
	}
	return gl.TEXTURE_2D
}

// glFormat maps a texture format to GL internal format, pixel format and
// component type.
func glFormat(f gputypes.TextureFormat) (int32, uint32, uint32) {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE
	case gputypes.TextureFormatRG8Unorm:
		return gl.RG8, gl.RG, gl.UNSIGNED_BYTE
	case gputypes.TextureFormatBGRA8Unorm:
		return gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE
	case gputypes.TextureFormatRGBA16Float:
		return gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT
	case gputypes.TextureFormatRGBA32Float:
		return gl.RGBA32F, gl.RGBA, gl.FLOAT
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}

var _ gpucore.Driver = (*Driver)(nil)
