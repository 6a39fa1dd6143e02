package gpucore

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestTextureIDIsZero(t *testing.T) {
	if !InvalidID.IsZero() {
		t.Error("InvalidID.IsZero() = false")
	}
	if TextureID(7).IsZero() {
		t.Error("TextureID(7).IsZero() = true")
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{APIOpenGL.String(), "OpenGL"},
		{APIWebGPU.String(), "WebGPU"},
		{API(9).String(), "API(9)"},
		{Target2D.String(), "2D"},
		{TargetExternal.String(), "External"},
		{TextureTarget(5).String(), "Target(5)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestTextureDescWithDefaults(t *testing.T) {
	d := TextureDesc{Width: 4, Height: 4}.WithDefaults()
	if d.Format != DefaultFormat {
		t.Errorf("Format = %v, want %v", d.Format, DefaultFormat)
	}
	if d.Usage != DefaultUsage {
		t.Errorf("Usage = %v, want %v", d.Usage, DefaultUsage)
	}

	explicit := TextureDesc{
		Width:  4,
		Height: 4,
		Format: gputypes.TextureFormatR8Unorm,
		Usage:  gputypes.TextureUsageTextureBinding,
	}.WithDefaults()
	if explicit.Format != gputypes.TextureFormatR8Unorm || explicit.Usage != gputypes.TextureUsageTextureBinding {
		t.Errorf("WithDefaults overrode explicit fields: %+v", explicit)
	}
}

func TestTextureDescSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		desc TextureDesc
		want uint64
	}{
		{"rgba", TextureDesc{Width: 256, Height: 256, Format: gputypes.TextureFormatRGBA8Unorm}, 256 * 256 * 4},
		{"r8", TextureDesc{Width: 10, Height: 10, Format: gputypes.TextureFormatR8Unorm}, 100},
		{"rg8", TextureDesc{Width: 10, Height: 10, Format: gputypes.TextureFormatRG8Unorm}, 200},
		{"rgba16f", TextureDesc{Width: 10, Height: 10, Format: gputypes.TextureFormatRGBA16Float}, 800},
		{"rgba32f", TextureDesc{Width: 10, Height: 10, Format: gputypes.TextureFormatRGBA32Float}, 1600},
		{"bgra", TextureDesc{Width: 10, Height: 10, Format: gputypes.TextureFormatBGRA8Unorm}, 400},
		{"empty", TextureDesc{Width: 0, Height: 10}, 0},
		{"negative", TextureDesc{Width: -1, Height: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.SizeBytes(); got != tt.want {
				t.Errorf("SizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}
