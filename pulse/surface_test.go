package pulse

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripSRGB(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, StripSRGB(wgpu.TextureFormatBGRA8UnormSrgb))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, StripSRGB(wgpu.TextureFormatRGBA8UnormSrgb))

	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, StripSRGB(wgpu.TextureFormatBGRA8Unorm))
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, StripSRGB(wgpu.TextureFormatRGBA16Float))
}

func TestDefaultSurfaceConfig(t *testing.T) {
	config, err := DefaultSurfaceConfig(
		[]wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm},
		[]wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque},
		800, 600,
	)

	require.NoError(t, err)

	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, config.Format)
	assert.Equal(t, []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm}, config.ViewFormats)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, config.ViewFormat())
	assert.Equal(t, wgpu.PresentModeFifo, config.PresentMode)
	assert.Equal(t, wgpu.CompositeAlphaModeOpaque, config.AlphaMode)
	assert.Equal(t, uint32(800), config.Width)
	assert.Equal(t, uint32(600), config.Height)
}

func TestDefaultSurfaceConfigWithoutFormats(t *testing.T) {
	_, err := DefaultSurfaceConfig(nil, nil, 800, 600)
	assert.ErrorIs(t, err, ErrSurfaceConfigUnsupported)
}

func TestSurfaceConfigResizedClamps(t *testing.T) {
	config := SurfaceConfig{Width: 800, Height: 600}

	resized := config.Resized(0, 0)
	assert.Equal(t, uint32(1), resized.Width)
	assert.Equal(t, uint32(1), resized.Height)

	resized = config.Resized(1024, 0)
	assert.Equal(t, uint32(1024), resized.Width)
	assert.Equal(t, uint32(1), resized.Height)

	// the receiver is unchanged
	assert.Equal(t, uint32(800), config.Width)
}

func TestSurfaceConfigToWGPU(t *testing.T) {
	config := SurfaceConfig{
		Format:      wgpu.TextureFormatRGBA8Unorm,
		ViewFormats: []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm},
		Width:       320,
		Height:      200,
		PresentMode: wgpu.PresentModeFifo,
	}

	native := config.toWGPU()
	assert.Equal(t, wgpu.TextureUsageRenderAttachment, native.Usage)
	assert.Equal(t, config.Format, native.Format)
	assert.Equal(t, config.ViewFormats, native.ViewFormats)
	assert.Equal(t, uint32(320), native.Width)
	assert.Equal(t, uint32(200), native.Height)
}

func TestFramePresentTwice(t *testing.T) {
	frame := &Frame{done: true}

	err := frame.Present()
	assert.ErrorIs(t, err, ErrPresentFailed)
	assert.True(t, IsRecoverable(err))

	// releasing a finished frame is a no-op
	frame.Release()
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(fmt.Errorf("%w: outdated", ErrFrameAcquireFailed)))
	assert.False(t, IsRecoverable(ErrAdapterUnavailable))
	assert.False(t, IsRecoverable(fmt.Errorf("%w: %w", ErrShaderCompileFailed, errors.New("syntax"))))
	assert.False(t, IsRecoverable(nil))
}
