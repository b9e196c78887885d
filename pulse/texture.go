package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/walker/asset"
)

// Texture wraps a wgpu.Texture that can be shared by multiple sprites.
// A Texture is reference counted, the underlying texture is released
// once the last holder calls Release.
type Texture struct {
	texture *wgpu.Texture

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	width  uint32
	height uint32

	refs int
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	// defaults to TextureBinding | CopyDst
	Usage wgpu.TextureUsage
	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	if opts.Usage == 0 {
		opts.Usage = wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst
	}

	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: opts.Usage,
	}

	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", opts.Label, err)
	}

	t := &Texture{
		texture: texture,
		format:  opts.Format,
		width:   opts.Width,
		height:  opts.Height,
		refs:    1,
	}

	return t, nil
}

// NewTextureFromImage creates an RGBA8Unorm texture and uploads the pixels of the image.
func NewTextureFromImage(ctx *Context, img asset.Image, label string) (*Texture, error) {
	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  img.Width,
		Height: img.Height,
		Label:  label,
	})
	if err != nil {
		return nil, err
	}

	if err := t.WritePixels(ctx, img.Pixels); err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}

// TextureWriter is implemented by *wgpu.Queue and thereby by *Context
type TextureWriter interface {
	WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, dataLayout *wgpu.TextureDataLayout, writeSize *wgpu.Extent3D) error
}

// WritePixels replaces the content of the whole texture with the given tightly packed rows.
func (t *Texture) WritePixels(queue TextureWriter, pixels []byte) error {
	bytesPerRow := t.width * 4

	if uint32(len(pixels)) != bytesPerRow*t.height {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", bytesPerRow*t.height, len(pixels))
	}

	layout := &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  bytesPerRow,
		RowsPerImage: t.height,
	}

	size := &wgpu.Extent3D{
		Width:              t.width,
		Height:             t.height,
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.ImageCopyTexture{
		Texture:  t.texture,
		MipLevel: 0,
		Origin:   wgpu.Origin3D{},
		Aspect:   wgpu.TextureAspectAll,
	}

	// send data to the gpu
	err := queue.WriteTexture(dest, pixels, layout, size)
	if err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}

// CreateView creates a new 2d view on the texture in the given format.
// The caller owns the view.
func (t *Texture) CreateView(format wgpu.TextureFormat) (*wgpu.TextureView, error) {
	return t.texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          format,
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectAll,
	})
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) ToWGPUTexture() *wgpu.Texture {
	return t.texture
}

// Retain registers another holder of the texture.
func (t *Texture) Retain() *Texture {
	if t.refs <= 0 {
		panic("retain of released texture")
	}

	t.refs++
	return t
}

// Release drops one reference. The texture itself is released
// with the last reference.
func (t *Texture) Release() {
	if t.refs <= 0 {
		return
	}

	t.refs--

	if t.refs == 0 && t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

func (t *Texture) released() bool {
	return t.refs == 0
}
