package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything a presentation surface can be created for,
// usually a glimpse.Window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// SurfaceConfig describes how a surface is configured. Width and Height
// are always at least one.
type SurfaceConfig struct {
	Format      wgpu.TextureFormat
	ViewFormats []wgpu.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
}

// DefaultSurfaceConfig derives a configuration from the capabilities an adapter reports
// for a surface. The first supported format is used without its sRGB suffix, the stripped
// format becomes the only view format. Presentation is vsync'ed.
func DefaultSurfaceConfig(formats []wgpu.TextureFormat, alphaModes []wgpu.CompositeAlphaMode, width, height uint32) (SurfaceConfig, error) {
	if len(formats) == 0 {
		return SurfaceConfig{}, ErrSurfaceConfigUnsupported
	}

	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(alphaModes) > 0 {
		alphaMode = alphaModes[0]
	}

	format := StripSRGB(formats[0])

	config := SurfaceConfig{
		Format:      format,
		ViewFormats: []wgpu.TextureFormat{format},
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   alphaMode,
	}

	return config.Resized(width, height), nil
}

// Resized returns a copy of the config with the given size, clamped to at least 1x1.
func (c SurfaceConfig) Resized(width, height uint32) SurfaceConfig {
	c.Width = max(width, 1)
	c.Height = max(height, 1)
	return c
}

// ViewFormat is the format render targets use for views on the surface textures.
func (c SurfaceConfig) ViewFormat() wgpu.TextureFormat {
	if len(c.ViewFormats) > 0 {
		return c.ViewFormats[0]
	}

	return c.Format
}

func (c SurfaceConfig) toWGPU() *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.Format,
		ViewFormats: c.ViewFormats,
		Width:       c.Width,
		Height:      c.Height,
		PresentMode: c.PresentMode,
		AlphaMode:   c.AlphaMode,
	}
}

// Surface is the presentation surface of a window.
type Surface struct {
	ctx     *Context
	surface *wgpu.Surface
	config  SurfaceConfig
}

func NewSurface(ctx *Context, window SurfaceSource, width, height uint32) (*Surface, error) {
	surface := ctx.Instance.CreateSurface(window.SurfaceDescriptor())

	guard := NewReleaseGuard(surface)
	defer guard.Release()

	caps := surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	config, err := DefaultSurfaceConfig(caps.Formats, caps.AlphaModes, width, height)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		ctx:     ctx,
		surface: surface,
		config:  config,
	}

	s.configure()
	guard.Keep()

	return s, nil
}

func (s *Surface) Config() SurfaceConfig {
	return s.config
}

// Resize reconfigures the surface for a new window size. Zero sizes,
// e.g. of a minimized window, are clamped to 1.
func (s *Surface) Resize(width, height uint32) {
	s.config = s.config.Resized(width, height)

	slog.Debug("Resize surface",
		slog.Int("width", int(s.config.Width)),
		slog.Int("height", int(s.config.Height)),
	)

	s.configure()
}

// Reconfigure configures the surface again with its current configuration.
// This recovers a surface that became outdated or lost.
func (s *Surface) Reconfigure() {
	s.configure()
}

func (s *Surface) configure() {
	s.surface.Configure(s.ctx.Adapter, s.ctx.Device, s.config.toWGPU())
}

// AcquireFrame blocks until the next surface texture is available.
func (s *Surface) AcquireFrame() (*Frame, error) {
	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFrameAcquireFailed, err)
	}

	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          s.config.ViewFormat(),
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectAll,
	})

	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("%w: create view: %w", ErrFrameAcquireFailed, err)
	}

	frame := &Frame{
		surface: s.surface,
		texture: texture,
		View:    view,
		format:  s.config.ViewFormat(),
		width:   s.config.Width,
		height:  s.config.Height,
	}

	return frame, nil
}

func (s *Surface) Release() {
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}

// Frame is a surface texture acquired for rendering. It must be
// either presented or released.
type Frame struct {
	surface *wgpu.Surface
	texture *wgpu.Texture

	// View on the frame texture in the surface's view format.
	View *wgpu.TextureView

	format        wgpu.TextureFormat
	width, height uint32

	done bool
}

// Target returns the frame as a RenderTarget.
func (f *Frame) Target() RenderTarget {
	return RenderTarget{
		View:   f.View,
		Format: f.format,
		Width:  f.width,
		Height: f.height,
	}
}

// Present hands the frame back to the presentation engine.
func (f *Frame) Present() error {
	if f.done {
		return fmt.Errorf("%w: frame already presented or released", ErrPresentFailed)
	}

	f.surface.Present()
	f.Release()

	return nil
}

// Release discards the frame. It is a no-op after Present.
func (f *Frame) Release() {
	if f.done {
		return
	}

	f.done = true

	f.View.Release()
	f.texture.Release()
}
