package orion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/walker/config"
	"github.com/oliverbestmann/walker/glimpse"
	"github.com/oliverbestmann/walker/pulse"
)

// upper bound of the wait between two failed frames
const maxAcquireBackoff = time.Second

// presentable is implemented by *pulse.Frame
type presentable interface {
	Target() pulse.RenderTarget
	Present() error
	Release()
}

// frameSurface is the part of *pulse.Surface the frame loop needs
type frameSurface interface {
	AcquireFrame() (presentable, error)
	Resize(width, height uint32)
	Reconfigure()
}

type spriteRenderer interface {
	Render(target pulse.RenderTarget, sprites []*pulse.Sprite) error
}

type surfaceAdapter struct {
	*pulse.Surface
}

func (s surfaceAdapter) AcquireFrame() (presentable, error) {
	frame, err := s.Surface.AcquireFrame()
	if err != nil {
		return nil, err
	}

	return frame, nil
}

// Walker is the stage showing a single player sprite that walks
// left and right with the arrow keys.
type Walker struct {
	ctx    *pulse.Context
	queue  pulse.BufferWriter
	window glimpse.Window
	config *config.Config

	surface  frameSurface
	renderer spriteRenderer
	textures *pulse.TextureCache
	sprites  []*pulse.Sprite
	player   player

	// release in reverse order of construction
	releasers []pulse.Releaser

	// framebuffer has a zero size, e.g. while minimized
	minimized bool

	stats           FrameTimes
	profile         frameProfile
	acquireFailures int
}

func NewWalker(ctx *pulse.Context, window glimpse.Window, cfg *config.Config) *Walker {
	return &Walker{ctx: ctx, queue: ctx, window: window, config: cfg}
}

func (w *Walker) Init() (err error) {
	defer func() {
		if err != nil {
			w.Release()
		}
	}()

	width, height := w.window.GetSize()
	w.minimized = width == 0 || height == 0

	surface, err := pulse.NewSurface(w.ctx, w.window, width, height)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}

	w.surface = surfaceAdapter{surface}
	w.releasers = append(w.releasers, surface)

	renderer, err := pulse.NewRenderer(w.ctx, surface.Config())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	w.renderer = renderer
	w.releasers = append(w.releasers, renderer)

	w.textures, err = pulse.NewTextureCache(w.ctx, w.config.Render.TextureCacheSize)
	if err != nil {
		return fmt.Errorf("create texture cache: %w", err)
	}

	w.releasers = append(w.releasers, w.textures)

	sampler, err := pulse.CachedSampler(w.ctx.Device, pulse.SamplerSprite)
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	texture, err := w.textures.Get(w.config.Assets.Player)
	if err != nil {
		return fmt.Errorf("load player texture: %w", err)
	}

	sprite, err := pulse.NewSprite(w.ctx, pulse.SpriteOptions{
		Position: PlayerPosition,
		Size:     PlayerSize,
		Texture:  texture,
		Layout:   renderer.SpriteLayout(),
		Sampler:  sampler,
		Label:    "Player",
	})

	if err != nil {
		return fmt.Errorf("create player sprite: %w", err)
	}

	w.releasers = append(w.releasers, sprite)
	w.sprites = []*pulse.Sprite{sprite}
	w.player = player{sprite: sprite}

	slog.Info("Walker initialized",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Any("format", renderer.TargetFormat()),
	)

	return nil
}

func (w *Walker) Resize(width, height uint32) {
	if w.surface == nil {
		return
	}

	w.minimized = width == 0 || height == 0
	if w.minimized {
		slog.Debug("Framebuffer is empty, pause rendering")
		return
	}

	w.acquireFailures = 0
	w.surface.Resize(width, height)
}

func (w *Walker) Frame(input *glimpse.InputState) error {
	if w.minimized {
		// nothing to present to, sleep until the window changes
		w.window.WaitEvents(maxAcquireBackoff)
		return nil
	}

	w.profile.StartFrame()

	if w.stats.Tick() && w.config.Diagnostics.FrameStats {
		slog.Info("Frame stats",
			slog.Uint64("frames", w.stats.FrameCount),
			slog.Float64("fps", w.stats.FPS()),
			slog.Duration("max", w.stats.MaxDuration),
			slog.Any("phases", &w.profile),
		)
	}

	frame, err := w.surface.AcquireFrame()
	if err != nil {
		return w.skipFrame(err)
	}

	defer frame.Release()

	w.acquireFailures = 0

	w.profile.StartUpdate()

	if err := w.player.Update(w.queue, input); err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	w.profile.StartRender()

	if err := w.renderer.Render(frame.Target(), w.sprites); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := frame.Present(); err != nil {
		return w.skipFrame(err)
	}

	w.profile.EndFrame()

	return nil
}

// skipFrame reconfigures the surface after a recoverable error and waits
// before the next attempt. Only too many failures in a row stop the loop.
func (w *Walker) skipFrame(err error) error {
	if !pulse.IsRecoverable(err) {
		return err
	}

	w.acquireFailures++
	if w.acquireFailures > w.config.Render.MaxAcquireRetries {
		return fmt.Errorf("giving up after %d failed frames: %w", w.acquireFailures, err)
	}

	backoff := acquireBackoff(w.config.Render.AcquireBackoff, w.acquireFailures)

	slog.Warn("Skip frame",
		slog.Int("failures", w.acquireFailures),
		slog.Duration("backoff", backoff),
		slog.Any("err", err),
	)

	w.window.WaitEvents(backoff)
	w.surface.Reconfigure()

	return nil
}

// acquireBackoff doubles base for every failure after the first, up to maxAcquireBackoff.
func acquireBackoff(base time.Duration, failures int) time.Duration {
	backoff := base
	for range failures - 1 {
		if backoff >= maxAcquireBackoff {
			break
		}

		backoff *= 2
	}

	return min(backoff, maxAcquireBackoff)
}

func (w *Walker) Release() {
	for idx := len(w.releasers) - 1; idx >= 0; idx-- {
		w.releasers[idx].Release()
	}

	w.releasers = nil
	w.sprites = nil
	w.textures = nil
	w.renderer = nil
	w.surface = nil

	pulse.ReleaseCachedSamplers()
}

var _ Stage = (*Walker)(nil)
