package pulse

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/walker/asset"
)

// TextureCache shares textures loaded from the same asset path.
// The cache holds one reference to every texture it returns,
// holders that keep a texture beyond the lifetime of the cache
// must Retain it.
type TextureCache struct {
	ctx   *Context
	cache *lru.Cache[string, *Texture]
	load  func(path string) (asset.Image, error)
}

func NewTextureCache(ctx *Context, size int) (*TextureCache, error) {
	cache, err := lru.NewWithEvict[string, *Texture](size, textureCacheOnEvict)
	if err != nil {
		return nil, fmt.Errorf("create texture cache: %w", err)
	}

	return &TextureCache{ctx: ctx, cache: cache, load: asset.Load}, nil
}

func textureCacheOnEvict(path string, texture *Texture) {
	slog.Debug("Evict texture from cache", slog.String("path", path))
	texture.Release()
}

// Get returns the texture for the image at path, loading and uploading
// it on first use.
func (c *TextureCache) Get(path string) (*Texture, error) {
	if texture, ok := c.cache.Get(path); ok {
		return texture, nil
	}

	img, err := c.load(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w", path, err)
	}

	texture, err := NewTextureFromImage(c.ctx, img, path)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", path, err)
	}

	slog.Info("Texture loaded",
		slog.String("path", path),
		slog.Int("width", int(img.Width)),
		slog.Int("height", int(img.Height)),
	)

	c.cache.Add(path, texture)

	return texture, nil
}

func (c *TextureCache) Len() int {
	return c.cache.Len()
}

// Release drops the references held by the cache.
func (c *TextureCache) Release() {
	c.cache.Purge()
}
