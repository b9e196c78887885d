package pulse

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/walker/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureCacheSharesTextures(t *testing.T) {
	ctx := newTestContext(t)

	cache, err := NewTextureCache(ctx, 2)
	require.NoError(t, err)

	var loads int
	cache.load = func(path string) (asset.Image, error) {
		loads++
		return asset.Image{Width: 2, Height: 1, Pixels: make([]byte, 8)}, nil
	}

	first, err := cache.Get("player.png")
	require.NoError(t, err)

	second, err := cache.Get("player.png")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loads)
	assert.Equal(t, uint32(2), first.Width())

	// a holder keeps the texture alive after the cache let go of it
	first.Retain()
	cache.Release()
	assert.Equal(t, 0, cache.Len())
	assert.False(t, first.released())

	first.Release()
	assert.True(t, first.released())
}

func TestTextureCacheLoadFailure(t *testing.T) {
	ctx := newTestContext(t)

	cache, err := NewTextureCache(ctx, 2)
	require.NoError(t, err)

	cache.load = func(path string) (asset.Image, error) {
		return asset.Image{}, asset.ErrDecodeFailed
	}

	_, err = cache.Get("broken.png")
	assert.True(t, errors.Is(err, asset.ErrDecodeFailed))
	assert.Equal(t, 0, cache.Len())
}
