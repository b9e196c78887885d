package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// two columns, the top row red, the bottom row blue
func encodeTestImage(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, red)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, blue)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestDecodeFlipsRows(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodeTestImage(t)))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(2), img.Height)
	require.Len(t, img.Pixels, 2*2*4)

	// first row in memory is the bottom row of the image
	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0, 255, 255}, img.Pixels[:8])
	assert.Equal(t, []byte{255, 0, 0, 255, 255, 0, 0, 255}, img.Pixels[8:])
}

func TestDecodeConvertsToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.SetGray(1, 0, color.Gray{Y: 128})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gray))

	img, err := Decode(&buf)
	require.NoError(t, err)

	require.Len(t, img.Pixels, 3*4)
	assert.Equal(t, []byte{128, 128, 128, 255}, img.Pixels[4:8])
}

func TestDecodeKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 10, A: 128})
	src.SetNRGBA(0, 1, color.NRGBA{B: 200, A: 1})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(&buf)
	require.NoError(t, err)

	// bottom row first, color values are not scaled by alpha
	assert.Equal(t, []byte{0, 0, 200, 1, 255, 10, 0, 128}, img.Pixels)
}

func TestFromImageSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 7, A: 255})

	img := FromImage(src.SubImage(image.Rect(2, 2, 3, 3)))
	assert.Equal(t, uint32(1), img.Width)
	assert.Equal(t, []byte{7, 0, 0, 255}, img.Pixels)
}

func TestDecodeFailure(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecodeFailed))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.png")
	require.NoError(t, os.WriteFile(path, encodeTestImage(t), 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), img.Width)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrDecodeFailed)
}
