// Package asset decodes image files into pixel data ready for upload to the gpu.
package asset

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	// decoders from the standard library
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrDecodeFailed = errors.New("decode image")

// Image holds 8 bit RGBA pixels with straight (not premultiplied) alpha. Rows are tightly
// packed and stored bottom up: the first row is the bottom row of the image,
// matching texture coordinates where v=0 is the bottom of a sprite.
type Image struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

// Load reads and decodes the image file at path.
func Load(path string) (Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	defer fp.Close()

	img, err := Decode(bufio.NewReader(fp))
	if err != nil {
		return Image{}, fmt.Errorf("load %q: %w", path, err)
	}

	return img, nil
}

// Decode decodes an image in any of the registered formats.
func Decode(r io.Reader) (Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	if src.Bounds().Empty() {
		return Image{}, fmt.Errorf("%w: empty %s image", ErrDecodeFailed, format)
	}

	return FromImage(src), nil
}

// FromImage converts img into bottom up RGBA rows.
func FromImage(img image.Image) Image {
	straight := toNRGBA(img)

	// FlipV only moves pixels around, viewing the straight pixels as
	// RGBA keeps their values unmultiplied.
	flipped := transform.FlipV(&image.RGBA{
		Pix:    straight.Pix,
		Stride: straight.Stride,
		Rect:   straight.Rect,
	})

	size := flipped.Bounds().Size()

	// copy row by row, the stride may exceed the row length
	rowLen := size.X * 4
	pixels := make([]byte, 0, rowLen*size.Y)
	for y := 0; y < size.Y; y++ {
		offset := flipped.PixOffset(flipped.Rect.Min.X, flipped.Rect.Min.Y+y)
		pixels = append(pixels, flipped.Pix[offset:offset+rowLen]...)
	}

	return Image{
		Width:  uint32(size.X),
		Height: uint32(size.Y),
		Pixels: pixels,
	}
}

// toNRGBA returns the pixels of img as straight RGBA with its origin at zero.
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	src, ok := img.(*image.NRGBA)
	if !ok {
		draw.Draw(nrgba, nrgba.Rect, img, bounds.Min, draw.Src)
		return nrgba
	}

	if bounds.Min == (image.Point{}) {
		return src
	}

	// copy the rows verbatim, drawing would round trip through premultiplied colors
	rowLen := bounds.Dx() * 4
	for y := 0; y < bounds.Dy(); y++ {
		offset := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(nrgba.Pix[y*nrgba.Stride:], src.Pix[offset:offset+rowLen])
	}

	return nrgba
}
