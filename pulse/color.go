package pulse

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/walker/glm"
)

// ClearColor is the background every frame starts with.
var ClearColor = ColorLinearRGBA(0.2, 0.2, 0.2, 1)

// Color is an a straight rgba color value with alpha in linear rgb color space.
// The default value of a Color value is fully opaque white.
type Color struct {
	r1, g1, b1, a1 float32
}

// ColorLinearRGBA creates a new Color value from the given color values.
func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{
		r1: r - 1,
		g1: g - 1,
		b1: b - 1,
		a1: a - 1,
	}
}

// ToVec returns a glm.Vec4f containing the components of this Color instance in
// linear rgb space.
func (c Color) ToVec() glm.Vec4f {
	return glm.Vec4f{
		c.r1 + 1,
		c.g1 + 1,
		c.b1 + 1,
		c.a1 + 1,
	}
}

func (c Color) ToWGPU() wgpu.Color {
	r, g, b, a := c.ToVec().XYZW()

	return wgpu.Color{
		R: float64(r),
		G: float64(g),
		B: float64(b),
		A: float64(a),
	}
}

// ToRGBA8 quantizes the color to 8 bit per channel, the way it ends up
// in an RGBA8Unorm render target.
func (c Color) ToRGBA8() [4]uint8 {
	var result [4]uint8

	for idx, value := range c.ToVec() {
		value = min(max(value, 0), 1)
		result[idx] = uint8(value*255 + 0.5)
	}

	return result
}
