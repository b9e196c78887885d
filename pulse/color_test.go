package pulse

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/walker/glm"
	"github.com/stretchr/testify/assert"
)

func TestColorDefaultIsWhite(t *testing.T) {
	var color Color
	assert.Equal(t, glm.Vec4f{1, 1, 1, 1}, color.ToVec())
}

func TestClearColor(t *testing.T) {
	assert.Equal(t, [4]uint8{51, 51, 51, 255}, ClearColor.ToRGBA8())

	native := ClearColor.ToWGPU()
	assert.InDelta(t, 0.2, native.R, 1e-6)
	assert.InDelta(t, 0.2, native.G, 1e-6)
	assert.InDelta(t, 0.2, native.B, 1e-6)
	assert.Equal(t, wgpu.Color{R: native.R, G: native.G, B: native.B, A: 1}, native)
}

func TestColorToRGBA8(t *testing.T) {
	color := ColorLinearRGBA(1, 0.5, 0, 0.25)
	assert.Equal(t, [4]uint8{255, 128, 0, 64}, color.ToRGBA8())
}

func TestRectangleContains(t *testing.T) {
	rect := RectangleFromPoints(glm.Vec2f{43, 38}, glm.Vec2f{30, 30})

	assert.Equal(t, glm.Vec2f{30, 30}, rect.Min)
	assert.Equal(t, glm.Vec2f{43, 38}, rect.Max)
	assert.Equal(t, glm.Vec2f{36.5, 34}, rect.Center())

	assert.True(t, rect.Contains(glm.Vec2f{30, 30}))
	assert.True(t, rect.Contains(glm.Vec2f{36.5, 34}))
	assert.False(t, rect.Contains(glm.Vec2f{29.9, 34}))
	assert.False(t, rect.Contains(glm.Vec2f{36.5, 38.1}))
}

func TestWorldBounds(t *testing.T) {
	assert.True(t, WorldBounds.Contains(glm.Vec2f{0, 0}))
	assert.True(t, WorldBounds.Contains(glm.Vec2f{WorldWidth, WorldHeight}))
	assert.False(t, WorldBounds.Contains(glm.Vec2f{WorldWidth + 1, 10}))
}
