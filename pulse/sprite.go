package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/walker/glm"
)

// BufferWriter is implemented by *wgpu.Queue and thereby by *Context
type BufferWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, bufferOffset uint64, data []byte) error
}

type SpriteOptions struct {
	// position of the bottom left corner in world units
	Position glm.Vec2f

	// size in world units
	Size glm.Vec2f

	Texture *Texture
	Layout  *wgpu.BindGroupLayout
	Sampler *wgpu.Sampler

	Label string
}

// Sprite is a textured quad with its own model transform. The transform
// buffer always holds the bytes of the current model matrix.
type Sprite struct {
	model glm.Mat4f

	transform *wgpu.Buffer
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup

	// shared, we hold one reference
	texture *Texture
}

// SpriteModel returns the model matrix of a sprite at pos with the given size:
// T(pos.x, pos.y, 0) * S(size.x, size.y, 1)
func SpriteModel(pos, size glm.Vec2f) glm.Mat4f {
	return glm.TranslationMat4[float32](pos[0], pos[1], 0).Scale(size[0], size[1], 1)
}

func NewSprite(ctx *Context, opts SpriteOptions) (sprite *Sprite, err error) {
	if opts.Texture == nil || opts.Layout == nil || opts.Sampler == nil {
		return nil, fmt.Errorf("sprite %q requires texture, layout and sampler", opts.Label)
	}

	sprite = &Sprite{
		model:   SpriteModel(opts.Position, opts.Size),
		texture: opts.Texture.Retain(),
	}

	defer func() {
		if err != nil {
			sprite.Release()
			sprite = nil
		}
	}()

	sprite.transform, err = ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    opts.Label + ".Model",
		Contents: AsByteSlice(&sprite.model),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})

	if err != nil {
		return sprite, fmt.Errorf("create model uniform: %w", err)
	}

	sprite.view, err = opts.Texture.CreateView(opts.Texture.Format())
	if err != nil {
		return sprite, fmt.Errorf("create texture view: %w", err)
	}

	sprite.bindGroup, err = ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  opts.Label + ".BindGroup",
		Layout: opts.Layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  sprite.transform,
				Size:    wgpu.WholeSize,
			},
			{
				Binding:     1,
				TextureView: sprite.view,
			},
			{
				Binding: 2,
				Sampler: opts.Sampler,
			},
		},
	})

	if err != nil {
		return sprite, fmt.Errorf("create bind group: %w", err)
	}

	return sprite, nil
}

// MoveBy translates the sprite by delta in its local frame, that is after
// scaling. Moves compose. The new transform is written to the queue
// right away and is visible to the next submitted frame.
func (s *Sprite) MoveBy(queue BufferWriter, delta glm.Vec2f) error {
	model := s.model.Translate(delta[0], delta[1], 0)

	if err := queue.WriteBuffer(s.transform, 0, AsByteSlice(&model)); err != nil {
		return fmt.Errorf("update model uniform: %w", err)
	}

	s.model = model

	return nil
}

func (s *Sprite) Model() glm.Mat4f {
	return s.model
}

// Position returns the world position of the bottom left corner.
func (s *Sprite) Position() glm.Vec2f {
	return s.model.TransformPoint(glm.Vec2f{0, 0})
}

// Bounds returns the area covered by the sprite in world units.
func (s *Sprite) Bounds() Rectangle2f {
	return RectangleFromPoints(
		s.model.TransformPoint(glm.Vec2f{0, 0}),
		s.model.TransformPoint(glm.Vec2f{1, 1}),
	)
}

func (s *Sprite) BindGroup() *wgpu.BindGroup {
	return s.bindGroup
}

// Release releases the resources owned by the sprite and drops
// its reference on the texture.
func (s *Sprite) Release() {
	if s.bindGroup != nil {
		s.bindGroup.Release()
		s.bindGroup = nil
	}

	if s.view != nil {
		s.view.Release()
		s.view = nil
	}

	if s.transform != nil {
		s.transform.Release()
		s.transform = nil
	}

	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
}
