package pulse

import (
	_ "embed"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/walker/glm"
)

//go:embed sprite.wgsl
var spriteShaderCode string

// Size of the visible world in world units. The projection maps
// (0, 0) to the bottom left and (WorldWidth, WorldHeight) to the
// top right corner of the render target.
const (
	WorldWidth  = 229
	WorldHeight = 190
)

// Projection is uploaded once and never changes.
var Projection = glm.Ortho[float32](0, WorldWidth, 0, WorldHeight, -1, 1)

// WorldBounds is the part of the world visible through Projection.
var WorldBounds = Rectangle2f{Max: glm.Vec2f{WorldWidth, WorldHeight}}

type Vertex struct {
	Position glm.Vec2f
	TexCoord glm.Vec2f
}

// two triangles covering the unit square, texture coordinates mirror the position
var quadVertices = [...]Vertex{
	{Position: glm.Vec2f{0, 1}, TexCoord: glm.Vec2f{0, 1}},
	{Position: glm.Vec2f{1, 1}, TexCoord: glm.Vec2f{1, 1}},
	{Position: glm.Vec2f{0, 0}, TexCoord: glm.Vec2f{0, 0}},
	{Position: glm.Vec2f{0, 0}, TexCoord: glm.Vec2f{0, 0}},
	{Position: glm.Vec2f{1, 0}, TexCoord: glm.Vec2f{1, 0}},
	{Position: glm.Vec2f{1, 1}, TexCoord: glm.Vec2f{1, 1}},
}

// Renderer draws textured quads with one shared pipeline.
// Each sprite is bound with its own bind group in slot 1,
// slot 0 holds the projection.
type Renderer struct {
	ctx *Context

	vertices *wgpu.Buffer

	projectionLayout *wgpu.BindGroupLayout
	spriteLayout     *wgpu.BindGroupLayout
	pipelineLayout   *wgpu.PipelineLayout
	pipelines        *PipelineCache[spritePipelineConfig]

	projection          *wgpu.Buffer
	projectionBindGroup *wgpu.BindGroup

	targetFormat wgpu.TextureFormat
}

// NewRenderer builds the sprite pipeline for render targets in the view format of the given
// surface configuration. The pipeline does not need to be rebuilt when the surface is resized.
func NewRenderer(ctx *Context, config SurfaceConfig) (r *Renderer, err error) {
	r = &Renderer{
		ctx:          ctx,
		targetFormat: config.ViewFormat(),
	}

	defer func() {
		if err != nil {
			r.Release()
			r = nil
		}
	}()

	r.vertices, err = ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Sprite.Vertices",
		Contents: wgpu.ToBytes(quadVertices[:]),
		Usage:    wgpu.BufferUsageVertex,
	})

	if err != nil {
		return r, fmt.Errorf("create vertex buffer: %w", err)
	}

	r.projectionLayout, err = ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Projection.Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})

	if err != nil {
		return r, fmt.Errorf("create projection layout: %w", err)
	}

	r.spriteLayout, err = ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite.Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				// model matrix
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})

	if err != nil {
		return r, fmt.Errorf("create sprite layout: %w", err)
	}

	r.pipelineLayout, err = ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Sprite.PipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.projectionLayout, r.spriteLayout},
	})

	if err != nil {
		return r, fmt.Errorf("create pipeline layout: %w", err)
	}

	// build the pipeline for the surface format right away
	r.pipelines = NewPipelineCache[spritePipelineConfig](ctx)
	if _, err = r.pipeline(r.targetFormat); err != nil {
		return r, err
	}

	projection := Projection
	r.projection, err = ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Projection.Uniform",
		Contents: AsByteSlice(&projection),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})

	if err != nil {
		return r, fmt.Errorf("create projection uniform: %w", err)
	}

	r.projectionBindGroup, err = ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Projection.BindGroup",
		Layout: r.projectionLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.projection,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return r, fmt.Errorf("create projection bind group: %w", err)
	}

	return r, nil
}

type spritePipelineConfig struct {
	layout *wgpu.PipelineLayout
	format wgpu.TextureFormat
}

func (c spritePipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	return createSpritePipeline(dev, c.layout, c.format)
}

func (r *Renderer) pipeline(format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	return r.pipelines.Get(spritePipelineConfig{layout: r.pipelineLayout, format: format})
}

func createSpritePipeline(dev *wgpu.Device, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for sprites",
		slog.Any("format", format),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Sprite.Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: spriteShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompileFailed, err)
	}

	defer shader.Release()

	blendState := BlendStateSprite

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Sprite.%v", format),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(Vertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(Vertex{}.TexCoord)),
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     &blendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build sprite pipeline: %w", err)
	}

	return pipeline, nil
}

// SpriteLayout is the layout all sprite bind groups must be created with.
func (r *Renderer) SpriteLayout() *wgpu.BindGroupLayout {
	return r.spriteLayout
}

func (r *Renderer) TargetFormat() wgpu.TextureFormat {
	return r.targetFormat
}

// Render clears the target and draws the sprites in order, later sprites
// on top of earlier ones. All work is recorded into one command buffer
// with a single render pass and submitted to the queue.
func (r *Renderer) Render(target RenderTarget, sprites []*Sprite) error {
	pipeline, err := r.pipeline(target.Format)
	if err != nil {
		return err
	}

	encoder, err := r.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Sprite.Render",
	})

	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassSprite",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.View,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: ClearColor.ToWGPU(),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	pass.SetPipeline(pipeline)
	pass.SetVertexBuffer(0, r.vertices, 0, wgpu.WholeSize)
	pass.SetBindGroup(0, r.projectionBindGroup, nil)

	for _, sprite := range sprites {
		pass.SetBindGroup(1, sprite.BindGroup(), nil)
		pass.Draw(uint32(len(quadVertices)), 1, 0, 0)
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	passGuard.Release()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer cmdBuffer.Release()

	r.ctx.Submit(cmdBuffer)

	return nil
}

func (r *Renderer) Release() {
	if r.projectionBindGroup != nil {
		r.projectionBindGroup.Release()
		r.projectionBindGroup = nil
	}

	if r.projection != nil {
		r.projection.Release()
		r.projection = nil
	}

	if r.pipelines != nil {
		r.pipelines.Release()
		r.pipelines = nil
	}

	if r.pipelineLayout != nil {
		r.pipelineLayout.Release()
		r.pipelineLayout = nil
	}

	if r.spriteLayout != nil {
		r.spriteLayout.Release()
		r.spriteLayout = nil
	}

	if r.projectionLayout != nil {
		r.projectionLayout.Release()
		r.projectionLayout = nil
	}

	if r.vertices != nil {
		r.vertices.Release()
		r.vertices = nil
	}
}
