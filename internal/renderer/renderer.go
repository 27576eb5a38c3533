package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/rajveermalviya/go-webgpu/wgpu"
	"go.uber.org/zap"

	"imageviewer/internal/camera"
)

var errNoSwapChain = errors.New("no swap chain")

// Vertex represents a vertex with position and texture coordinates
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// Texture holds GPU resources for one uploaded raster
type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// QuadInfo matches the shader uniform
type QuadInfo struct {
	OffsetX float32
	OffsetY float32
	ScaleX  float32
	ScaleY  float32
}

type drawItem struct {
	tex  *Texture
	quad QuadInfo
}

// Renderer draws rasters as textured quads. Textures are cached per
// *image.RGBA until Forget is called.
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat
	pipeline        *wgpu.RenderPipeline
	sampler         *wgpu.Sampler
	bindGroupLayout *wgpu.BindGroupLayout
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer

	textures map[*image.RGBA]*Texture
	pending  []drawItem

	log *zap.Logger

	width  uint32
	height uint32
}

// NewRenderer creates a new WebGPU renderer
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32, log *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		adapter:  adapter,
		device:   device,
		queue:    queue,
		surface:  surface,
		width:    width,
		height:   height,
		textures: make(map[*image.RGBA]*Texture),
		log:      log,
	}

	if err := r.init(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init() error {
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)

	var err error
	r.swapChain, err = r.createSwapChain(r.width, r.height)
	if err != nil {
		return fmt.Errorf("swap chain creation failed: %w", err)
	}

	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "quad_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: QuadShader},
	})
	if err != nil {
		return fmt.Errorf("shader creation failed: %w", err)
	}
	defer shader.Release()

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:   wgpu.AddressMode_ClampToEdge,
		AddressModeV:   wgpu.AddressMode_ClampToEdge,
		AddressModeW:   wgpu.AddressMode_ClampToEdge,
		MagFilter:      wgpu.FilterMode_Linear,
		MinFilter:      wgpu.FilterMode_Linear,
		MipmapFilter:   wgpu.MipmapFilterMode_Nearest,
		MaxAnisotrophy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler creation failed: %w", err)
	}

	r.bindGroupLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "quad_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Fragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingType_Filtering},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStage_Fragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleType_Float,
					ViewDimension: wgpu.TextureViewDimension_2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group layout creation failed: %w", err)
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "quad_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout creation failed: %w", err)
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
				StepMode:    wgpu.VertexStepMode_Vertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormat_Float32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormat_Float32x2, Offset: 8, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_PremultipliedAlphaBlending,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline creation failed: %w", err)
	}

	// Unit quad (0-1 range), y down
	vertices := []Vertex{
		{Position: [2]float32{0, 0}, TexCoord: [2]float32{0, 0}},
		{Position: [2]float32{1, 0}, TexCoord: [2]float32{1, 0}},
		{Position: [2]float32{1, 1}, TexCoord: [2]float32{1, 1}},
		{Position: [2]float32{0, 1}, TexCoord: [2]float32{0, 1}},
	}
	r.vertexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "vertex_buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("vertex buffer creation failed: %w", err)
	}

	indices := []uint16{0, 1, 2, 0, 2, 3}
	r.indexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "index_buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsage_Index,
	})
	if err != nil {
		return fmt.Errorf("index buffer creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createSwapChain(width, height uint32) (*wgpu.SwapChain, error) {
	return r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
}

func (r *Renderer) createTexture(img *image.RGBA) (*Texture, error) {
	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "image_texture",
		Size: wgpu.Extent3D{
			Width:              uint32(img.Bounds().Dx()),
			Height:             uint32(img.Bounds().Dy()),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_RGBA8UnormSrgb,
		Usage:         wgpu.TextureUsage_TextureBinding | wgpu.TextureUsage_CopyDst,
	})
	if err != nil {
		return nil, err
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspect_All},
		img.Pix,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(img.Stride), RowsPerImage: uint32(img.Bounds().Dy())},
		&wgpu.Extent3D{Width: uint32(img.Bounds().Dx()), Height: uint32(img.Bounds().Dy()), DepthOrArrayLayers: 1},
	)

	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpu.TextureFormat_RGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimension_2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspect_All,
	})
	if err != nil {
		texture.Release()
		return nil, err
	}

	return &Texture{Texture: texture, View: view}, nil
}

// texture returns the cached texture for img, uploading it on first use
func (r *Renderer) texture(img *image.RGBA) (*Texture, error) {
	if tex, ok := r.textures[img]; ok {
		return tex, nil
	}
	tex, err := r.createTexture(img)
	if err != nil {
		return nil, err
	}
	r.textures[img] = tex
	return tex, nil
}

// Clear starts a new frame
func (r *Renderer) Clear() {
	r.pending = r.pending[:0]
}

// DrawImage queues img at world position (x, y) as seen through view
func (r *Renderer) DrawImage(img *image.RGBA, x, y float64, view *camera.View) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	tex, err := r.texture(img)
	if err != nil {
		r.log.Warn("Texture upload failed", zap.Error(err))
		return
	}
	ox, oy, sx, sy := view.QuadTransform(x, y, float64(b.Dx()), float64(b.Dy()))
	r.pending = append(r.pending, drawItem{
		tex:  tex,
		quad: QuadInfo{OffsetX: ox, OffsetY: oy, ScaleX: sx, ScaleY: sy},
	})
}

// Forget releases the texture uploaded for img
func (r *Renderer) Forget(img *image.RGBA) {
	tex, ok := r.textures[img]
	if !ok {
		return
	}
	tex.View.Release()
	tex.Texture.Release()
	delete(r.textures, img)
}

// Present encodes the queued draws over a black background and shows the frame
func (r *Renderer) Present() error {
	if r.swapChain == nil {
		return errNoSwapChain
	}
	view, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})

	pass.SetPipeline(r.pipeline)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormat_Uint16, 0, wgpu.WholeSize)

	var buffers []*wgpu.Buffer
	var groups []*wgpu.BindGroup
	defer func() {
		for _, g := range groups {
			g.Release()
		}
		for _, b := range buffers {
			b.Release()
		}
	}()

	for _, item := range r.pending {
		uniformBuffer, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "quad_uniform",
			Contents: wgpu.ToBytes([]QuadInfo{item.quad}),
			Usage:    wgpu.BufferUsage_Uniform,
		})
		if err != nil {
			pass.End()
			return fmt.Errorf("uniform buffer creation failed: %w", err)
		}
		buffers = append(buffers, uniformBuffer)

		bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "quad_bind_group",
			Layout: r.bindGroupLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: uniformBuffer, Size: uint64(unsafe.Sizeof(QuadInfo{}))},
				{Binding: 1, Sampler: r.sampler},
				{Binding: 2, TextureView: item.tex.View},
			},
		})
		if err != nil {
			pass.End()
			return fmt.Errorf("bind group creation failed: %w", err)
		}
		groups = append(groups, bindGroup)

		pass.SetBindGroup(0, bindGroup, nil)
		pass.DrawIndexed(6, 1, 0, 0, 0)
	}

	pass.End()

	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()

	return nil
}

// Resize recreates the swap chain for the new surface size
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = uint32(width)
	r.height = uint32(height)

	if r.swapChain != nil {
		r.swapChain.Release()
	}

	var err error
	r.swapChain, err = r.createSwapChain(r.width, r.height)
	if err != nil {
		r.swapChain = nil
		r.log.Error("Failed to recreate swap chain", zap.Error(err))
	}
}

// Release frees all GPU resources
func (r *Renderer) Release() {
	for img := range r.textures {
		r.Forget(img)
	}

	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
	}
	r.bindGroupLayout.Release()
	r.pipeline.Release()
	r.sampler.Release()
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
