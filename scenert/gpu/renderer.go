package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/gekko3d/snowfall/scenert/shaders"
)

const (
	DepthFormat  = wgpu.TextureFormatDepth24Plus
	ShadowFormat = wgpu.TextureFormatDepth32Float
)

// snowCorner is one corner of the unit billboard quad shared by all flakes.
type snowCorner struct {
	Corner [2]float32 `gpu:"layout" location:"0" format:"float2"`
}

var snowQuad = []snowCorner{
	{[2]float32{-0.5, -0.5}}, {[2]float32{0.5, -0.5}}, {[2]float32{0.5, 0.5}},
	{[2]float32{-0.5, -0.5}}, {[2]float32{0.5, 0.5}}, {[2]float32{-0.5, 0.5}},
}

type gpuBatch struct {
	key         batchKey
	vertexBuf   *wgpu.Buffer
	vertexCount uint32
	uniformBuf  *wgpu.Buffer
	bindGroup   *wgpu.BindGroup
}

func (b *gpuBatch) release() {
	b.bindGroup.Release()
	b.uniformBuf.Release()
	b.vertexBuf.Release()
}

// Renderer draws a core.Scene in three passes: shadow depth, lit scene with snow,
// and the UI overlay on top.
type Renderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	format wgpu.TextureFormat
	width  uint32
	height uint32

	depthTex  *wgpu.Texture
	depthView *wgpu.TextureView

	shadowSize    uint32
	shadowTex     *wgpu.Texture
	shadowView    *wgpu.TextureView
	shadowSampler *wgpu.Sampler

	scenePipeline   *wgpu.RenderPipeline
	shadowPipeline  *wgpu.RenderPipeline
	snowPipeline    *wgpu.RenderPipeline
	overlayPipeline *wgpu.RenderPipeline

	sceneBuf    *wgpu.Buffer
	snowBuf     *wgpu.Buffer
	sceneBG     *wgpu.BindGroup
	shadowBG    *wgpu.BindGroup
	snowSceneBG *wgpu.BindGroup
	snowBG      *wgpu.BindGroup

	batches     []*gpuBatch
	meshVersion uint64

	quadBuf     *wgpu.Buffer
	instanceBuf *wgpu.Buffer
	snowCount   uint32

	overlayTex     *wgpu.Texture
	overlayView    *wgpu.TextureView
	overlaySampler *wgpu.Sampler
	overlayBG      *wgpu.BindGroup
	overlayW       uint32
	overlayH       uint32
	overlayVisible bool
}

func NewRenderer(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, width, height, shadowSize uint32) (*Renderer, error) {
	if shadowSize == 0 {
		shadowSize = core.DefaultShadowConfig().MapSize
	}
	r := &Renderer{
		device:     device,
		queue:      queue,
		format:     format,
		shadowSize: shadowSize,
	}

	var err error
	if r.scenePipeline, err = r.createScenePipeline(); err != nil {
		return nil, err
	}
	if r.shadowPipeline, err = r.createShadowPipeline(); err != nil {
		return nil, err
	}
	if r.snowPipeline, err = r.createSnowPipeline(); err != nil {
		return nil, err
	}
	if r.overlayPipeline, err = r.createOverlayPipeline(); err != nil {
		return nil, err
	}

	if r.sceneBuf, err = r.createUniformBuffer("Scene Uniforms", SceneUniforms{}); err != nil {
		return nil, err
	}
	if r.snowBuf, err = r.createUniformBuffer("Snow Uniforms", SnowUniforms{}); err != nil {
		return nil, err
	}
	if r.quadBuf, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Snow Quad",
		Contents: Bytes(snowQuad),
		Usage:    wgpu.BufferUsageVertex,
	}); err != nil {
		return nil, err
	}

	if err = r.createShadowMap(); err != nil {
		return nil, err
	}
	if r.overlaySampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	}); err != nil {
		return nil, err
	}

	if r.sceneBG, err = r.bindGroup(r.scenePipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: r.sceneBuf, Size: wgpu.WholeSize},
		{Binding: 1, TextureView: r.shadowView},
		{Binding: 2, Sampler: r.shadowSampler},
	}); err != nil {
		return nil, err
	}
	if r.shadowBG, err = r.bindGroup(r.shadowPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: r.sceneBuf, Size: wgpu.WholeSize},
	}); err != nil {
		return nil, err
	}
	if r.snowSceneBG, err = r.bindGroup(r.snowPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: r.sceneBuf, Size: wgpu.WholeSize},
	}); err != nil {
		return nil, err
	}
	if r.snowBG, err = r.bindGroup(r.snowPipeline, 1, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: r.snowBuf, Size: wgpu.WholeSize},
	}); err != nil {
		return nil, err
	}

	if err = r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize recreates the depth target. Zero sizes are ignored.
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 || (width == r.width && height == r.height) {
		return nil
	}
	if r.depthView != nil {
		r.depthView.Release()
		r.depthTex.Release()
	}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("depth view: %w", err)
	}
	r.depthTex, r.depthView = tex, view
	r.width, r.height = width, height
	return nil
}

// SyncScene uploads meshes when the scene's mesh set changed and the snow
// instances the first time they are seen.
func (r *Renderer) SyncScene(scene *core.Scene) error {
	if scene.Version() != r.meshVersion {
		if err := r.uploadMeshes(scene.Meshes); err != nil {
			return err
		}
		r.meshVersion = scene.Version()
	}
	if snow := scene.Snow; snow != nil && !snow.Uploaded {
		if len(snow.Particles) > 0 {
			buf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
				Label:    "Snow Instances",
				Contents: Bytes(snow.Particles),
				Usage:    wgpu.BufferUsageVertex,
			})
			if err != nil {
				return fmt.Errorf("snow instances: %w", err)
			}
			if r.instanceBuf != nil {
				r.instanceBuf.Release()
			}
			r.instanceBuf = buf
		}
		r.snowCount = uint32(len(snow.Particles))
		snow.Uploaded = true
	}
	return nil
}

func (r *Renderer) uploadMeshes(meshes []*core.Mesh) error {
	for _, b := range r.batches {
		b.release()
	}
	r.batches = nil

	for _, mb := range groupMeshes(meshes) {
		vbuf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "Mesh Vertices",
			Contents: Bytes(mb.vertices),
			Usage:    wgpu.BufferUsageVertex,
		})
		if err != nil {
			return fmt.Errorf("mesh vertices: %w", err)
		}
		ubuf, err := r.createUniformBuffer("Batch Uniforms", BatchUniforms{Flags: [4]float32{boolf(mb.key.receive)}})
		if err != nil {
			vbuf.Release()
			return err
		}
		bg, err := r.bindGroup(r.scenePipeline, 1, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: ubuf, Size: wgpu.WholeSize},
		})
		if err != nil {
			ubuf.Release()
			vbuf.Release()
			return err
		}
		r.batches = append(r.batches, &gpuBatch{
			key:         mb.key,
			vertexBuf:   vbuf,
			vertexCount: uint32(len(mb.vertices)),
			uniformBuf:  ubuf,
			bindGroup:   bg,
		})
	}
	return nil
}

// WriteFrame updates the per-frame uniforms.
func (r *Renderer) WriteFrame(scene *core.Scene, cam *core.Camera) error {
	if err := r.queue.WriteBuffer(r.sceneBuf, 0, Bytes(PackScene(scene, cam))); err != nil {
		return err
	}
	if scene.Snow != nil {
		return r.queue.WriteBuffer(r.snowBuf, 0, Bytes(PackSnow(scene.Snow.Uniforms)))
	}
	return nil
}

// UploadOverlay copies the dirty part of the overlay raster. A nil image hides the
// overlay. The whole image goes up when the texture is recreated.
func (r *Renderer) UploadOverlay(img *image.RGBA, dirty image.Rectangle) error {
	if img == nil {
		r.overlayVisible = false
		return nil
	}
	w, h := uint32(img.Bounds().Dx()), uint32(img.Bounds().Dy())
	if w == 0 || h == 0 {
		r.overlayVisible = false
		return nil
	}
	recreated := false
	if r.overlayTex == nil || w != r.overlayW || h != r.overlayH {
		if err := r.createOverlayTexture(w, h); err != nil {
			return err
		}
		recreated = true
	}
	region := OverlayRegion(img.Bounds(), dirty, recreated)
	if region.Empty() {
		return nil
	}
	dst := r.overlayTex.AsImageCopy()
	dst.Origin = wgpu.Origin3D{X: uint32(region.Min.X - img.Rect.Min.X), Y: uint32(region.Min.Y - img.Rect.Min.Y)}
	extent := wgpu.Extent3D{Width: uint32(region.Dx()), Height: uint32(region.Dy()), DepthOrArrayLayers: 1}
	err := r.queue.WriteTexture(
		dst,
		img.Pix[img.PixOffset(region.Min.X, region.Min.Y):],
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: uint32(region.Dy()),
		},
		&extent,
	)
	if err != nil {
		return err
	}
	r.overlayVisible = true
	return nil
}

// OverlayRegion is the part of an overlay image to upload: all of it for a fresh
// texture, otherwise the dirty rectangle clipped to the image.
func OverlayRegion(bounds, dirty image.Rectangle, recreated bool) image.Rectangle {
	if recreated {
		return bounds
	}
	return dirty.Intersect(bounds)
}

// Render records and submits one frame into target.
func (r *Renderer) Render(target *wgpu.TextureView, scene *core.Scene) error {
	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	if scene.Sun.CastShadow {
		sPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label: "Shadow Pass",
			DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
				View:            r.shadowView,
				DepthLoadOp:     wgpu.LoadOpClear,
				DepthStoreOp:    wgpu.StoreOpStore,
				DepthClearValue: 1,
			},
		})
		sPass.SetPipeline(r.shadowPipeline)
		sPass.SetBindGroup(0, r.shadowBG, nil)
		for _, b := range r.batches {
			if !b.key.cast {
				continue
			}
			sPass.SetVertexBuffer(0, b.vertexBuf, 0, b.vertexBuf.GetSize())
			sPass.Draw(b.vertexCount, 1, 0, 0)
		}
		if err = sPass.End(); err != nil {
			return fmt.Errorf("shadow pass: %w", err)
		}
	}

	bg := scene.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Scene Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})

	pass.SetPipeline(r.scenePipeline)
	pass.SetBindGroup(0, r.sceneBG, nil)
	for _, b := range r.batches {
		pass.SetBindGroup(1, b.bindGroup, nil)
		pass.SetVertexBuffer(0, b.vertexBuf, 0, b.vertexBuf.GetSize())
		pass.Draw(b.vertexCount, 1, 0, 0)
	}

	// Snow is transparent: drawn after opaque geometry, never culled.
	if r.instanceBuf != nil && r.snowCount > 0 {
		pass.SetPipeline(r.snowPipeline)
		pass.SetBindGroup(0, r.snowSceneBG, nil)
		pass.SetBindGroup(1, r.snowBG, nil)
		pass.SetVertexBuffer(0, r.quadBuf, 0, r.quadBuf.GetSize())
		pass.SetVertexBuffer(1, r.instanceBuf, 0, r.instanceBuf.GetSize())
		pass.Draw(uint32(len(snowQuad)), r.snowCount, 0, 0)
	}

	if r.overlayVisible && r.overlayBG != nil {
		pass.SetPipeline(r.overlayPipeline)
		pass.SetBindGroup(0, r.overlayBG, nil)
		pass.Draw(3, 1, 0, 0)
	}

	if err = pass.End(); err != nil {
		return fmt.Errorf("scene pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()
	r.queue.Submit(cmd)
	return nil
}

// OverlayVisible reports whether the last UploadOverlay left something to draw.
func (r *Renderer) OverlayVisible() bool {
	return r.overlayVisible
}

func (r *Renderer) Release() {
	for _, b := range r.batches {
		b.release()
	}
	r.batches = nil
	if r.instanceBuf != nil {
		r.instanceBuf.Release()
	}
	if r.overlayTex != nil {
		r.overlayBG.Release()
		r.overlayView.Release()
		r.overlayTex.Release()
	}
	if r.depthView != nil {
		r.depthView.Release()
		r.depthTex.Release()
	}
	r.snowBG.Release()
	r.snowSceneBG.Release()
	r.shadowBG.Release()
	r.sceneBG.Release()
	r.overlaySampler.Release()
	r.shadowSampler.Release()
	r.shadowView.Release()
	r.shadowTex.Release()
	r.quadBuf.Release()
	r.snowBuf.Release()
	r.sceneBuf.Release()
	r.overlayPipeline.Release()
	r.snowPipeline.Release()
	r.shadowPipeline.Release()
	r.scenePipeline.Release()
}

func (r *Renderer) createUniformBuffer(name string, data any) (*wgpu.Buffer, error) {
	buf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: Bytes(data),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return buf, nil
}

func (r *Renderer) bindGroup(pipeline *wgpu.RenderPipeline, group uint32, entries []wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	layout := pipeline.GetBindGroupLayout(group)
	defer layout.Release()
	return r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout,
		Entries: entries,
	})
}

func (r *Renderer) createShadowMap() error {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Shadow Map",
		Size:          wgpu.Extent3D{Width: r.shadowSize, Height: r.shadowSize, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        ShadowFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("shadow map: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("shadow view: %w", err)
	}
	sampler, err := r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("shadow sampler: %w", err)
	}
	r.shadowTex, r.shadowView, r.shadowSampler = tex, view, sampler
	return nil
}

func (r *Renderer) createOverlayTexture(w, h uint32) error {
	if r.overlayTex != nil {
		r.overlayBG.Release()
		r.overlayView.Release()
		r.overlayTex.Release()
		r.overlayTex = nil
	}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Overlay",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("overlay texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("overlay view: %w", err)
	}
	bg, err := r.bindGroup(r.overlayPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: view},
		{Binding: 1, Sampler: r.overlaySampler},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("overlay bind group: %w", err)
	}
	r.overlayTex, r.overlayView, r.overlayBG = tex, view, bg
	r.overlayW, r.overlayH = w, h
	return nil
}

func (r *Renderer) shaderModule(name, code string) (*wgpu.ShaderModule, error) {
	return r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
}

var alphaBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

// premultipliedBlend composites image.RGBA rasters, which store premultiplied alpha.
var premultipliedBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

func depthState(format wgpu.TextureFormat, write bool, compare wgpu.CompareFunction) *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: write,
		DepthCompare:      compare,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

func (r *Renderer) createScenePipeline() (*wgpu.RenderPipeline, error) {
	shader, err := r.shaderModule("Scene Shader", shaders.SceneWGSL)
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Scene Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout(core.Vertex{}, wgpu.VertexStepModeVertex)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: depthState(DepthFormat, true, wgpu.CompareFunctionLess),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (r *Renderer) createShadowPipeline() (*wgpu.RenderPipeline, error) {
	shader, err := r.shaderModule("Shadow Shader", shaders.ShadowWGSL)
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Shadow Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout(core.Vertex{}, wgpu.VertexStepModeVertex)},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthState(ShadowFormat, true, wgpu.CompareFunctionLessEqual),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (r *Renderer) createSnowPipeline() (*wgpu.RenderPipeline, error) {
	shader, err := r.shaderModule("Snow Shader", shaders.SnowWGSL)
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Snow Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				VertexLayout(snowCorner{}, wgpu.VertexStepModeVertex),
				VertexLayout(core.ParticleRecord{}, wgpu.VertexStepModeInstance),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.format,
				Blend:     alphaBlend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthState(DepthFormat, false, wgpu.CompareFunctionLess),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (r *Renderer) createOverlayPipeline() (*wgpu.RenderPipeline, error) {
	shader, err := r.shaderModule("Overlay Shader", shaders.OverlayWGSL)
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Overlay Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.format,
				Blend:     premultipliedBlend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		DepthStencil: depthState(DepthFormat, false, wgpu.CompareFunctionAlways),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}
