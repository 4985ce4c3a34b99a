package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/folio/cursorfx/fxrt/core"
	"github.com/folio/cursorfx/fxrt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniform matches the WGSL Camera struct in points.wgsl
type CameraUniform struct {
	View       mgl32.Mat4
	Proj       mgl32.Mat4
	Viewport   [2]float32
	PointScale float32
	_          float32
}

// PointPass draws one soft point sprite per pool slot with additive blending
// and no depth test.
type PointPass struct {
	Device          *wgpu.Device
	Shader          *wgpu.ShaderModule
	BindGroupLayout *wgpu.BindGroupLayout
	PipelineLayout  *wgpu.PipelineLayout
	Pipeline        *wgpu.RenderPipeline
	CameraBuffer    *wgpu.Buffer
	BindGroup       *wgpu.BindGroup
	InstanceBuffer  *wgpu.Buffer
	InstanceCap     uint32
	InstanceCount   uint32
	PointScale      float32

	instances []core.PointInstance
}

func NewPointPass(device *wgpu.Device, format wgpu.TextureFormat, capacity int, pointScale float32) (*PointPass, error) {
	p := &PointPass{Device: device, PointScale: pointScale}

	var err error
	p.Shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}

	cameraSize := uint64(unsafe.Sizeof(CameraUniform{}))
	p.BindGroupLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "PointCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraSize,
				},
			},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("point bind group layout: %w", err)
	}

	p.PipelineLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.BindGroupLayout},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("point pipeline layout: %w", err)
	}

	p.Pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "PointPipeline",
		Layout: p.PipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.Shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(core.PointInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.Shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
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
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("point pipeline: %w", err)
	}

	p.CameraBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointCameraBuffer",
		Size:  cameraSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("point camera buffer: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointCameraBG",
		Layout: p.BindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  p.CameraBuffer,
				Size:    cameraSize,
			},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("point bind group: %w", err)
	}

	if capacity < 1 {
		capacity = 1
	}
	p.InstanceCap = uint32(capacity)
	p.InstanceBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointInstanceBuffer",
		Size:  uint64(p.InstanceCap) * uint64(unsafe.Sizeof(core.PointInstance{})),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("point instance buffer: %w", err)
	}

	return p, nil
}

// Update uploads camera matrices and, when the pool is dirty, every slot.
func (p *PointPass) Update(queue *wgpu.Queue, cam *core.PerspectiveCamera, pool *core.Pool, width, height uint32) error {
	uniform := CameraUniform{
		View:       cam.View(),
		Proj:       cam.Projection(),
		Viewport:   [2]float32{float32(width), float32(height)},
		PointScale: p.PointScale,
	}
	err := queue.WriteBuffer(p.CameraBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&uniform)), unsafe.Sizeof(uniform)))
	if err != nil {
		return fmt.Errorf("write camera uniform: %w", err)
	}

	if !pool.PositionsDirty && !pool.SizesDirty {
		return nil
	}

	p.instances = core.PackInstances(p.instances, pool)
	count := uint32(len(p.instances))
	if count > p.InstanceCap {
		count = p.InstanceCap
	}
	p.InstanceCount = count
	if count == 0 {
		return nil
	}

	sizeBytes := uint64(count) * uint64(unsafe.Sizeof(core.PointInstance{}))
	err = queue.WriteBuffer(p.InstanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&p.instances[0])), sizeBytes))
	if err != nil {
		return fmt.Errorf("write point instances: %w", err)
	}
	return nil
}

func (p *PointPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.InstanceBuffer, 0, p.InstanceBuffer.GetSize())
	pass.Draw(6, p.InstanceCount, 0, 0)
}

// Release frees the instance and camera buffers, the bind group and the
// pipeline with its shader module.
func (p *PointPass) Release() {
	if p.InstanceBuffer != nil {
		p.InstanceBuffer.Release()
		p.InstanceBuffer = nil
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.CameraBuffer != nil {
		p.CameraBuffer.Release()
		p.CameraBuffer = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
	if p.PipelineLayout != nil {
		p.PipelineLayout.Release()
		p.PipelineLayout = nil
	}
	if p.BindGroupLayout != nil {
		p.BindGroupLayout.Release()
		p.BindGroupLayout = nil
	}
	if p.Shader != nil {
		p.Shader.Release()
		p.Shader = nil
	}
	p.instances = nil
	p.InstanceCount = 0
}
