//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/switchgrid/internal/native"
	"github.com/gogpu/switchgrid/render"
)

//go:embed shaders/panel.wgsl
var panelShaderSource string

// panelVertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	normal   (vec3<f32>) = 12 bytes (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//	id       (vec4<f32>) = 16 bytes (location 3)
//
// Total = 56 bytes per vertex.
const panelVertexStride = 56

// panelUniformSize is view_proj (mat4x4) + eye (vec4) + light (vec4).
const panelUniformSize = 96

// depthRangeFix remaps OpenGL clip depth [-w, w] to the [0, w] range the
// rasterizer expects.
var depthRangeFix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// panelPipeline is the render pipeline writing lit color to target 0 and
// the pick color to target 1.
type panelPipeline struct {
	res native.RenderResources
}

// create compiles the panel shader and builds the pipeline. With precompile
// set the WGSL source is lowered to SPIR-V through naga first.
func (p *panelPipeline) create(device hal.Device, precompile bool) error {
	if panelShaderSource == "" {
		return fmt.Errorf("panel shader source is empty")
	}
	p.res.Device = device

	shader, err := native.CreateShaderModule(device, "panel_shader", panelShaderSource, precompile)
	if err != nil {
		return fmt.Errorf("compile panel shader: %w", err)
	}
	p.res.ShaderModule = shader

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "panel_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.res.Destroy()
		return fmt.Errorf("create uniform layout: %w", err)
	}
	p.res.BindLayouts = []hal.BindGroupLayout{uniformLayout}

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "panel_pipe_layout",
		BindGroupLayouts: p.res.BindLayouts,
	})
	if err != nil {
		p.res.Destroy()
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.res.PipelineLayout = pipeLayout

	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "panel_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    panelVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: attachmentFormat, WriteMask: gputypes.ColorWriteMaskAll},
				{Format: attachmentFormat, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront:      keep,
			StencilBack:       keep,
			StencilReadMask:   0xFF,
			StencilWriteMask:  0,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.res.Destroy()
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.res.Pipeline = pipeline
	return nil
}

func (p *panelPipeline) ready() bool {
	return p.res.Pipeline != nil
}

func (p *panelPipeline) uniformLayout() hal.BindGroupLayout {
	return p.res.BindLayouts[0]
}

func (p *panelPipeline) destroy() {
	p.res.Destroy()
}

// panelVertexLayout returns the vertex buffer layout for the panel pipeline.
func panelVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: panelVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2}, // color
				{Format: gputypes.VertexFormatFloat32x4, Offset: 40, ShaderLocation: 3}, // id
			},
		},
	}
}

// buildPanelVertices packs world-space vertices into dst, reusing its
// capacity.
func buildPanelVertices(dst []byte, verts []render.WorldVertex) []byte {
	n := len(verts) * panelVertexStride
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i := range verts {
		v := &verts[i]
		b := dst[i*panelVertexStride:]
		putFloats(b[0:], v.Position[:]...)
		putFloats(b[12:], v.Normal[:]...)
		putFloats(b[24:], v.Color[:]...)
		putFloats(b[40:], v.ID[:]...)
	}
	return dst
}

// makePanelUniform packs the frame uniforms, applying the depth range fix.
func makePanelUniform(frame *render.Frame) []byte {
	buf := make([]byte, panelUniformSize)
	m := depthRangeFix.Mul4(frame.ViewProj)
	putFloats(buf[0:], m[:]...)
	putFloats(buf[64:], frame.Eye[0], frame.Eye[1], frame.Eye[2], 1)
	putFloats(buf[80:], frame.Light[0], frame.Light[1], frame.Light[2], 1)
	return buf
}

func putFloats(buf []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
