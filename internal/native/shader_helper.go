// Package native holds helpers shared by the wgpu/hal render paths.
package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileShaderToSPIRV compiles WGSL source to SPIR-V words.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CreateShaderModule creates a shader module from WGSL. With precompile set
// the source is lowered to SPIR-V first, for backends that only consume
// SPIR-V.
func CreateShaderModule(device hal.Device, label, wgslSource string, precompile bool) (hal.ShaderModule, error) {
	src := hal.ShaderSource{WGSL: wgslSource}
	if precompile {
		words, err := CompileShaderToSPIRV(wgslSource)
		if err != nil {
			return nil, err
		}
		src = hal.ShaderSource{SPIRV: words}
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: src,
	})
}

// RenderResources groups the objects behind one render pipeline.
type RenderResources struct {
	Device         hal.Device
	ShaderModule   hal.ShaderModule
	PipelineLayout hal.PipelineLayout
	BindLayouts    []hal.BindGroupLayout
	Pipeline       hal.RenderPipeline
}

// Destroy releases the resources in reverse creation order and clears the
// fields, so a second call does nothing.
func (r *RenderResources) Destroy() {
	if r.Device == nil {
		return
	}
	if r.Pipeline != nil {
		r.Device.DestroyRenderPipeline(r.Pipeline)
		r.Pipeline = nil
	}
	if r.PipelineLayout != nil {
		r.Device.DestroyPipelineLayout(r.PipelineLayout)
		r.PipelineLayout = nil
	}
	for _, l := range r.BindLayouts {
		if l != nil {
			r.Device.DestroyBindGroupLayout(l)
		}
	}
	r.BindLayouts = nil
	if r.ShaderModule != nil {
		r.Device.DestroyShaderModule(r.ShaderModule)
		r.ShaderModule = nil
	}
}
