// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/bilinear_resize.wgsl
var bilinearShaderWGSL string

// kernelEntryPoint is the entry function name in bilinear_resize.wgsl.
const kernelEntryPoint = "main"

// compiledKernel holds the compiled form of the embedded resize shader: the
// shader module plus the resolved pipeline objects it is launched through.
type compiledKernel struct {
	module     hal.ShaderModule
	bgLayout   hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

// loadKernel returns the compiled kernel for this context, building it on
// first use. The result is cached per source identity for the context's
// lifetime; concurrent first calls are serialized by the once guard. Build
// errors are cached too, so a broken driver fails the same way every call.
func (c *DeviceContext) loadKernel() (*compiledKernel, error) {
	c.kernelOnce.Do(func() {
		c.kernel, c.kernelErr = buildKernel(c.device)
		if c.kernelErr == nil {
			slogger().Debug("compute: resize kernel compiled",
				"shader_bytes", len(bilinearShaderWGSL))
		}
	})
	return c.kernel, c.kernelErr
}

// buildKernel compiles the embedded WGSL to SPIR-V, creates the shader
// module, and resolves the entry point into a compute pipeline. Compile and
// module-creation failures wrap ErrModuleLoad; layout and pipeline failures
// wrap ErrEntryResolve, since they are where the entry point is bound.
func buildKernel(device hal.Device) (*compiledKernel, error) {
	spirvBytes, err := naga.Compile(bilinearShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("%w: compile shader: %w", ErrModuleLoad, err)
	}
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	k := &compiledKernel{}
	k.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "bilinear_resize",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create shader module: %w", ErrModuleLoad, err)
	}

	// Bindings match @group(0) @binding(N) in bilinear_resize.wgsl:
	// 0 = params uniform, 1 = source pixels (read), 2 = output pixels.
	k.bgLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "bilinear_resize_bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		k.destroy(device)
		return nil, fmt.Errorf("%w: create bind group layout: %w", ErrEntryResolve, err)
	}

	k.pipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "bilinear_resize_pl",
		BindGroupLayouts: []hal.BindGroupLayout{k.bgLayout},
	})
	if err != nil {
		k.destroy(device)
		return nil, fmt.Errorf("%w: create pipeline layout: %w", ErrEntryResolve, err)
	}

	k.pipeline, err = device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "bilinear_resize",
		Layout: k.pipeLayout,
		Compute: hal.ComputeState{
			Module:     k.module,
			EntryPoint: kernelEntryPoint,
		},
	})
	if err != nil {
		k.destroy(device)
		return nil, fmt.Errorf("%w: create compute pipeline for %q: %w", ErrEntryResolve, kernelEntryPoint, err)
	}

	return k, nil
}

// destroy releases whatever pipeline objects were created so far.
func (k *compiledKernel) destroy(device hal.Device) {
	if k.pipeline != nil {
		device.DestroyComputePipeline(k.pipeline)
		k.pipeline = nil
	}
	if k.pipeLayout != nil {
		device.DestroyPipelineLayout(k.pipeLayout)
		k.pipeLayout = nil
	}
	if k.bgLayout != nil {
		device.DestroyBindGroupLayout(k.bgLayout)
		k.bgLayout = nil
	}
	if k.module != nil {
		device.DestroyShaderModule(k.module)
		k.module = nil
	}
}
