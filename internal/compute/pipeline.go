// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// pipeline.go orchestrates one resize call: validate, acquire the device,
// upload, compile-or-reuse the kernel, dispatch, and copy the result back.
// The pipeline is linear with early exit on the first failure; every step's
// failure wraps a distinct sentinel from errors.go, and all device resources
// created along the way are released on every exit path.

package compute

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// bytesPerPixel is the RGBA channel count at the pipeline boundary.
const bytesPerPixel = 4

// resizeParams maps to the Params uniform in bilinear_resize.wgsl:
// four consecutive i32 fields.
type resizeParams struct {
	inWidth   int32
	inHeight  int32
	outWidth  int32
	outHeight int32
}

func (p resizeParams) toBytes() []byte {
	buf := make([]byte, 16)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], uint32(p.inWidth))
	le.PutUint32(buf[4:8], uint32(p.inHeight))
	le.PutUint32(buf[8:12], uint32(p.outWidth))
	le.PutUint32(buf[12:16], uint32(p.outHeight))
	return buf
}

// callResources tracks per-call GPU resources for cleanup.
type callResources struct {
	ctx     *DeviceContext
	buffers []*deviceBuffer
	bg      hal.BindGroup
	cmdBuf  hal.CommandBuffer
	fence   hal.Fence
}

func (r *callResources) track(b *deviceBuffer) *deviceBuffer {
	r.buffers = append(r.buffers, b)
	return b
}

// cleanup releases everything the call created, in reverse dependency order.
func (r *callResources) cleanup() {
	if r.fence != nil {
		r.ctx.device.DestroyFence(r.fence)
	}
	if r.cmdBuf != nil {
		r.ctx.device.FreeCommandBuffer(r.cmdBuf)
	}
	if r.bg != nil {
		r.ctx.device.DestroyBindGroup(r.bg)
	}
	for _, b := range r.buffers {
		b.release(r.ctx)
	}
}

// Resize runs the full pipeline and writes outWidth*outHeight*4 resized RGBA
// bytes into output. A nil return means output holds the complete result;
// on error output's contents are unspecified except for the validation and
// no-device cases, which return before touching it.
func (c *DeviceContext) Resize(input []byte, inWidth, inHeight, outWidth, outHeight int, output []byte) error {
	if inWidth <= 0 || inHeight <= 0 || outWidth <= 0 || outHeight <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d -> %dx%d", ErrInvalidInput,
			inWidth, inHeight, outWidth, outHeight)
	}
	if len(input) != inWidth*inHeight*bytesPerPixel {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrInvalidInput,
			len(input), inWidth*inHeight*bytesPerPixel, inWidth, inHeight)
	}
	outSize := outWidth * outHeight * bytesPerPixel
	if len(output) != outSize {
		return fmt.Errorf("%w: output is %d bytes, want %d for %dx%d", ErrInvalidInput,
			len(output), outSize, outWidth, outHeight)
	}

	if !c.acquire() {
		return ErrNoDevice
	}

	res := &callResources{ctx: c}
	defer res.cleanup()

	inBuf, err := c.upload("resize_input", input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	res.track(inBuf)

	outBuf, err := c.zeroed("resize_output", outSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputAlloc, err)
	}
	res.track(outBuf)

	kernel, err := c.loadKernel()
	if err != nil {
		return err // already wraps ErrModuleLoad or ErrEntryResolve
	}

	params := resizeParams{
		inWidth:   int32(inWidth),
		inHeight:  int32(inHeight),
		outWidth:  int32(outWidth),
		outHeight: int32(outHeight),
	}
	plan := PlanLaunch(outWidth, outHeight)

	if err := c.dispatch(res, kernel, params, plan, inBuf, outBuf); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}

	if err := c.downloadInto(outBuf, output); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyBack, err)
	}

	slogger().Debug("compute: resize complete",
		"in", fmt.Sprintf("%dx%d", inWidth, inHeight),
		"out", fmt.Sprintf("%dx%d", outWidth, outHeight),
		"workgroups", fmt.Sprintf("%dx%dx%d", plan.GridX, plan.GridY, plan.GridZ))
	return nil
}

// dispatch encodes and submits the kernel launch, blocking until the device
// signals completion. The result copy-back is a separate submission so that
// launch failures and copy failures stay distinguishable.
func (c *DeviceContext) dispatch(
	res *callResources,
	kernel *compiledKernel,
	params resizeParams,
	plan LaunchConfig,
	inBuf, outBuf *deviceBuffer,
) error {
	paramsBuf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "resize_params",
		Size:  uint64(len(params.toBytes())),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	res.track(&deviceBuffer{buf: paramsBuf, size: 16, label: "resize_params"})
	c.queue.WriteBuffer(paramsBuf, 0, params.toBytes())

	entry := func(binding uint32, buf hal.Buffer) gputypes.BindGroupEntry {
		return gputypes.BindGroupEntry{
			Binding: binding,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   0, // 0 = entire buffer
			},
		}
	}
	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "resize_bg",
		Layout: kernel.bgLayout,
		Entries: []gputypes.BindGroupEntry{
			entry(0, paramsBuf),
			entry(1, inBuf.buf),
			entry(2, outBuf.buf),
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	res.bg = bg

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "resize_dispatch",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("resize_dispatch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "bilinear_resize"})
	pass.SetPipeline(kernel.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(plan.GridX, plan.GridY, plan.GridZ)
	pass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	res.cmdBuf = cmdBuf

	fence, err := c.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	res.fence = fence

	if err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := c.device.Wait(fence, 1, fenceTimeout)
	return waitErr(fenceOK, err)
}
