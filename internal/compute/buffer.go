// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout is the maximum time to wait for GPU work to complete.
const fenceTimeout = 5 * time.Second

// waitErr converts a fence wait result into an error: the driver error when
// one occurred, a timeout error when the fence never signaled, nil on
// success. Keeping the two failure cases separate avoids wrapping a nil
// error on a clean timeout.
func waitErr(ok bool, err error) error {
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("GPU timeout after %v", fenceTimeout)
	}
	return nil
}

// deviceBuffer is an owned region of device memory. Every buffer is created
// by exactly one resize call and released unconditionally when that call
// returns, on every exit path. The underlying handle never leaves this
// package.
type deviceBuffer struct {
	buf   hal.Buffer
	size  uint64
	label string
}

// upload allocates a device buffer sized to the data and copies the host
// bytes in. The write is synchronous from the caller's point of view: the
// queue owns the data once WriteBuffer returns.
func (c *DeviceContext) upload(label string, data []byte) (*deviceBuffer, error) {
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	c.queue.WriteBuffer(buf, 0, data)
	return &deviceBuffer{buf: buf, size: uint64(len(data)), label: label}, nil
}

// zeroed allocates a zero-filled device buffer of n bytes.
func (c *DeviceContext) zeroed(label string, n int) (*deviceBuffer, error) {
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(n),
		// CopyDst for the zero fill, CopySrc for the readback copy.
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	c.queue.WriteBuffer(buf, 0, make([]byte, n))
	return &deviceBuffer{buf: buf, size: uint64(n), label: label}, nil
}

// downloadInto copies the buffer's contents into dst, blocking until the
// device finishes. dst must be exactly b.size bytes. The copy goes through a
// transient staging buffer because storage buffers are not host-visible.
func (c *DeviceContext) downloadInto(b *deviceBuffer, dst []byte) error {
	if uint64(len(dst)) != b.size {
		return fmt.Errorf("download %s: dst is %d bytes, buffer is %d", b.label, len(dst), b.size)
	}

	staging, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label + "_staging",
		Size:  b.size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer c.device.DestroyBuffer(staging)

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "resize_readback",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("resize_readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(b.buf, staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: b.size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	fence, err := c.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer c.device.DestroyFence(fence)

	if err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := c.device.Wait(fence, 1, fenceTimeout)
	if err := waitErr(fenceOK, err); err != nil {
		return err
	}

	if err := c.queue.ReadBuffer(staging, 0, dst); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

// release frees the device memory. Safe to call on a nil buffer.
func (b *deviceBuffer) release(c *DeviceContext) {
	if b == nil || b.buf == nil {
		return
	}
	c.device.DestroyBuffer(b.buf)
	b.buf = nil
}
