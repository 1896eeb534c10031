// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DeviceContext owns the GPU device used by the resize pipeline. Acquisition
// is lazy and happens at most once: the first operation that needs the device
// attempts initialization, and the outcome (present or absent) is cached for
// the context's lifetime. Absence is a normal degraded state, never an error
// that propagates on its own; callers see ErrNoDevice from operations instead.
//
// A DeviceContext is safe for concurrent use. The device and queue are
// read-only after acquisition; per-call resources are never shared.
type DeviceContext struct {
	acquireOnce sync.Once

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
	ready       bool
	external    bool // shared device from a provider, not destroyed on Close

	kernelOnce sync.Once
	kernel     *compiledKernel
	kernelErr  error
}

// NewDeviceContext creates a context whose device is acquired on first use.
func NewDeviceContext() *DeviceContext {
	return &DeviceContext{}
}

// NewDisabledContext creates a context that behaves as if device acquisition
// already failed. Used by tests and CPU-only embedders to exercise the
// degraded paths deterministically.
func NewDisabledContext() *DeviceContext {
	c := &DeviceContext{}
	c.acquireOnce.Do(func() {})
	return c
}

// acquire performs the one-time device initialization and reports whether a
// device is available. Safe to call from any goroutine at any time.
func (c *DeviceContext) acquire() bool {
	c.acquireOnce.Do(func() {
		if err := c.initVulkan(); err != nil {
			slogger().Info("compute: no GPU device, operations will degrade", "reason", err)
			return
		}
		slogger().Info("compute: GPU device acquired", "adapter", c.adapterName)
	})
	return c.ready
}

// initVulkan opens a standalone Vulkan device, preferring discrete over
// integrated adapters.
func (c *DeviceContext) initVulkan() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("open device: %w", err)
	}

	c.instance = instance
	c.device = openDev.Device
	c.queue = openDev.Queue
	c.adapterName = selected.Info.Name
	c.ready = true
	return nil
}

// Available reports whether a GPU device is present, triggering acquisition
// if it has not happened yet.
func (c *DeviceContext) Available() bool { return c.acquire() }

// AdapterName returns the selected adapter's name, or "" when no device is
// available.
func (c *DeviceContext) AdapterName() string {
	c.acquire()
	return c.adapterName
}

// SetProvider switches the context to a shared GPU device from an external
// provider before first use. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue, the device sharing
// convention of the gogpu ecosystem.
//
// SetProvider must be called before the first resize; once the context has
// acquired its own device the shared one is rejected.
func (c *DeviceContext) SetProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("compute: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("compute: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("compute: provider HalQueue is not hal.Queue")
	}

	adopted := false
	c.acquireOnce.Do(func() {
		c.device = device
		c.queue = queue
		c.adapterName = "shared"
		c.ready = true
		c.external = true
		adopted = true
	})
	if !adopted {
		return fmt.Errorf("compute: device already acquired, cannot switch provider")
	}
	slogger().Debug("compute: using shared GPU device")
	return nil
}

// Close releases the device and kernel resources. Contexts using a shared
// device release only their own kernel objects. The process-wide context held
// by the root package is never closed; Close exists for tests and embedders
// that create short-lived contexts.
func (c *DeviceContext) Close() {
	if c.kernel != nil {
		c.kernel.destroy(c.device)
		c.kernel = nil
	}
	if !c.external {
		if c.device != nil {
			c.device.Destroy()
		}
		if c.instance != nil {
			c.instance.Destroy()
		}
	}
	c.device = nil
	c.queue = nil
	c.instance = nil
	c.ready = false
}
