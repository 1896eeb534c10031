package gpuresize

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle is the device-sharing surface a host application hands to
// SetDeviceProvider. It is an alias for gpucontext.DeviceProvider, so any
// provider already written for the gpucontext ecosystem works unchanged.
//
// Adoption additionally requires the HAL convention: the provider must also
// expose HalDevice() any and HalQueue() any returning the underlying
// hal.Device and hal.Queue, since the resize kernel dispatches through the
// HAL directly. A DeviceHandle without HAL access (NullDeviceHandle
// included) is rejected and the processor keeps its own lazily acquired
// device.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device behind it. Embedders
// that plumb a handle unconditionally can pass it where no GPU exists; the
// processor then degrades to StatusNoDevice like any other CPU-only host.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
