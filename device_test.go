package gpuresize

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if got := handle.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("NullDeviceHandle.SurfaceFormat() = %v, want TextureFormatUndefined", got)
	}
}

// A DeviceHandle alone is not enough for adoption: the processor dispatches
// through the HAL, so a provider without HalDevice/HalQueue is rejected and
// the processor keeps acquiring its own device.
func TestSetDeviceProviderRejectsNullHandle(t *testing.T) {
	p := NewProcessor()
	defer p.Close()

	var handle DeviceHandle = NullDeviceHandle{}
	if err := p.SetDeviceProvider(handle); err == nil {
		t.Fatal("SetDeviceProvider(NullDeviceHandle{}) should fail: no HAL access")
	}
}
