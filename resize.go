package gpuresize

import (
	"sync"

	"github.com/gogpu/gpuresize/internal/compute"
)

// Init status strings. The "no GPU" variant is part of the external
// contract; callers match on it to detect degraded mode.
const (
	initOKMessage    = "GPU processor initialized successfully"
	initNoGPUMessage = "GPU processor initialized (no GPU available)"
)

// Processor runs GPU-accelerated bilinear resizes against one device
// context. The context is acquired lazily on first use and reused for the
// processor's lifetime; if acquisition fails, every resize degrades to
// StatusNoDevice instead of erroring.
//
// A Processor is safe for concurrent use. Concurrent resizes are
// correctness-safe but share one device queue, so they serialize at the
// driver rather than in this layer.
type Processor struct {
	ctx *compute.DeviceContext
}

// NewProcessor creates a processor with its own lazily acquired device.
func NewProcessor() *Processor {
	return &Processor{ctx: compute.NewDeviceContext()}
}

// newProcessorWithContext is the test seam for injecting a context.
func newProcessorWithContext(ctx *compute.DeviceContext) *Processor {
	return &Processor{ctx: ctx}
}

// Init forces device acquisition and returns a human-readable status
// string. It never fails; absence of a GPU is reported in the string.
func (p *Processor) Init() string {
	if p.ctx.Available() {
		return initOKMessage
	}
	return initNoGPUMessage
}

// DeviceCount returns 1 if a device is present, 0 otherwise.
func (p *Processor) DeviceCount() int {
	if p.ctx.Available() {
		return 1
	}
	return 0
}

// AdapterName returns the selected GPU adapter's name, or "" without a
// device.
func (p *Processor) AdapterName() string { return p.ctx.AdapterName() }

// ResizeImage resizes raw RGBA input bytes into the caller-allocated output
// buffer, which must be exactly outWidth*outHeight*4 bytes long. It returns
// StatusOK on success or one of the negative Status codes; the output
// buffer's contents are unspecified on any non-zero status.
func (p *Processor) ResizeImage(input []byte, inWidth, inHeight, outWidth, outHeight int, output []byte) Status {
	err := p.ctx.Resize(input, inWidth, inHeight, outWidth, outHeight, output)
	status := statusFromError(err)
	if status != StatusOK && status != StatusNoDevice && status != StatusInvalidInput {
		Logger().Warn("resize failed", "status", status, "err", err)
	}
	return status
}

// SetDeviceProvider switches the processor to a shared GPU device from an
// external provider (e.g. gogpu) instead of creating a standalone one. The
// provider must expose HalDevice() any and HalQueue() any. Must be called
// before the first resize.
func (p *Processor) SetDeviceProvider(provider any) error {
	return p.ctx.SetProvider(provider)
}

// Close releases the processor's device resources. Only needed by embedders
// creating short-lived processors; the package-level default is never closed.
func (p *Processor) Close() { p.ctx.Close() }

// The package-level entry points mirror the original host boundary: one
// process-wide processor, created on first use.
var (
	defaultOnce sync.Once
	defaultProc *Processor
)

func defaultProcessor() *Processor {
	defaultOnce.Do(func() {
		defaultProc = NewProcessor()
	})
	return defaultProc
}

// Init initializes the package-level processor and returns its status
// string. Never fails.
func Init() string { return defaultProcessor().Init() }

// DeviceCount returns 1 if the package-level processor has a device.
func DeviceCount() int { return defaultProcessor().DeviceCount() }

// ResizeImage resizes via the package-level processor. See
// Processor.ResizeImage for the contract.
func ResizeImage(input []byte, inWidth, inHeight, outWidth, outHeight int, output []byte) Status {
	return defaultProcessor().ResizeImage(input, inWidth, inHeight, outWidth, outHeight, output)
}

// SetDeviceProvider configures the package-level processor to use a shared
// GPU device. Must be called before the first package-level resize.
func SetDeviceProvider(provider any) error {
	return defaultProcessor().SetDeviceProvider(provider)
}
