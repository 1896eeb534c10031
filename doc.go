// Package gpuresize resizes raw RGBA images with bilinear interpolation on
// the GPU.
//
// # Overview
//
// The package exposes three boundary operations, mirroring the host API of
// the original processor:
//
//	msg := gpuresize.Init()          // "GPU processor initialized successfully"
//	n := gpuresize.DeviceCount()     // 1 with a device, 0 without
//	st := gpuresize.ResizeImage(src, 640, 480, 320, 240, dst)
//
// ResizeImage validates the request, uploads the input to device memory,
// dispatches a 16x16-tiled bilinear compute kernel, and copies the result
// back into the caller's buffer. The result is a numeric Status: 0 for
// success, a fixed negative code per failing step. All device failures are
// converted to codes; nothing panics and nothing is fatal.
//
// Buffers are raw RGBA bytes, 4 bytes per pixel, row-major. The output
// buffer is caller-allocated and must be exactly outWidth*outHeight*4 bytes.
//
// # Device handling
//
// The GPU device is acquired lazily on first use and cached for the process
// lifetime. When no device is available every call degrades to
// StatusNoDevice rather than failing the process. Embedders with their own
// device can construct a Processor and share it:
//
//	p := gpuresize.NewProcessor()
//	_ = p.SetDeviceProvider(app)     // gogpu-style provider
//	st := p.ResizeImage(src, w, h, ow, oh, dst)
//
// The package-level functions use one process-wide Processor.
//
// # Logging
//
// gpuresize is silent by default. Call SetLogger to receive structured logs:
//
//	gpuresize.SetLogger(slog.Default())
package gpuresize
