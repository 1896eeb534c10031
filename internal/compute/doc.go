// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compute implements the GPU resize pipeline: device acquisition,
// host/device transfer, kernel compilation, and bilinear dispatch over the
// wgpu HAL. The root package wraps it in the numeric status contract.
package compute
