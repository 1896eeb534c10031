// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "errors"

// Pipeline failure sentinels. Every error returned by DeviceContext.Resize
// wraps exactly one of these, so callers can classify the failing step with
// errors.Is without parsing messages. The numeric status contract lives in
// the root package; this layer only tags the step.
var (
	// ErrInvalidInput reports a request whose byte length does not match
	// its declared dimensions, or non-positive dimensions.
	ErrInvalidInput = errors.New("compute: input does not match declared dimensions")

	// ErrNoDevice reports that no GPU device is available. This is the
	// normal degraded outcome, not a fault.
	ErrNoDevice = errors.New("compute: no GPU device available")

	// ErrUploadFailed reports that allocating or populating the input
	// device buffer failed.
	ErrUploadFailed = errors.New("compute: input buffer upload failed")

	// ErrOutputAlloc reports that allocating the output device buffer failed.
	ErrOutputAlloc = errors.New("compute: output buffer allocation failed")

	// ErrModuleLoad reports that compiling or loading the kernel module failed.
	ErrModuleLoad = errors.New("compute: kernel module load failed")

	// ErrEntryResolve reports that resolving the kernel entry point into an
	// executable pipeline failed.
	ErrEntryResolve = errors.New("compute: kernel entry point resolution failed")

	// ErrLaunchFailed reports that encoding, submitting, or completing the
	// kernel dispatch failed.
	ErrLaunchFailed = errors.New("compute: kernel launch failed")

	// ErrCopyBack reports that the device-to-host result copy failed.
	ErrCopyBack = errors.New("compute: device to host copy failed")
)
