package gpuresize

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpuresize/internal/compute"
)

// Status is the integer result of a resize call. Zero means success; every
// failure maps to a fixed negative code. The values are a wire contract
// shared with existing callers and must never be renumbered.
type Status int

const (
	// StatusOK reports a completed resize with the output buffer filled.
	StatusOK Status = 0

	// StatusNoDevice reports that no GPU device is available.
	StatusNoDevice Status = -1

	// StatusInvalidInput reports that the input byte length does not match
	// the declared dimensions.
	StatusInvalidInput Status = -2

	// StatusInputAllocFailed reports a failed input upload or allocation.
	StatusInputAllocFailed Status = -3

	// StatusOutputAllocFailed reports a failed output allocation.
	StatusOutputAllocFailed Status = -4

	// StatusModuleLoadFailed reports a failed kernel compile or load.
	StatusModuleLoadFailed Status = -5

	// StatusEntryResolveFailed reports a failed kernel entry-point
	// resolution.
	StatusEntryResolveFailed Status = -6

	// -7 is reserved. It has never been produced, but callers may already
	// switch on exact values, so the gap stays.

	// StatusLaunchFailed reports a failed kernel launch.
	StatusLaunchFailed Status = -8

	// StatusCopyBackFailed reports a failed device-to-host result copy.
	StatusCopyBackFailed Status = -9
)

// String returns a short human-readable description of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoDevice:
		return "no device available"
	case StatusInvalidInput:
		return "input length does not match dimensions"
	case StatusInputAllocFailed:
		return "input device allocation failed"
	case StatusOutputAllocFailed:
		return "output device allocation failed"
	case StatusModuleLoadFailed:
		return "kernel module load failed"
	case StatusEntryResolveFailed:
		return "kernel entry resolution failed"
	case StatusLaunchFailed:
		return "kernel launch failed"
	case StatusCopyBackFailed:
		return "device-to-host copy failed"
	default:
		return fmt.Sprintf("unknown status (%d)", int(s))
	}
}

// statusFromError converts a pipeline error into its numeric status. The
// pipeline tags every failure with exactly one sentinel, so the mapping is
// total; an untagged error would be a bug and maps to the launch code as the
// most conservative device-side classification.
func statusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, compute.ErrInvalidInput):
		return StatusInvalidInput
	case errors.Is(err, compute.ErrNoDevice):
		return StatusNoDevice
	case errors.Is(err, compute.ErrUploadFailed):
		return StatusInputAllocFailed
	case errors.Is(err, compute.ErrOutputAlloc):
		return StatusOutputAllocFailed
	case errors.Is(err, compute.ErrModuleLoad):
		return StatusModuleLoadFailed
	case errors.Is(err, compute.ErrEntryResolve):
		return StatusEntryResolveFailed
	case errors.Is(err, compute.ErrCopyBack):
		return StatusCopyBackFailed
	case errors.Is(err, compute.ErrLaunchFailed):
		return StatusLaunchFailed
	default:
		return StatusLaunchFailed
	}
}
