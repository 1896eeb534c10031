// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"errors"
	"strings"
	"testing"
)

func TestWaitErr(t *testing.T) {
	if err := waitErr(true, nil); err != nil {
		t.Errorf("waitErr(true, nil) = %v, want nil", err)
	}

	driverErr := errors.New("device lost")
	if err := waitErr(false, driverErr); !errors.Is(err, driverErr) {
		t.Errorf("waitErr(false, err) = %v, want wrapped driver error", err)
	}

	// A clean timeout has no underlying error; the message must report the
	// timeout rather than wrapping nil.
	err := waitErr(false, nil)
	if err == nil {
		t.Fatal("waitErr(false, nil) = nil, want timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("timeout error = %q, want a timeout message", err)
	}
	if strings.Contains(err.Error(), "%!w") {
		t.Errorf("timeout error %q wraps a nil error", err)
	}
}
