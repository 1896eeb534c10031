// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import "testing"

func TestPlanLaunch(t *testing.T) {
	tests := []struct {
		name           string
		outW, outH     int
		wantGX, wantGY uint32
	}{
		{"1x1", 1, 1, 1, 1},
		{"exact tile", 16, 16, 1, 1},
		{"one past tile", 17, 16, 2, 1},
		{"typical", 800, 600, 50, 38},
		{"uneven both", 100, 33, 7, 3},
		{"tall strip", 1, 1000, 1, 63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := PlanLaunch(tt.outW, tt.outH)
			if cfg.GridX != tt.wantGX || cfg.GridY != tt.wantGY {
				t.Errorf("PlanLaunch(%d, %d) grid = %dx%d, want %dx%d",
					tt.outW, tt.outH, cfg.GridX, cfg.GridY, tt.wantGX, tt.wantGY)
			}
			if cfg.GridZ != 1 {
				t.Errorf("GridZ = %d, want 1", cfg.GridZ)
			}
			if cfg.BlockX != TileSize || cfg.BlockY != TileSize || cfg.BlockZ != 1 {
				t.Errorf("block = %dx%dx%d, want %dx%dx1",
					cfg.BlockX, cfg.BlockY, cfg.BlockZ, TileSize, TileSize)
			}
			if cfg.SharedMemBytes != 0 {
				t.Errorf("SharedMemBytes = %d, want 0", cfg.SharedMemBytes)
			}
		})
	}
}

// TestPlanLaunchCoverage verifies that the thread extent covers every output
// coordinate exactly once: each pixel (x, y) maps to the single thread with
// the same global id, and the extent never falls short of the output.
func TestPlanLaunchCoverage(t *testing.T) {
	dims := []struct{ w, h int }{
		{1, 1}, {15, 15}, {16, 16}, {17, 17}, {31, 1}, {1, 31},
		{640, 480}, {1000, 1000}, {1920, 1080},
	}
	for _, d := range dims {
		cfg := PlanLaunch(d.w, d.h)
		ex, ey, ez := cfg.ThreadExtent()
		if ex < uint32(d.w) || ey < uint32(d.h) || ez < 1 {
			t.Errorf("PlanLaunch(%d, %d) extent %dx%dx%d does not cover output",
				d.w, d.h, ex, ey, ez)
		}
		// The tail of idle threads per axis is bounded by the tile size.
		if ex >= uint32(d.w)+TileSize || ey >= uint32(d.h)+TileSize {
			t.Errorf("PlanLaunch(%d, %d) extent %dx%d over-dispatches by a full tile",
				d.w, d.h, ex, ey)
		}
	}
}
