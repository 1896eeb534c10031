// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// TileSize is the workgroup edge length used by the resize kernel.
// It matches @workgroup_size(16, 16, 1) in bilinear_resize.wgsl.
const TileSize = 16

// LaunchConfig describes the dispatch geometry for one kernel launch:
// the workgroup grid, the threads per workgroup, and the workgroup-shared
// memory requirement (always zero for the resize kernel, which has no
// inter-thread communication).
type LaunchConfig struct {
	GridX, GridY, GridZ    uint32
	BlockX, BlockY, BlockZ uint32
	SharedMemBytes         uint32
}

// PlanLaunch computes the launch geometry covering every output pixel.
// Ceiling division guarantees full coverage; at most TileSize-1 threads per
// axis fall outside the output and exit at the kernel's bounds check.
func PlanLaunch(outWidth, outHeight int) LaunchConfig {
	return LaunchConfig{
		GridX:  (uint32(outWidth) + TileSize - 1) / TileSize,
		GridY:  (uint32(outHeight) + TileSize - 1) / TileSize,
		GridZ:  1,
		BlockX: TileSize,
		BlockY: TileSize,
		BlockZ: 1,
	}
}

// ThreadExtent returns the total thread count per axis (grid x block).
// Every output coordinate maps to exactly one thread below this extent.
func (c LaunchConfig) ThreadExtent() (x, y, z uint32) {
	return c.GridX * c.BlockX, c.GridY * c.BlockY, c.GridZ * c.BlockZ
}
