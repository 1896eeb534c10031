// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// BilinearCPU resizes raw RGBA bytes on the CPU using the same arithmetic as
// the GPU kernel: per-channel 4-neighbor blend in float32, clamp to [0, 255],
// truncate to a byte. It mirrors bilinear_resize.wgsl exactly so that results
// are bit-identical between the two paths, which is what the algorithm tests
// rely on.
//
// input must be inWidth*inHeight*4 bytes; output must be
// outWidth*outHeight*4 bytes. Dimensions must be positive.
func BilinearCPU(input []byte, inWidth, inHeight, outWidth, outHeight int, output []byte) {
	for y := 0; y < outHeight; y++ {
		srcY := float32(y) * float32(inHeight) / float32(outHeight)
		y1 := int(srcY)
		y2 := min(y1+1, inHeight-1)
		dy := srcY - float32(y1)

		for x := 0; x < outWidth; x++ {
			srcX := float32(x) * float32(inWidth) / float32(outWidth)
			x1 := int(srcX)
			x2 := min(x1+1, inWidth-1)
			dx := srcX - float32(x1)

			p11 := (y1*inWidth + x1) * 4
			p21 := (y1*inWidth + x2) * 4
			p12 := (y2*inWidth + x1) * 4
			p22 := (y2*inWidth + x2) * 4
			out := (y*outWidth + x) * 4

			for c := 0; c < 4; c++ {
				top := float32(input[p11+c])*(1-dx) + float32(input[p21+c])*dx
				bot := float32(input[p12+c])*(1-dx) + float32(input[p22+c])*dx
				v := top*(1-dy) + bot*dy
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				output[out+c] = byte(v)
			}
		}
	}
}
