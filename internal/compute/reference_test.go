// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

import (
	"bytes"
	"math/rand"
	"testing"
)

// randomRGBA returns w*h*4 deterministic pseudo-random bytes.
func randomRGBA(t *testing.T, w, h int, seed int64) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, w*h*4)
	rng.Read(buf)
	return buf
}

// TestBilinearCPUIdentity checks the round-trip law: resizing to the same
// dimensions reproduces the input exactly, because every sample lands on an
// integer coordinate and the blend weights degenerate to zero.
func TestBilinearCPUIdentity(t *testing.T) {
	dims := []struct{ w, h int }{{1, 1}, {3, 5}, {16, 16}, {33, 7}, {64, 48}}
	for _, d := range dims {
		input := randomRGBA(t, d.w, d.h, int64(d.w*1000+d.h))
		output := make([]byte, len(input))
		BilinearCPU(input, d.w, d.h, d.w, d.h, output)
		if !bytes.Equal(input, output) {
			t.Errorf("identity resize %dx%d changed pixel data", d.w, d.h)
		}
	}
}

// TestBilinearCPUCornerExact checks that output pixel (0,0) equals input
// pixel (0,0) for any scale: the source coordinates are exactly (0,0), so no
// blending occurs.
func TestBilinearCPUCornerExact(t *testing.T) {
	input := randomRGBA(t, 7, 9, 42)
	scales := []struct{ w, h int }{{1, 1}, {7, 9}, {14, 18}, {100, 3}, {3, 100}}
	for _, s := range scales {
		output := make([]byte, s.w*s.h*4)
		BilinearCPU(input, 7, 9, s.w, s.h, output)
		if !bytes.Equal(input[:4], output[:4]) {
			t.Errorf("resize to %dx%d: corner pixel %v, want %v",
				s.w, s.h, output[:4], input[:4])
		}
	}
}

// TestBilinearCPUExtremeUpscale exercises the clamp invariant at an extreme
// ratio. A 1x1 source has only one sample, so every output channel must stay
// within one truncation step of it: float32 lerp of equal endpoints can land
// an ulp low, and the truncation turns that into at most an off-by-one.
func TestBilinearCPUExtremeUpscale(t *testing.T) {
	input := []byte{255, 0, 128, 7}
	const w, h = 1000, 1000
	output := make([]byte, w*h*4)
	BilinearCPU(input, 1, 1, w, h, output)
	for i := 0; i < len(output); i++ {
		want := int(input[i%4])
		if got := int(output[i]); got < want-1 || got > want {
			t.Fatalf("byte %d = %d, want %d or %d", i, got, want-1, want)
		}
	}
}

func TestBilinearCPUDownscale(t *testing.T) {
	// 2x2 -> 1x1 samples only the top-left source pixel (src coords 0,0).
	input := []byte{
		10, 20, 30, 40, 200, 210, 220, 230,
		90, 100, 110, 120, 130, 140, 150, 160,
	}
	output := make([]byte, 4)
	BilinearCPU(input, 2, 2, 1, 1, output)
	want := []byte{10, 20, 30, 40}
	if !bytes.Equal(output, want) {
		t.Errorf("2x2 -> 1x1 = %v, want %v", output, want)
	}
}

func TestBilinearCPUInterpolatesMidpoint(t *testing.T) {
	// 2x1 -> 4x1: output x=2 has src_x = 2*2/4 = 1.0, an exact source pixel;
	// output x=1 has src_x = 0.5, blending both sources equally.
	input := []byte{
		0, 0, 0, 255, 100, 200, 50, 255,
	}
	output := make([]byte, 4*1*4)
	BilinearCPU(input, 2, 1, 4, 1, output)

	if got := output[4:8]; !bytes.Equal(got, []byte{50, 100, 25, 255}) {
		t.Errorf("midpoint pixel = %v, want [50 100 25 255]", got)
	}
	if got := output[8:12]; !bytes.Equal(got, []byte{100, 200, 50, 255}) {
		t.Errorf("x=2 pixel = %v, want exact second source %v", got, input[4:8])
	}
}

// TestBilinearCPUBlendWithinNeighborRange checks that every interpolated
// channel lies between the minimum and maximum of its four source neighbors.
// A convex blend can never overshoot its inputs, so any value outside the
// range means the weights or the clamp went wrong.
func TestBilinearCPUBlendWithinNeighborRange(t *testing.T) {
	const inW, inH = 13, 11
	input := randomRGBA(t, inW, inH, 7)
	scales := []struct{ w, h int }{{5, 3}, {26, 22}, {200, 1}, {1, 200}}
	for _, s := range scales {
		output := make([]byte, s.w*s.h*4)
		BilinearCPU(input, inW, inH, s.w, s.h, output)
		for y := 0; y < s.h; y++ {
			srcY := float32(y) * float32(inH) / float32(s.h)
			y1 := int(srcY)
			y2 := min(y1+1, inH-1)
			for x := 0; x < s.w; x++ {
				srcX := float32(x) * float32(inW) / float32(s.w)
				x1 := int(srcX)
				x2 := min(x1+1, inW-1)
				for c := 0; c < 4; c++ {
					lo, hi := byte(255), byte(0)
					for _, p := range []int{
						(y1*inW + x1) * 4, (y1*inW + x2) * 4,
						(y2*inW + x1) * 4, (y2*inW + x2) * 4,
					} {
						lo = min(lo, input[p+c])
						hi = max(hi, input[p+c])
					}
					got := output[(y*s.w+x)*4+c]
					// Truncation after float32 blending may land one
					// below an exact neighbor value, hence the -1 slack
					// on the lower bound.
					if int(got)+1 < int(lo) || got > hi {
						t.Fatalf("scale %dx%d pixel (%d,%d) ch %d = %d outside neighbor range [%d, %d]",
							s.w, s.h, x, y, c, got, lo, hi)
					}
				}
			}
		}
	}
}
