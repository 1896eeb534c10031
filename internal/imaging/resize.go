package imaging

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/gpuresize/internal/compute"
)

// Filter selects the CPU resampling kernel.
type Filter string

const (
	// FilterBilinear is the four-neighbor blend matching the GPU kernel
	// bit-for-bit, including its truncation behavior.
	FilterBilinear Filter = "bilinear"

	// FilterApproxBilinear is x/image's fast approximate bilinear scaler.
	FilterApproxBilinear Filter = "approxbilinear"

	// FilterCatmullRom is a sharper cubic filter for quality-sensitive
	// downscaling, the default of the original codec wrapper.
	FilterCatmullRom Filter = "catmullrom"
)

// ParseFilter validates a filter name from a flag or request parameter.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterBilinear, FilterApproxBilinear, FilterCatmullRom:
		return Filter(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q (want bilinear, approxbilinear, or catmullrom)", s)
	}
}

// Resize scales raw RGBA bytes on the CPU with the given filter and returns
// the resized pixels.
func Resize(pix []byte, width, height, outWidth, outHeight int, filter Filter) ([]byte, error) {
	if width <= 0 || height <= 0 || outWidth <= 0 || outHeight <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d -> %dx%d", width, height, outWidth, outHeight)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d", len(pix), width*height*4)
	}

	out := make([]byte, outWidth*outHeight*4)
	if filter == FilterBilinear {
		compute.BilinearCPU(pix, width, height, outWidth, outHeight, out)
		return out, nil
	}

	var scaler draw.Scaler
	switch filter {
	case FilterApproxBilinear:
		scaler = draw.ApproxBiLinear
	case FilterCatmullRom:
		scaler = draw.CatmullRom
	default:
		return nil, fmt.Errorf("unknown filter %q", filter)
	}

	src := FromRGBA(pix, width, height)
	dst := FromRGBA(out, outWidth, outHeight)
	scaler.Scale(dst, image.Rect(0, 0, outWidth, outHeight), src, src.Bounds(), draw.Src, nil)
	return out, nil
}
