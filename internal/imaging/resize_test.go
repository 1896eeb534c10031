package imaging

import (
	"bytes"
	"testing"
)

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"bilinear", "approxbilinear", "catmullrom"} {
		if _, err := ParseFilter(name); err != nil {
			t.Errorf("ParseFilter(%q) = %v", name, err)
		}
	}
	if _, err := ParseFilter("lanczos"); err == nil {
		t.Error("ParseFilter accepted an unknown filter")
	}
}

func TestResizeBilinearIdentity(t *testing.T) {
	const w, h = 12, 7
	pix := gradientRGBA(w, h)
	out, err := Resize(pix, w, h, w, h, FilterBilinear)
	if err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if !bytes.Equal(out, pix) {
		t.Error("identity bilinear resize changed pixel data")
	}
}

func TestResizeDimensions(t *testing.T) {
	pix := gradientRGBA(10, 10)
	for _, filter := range []Filter{FilterBilinear, FilterApproxBilinear, FilterCatmullRom} {
		out, err := Resize(pix, 10, 10, 25, 4, filter)
		if err != nil {
			t.Fatalf("Resize(%s) = %v", filter, err)
		}
		if len(out) != 25*4*4 {
			t.Errorf("Resize(%s) returned %d bytes, want %d", filter, len(out), 25*4*4)
		}
	}
}

func TestResizeRejectsBadInput(t *testing.T) {
	if _, err := Resize(make([]byte, 10), 10, 10, 5, 5, FilterBilinear); err == nil {
		t.Error("Resize accepted a short pixel buffer")
	}
	if _, err := Resize(gradientRGBA(4, 4), 4, 4, 0, 5, FilterBilinear); err == nil {
		t.Error("Resize accepted zero output width")
	}
}
