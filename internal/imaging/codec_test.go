package imaging

import (
	"bytes"
	"testing"
)

// gradientRGBA fills a deterministic test pattern.
func gradientRGBA(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i+0] = byte(x * 255 / max(w-1, 1))
			pix[i+1] = byte(y * 255 / max(h-1, 1))
			pix[i+2] = byte((x + y) % 256)
			pix[i+3] = 255
		}
	}
	return pix
}

func TestEncodeDecodePNGRoundTrip(t *testing.T) {
	const w, h = 17, 9
	pix := gradientRGBA(w, h)

	var buf bytes.Buffer
	if err := Encode(&buf, "png", pix, w, h); err != nil {
		t.Fatalf("Encode() = %v", err)
	}

	got, gotW, gotH, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if format != "png" || gotW != w || gotH != h {
		t.Fatalf("Decode() = %s %dx%d, want png %dx%d", format, gotW, gotH, w, h)
	}
	if !bytes.Equal(got, pix) {
		t.Error("PNG round trip changed pixel data")
	}
}

func TestEncodeJPEG(t *testing.T) {
	const w, h = 32, 32
	var buf bytes.Buffer
	if err := Encode(&buf, "jpeg", gradientRGBA(w, h), w, h); err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	_, gotW, gotH, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if format != "jpeg" || gotW != w || gotH != h {
		t.Errorf("Decode() = %s %dx%d, want jpeg %dx%d", format, gotW, gotH, w, h)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, "exr", gradientRGBA(2, 2), 2, 2); err == nil {
		t.Error("Encode() accepted an unsupported format")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"out.png", "png"},
		{"out.JPG", "jpeg"},
		{"out.jpeg", "jpeg"},
		{"out.bmp", "bmp"},
		{"out", "png"},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
