// Package imaging converts between encoded image formats and the raw RGBA
// byte buffers the resize pipeline works on, and provides the CPU resize
// filters used when the GPU path is unavailable or a higher-quality filter
// is requested.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	// Register decoders for the formats the CLI and service accept.
	_ "image/gif"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// defaultJPEGQuality matches the encoder default used by the service.
const defaultJPEGQuality = 90

// Decode reads any registered image format and returns its pixels as raw
// RGBA bytes plus dimensions. The format name comes from the decoder
// registry ("png", "jpeg", "gif", "bmp", "tiff", "webp").
func Decode(r io.Reader) (pix []byte, width, height int, format string, err error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, "", fmt.Errorf("decode image: %w", err)
	}
	rgba := toRGBA(img)
	b := rgba.Bounds()
	return rgba.Pix, b.Dx(), b.Dy(), format, nil
}

// toRGBA converts an image to RGBA with a zero-origin bounds rectangle.
// Images that already are *image.RGBA at origin pass through unchanged.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == image.Pt(0, 0) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FromRGBA wraps raw RGBA bytes in an image without copying. The slice must
// be width*height*4 bytes.
func FromRGBA(pix []byte, width, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// Encode writes raw RGBA bytes as the named format. Supported formats are
// "png" and "jpeg" ("jpg" is accepted as an alias).
func Encode(w io.Writer, format string, pix []byte, width, height int) error {
	img := FromRGBA(pix, width, height)
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "jpeg", "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: defaultJPEGQuality})
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// FormatForPath guesses an output format from a file extension, defaulting
// to PNG.
func FormatForPath(path string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".jpg"),
		strings.HasSuffix(strings.ToLower(path), ".jpeg"):
		return "jpeg"
	case strings.HasSuffix(strings.ToLower(path), ".bmp"):
		return "bmp"
	default:
		return "png"
	}
}
