// Package imagewriter encodes rendered images to disk.
package imagewriter

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Format identifies an output encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatPNG, FormatWebP, FormatTGA:
		return Format(ext), nil
	}
	return "", fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("%s encode: %w", format, err)
	}
	return nil
}

// WriteFile creates path, including missing parent directories, and writes
// img in the format named by its extension
func WriteFile(path string, img image.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return Encode(f, img, format)
}

// Downsample shrinks img by an integer factor with Catmull-Rom filtering.
// Rendering at a multiple of the target size and downsampling is a cheap
// alternative to a per-pixel sample grid. Factors below 2 return img as is.
func Downsample(img image.Image, factor int) image.Image {
	b := img.Bounds()
	if factor < 2 || b.Dx() < factor || b.Dy() < factor {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/factor, b.Dy()/factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
