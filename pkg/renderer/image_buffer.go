package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageSink receives rendered pixel colors. Render writes every pixel
// exactly once, from any worker goroutine; each pixel is written by a
// single worker.
type ImageSink interface {
	WritePixel(col, row int, color core.Vec3)
	Width() int
	Height() int
}

// ImageBuffer is an in-memory sink holding colors in 8-bit units
// (255 is full intensity)
type ImageBuffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewImageBuffer creates a black buffer of the given size
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (b *ImageBuffer) Width() int  { return b.width }
func (b *ImageBuffer) Height() int { return b.height }

// WritePixel stores a color. Distinct pixels may be written concurrently.
func (b *ImageBuffer) WritePixel(col, row int, color core.Vec3) {
	b.pixels[row*b.width+col] = color
}

// Pixel returns the stored color
func (b *ImageBuffer) Pixel(col, row int) core.Vec3 {
	return b.pixels[row*b.width+col]
}

// Image converts the buffer to RGBA. Colors are clamped to [0,255]; a gamma
// other than 1 is applied to the normalized value.
func (b *ImageBuffer) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			img.SetRGBA(col, row, toRGBA(b.Pixel(col, row), gamma))
		}
	}
	return img
}

// toRGBA converts a color in 8-bit units with clamping and optional gamma
func toRGBA(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.Multiply(1.0 / 255).Clamp(0.0, 1.0)
	if gamma > 0 && gamma != 1 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
