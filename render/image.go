package render

import (
	"image"
)

// Image is a finished RGBA raster, row major with 4 bytes per pixel. Once returned by the engine it is never written
// again, so it can be shared between the cache and the display without copying.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

func NewImage(width int, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Matches reports whether the image is a complete buffer of exactly width x height pixels.
func (img *Image) Matches(width int, height int) bool {
	return img != nil && img.Width == width && img.Height == height && len(img.Pix) == width*height*4
}

// RGBA wraps the pixels in an image.RGBA without copying. The result must be treated as read only.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// FromRGBA copies src into a new Image anchored at the origin.
func FromRGBA(src *image.RGBA) *Image {
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < img.Height; y++ {
		start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(img.Pix[y*img.Width*4:(y+1)*img.Width*4], src.Pix[start:start+img.Width*4])
	}
	return img
}
