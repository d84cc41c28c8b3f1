package fractal

import (
	"errors"
	"fmt"
	"math"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	// MaxUsefulZoom is roughly where neighbouring pixels collapse onto the same float64 coordinate.
	MaxUsefulZoom = 1e13
	// MinZoom shows a view about a thousand units across, far wider than any of the fractals.
	MinZoom = 1e-3
	// MaxDimension bounds the width and height of a single render.
	MaxDimension = 16384
)

var ErrDimensions = errors.New("image dimensions out of range")

// Params is an immutable snapshot of everything that decides which part of the plane is rendered and how finely.
// Copying a Params is taking a snapshot.
type Params struct {
	CenterX       float64
	CenterY       float64
	Height        int
	JuliaImag     float64
	JuliaReal     float64
	MaxIterations int
	Width         int
	Zoom          float64
}

func DefaultParams() Params {
	return Params{
		CenterX:       -0.5,
		CenterY:       0,
		Height:        600,
		JuliaImag:     0.27015,
		JuliaReal:     -0.7,
		MaxIterations: 100,
		Width:         800,
		Zoom:          0.3,
	}
}

func (p Params) String() string {
	output := "{Params "
	output += fmt.Sprintf("Center: (%g, %g) ", p.CenterX, p.CenterY)
	output += fmt.Sprintf("Zoom: %g ", p.Zoom)
	output += fmt.Sprintf("MaxIterations: %d ", p.MaxIterations)
	output += fmt.Sprintf("Size: %dx%d ", p.Width, p.Height)
	output += fmt.Sprintf("Julia: (%g, %g)}", p.JuliaReal, p.JuliaImag)
	return output
}

// Verify fills in defaults for unusable values and rejects sizes that cannot be rendered.
func (p *Params) Verify() error {
	logger := bslogger.NewLogger("FractalParams", bslogger.Normal, nil)
	defaults := DefaultParams()

	if !(p.Zoom > 0) || math.IsInf(p.Zoom, 0) {
		p.Zoom = defaults.Zoom
	}
	if p.Zoom < MinZoom {
		p.Zoom = MinZoom
	}
	if p.Zoom > MaxUsefulZoom {
		logger.Warningf("Zoom %g is beyond float64 resolution, the image will pixelate", p.Zoom)
	}
	if !(p.CenterX <= 4.0 && p.CenterX >= -4.0) {
		p.CenterX = 0.0
	}
	if !(p.CenterY <= 4.0 && p.CenterY >= -4.0) {
		p.CenterY = 0.0
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = defaults.MaxIterations
	}
	if p.Width == 0 {
		p.Width = defaults.Width
	}
	if p.Height == 0 {
		p.Height = defaults.Height
	}
	return p.CheckDimensions()
}

// Viewable reports whether the center is finite and the zoom is finite and at least MinZoom, so every pixel maps to
// a finite point.
func (p Params) Viewable() bool {
	return isFinite(p.CenterX) && isFinite(p.CenterY) && isFinite(p.Zoom) && p.Zoom >= MinZoom
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckDimensions reports whether the image size can be rendered as is.
func (p Params) CheckDimensions() error {
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxDimension || p.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, p.Width, p.Height)
	}
	return nil
}

func (p Params) Center() complex128 {
	return complex(p.CenterX, p.CenterY)
}

func (p Params) JuliaConstant() complex128 {
	return complex(p.JuliaReal, p.JuliaImag)
}

// Map converts the pixel (x, y) of a Width x Height image into a point on the complex plane.
// The view spans 1/Zoom on both axes around the center.
func (p Params) Map(x int, y int) complex128 {
	re := (float64(x)/float64(p.Width)-0.5)/p.Zoom + p.CenterX
	im := (float64(y)/float64(p.Height)-0.5)/p.Zoom + p.CenterY
	return complex(re, im)
}

// Unmap is the inverse of Map and returns fractional pixel coordinates.
func (p Params) Unmap(c complex128) (float64, float64) {
	x := ((real(c)-p.CenterX)*p.Zoom + 0.5) * float64(p.Width)
	y := ((imag(c)-p.CenterY)*p.Zoom + 0.5) * float64(p.Height)
	return x, y
}

// Bounds returns the rectangle of the plane covered by the view.
func (p Params) Bounds() (xMin float64, xMax float64, yMin float64, yMax float64) {
	half := 0.5 / p.Zoom
	return p.CenterX - half, p.CenterX + half, p.CenterY - half, p.CenterY + half
}
