package cache

import (
	"fmt"
	"math"

	"FractalExplorer/fractal"
)

// QuantizationSteps is roughly how many grid steps span a view. Views whose corners land on the same grid points
// share a cache entry.
const QuantizationSteps = 256

// ViewRegion identifies a rendered view by its bounds snapped to a power of two grid scaled to the view's extent,
// plus the resolution level it was rendered at.
type ViewRegion struct {
	Exponent int
	XMin     float64
	XMax     float64
	YMin     float64
	YMax     float64
	Level    int
}

// NewViewRegion quantizes the rectangle [xMin, xMax] x [yMin, yMax].
func NewViewRegion(xMin float64, xMax float64, yMin float64, yMax float64, level int) ViewRegion {
	extent := math.Max(xMax-xMin, yMax-yMin)
	exponent := -1074
	if extent > 0 && !math.IsInf(extent, 0) {
		exponent = max(exponent, int(math.Floor(math.Log2(extent/QuantizationSteps))))
	}
	return ViewRegion{
		Exponent: exponent,
		XMin:     snap(xMin, exponent),
		XMax:     snap(xMax, exponent),
		YMin:     snap(yMin, exponent),
		YMax:     snap(yMax, exponent),
		Level:    level,
	}
}

// Cacheable reports whether the region can be used as a key. A NaN field never compares equal to itself, so such a
// region could be stored but never found or removed again.
func (r ViewRegion) Cacheable() bool {
	for _, v := range []float64{r.XMin, r.XMax, r.YMin, r.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RegionFor is the region of the view described by params at a resolution level.
func RegionFor(params fractal.Params, level int) ViewRegion {
	xMin, xMax, yMin, yMax := params.Bounds()
	return NewViewRegion(xMin, xMax, yMin, yMax, level)
}

func (r ViewRegion) String() string {
	return fmt.Sprintf("{ViewRegion 2^%d [%.0f, %.0f] x [%.0f, %.0f] Level: %d}", r.Exponent, r.XMin, r.XMax, r.YMin, r.YMax, r.Level)
}

// snap rounds v to the nearest multiple of 2^exponent and returns the multiple. The multiple is a whole number
// kept as a float64 so deep zooms do not overflow.
func snap(v float64, exponent int) float64 {
	return math.Round(math.Ldexp(v, -exponent))
}
