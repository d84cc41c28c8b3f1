package views

import (
	"fmt"

	"FractalExplorer/fractal"
	"FractalExplorer/palette"
)

// Position is everything needed to return to a view, minus the image size.
type Position struct {
	CenterX       float64
	CenterY       float64
	Fractal       fractal.Kind
	JuliaImag     float64
	JuliaReal     float64
	MaxIterations int
	Palette       palette.Scheme
	Zoom          float64
}

func NewPosition(params fractal.Params, kind fractal.Kind, scheme palette.Scheme) Position {
	return Position{
		CenterX:       params.CenterX,
		CenterY:       params.CenterY,
		Fractal:       kind,
		JuliaImag:     params.JuliaImag,
		JuliaReal:     params.JuliaReal,
		MaxIterations: params.MaxIterations,
		Palette:       scheme,
		Zoom:          params.Zoom,
	}
}

// Apply copies the position onto params, keeping its image size.
func (p Position) Apply(params fractal.Params) fractal.Params {
	params.CenterX = p.CenterX
	params.CenterY = p.CenterY
	params.JuliaImag = p.JuliaImag
	params.JuliaReal = p.JuliaReal
	params.MaxIterations = p.MaxIterations
	params.Zoom = p.Zoom
	return params
}

func (p Position) String() string {
	return fmt.Sprintf("{%s %s (%g, %g) x%g %d iterations}", p.Fractal, p.Palette, p.CenterX, p.CenterY, p.Zoom, p.MaxIterations)
}
