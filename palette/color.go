package palette

import (
	"image/color"
	"math"

	"FractalExplorer/misc"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	Black = color.RGBA{A: 255}

	blue = color.RGBA{B: 255, A: 255}
	red  = color.RGBA{R: 255, A: 255}

	mathLog2 = math.Log(2)
)

// GetColor maps t in [0, 1] to a colour of scheme. Values outside the range are clamped and NaN is treated as 0.
func GetColor(scheme Scheme, t float64) color.RGBA {
	t = misc.Clamp01(t)
	switch scheme {
	case Classic:
		return hsv(t, 0.8, 1.0)
	case Fire:
		return rgb(t, t*t, t*t*t)
	case Ocean:
		return rgb(t*t*t, t*t, t)
	case Rainbow:
		return hsv(misc.Fract(6*t), 1.0, 1.0)
	case Grayscale:
		return rgb(t, t, t)
	case BlueRed:
		return misc.LinearInterpolationRGB(blue, red, t)
	default:
		return rgb(t, t, t)
	}
}

// SmoothColor colours an escape result with the normalized iteration count so bands blend into each other. Points
// that never escaped are black.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func SmoothColor(scheme Scheme, iterations int, maxIterations int, zNormSqr float64) color.RGBA {
	if iterations >= maxIterations || maxIterations <= 0 {
		return Black
	}
	return GetColor(scheme, smoothValue(iterations, maxIterations, zNormSqr))
}

func smoothValue(iterations int, maxIterations int, zNormSqr float64) float64 {
	logZn := math.Log(zNormSqr) / 2
	nu := math.Log(logZn/mathLog2) / mathLog2
	smooth := float64(iterations) + 1 - nu

	// |z| <= 1 has no double logarithm, fall back to banded colouring
	if math.IsNaN(smooth) || math.IsInf(smooth, 0) {
		smooth = float64(iterations)
	}
	return smooth / float64(maxIterations)
}

func rgb(r float64, g float64, b float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	return uint8(misc.Clamp01(v) * 255)
}

func hsv(hue float64, saturation float64, value float64) color.RGBA {
	// colorful expects the hue in [0, 360)
	r, g, b := colorful.Hsv(math.Mod(hue*360, 360), saturation, value).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
