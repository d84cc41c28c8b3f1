package misc

import (
	"image/color"
	"math"
)

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

func LerpUint8(v1 uint8, v2 uint8, fraction float64) uint8 {
	return uint8(LerpFloat64(float64(v1), float64(v2), Clamp01(fraction)))
}

func LinearInterpolationRGB(color1 color.RGBA, color2 color.RGBA, fraction float64) color.RGBA {
	return color.RGBA{
		R: LerpUint8(color1.R, color2.R, fraction),
		G: LerpUint8(color1.G, color2.G, fraction),
		B: LerpUint8(color1.B, color2.B, fraction),
		A: 255,
	}
}

// Clamp01 limits v to [0, 1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Fract returns the fractional part of v, always in [0, 1).
func Fract(v float64) float64 {
	return v - math.Floor(v)
}

func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func EaseInExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}
