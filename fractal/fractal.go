package fractal

import (
	"math"
	"math/cmplx"
)

const (
	// Escape radius squared.
	escapeNormSqr = 4.0
	// Distance at which a Newton orbit counts as converged to a root.
	newtonTolerance = 1e-6
)

var newtonRoots = [3]complex128{
	complex(1, 0),
	complex(-0.5, math.Sqrt(3)/2),
	complex(-0.5, -math.Sqrt(3)/2),
}

// Iterate runs the iteration of kind starting at z0 with parameter c and returns the number of iterations performed
// together with the final z. The count never exceeds maxIterations.
func Iterate(kind Kind, c complex128, z0 complex128, maxIterations int) (int, complex128) {
	switch kind {
	case Mandelbrot, Julia:
		return escapeTime(c, z0, maxIterations, quadratic)
	case BurningShip:
		return escapeTime(c, z0, maxIterations, burningShip)
	case Tricorn:
		return escapeTime(c, z0, maxIterations, tricorn)
	case Newton:
		return newton(z0, maxIterations)
	default:
		return maxIterations, z0
	}
}

// Evaluate iterates the pixel point for kind, choosing the starting value and parameter the way each family needs.
func Evaluate(kind Kind, p Params, point complex128) (int, complex128) {
	switch kind {
	case Julia:
		return Iterate(kind, p.JuliaConstant(), point, p.MaxIterations)
	case Newton:
		return Iterate(kind, 0, point, p.MaxIterations)
	default:
		return Iterate(kind, point, 0, p.MaxIterations)
	}
}

func normSqr(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// NormSqr is |z|².
func NormSqr(z complex128) float64 {
	return normSqr(z)
}

func quadratic(z complex128, c complex128) complex128 {
	return z*z + c
}

func burningShip(z complex128, c complex128) complex128 {
	folded := complex(math.Abs(real(z)), math.Abs(imag(z)))
	return folded*folded + c
}

func tricorn(z complex128, c complex128) complex128 {
	conjugate := cmplx.Conj(z)
	return conjugate*conjugate + c
}

// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Unoptimized_na%C3%AFve_escape_time_algorithm
func escapeTime(c complex128, z complex128, maxIterations int, step func(complex128, complex128) complex128) (int, complex128) {
	iteration := 0
	for iteration < maxIterations && normSqr(z) < escapeNormSqr {
		z = step(z, c)
		iteration++
	}
	return iteration, z
}

// newton applies z - (z³-1)/(3z²) until z is within tolerance of a cube root of unity. A zero derivative cannot be
// stepped past, so the point is reported as never converging.
func newton(z complex128, maxIterations int) (int, complex128) {
	for iteration := 0; iteration < maxIterations; iteration++ {
		for _, root := range newtonRoots {
			if normSqr(z-root) < newtonTolerance*newtonTolerance {
				return iteration, z
			}
		}
		zSquared := z * z
		if zSquared == 0 {
			return maxIterations, z
		}
		z = z - (zSquared*z-1)/(3*zSquared)
	}
	return maxIterations, z
}
