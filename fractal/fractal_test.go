package fractal

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestMapUnmapRoundTrip(t *testing.T) {
	tests := []Params{
		DefaultParams(),
		{CenterX: 0.25, CenterY: -0.1, Zoom: 1e6, Width: 640, Height: 480, MaxIterations: 50},
		{CenterX: -1.75, CenterY: -0.04, Zoom: 1.8, Width: 1, Height: 3, MaxIterations: 10},
	}
	for _, p := range tests {
		for _, pixel := range [][2]int{{0, 0}, {p.Width / 2, p.Height / 2}, {p.Width - 1, p.Height - 1}} {
			x, y := p.Unmap(p.Map(pixel[0], pixel[1]))
			if math.Abs(x-float64(pixel[0])) > 1e-6 || math.Abs(y-float64(pixel[1])) > 1e-6 {
				t.Errorf("%s: expected (%d, %d), got (%f, %f)", p, pixel[0], pixel[1], x, y)
			}
		}
	}
}

func TestMapCenter(t *testing.T) {
	p := Params{CenterX: -0.5, CenterY: 0.25, Zoom: 2, Width: 100, Height: 50}
	if got := p.Map(50, 25); got != complex(-0.5, 0.25) {
		t.Errorf("expected the middle pixel to map to the center, got %v", got)
	}
	if got := p.Map(0, 0); got != complex(-0.75, 0) {
		t.Errorf("expected top left to be half a view from the center, got %v", got)
	}
	xMin, xMax, yMin, yMax := p.Bounds()
	if xMin != -0.75 || xMax != -0.25 || yMin != 0 || yMax != 0.5 {
		t.Errorf("unexpected bounds %f %f %f %f", xMin, xMax, yMin, yMax)
	}
}

func TestMandelbrotKnownPoints(t *testing.T) {
	iterations, _ := Iterate(Mandelbrot, complex(-0.5, 0), 0, 100)
	if iterations != 100 {
		t.Errorf("expected -0.5 to stay bounded for 100 iterations, got %d", iterations)
	}
	iterations, z := Iterate(Mandelbrot, complex(2, 0), 0, 100)
	if iterations != 1 {
		t.Errorf("expected c = 2 to stop after 1 iteration, got %d", iterations)
	}
	if NormSqr(z) != 4 {
		t.Errorf("expected |z|² = 4, got %f", NormSqr(z))
	}
}

func TestIterationBounds(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for _, kind := range Kinds() {
		for _, maxIterations := range []int{1, 17, 100} {
			p := DefaultParams()
			p.MaxIterations = maxIterations
			for i := 0; i < 500; i++ {
				point := complex(random.Float64()*6-3, random.Float64()*6-3)
				iterations, _ := Evaluate(kind, p, point)
				if iterations < 0 || iterations > maxIterations {
					t.Fatalf("%s at %v: expected iterations in [0, %d], got %d", kind, point, maxIterations, iterations)
				}
			}
		}
	}
}

func TestJuliaUsesPixelAsStart(t *testing.T) {
	p := DefaultParams()
	p.JuliaReal, p.JuliaImag = 0, 0
	// with c = 0 the julia set is the unit disc
	inside, _ := Evaluate(Julia, p, complex(0.5, 0.5))
	outside, _ := Evaluate(Julia, p, complex(1.5, 0))
	if inside != p.MaxIterations {
		t.Errorf("expected a point inside the unit disc to stay bounded, got %d", inside)
	}
	if outside == p.MaxIterations {
		t.Errorf("expected a point outside the unit disc to escape")
	}
}

func TestBurningShipAndTricorn(t *testing.T) {
	// z1 = c for both, z2 differs from the mandelbrot recurrence for c with a negative imaginary part
	c := complex(0.1, -0.6)
	_, mandelbrot := Iterate(Mandelbrot, c, 0, 2)
	_, ship := Iterate(BurningShip, c, 0, 2)
	_, tricorn := Iterate(Tricorn, c, 0, 2)
	if ship == mandelbrot {
		t.Errorf("expected the burning ship fold to change z2")
	}
	expectedShip := complex(0.1*0.1-0.6*0.6, 2*0.1*0.6) + c
	if math.Abs(real(ship-expectedShip)) > 1e-12 || math.Abs(imag(ship-expectedShip)) > 1e-12 {
		t.Errorf("expected %v, got %v", expectedShip, ship)
	}
	expectedTricorn := complex(0.1*0.1-0.6*0.6, 2*0.1*0.6) + c
	if math.Abs(real(tricorn-expectedTricorn)) > 1e-12 || math.Abs(imag(tricorn-expectedTricorn)) > 1e-12 {
		t.Errorf("expected %v, got %v", expectedTricorn, tricorn)
	}
}

func TestBurningShipAndTricornDiffer(t *testing.T) {
	// with both parts of z positive the fold keeps z while the conjugate flips it
	c := complex(0.3, 0.4)
	tests := []struct {
		kind     Kind
		expected complex128
	}{
		{Mandelbrot, complex(0.23, 0.64)},
		{BurningShip, complex(0.23, 0.64)},
		{Tricorn, complex(0.23, 0.16)},
	}
	for _, test := range tests {
		iterations, z := Iterate(test.kind, c, 0, 2)
		if iterations != 2 {
			t.Errorf("%s: expected 2 iterations, got %d", test.kind, iterations)
		}
		if math.Abs(real(z-test.expected)) > 1e-12 || math.Abs(imag(z-test.expected)) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", test.kind, test.expected, z)
		}
	}
}

func TestNewton(t *testing.T) {
	p := DefaultParams()
	p.MaxIterations = 50

	iterations, _ := Evaluate(Newton, p, complex(1, 0))
	if iterations != 0 {
		t.Errorf("expected a root to converge immediately, got %d", iterations)
	}

	iterations, z := Evaluate(Newton, p, complex(-0.4, 0.9))
	if iterations == p.MaxIterations {
		t.Fatalf("expected a point near a root to converge")
	}
	if math.Abs(real(z)+0.5) > 1e-5 || math.Abs(imag(z)-math.Sqrt(3)/2) > 1e-5 {
		t.Errorf("expected convergence to -0.5+0.866i, got %v", z)
	}

	iterations, _ = Evaluate(Newton, p, 0)
	if iterations != p.MaxIterations {
		t.Errorf("expected a zero derivative to count as non-convergent, got %d", iterations)
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"mandelbrot":   Mandelbrot,
		"Julia":        Julia,
		"burning ship": BurningShip,
		"Burning_Ship": BurningShip,
		"TRICORN":      Tricorn,
		"newton":       Newton,
	}
	for name, expected := range tests {
		got, err := ParseKind(name)
		if err != nil || got != expected {
			t.Errorf("%q: expected %s, got %s (%v)", name, expected, got, err)
		}
	}
	if _, err := ParseKind("sierpinski"); err == nil {
		t.Errorf("expected an error for an unknown fractal")
	}
	if Newton.Next() != Mandelbrot {
		t.Errorf("expected kinds to wrap around")
	}
}

func TestVerify(t *testing.T) {
	p := Params{Zoom: -1, CenterX: 9, MaxIterations: 0}
	if err := p.Verify(); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	defaults := DefaultParams()
	if p.Zoom != defaults.Zoom || p.CenterX != 0 || p.MaxIterations != defaults.MaxIterations {
		t.Errorf("expected defaults to be filled in, got %s", p)
	}
	if p.Width != defaults.Width || p.Height != defaults.Height {
		t.Errorf("expected default size, got %dx%d", p.Width, p.Height)
	}

	p = Params{Width: -5, Height: 10}
	if err := p.Verify(); !errors.Is(err, ErrDimensions) {
		t.Errorf("expected ErrDimensions, got %v", err)
	}
}

func TestVerifyClampsUnusableViews(t *testing.T) {
	tests := []struct {
		params       Params
		expectedZoom float64
	}{
		{Params{Zoom: 1e-9, CenterX: math.NaN(), CenterY: math.Inf(1)}, MinZoom},
		{Params{Zoom: math.Inf(1)}, DefaultParams().Zoom},
		{Params{Zoom: math.NaN()}, DefaultParams().Zoom},
	}
	for _, test := range tests {
		p := test.params
		if err := p.Verify(); err != nil {
			t.Fatalf("expected no error, got %s", err)
		}
		if p.Zoom != test.expectedZoom {
			t.Errorf("expected zoom %g, got %g", test.expectedZoom, p.Zoom)
		}
		if !p.Viewable() {
			t.Errorf("expected a viewable result, got %s", p)
		}
	}
}

func TestViewable(t *testing.T) {
	tests := []struct {
		centerX, centerY, zoom float64
		expected               bool
	}{
		{-0.5, 0, 0.3, true},
		{-0.5, 0, MinZoom, true},
		{-0.5, 0, MinZoom / 2, false},
		{math.NaN(), 0, 1, false},
		{0, math.Inf(-1), 1, false},
		{0, 0, math.Inf(1), false},
		{0, 0, math.NaN(), false},
	}
	for _, test := range tests {
		p := DefaultParams()
		p.CenterX, p.CenterY, p.Zoom = test.centerX, test.centerY, test.zoom
		if p.Viewable() != test.expected {
			t.Errorf("(%g, %g) x%g: expected %t, got %t", test.centerX, test.centerY, test.zoom, test.expected, !test.expected)
		}
	}
}
