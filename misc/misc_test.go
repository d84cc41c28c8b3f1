package misc

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLinearInterpolationRGB(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	red := color.RGBA{R: 255, A: 255}

	tests := []struct {
		fraction float64
		expected color.RGBA
	}{
		{0, blue},
		{1, red},
		{0.5, color.RGBA{R: 127, B: 127, A: 255}},
		{-3, blue},
		{7, red},
	}
	for _, test := range tests {
		got := LinearInterpolationRGB(blue, red, test.fraction)
		if got != test.expected {
			t.Errorf("fraction %f: expected %v, got %v", test.fraction, test.expected, got)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 2: 1, math.NaN(): 0, math.Inf(1): 1}
	for in, expected := range tests {
		if got := Clamp01(in); got != expected {
			t.Errorf("Clamp01(%f): expected %f, got %f", in, expected, got)
		}
	}
}

func TestFract(t *testing.T) {
	tests := map[float64]float64{0: 0, 1.25: 0.25, 6: 0, -0.25: 0.75}
	for in, expected := range tests {
		if got := Fract(in); math.Abs(got-expected) > 1e-12 {
			t.Errorf("Fract(%f): expected %f, got %f", in, expected, got)
		}
	}
}

func TestEasing(t *testing.T) {
	if EaseOutExpo(0) != 0 || EaseOutExpo(1) != 1 {
		t.Errorf("expected EaseOutExpo to span [0, 1], got %f..%f", EaseOutExpo(0), EaseOutExpo(1))
	}
	if EaseInExpo(0) != 0 || EaseInExpo(1) != 1 {
		t.Errorf("expected EaseInExpo to span [0, 1], got %f..%f", EaseInExpo(0), EaseInExpo(1))
	}
	if EaseOutExpo(0.5) <= 0.5 || EaseInExpo(0.5) >= 0.5 {
		t.Errorf("expected out easing ahead and in easing behind at the midpoint")
	}
}

func TestWriteReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "settings.json")
	written, err := WriteFile(name, []byte(`{"a": 1}`))
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if written != 8 {
		t.Errorf("expected 8 bytes written, got %d", written)
	}
	contents, err := ReadFile(name)
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if string(contents) != `{"a": 1}` {
		t.Errorf("expected contents to round trip, got %s", contents)
	}

	entries, _ := os.ReadDir(filepath.Dir(name))
	if len(entries) != 1 {
		t.Errorf("expected no temporary files left behind, got %d entries", len(entries))
	}
}

func TestFileErrors(t *testing.T) {
	if _, err := ReadFile(""); !errors.Is(err, ErrNoFileName) {
		t.Errorf("expected ErrNoFileName, got %v", err)
	}
	if _, err := WriteFile("", nil); !errors.Is(err, ErrNoFileName) {
		t.Errorf("expected ErrNoFileName, got %v", err)
	}
	if _, err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.png"), []byte{1}); err == nil {
		t.Errorf("expected an error writing into a missing directory")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run", "frames")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected %s to be a directory", dir)
	}
}
