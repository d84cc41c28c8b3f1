package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"FractalExplorer/fractal"
	"FractalExplorer/palette"
	"FractalExplorer/render"
	"FractalExplorer/task"
)

func renderTestImage(t *testing.T) *render.Image {
	t.Helper()
	params := fractal.DefaultParams()
	params.Width, params.Height = 48, 32
	params.MaxIterations = 40
	engine := render.NewEngine(render.Settings{TaskGeneration: task.Row})
	img, err := engine.Generate(params, fractal.Mandelbrot, palette.Classic, 1)
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	img := renderTestImage(t)
	for _, name := range []string{"view.png", "view.PNG", "view.bmp", "view.tiff"} {
		path := filepath.Join(t.TempDir(), name)
		if err := Save(img, path); err != nil {
			t.Fatalf("%s: expected no error, got %s", name, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("%s: expected no error, got %s", name, err)
		}
		if !loaded.Matches(img.Width, img.Height) {
			t.Fatalf("%s: expected %dx%d, got %dx%d", name, img.Width, img.Height, loaded.Width, loaded.Height)
		}
		if !bytes.Equal(loaded.Pix, img.Pix) {
			t.Errorf("%s: expected identical pixels after a round trip", name)
		}
	}
}

func TestSaveJPEG(t *testing.T) {
	img := renderTestImage(t)
	path := filepath.Join(t.TempDir(), "view.jpg")
	if err := Save(img, path); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if !loaded.Matches(img.Width, img.Height) {
		t.Errorf("expected %dx%d, got %dx%d", img.Width, img.Height, loaded.Width, loaded.Height)
	}
}

func TestSaveErrors(t *testing.T) {
	img := renderTestImage(t)
	dir := t.TempDir()
	tests := []struct {
		path     string
		expected error
	}{
		{"", ErrInvalidPath},
		{filepath.Join(dir, "missing", "view.png"), ErrInvalidPath},
		{dir, ErrInvalidPath},
		{filepath.Join(dir, "view.gif"), ErrUnsupportedFormat},
		{filepath.Join(dir, "view"), ErrUnsupportedFormat},
	}
	for _, test := range tests {
		if err := Save(img, test.path); !errors.Is(err, test.expected) {
			t.Errorf("%q: expected %v, got %v", test.path, test.expected, err)
		}
	}

	if err := Save(&render.Image{Width: 4, Height: 4, Pix: make([]byte, 3)}, filepath.Join(dir, "bad.png")); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}
}

func TestSaveFailureKeepsImage(t *testing.T) {
	img := renderTestImage(t)
	before := append([]byte(nil), img.Pix...)
	Save(img, filepath.Join(t.TempDir(), "missing", "view.png"))
	if !bytes.Equal(before, img.Pix) {
		t.Errorf("expected a failed save to leave the image untouched")
	}
}

func TestSaveReplacesExistingFile(t *testing.T) {
	img := renderTestImage(t)
	path := filepath.Join(t.TempDir(), "view.png")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if err := Save(img, path); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("expected the old file to be replaced, got %s", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "absent.png")); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
	garbage := filepath.Join(dir, "garbage.png")
	os.WriteFile(garbage, []byte("not an image"), 0o644)
	if _, err := Load(garbage); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{"a.png": PNG, "a.JPG": JPEG, "a.jpeg": JPEG, "a.bmp": BMP, "a.tif": TIFF, "a.TIFF": TIFF}
	for path, expected := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != expected {
			t.Errorf("%s: expected %s, got %s (%v)", path, expected, got, err)
		}
	}
}
