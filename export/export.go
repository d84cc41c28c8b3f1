package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"FractalExplorer/misc"
	"FractalExplorer/render"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

const (
	PNG Format = iota
	JPEG
	BMP
	TIFF
)

const jpegQuality = 95

var (
	ErrInvalidPath       = errors.New("invalid export path")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidImage      = errors.New("image buffer does not match its size")
	ErrEncode            = errors.New("unable to encode image")
	ErrWrite             = errors.New("unable to write image")
	ErrDecode            = errors.New("unable to decode image")
)

// Format is an image file format chosen by file extension.
type Format int

func (f Format) String() string {
	if f < PNG || f > TIFF {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return []string{
		"PNG", "JPEG", "BMP", "TIFF",
	}[f]
}

// FormatFromPath picks the format from the extension of path, ignoring case.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save writes img to path in the format given by its extension. img is only read, and the destination is replaced
// in one step, so a failed save leaves both the image and any existing file intact.
func Save(img *render.Image, path string) error {
	err := checkPath(path)
	if err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if img == nil || !img.Matches(img.Width, img.Height) || img.Width == 0 || img.Height == 0 {
		return ErrInvalidImage
	}

	contents, err := Encode(img, format)
	if err != nil {
		return err
	}
	_, err = misc.WriteFile(path, contents)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Encode serializes img in format.
func Encode(img *render.Image, format Format) ([]byte, error) {
	var buffer bytes.Buffer
	var err error
	rgba := img.RGBA()
	switch format {
	case PNG:
		err = png.Encode(&buffer, rgba)
	case JPEG:
		err = jpeg.Encode(&buffer, rgba, &jpeg.Options{Quality: jpegQuality})
	case BMP:
		err = bmp.Encode(&buffer, rgba)
	case TIFF:
		err = tiff.Encode(&buffer, rgba, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %w", ErrEncode, format, err)
	}
	return buffer.Bytes(), nil
}

// Load reads an image written by Save, or any PNG, JPEG, BMP or TIFF file, into an RGBA buffer.
func Load(path string) (*render.Image, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	contents, err := misc.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}

	if rgba, ok := decoded.(*image.RGBA); ok {
		return render.FromRGBA(rgba), nil
	}
	bounds := decoded.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), decoded, bounds.Min, draw.Src)
	return render.FromRGBA(rgba), nil
}

func checkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: folder %s does not exist", ErrInvalidPath, dir)
	}
	return nil
}
