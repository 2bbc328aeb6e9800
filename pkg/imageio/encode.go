package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/df07/go-scanline-pathtracer/pkg/framebuffer"
)

// Format is an output file format
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ErrUnknownFormat is returned for output formats other than ppm, png and webp
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat converts a case-insensitive format name. An empty name selects PPM.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatPPM, nil
	case FormatPPM, FormatPNG, FormatWebP:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("PNG encode: %w", err)
	}
	return nil
}

// WriteWebP encodes img as lossless WebP
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

// Scale resizes img by factor with Catmull-Rom filtering. Factors that are
// not positive, or that would leave an empty image, return img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return img
	}

	b := img.Bounds()
	width := int(math.Round(float64(b.Dx()) * factor))
	height := int(math.Round(float64(b.Dy()) * factor))
	if width < 1 || height < 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save writes img to dir/name in the given format, creating dir if needed.
// The format's extension is appended unless name already carries it. Scale
// applies to PNG and WebP only; PPM output is always written at full size.
// It returns the path written. A partially written file is removed on failure.
func Save(img *framebuffer.Image, dir, name string, format Format, scale float64) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}
	if format == "" {
		format = FormatPPM
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if !strings.EqualFold(filepath.Ext(name), format.Extension()) {
		name += format.Extension()
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	switch format {
	case FormatPNG:
		err = WritePNG(f, Scale(img.ToRGBA(), scale))
	case FormatWebP:
		err = WriteWebP(f, Scale(img.ToRGBA(), scale))
	default:
		err = WritePPM(f, img)
	}

	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if err != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			err = errors.Join(err, removeErr)
		}
		return "", err
	}
	return path, nil
}
