package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// ErrOutOfBounds is returned for pixel accesses outside the image
var ErrOutOfBounds = errors.New("pixel index out of bounds")

// Image is a fixed-size, row-major pixel store with row 0 at the top. All
// pixels start black. Writes are serialized, so concurrent workers may share
// one Image.
type Image struct {
	width  int
	height int
	pixels []core.Color
	mu     sync.RWMutex
	logger zerolog.Logger
}

// New creates a black image. Out-of-bounds accesses are reported to logger.
func New(width, height int, logger zerolog.Logger) *Image {
	width = max(0, width)
	height = max(0, height)
	return &Image{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
		logger: logger,
	}
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

func (img *Image) index(x, y int) (int, error) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		err := fmt.Errorf("(%d, %d) in %dx%d image: %w", x, y, img.width, img.height, ErrOutOfBounds)
		img.logger.Error().Err(err).Msg("Ignoring pixel access")
		return 0, err
	}
	return y*img.width + x, nil
}

// SetPixel stores c at (x, y). Out-of-bounds writes are logged and ignored.
func (img *Image) SetPixel(x, y int, c core.Color) error {
	i, err := img.index(x, y)
	if err != nil {
		return err
	}

	img.mu.Lock()
	img.pixels[i] = c
	img.mu.Unlock()
	return nil
}

// GetPixel returns the color at (x, y), or black when out of bounds
func (img *Image) GetPixel(x, y int) (core.Color, error) {
	i, err := img.index(x, y)
	if err != nil {
		return core.Black, err
	}

	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.pixels[i], nil
}

// SetRow stores a full scanline under a single lock. The row must hold
// exactly Width colors.
func (img *Image) SetRow(y int, row []core.Color) error {
	if len(row) != img.width {
		err := fmt.Errorf("row of %d pixels for width %d: %w", len(row), img.width, ErrOutOfBounds)
		img.logger.Error().Err(err).Int("row", y).Msg("Ignoring row write")
		return err
	}
	start, err := img.index(0, y)
	if err != nil {
		return err
	}

	img.mu.Lock()
	copy(img.pixels[start:start+img.width], row)
	img.mu.Unlock()
	return nil
}

// Pixels returns a copy of all pixels in row-major order
func (img *Image) Pixels() []core.Color {
	img.mu.RLock()
	defer img.mu.RUnlock()

	pixels := make([]core.Color, len(img.pixels))
	copy(pixels, img.pixels)
	return pixels
}

// Fill sets every pixel to c
func (img *Image) Fill(c core.Color) {
	img.mu.Lock()
	defer img.mu.Unlock()

	for i := range img.pixels {
		img.pixels[i] = c
	}
}

// ToRGBA converts the image to 8-bit RGBA, quantizing each clamped channel
// the same way as the PPM writer
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.width, img.height))

	img.mu.RLock()
	defer img.mu.RUnlock()

	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			c := img.pixels[y*img.width+x]
			rgba.SetRGBA(x, y, color.RGBA{
				R: Quantize(c.R()),
				G: Quantize(c.G()),
				B: Quantize(c.B()),
				A: 255,
			})
		}
	}
	return rgba
}

// Quantize maps a channel to 0-255 as floor(clamp01(v) * 255). NaN maps to 0.
func Quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(core.Clamp01(v) * 255)
}
