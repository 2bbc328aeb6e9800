package framebuffer

import (
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

func TestNew_StartsBlack(t *testing.T) {
	img := New(4, 3, zerolog.Nop())

	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 3, img.Height())

	pixels := img.Pixels()
	require.Len(t, pixels, 12)
	for _, p := range pixels {
		assert.Equal(t, core.Black, p)
	}
}

func TestImage_SetGetPixel(t *testing.T) {
	img := New(4, 3, zerolog.Nop())
	require.NoError(t, img.SetPixel(3, 2, core.Red))

	c, err := img.GetPixel(3, 2)
	require.NoError(t, err)
	assert.Equal(t, core.Red, c)

	assert.Equal(t, core.Red, img.Pixels()[2*4+3], "row-major layout")
}

func TestImage_OutOfBounds(t *testing.T) {
	img := New(4, 3, zerolog.Nop())

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x equals width", 4, 0},
		{"y equals height", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, img.SetPixel(tt.x, tt.y, core.White), ErrOutOfBounds)

			c, err := img.GetPixel(tt.x, tt.y)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.Equal(t, core.Black, c)
		})
	}

	for _, p := range img.Pixels() {
		assert.Equal(t, core.Black, p, "out-of-bounds writes are no-ops")
	}
}

func TestImage_SetRow(t *testing.T) {
	img := New(3, 2, zerolog.Nop())
	row := []core.Color{core.Red, core.Green, core.Blue}

	require.NoError(t, img.SetRow(1, row))
	assert.Equal(t, []core.Color{core.Black, core.Black, core.Black, core.Red, core.Green, core.Blue}, img.Pixels())

	assert.ErrorIs(t, img.SetRow(2, row), ErrOutOfBounds)
	assert.ErrorIs(t, img.SetRow(0, row[:2]), ErrOutOfBounds)
}

func TestImage_PixelsIsCopy(t *testing.T) {
	img := New(2, 2, zerolog.Nop())
	pixels := img.Pixels()
	pixels[0] = core.White

	c, _ := img.GetPixel(0, 0)
	assert.Equal(t, core.Black, c)
}

func TestImage_ConcurrentRows(t *testing.T) {
	const width, height = 16, 64
	img := New(width, height, zerolog.Nop())

	var wg sync.WaitGroup
	for y := 0; y < height; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			row := make([]core.Color, width)
			for x := range row {
				row[x] = core.NewColor(float64(y), 0, 0)
			}
			assert.NoError(t, img.SetRow(y, row))
		}(y)
	}
	wg.Wait()

	for y := 0; y < height; y++ {
		c, err := img.GetPixel(width-1, y)
		require.NoError(t, err)
		assert.Equal(t, float64(y), c.R())
	}
}

func TestImage_ToRGBA(t *testing.T) {
	img := New(2, 1, zerolog.Nop())
	require.NoError(t, img.SetPixel(0, 0, core.NewColor(0.5, 2, -1)))
	require.NoError(t, img.SetPixel(1, 0, core.Green))

	rgba := img.ToRGBA()
	assert.Equal(t, color.RGBA{R: 127, G: 255, B: 0, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, rgba.RGBAAt(1, 0))
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 127},
		{0.999, 254},
		{-3, 0},
		{42, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quantize(tt.in), "input %g", tt.in)
	}
}
