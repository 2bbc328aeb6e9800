package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-scanline-pathtracer/pkg/framebuffer"
)

// WritePPM writes img as an ASCII Netpbm P3 file: a header of magic,
// dimensions and max value, then one "r g b" line per pixel in row-major
// order starting at row 0
func WritePPM(w io.Writer, img *framebuffer.Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width(), img.Height()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, c := range img.Pixels() {
		r := framebuffer.Quantize(c.R())
		g := framebuffer.Quantize(c.G())
		b := framebuffer.Quantize(c.B())
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}
