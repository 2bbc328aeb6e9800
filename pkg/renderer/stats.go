package renderer

import (
	"time"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// RenderStats contains statistics about a completed render
type RenderStats struct {
	Rows             int           // Image height
	TotalPixels      int           // Pixels written
	SamplesPerPixel  int           // Samples averaged into each pixel
	TotalSamples     int           // Camera rays traced
	Workers          int           // Goroutines that rendered scanlines
	RowWrites        []int         // Times each row was written, indexed by row
	RowsPerWorker    []int         // Scanlines rendered by each worker
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the post-processed image
}

// RowsWrittenOnce reports whether every row was written exactly once
func (s RenderStats) RowsWrittenOnce() bool {
	if len(s.RowWrites) != s.Rows {
		return false
	}
	for _, n := range s.RowWrites {
		if n != 1 {
			return false
		}
	}
	return true
}

// Luminance returns the Rec. 709 relative luminance of c
func Luminance(c core.Color) float64 {
	return 0.2126*c.R() + 0.7152*c.G() + 0.0722*c.B()
}

// CalculateAverageLuminance returns the mean luminance of pixels, or 0 for none
func CalculateAverageLuminance(pixels []core.Color) float64 {
	if len(pixels) == 0 {
		return 0
	}

	total := 0.0
	for _, p := range pixels {
		total += Luminance(p)
	}
	return total / float64(len(pixels))
}
