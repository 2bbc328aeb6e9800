package renderer

import (
	"time"

	"github.com/df07/go-scanline-pathtracer/pkg/config"
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
)

// Config contains everything needed for one render
type Config struct {
	// Ray settings
	MinRayLength float64
	MaxRayLength float64
	MaxBounces   int

	// Sampling and camera
	SamplesPerPixel int
	Exposure        float64
	FieldOfView     float64 // Degrees
	Gamma           float64

	// Output
	Width         int
	Height        int
	SaveDirectory string
	FileName      string
	OutputFormat  string  // ppm, png or webp
	OutputScale   float64 // Resize factor for png and webp output

	// Parallelism
	Workers int   // 0 = one per logical CPU
	Seed    int64 // Worker i uses Seed+i
}

// DefaultConfig returns settings for a quick 400x400 Cornell render
func DefaultConfig() Config {
	return Config{
		MinRayLength:    0.01,
		MaxRayLength:    10000,
		MaxBounces:      4,
		SamplesPerPixel: 64,
		Exposure:        0.5,
		FieldOfView:     90,
		Gamma:           core.DefaultGamma,
		Width:           400,
		Height:          400,
		SaveDirectory:   "output",
		FileName:        "render",
		OutputFormat:    "ppm",
		OutputScale:     1,
		Seed:            time.Now().UnixNano(),
	}
}

// ConfigFromSettings reads a Config from key/value settings. The core keys
// are required and fall back to zero after logging; the rest have defaults.
func ConfigFromSettings(s *config.Settings) Config {
	return Config{
		MinRayLength:    s.Float("MIN_RAY_LENGTH"),
		MaxRayLength:    s.Float("MAX_RAY_LENGTH"),
		MaxBounces:      s.Int("MAX_BOUNCES"),
		SamplesPerPixel: s.Int("SAMPLES_PER_PIXEL"),
		Exposure:        s.Float("EXPOSURE"),
		FieldOfView:     s.Float("FIELD_OF_VIEW"),
		Gamma:           s.FloatOr("GAMMA", core.DefaultGamma),
		Width:           s.Int("IMAGE_WIDTH"),
		Height:          s.Int("IMAGE_HEIGHT"),
		SaveDirectory:   s.String("SAVE_DIRECTORY"),
		FileName:        s.String("FILE_NAME"),
		OutputFormat:    s.StringOr("OUTPUT_FORMAT", "ppm"),
		OutputScale:     s.FloatOr("OUTPUT_SCALE", 1),
		Workers:         s.IntOr("WORKERS", 0),
		Seed:            int64(s.IntOr("SEED", int(time.Now().UnixNano()))),
	}
}

// IntegratorConfig returns the ray settings for the path tracer
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MinRayLength:  c.MinRayLength,
		MaxRayLength:  c.MaxRayLength,
		MaxBounces:    c.MaxBounces,
		SurfaceOffset: integrator.DefaultSurfaceOffset,
	}
}
