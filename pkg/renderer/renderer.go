package renderer

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/framebuffer"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/imageio"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
	"github.com/df07/go-scanline-pathtracer/pkg/scene"
)

// Renderer owns a scene and renders it into an image, one scanline per task
type Renderer struct {
	config     Config
	scene      *scene.Scene
	camera     *Camera
	integrator *integrator.PathTracingIntegrator
	image      *framebuffer.Image
	logger     zerolog.Logger
}

// NewRenderer creates a renderer with an empty scene
func NewRenderer(config Config, logger zerolog.Logger) *Renderer {
	return NewRendererWithScene(config, scene.New("untitled"), logger)
}

// NewRendererWithScene creates a renderer for an existing scene. The scene
// must not be modified by anything else once Render starts.
func NewRendererWithScene(config Config, s *scene.Scene, logger zerolog.Logger) *Renderer {
	if config.Gamma <= 0 {
		logger.Warn().Float64("gamma", config.Gamma).Float64("default", core.DefaultGamma).Msg("Invalid gamma, using default")
		config.Gamma = core.DefaultGamma
	}
	if config.Width <= 0 || config.Height <= 0 {
		logger.Error().Int("width", config.Width).Int("height", config.Height).Msg("Image has no pixels")
	}

	return &Renderer{
		config:     config,
		scene:      s,
		camera:     NewCamera(config.Width, config.Height, config.FieldOfView),
		integrator: integrator.NewPathTracingIntegrator(s, config.IntegratorConfig()),
		image:      framebuffer.New(config.Width, config.Height, logger),
		logger:     logger,
	}
}

// AddPrimitive appends a primitive to the scene. It fails once rendering has started.
func (r *Renderer) AddPrimitive(p geometry.Primitive) error {
	return r.scene.AddPrimitive(p)
}

func (r *Renderer) Scene() *scene.Scene       { return r.scene }
func (r *Renderer) Config() Config            { return r.config }
func (r *Renderer) Camera() *Camera           { return r.camera }
func (r *Renderer) Image() *framebuffer.Image { return r.image }

// RenderScanline returns the averaged, not yet post-processed colors of row
// y. random must be owned by the caller.
func (r *Renderer) RenderScanline(y int, random *rand.Rand) []core.Color {
	if y < 0 || y >= r.config.Height {
		r.logger.Error().Int("row", y).Int("height", r.config.Height).Msg("Scanline out of range")
		return nil
	}

	row := make([]core.Color, r.config.Width)
	for x := range row {
		pixel := core.Black
		for i := 0; i < r.config.SamplesPerPixel; i++ {
			ray := r.camera.GetJitteredRay(x, y, random)
			sample := r.integrator.TracePixel(ray, random)

			// Running mean of all samples so far
			pixel = pixel.Mix(sample, 1.0/float64(i+1))
		}
		row[x] = pixel
	}
	return row
}

// ApplyPostProcessing applies exposure, then ACES tone mapping, then gamma
func (r *Renderer) ApplyPostProcessing(c core.Color) core.Color {
	return c.Multiply(r.config.Exposure).ToneMapACES().GammaCorrect(r.config.Gamma)
}

// Render freezes the scene and renders every scanline in parallel. It blocks
// until the image is complete.
func (r *Renderer) Render() RenderStats {
	r.scene.Freeze()

	height := r.config.Height
	pool := NewWorkerPool(r.config.Workers, r.config.Seed, r.logger)
	progress := newProgressReporter(height, r.logger)
	rowWrites := make([]atomic.Int32, max(height, 0))

	r.logger.Info().
		Str("scene", r.scene.Name).
		Int("primitives", r.scene.GetPrimitiveCount()).
		Int("width", r.config.Width).
		Int("height", height).
		Int("samples", r.config.SamplesPerPixel).
		Int("bounces", r.config.MaxBounces).
		Int("workers", pool.GetNumWorkers()).
		Msg("Rendering")

	start := time.Now()
	rowsPerWorker, err := pool.Run(height, func(y int, random *rand.Rand) error {
		row := r.RenderScanline(y, random)
		for x := range row {
			row[x] = r.ApplyPostProcessing(row[x])
		}
		if err := r.image.SetRow(y, row); err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}
		rowWrites[y].Add(1)
		progress.rowDone()
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("Image is incomplete")
	}

	stats := RenderStats{
		Rows:            height,
		SamplesPerPixel: r.config.SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
		RowWrites:       make([]int, len(rowWrites)),
		RowsPerWorker:   rowsPerWorker,
		Duration:        time.Since(start),
	}
	for y := range rowWrites {
		n := int(rowWrites[y].Load())
		stats.RowWrites[y] = n
		stats.TotalPixels += n * r.config.Width
	}
	stats.TotalSamples = stats.TotalPixels * r.config.SamplesPerPixel
	stats.AverageLuminance = CalculateAverageLuminance(r.image.Pixels())

	r.logger.Info().
		Dur("duration", stats.Duration).
		Int("pixels", stats.TotalPixels).
		Int("samples", stats.TotalSamples).
		Float64("avg_luminance", stats.AverageLuminance).
		Msg("Render complete")

	return stats
}

// WriteOutput saves the image to SaveDirectory/FileName in the configured
// format. Failures are logged and reported but leave the image intact.
func (r *Renderer) WriteOutput() (bool, error) {
	format, err := imageio.ParseFormat(r.config.OutputFormat)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to write image")
		return false, err
	}

	path, err := imageio.Save(r.image, r.config.SaveDirectory, r.config.FileName, format, r.config.OutputScale)
	if err != nil {
		r.logger.Error().Err(err).Str("directory", r.config.SaveDirectory).Msg("Failed to write image")
		return false, err
	}

	r.logger.Info().Str("path", path).Msg("Image saved")
	return true, nil
}
