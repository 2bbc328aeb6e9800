package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-scanline-pathtracer/pkg/config"
	"github.com/df07/go-scanline-pathtracer/pkg/renderer"
	"github.com/df07/go-scanline-pathtracer/pkg/scene"
)

// errWriteFailed is returned when the render finished but could not be saved
var errWriteFailed = errors.New("failed to write output")

// defaultSettings are used when no settings file can be read
var defaultSettings = map[string]string{
	"MIN_RAY_LENGTH":    "0.01",
	"MAX_RAY_LENGTH":    "10000",
	"MAX_BOUNCES":       "4",
	"SAMPLES_PER_PIXEL": "64",
	"EXPOSURE":          "0.5",
	"FIELD_OF_VIEW":     "90",
	"IMAGE_WIDTH":       "400",
	"IMAGE_HEIGHT":      "400",
	"SAVE_DIRECTORY":    "output",
	"FILE_NAME":         "render",
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error().Err(err).Msg("Render failed")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger zerolog.Logger) error {
	var overrides config.Overrides

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "pathtracer.yaml", "path to the settings file")
	sceneName := fs.String("scene", "", "built-in scene ID or .yaml scene file (overrides SCENE)")
	listScenes := fs.Bool("list-scenes", false, "list built-in scenes and exit")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.Var(&overrides, "set", "override a setting as KEY=VALUE (repeatable)")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Scanline Path Tracer")
		fmt.Fprintln(stdout, "Usage: pathtracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *listScenes {
		printScenes(stdout)
		return nil
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)
	logSystemInfo(logger)

	settings, err := loadSettings(*configPath, overrides, logger)
	if err != nil {
		return err
	}
	if *sceneName != "" {
		settings.Set("SCENE", *sceneName)
	}

	s, err := createScene(settings.StringOr("SCENE", "cornell"))
	if err != nil {
		return err
	}

	r := renderer.NewRendererWithScene(renderer.ConfigFromSettings(settings), s, logger)
	stats := r.Render()
	logger.Info().
		Str("duration", stats.Duration.Round(time.Millisecond).String()).
		Int("workers", stats.Workers).
		Msg("Finished")

	if ok, err := r.WriteOutput(); !ok {
		return fmt.Errorf("%w: %v", errWriteFailed, err)
	}
	return nil
}

// loadSettings reads the settings file and applies overrides. A missing
// file falls back to built-in defaults.
func loadSettings(path string, overrides []string, logger zerolog.Logger) (*config.Settings, error) {
	settings, err := config.Load(path, logger)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Warn().Str("path", path).Msg("Settings file not found, using defaults")
		settings = config.New(defaultSettings, logger)
	}

	if err := settings.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	return settings, nil
}

// createScene resolves a built-in scene ID or a scene file path
func createScene(name string) (*scene.Scene, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("empty scene name: %w", scene.ErrUnknownScene)
	}
	return scene.Load(name)
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "A path to a .yaml scene file may be given instead.")
}

func logSystemInfo(logger zerolog.Logger) {
	event := logger.Info().Int("logical_cpus", renderer.DefaultWorkerCount())

	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		event = event.Str("cpu", info[0].ModelName)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		event = event.Uint64("memory_gb", vm.Total/(1024*1024*1024))
	}

	event.Msg("System")
}
