package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"cornell scene", "cornell", false},
		{"glossy cornell scene", "cornell-glossy", false},
		{"emissive quad scene", "emissive-quad", false},
		{"example scene file", "scenes/example.yaml", false},

		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Positive(t, s.GetPrimitiveCount())
		})
	}

	_, err := createScene("")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("IMAGE_WIDTH: 10\nIMAGE_HEIGHT: 5\n"), 0644))

	settings, err := loadSettings(path, []string{"IMAGE_HEIGHT=7"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Int("IMAGE_WIDTH"))
	assert.Equal(t, 7, settings.Int("IMAGE_HEIGHT"))
	assert.False(t, settings.Has("SAMPLES_PER_PIXEL"))

	settings, err = loadSettings(filepath.Join(t.TempDir(), "missing.yaml"), nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 400, settings.Int("IMAGE_WIDTH"), "defaults when the file is missing")

	_, err = loadSettings(path, []string{"BROKEN"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestSampleSettingsFile(t *testing.T) {
	settings, err := loadSettings("pathtracer.yaml", nil, zerolog.Nop())
	require.NoError(t, err)

	for key := range defaultSettings {
		assert.True(t, settings.Has(key), "pathtracer.yaml should set %s", key)
	}
}

func TestRun_ListScenes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-list-scenes"}, &out, zerolog.Nop()))

	for _, info := range scene.ListScenes() {
		assert.Contains(t, out.String(), info.ID)
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-help"}, &out, zerolog.Nop())
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "-set")
}

func TestRun_RendersAndWrites(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"-config", filepath.Join(dir, "none.yaml"),
		"-scene", "emissive-quad",
		"-set", "IMAGE_WIDTH=8",
		"-set", "IMAGE_HEIGHT=6",
		"-set", "SAMPLES_PER_PIXEL=1",
		"-set", "MAX_BOUNCES=1",
		"-set", "SAVE_DIRECTORY=" + dir,
		"-set", "FILE_NAME=quad",
		"-set", "SEED=3",
	}
	require.NoError(t, run(args, &bytes.Buffer{}, zerolog.Nop()))

	data, err := os.ReadFile(filepath.Join(dir, "quad.ppm"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "P3\n8 6\n255\n"))
	assert.Equal(t, 3+8*6, strings.Count(string(data), "\n"))
}

func TestRun_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	args := []string{
		"-config", filepath.Join(t.TempDir(), "none.yaml"),
		"-set", "IMAGE_WIDTH=2",
		"-set", "IMAGE_HEIGHT=2",
		"-set", "SAMPLES_PER_PIXEL=1",
		"-set", "SAVE_DIRECTORY=" + filepath.Join(blocker, "out"),
	}
	err := run(args, &bytes.Buffer{}, zerolog.Nop())
	assert.ErrorIs(t, err, errWriteFailed)
}
