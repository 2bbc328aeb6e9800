package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a name matches neither a built-in scene
// nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string
	Description string
	build       func() *Scene
}

var builtInScenes = []SceneInfo{
	{
		ID:          "cornell",
		Description: "Cornell-like box with a ceiling light and three diffuse spheres",
		build:       NewCornellScene,
	},
	{
		ID:          "cornell-glossy",
		Description: "Cornell-like box with rough to mirror-like spheres",
		build:       NewGlossyCornellScene,
	},
	{
		ID:          "emissive-quad",
		Description: "Single emissive quad behind a diffuse sphere",
		build:       NewEmissiveQuadScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Load resolves a built-in scene by ID or reads a .yaml/.yml scene file
func Load(nameOrPath string) (*Scene, error) {
	for _, info := range builtInScenes {
		if info.ID == nameOrPath {
			return info.build(), nil
		}
	}

	switch strings.ToLower(filepath.Ext(nameOrPath)) {
	case ".yaml", ".yml":
		return LoadFile(nameOrPath)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, nameOrPath)
}
