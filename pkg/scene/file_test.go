package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
)

const sampleScene = `
name: sample
materials:
  light:
    emissive: [1, 0.9, 0.7]
    emissive_strength: 20
  grey:
    albedo: [0.8, 0.8, 0.8]
    specular: [0.9, 0.9, 0.9]
    roughness: 0.5
    specularness: 2
primitives:
  - type: quad
    material: light
    corners:
      - [-10, -10, 20]
      - [10, -10, 20]
      - [10, 10, 20]
      - [-10, 10, 20]
  - type: sphere
    material: grey
    center: [0, 0, 10]
    radius: 2
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	require.Equal(t, 2, s.GetPrimitiveCount())

	quad, ok := s.Primitives()[0].(*geometry.Quad)
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(10, 10, 20), quad.TopRight)
	assert.InDelta(t, 18.0, quad.Material().Emission().G(), 1e-12)

	sphere, ok := s.Primitives()[1].(*geometry.Sphere)
	require.True(t, ok)
	assert.Equal(t, 2.0, sphere.Radius)
	assert.Equal(t, 1.0, sphere.Material().Specularness(), "specularness is clamped")
	assert.True(t, sphere.Material().Emissive().Equals(core.Black))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown material", "primitives:\n  - {type: sphere, material: nope, center: [0, 0, 0], radius: 1}\n"},
		{"unknown type", "materials: {m: {}}\nprimitives:\n  - {type: cone, material: m}\n"},
		{"short vector", "materials: {m: {}}\nprimitives:\n  - {type: sphere, material: m, center: [0, 0], radius: 1}\n"},
		{"bad radius", "materials: {m: {}}\nprimitives:\n  - {type: sphere, material: m, center: [0, 0, 0], radius: 0}\n"},
		{"three corners", "materials: {m: {}}\nprimitives:\n  - {type: quad, material: m, corners: [[0, 0, 0], [1, 0, 0], [1, 1, 0]]}\n"},
		{"bad color", "materials: {m: {albedo: [1]}}\n"},
		{"unknown field", "materials: {m: {glow: 1}}\n"},
		{"not yaml", "primitives: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidSceneFile)
			assert.Nil(t, s)
		})
	}
}

func TestLoadFile_DefaultsNameToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-room.yaml")
	require.NoError(t, os.WriteFile(path, []byte("materials: {m: {albedo: [1, 1, 1]}}\nprimitives:\n  - {type: sphere, material: m, center: [0, 0, 5], radius: 1}\n"), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my-room", s.Name)
	assert.Equal(t, 1, s.GetPrimitiveCount())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
