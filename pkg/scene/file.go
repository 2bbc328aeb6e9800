package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// ErrInvalidSceneFile is wrapped by every scene file validation failure
var ErrInvalidSceneFile = errors.New("invalid scene file")

// File is the YAML description of a scene
type File struct {
	Name       string                  `yaml:"name"`
	Materials  map[string]MaterialSpec `yaml:"materials"`
	Primitives []PrimitiveSpec         `yaml:"primitives"`
}

// MaterialSpec describes a material in a scene file
type MaterialSpec struct {
	Albedo           []float64 `yaml:"albedo,flow"`
	Emissive         []float64 `yaml:"emissive,flow"`
	Specular         []float64 `yaml:"specular,flow"`
	EmissiveStrength float64   `yaml:"emissive_strength"`
	Roughness        float64   `yaml:"roughness"`
	Specularness     float64   `yaml:"specularness"`
}

// PrimitiveSpec describes a sphere or a quad in a scene file
type PrimitiveSpec struct {
	Type     string      `yaml:"type"` // "sphere" | "quad"
	Material string      `yaml:"material"`
	Center   []float64   `yaml:"center,flow,omitempty"`
	Radius   float64     `yaml:"radius,omitempty"`
	Corners  [][]float64 `yaml:"corners,flow,omitempty"` // bottom left, bottom right, top right, top left
}

// LoadFile reads a YAML scene description
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse builds a scene from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Scene, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode scene: %w", ErrInvalidSceneFile, err)
	}
	return f.Build()
}

// Build converts the description into a scene
func (f *File) Build() (*Scene, error) {
	materials := make(map[string]*material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		m, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	s := New(f.Name)
	for i, spec := range f.Primitives {
		m, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("%w: primitive %d references unknown material %q", ErrInvalidSceneFile, i, spec.Material)
		}

		p, err := spec.build(m)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		if err := s.AddPrimitive(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (spec MaterialSpec) build() (*material.Material, error) {
	albedo, err := colorOrBlack(spec.Albedo)
	if err != nil {
		return nil, fmt.Errorf("albedo: %w", err)
	}
	emissive, err := colorOrBlack(spec.Emissive)
	if err != nil {
		return nil, fmt.Errorf("emissive: %w", err)
	}
	specular, err := colorOrBlack(spec.Specular)
	if err != nil {
		return nil, fmt.Errorf("specular: %w", err)
	}

	return material.New(material.Config{
		Albedo:           albedo,
		Emissive:         emissive,
		Specular:         specular,
		EmissiveStrength: spec.EmissiveStrength,
		Roughness:        spec.Roughness,
		Specularness:     spec.Specularness,
	}), nil
}

func (spec PrimitiveSpec) build(m *material.Material) (geometry.Primitive, error) {
	switch spec.Type {
	case "sphere":
		center, err := toVec3(spec.Center)
		if err != nil {
			return nil, fmt.Errorf("center: %w", err)
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere radius must be positive, got %g", ErrInvalidSceneFile, spec.Radius)
		}
		return geometry.NewSphere(center, spec.Radius, m), nil

	case "quad":
		if len(spec.Corners) != 4 {
			return nil, fmt.Errorf("%w: quad needs 4 corners, got %d", ErrInvalidSceneFile, len(spec.Corners))
		}
		var corners [4]core.Vec3
		for i, c := range spec.Corners {
			v, err := toVec3(c)
			if err != nil {
				return nil, fmt.Errorf("corner %d: %w", i, err)
			}
			corners[i] = v
		}
		return geometry.NewQuad(corners[0], corners[1], corners[2], corners[3], m), nil

	default:
		return nil, fmt.Errorf("%w: unknown primitive type %q", ErrInvalidSceneFile, spec.Type)
	}
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidSceneFile, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func colorOrBlack(values []float64) (core.Color, error) {
	if len(values) == 0 {
		return core.Black, nil
	}
	v, err := toVec3(values)
	if err != nil {
		return core.Color{}, err
	}
	return core.ColorFromVec3(v), nil
}
