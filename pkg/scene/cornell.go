package scene

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// Light color and strength shared by the built-in scenes
var (
	LightColor    = core.NewColor(1.0, 0.9, 0.7)
	LightStrength = 20.0
)

// NewCornellScene creates a box resembling the Cornell box, open towards
// the camera at the origin, lit by a quad in the ceiling and holding three
// diffuse spheres
func NewCornellScene() *Scene {
	return newCornell("cornell", [3]*material.Material{
		material.NewDiffuse(core.NewColor(0.9, 1.0, 0.3)),
		material.NewDiffuse(core.NewColor(1.0, 0.2, 1.0)),
		material.NewDiffuse(core.NewColor(0.0, 0.8, 0.8)),
	})
}

// NewGlossyCornellScene is the Cornell scene with spheres ranging from a
// rough to a mirror-like finish
func NewGlossyCornellScene() *Scene {
	specular := core.NewColor(0.9, 0.9, 0.9)
	return newCornell("cornell-glossy", [3]*material.Material{
		material.NewGlossy(core.NewColor(0.9, 1.0, 0.3), specular, 0.9, 0.3),
		material.NewGlossy(core.NewColor(1.0, 0.2, 1.0), specular, 0.4, 0.6),
		material.NewGlossy(core.NewColor(0.0, 0.8, 0.8), specular, 0.0, 1.0),
	})
}

func newCornell(name string, sphereMaterials [3]*material.Material) *Scene {
	s := New(name)

	white := material.NewDiffuse(core.NewColor(0.7, 0.7, 0.7))
	red := material.NewDiffuse(core.NewColor(0.7, 0.1, 0.1))
	green := material.NewDiffuse(core.NewColor(0.1, 0.7, 0.1))
	light := material.NewEmissive(LightColor, LightStrength)

	// Back wall
	s.mustAdd(geometry.NewQuad(
		core.NewVec3(-12.6, -12.6, 35.0),
		core.NewVec3(12.6, -12.6, 35.0),
		core.NewVec3(12.6, 12.6, 35.0),
		core.NewVec3(-12.6, 12.6, 35.0),
		white,
	))

	// Floor
	s.mustAdd(geometry.NewQuad(
		core.NewVec3(-12.6, -12.45, 35.0),
		core.NewVec3(12.6, -12.45, 35.0),
		core.NewVec3(12.6, -12.45, 25.0),
		core.NewVec3(-12.6, -12.45, 25.0),
		white,
	))

	// Ceiling
	s.mustAdd(geometry.NewQuad(
		core.NewVec3(-12.6, 12.5, 35.0),
		core.NewVec3(12.6, 12.5, 35.0),
		core.NewVec3(12.6, 12.5, 25.0),
		core.NewVec3(-12.6, 12.5, 25.0),
		white,
	))

	// Left wall (red)
	s.mustAdd(geometry.NewQuad(
		core.NewVec3(-12.5, -12.6, 35.0),
		core.NewVec3(-12.5, -12.6, 25.0),
		core.NewVec3(-12.5, 12.6, 25.0),
		core.NewVec3(-12.5, 12.6, 35.0),
		red,
	))

	// Right wall (green)
	s.mustAdd(geometry.NewQuad(
		core.NewVec3(12.5, -12.6, 35.0),
		core.NewVec3(12.5, -12.6, 25.0),
		core.NewVec3(12.5, 12.6, 25.0),
		core.NewVec3(12.5, 12.6, 35.0),
		green,
	))

	// Ceiling light, just below the ceiling
	s.mustAdd(geometry.NewQuad(
		core.NewVec3(-5.0, 12.4, 32.5),
		core.NewVec3(5.0, 12.4, 32.5),
		core.NewVec3(5.0, 12.4, 27.5),
		core.NewVec3(-5.0, 12.4, 27.5),
		light,
	))

	s.mustAdd(geometry.NewSphere(core.NewVec3(-9.0, -9.5, 30.0), 3.0, sphereMaterials[0]))
	s.mustAdd(geometry.NewSphere(core.NewVec3(0.0, -9.5, 30.0), 3.0, sphereMaterials[1]))
	s.mustAdd(geometry.NewSphere(core.NewVec3(9.0, -9.5, 30.0), 3.0, sphereMaterials[2]))

	return s
}

// NewEmissiveQuadScene creates a single emissive quad facing the camera with
// one diffuse sphere between the two
func NewEmissiveQuadScene() *Scene {
	s := New("emissive-quad")

	s.mustAdd(geometry.NewQuad(
		core.NewVec3(-10, -10, 20),
		core.NewVec3(10, -10, 20),
		core.NewVec3(10, 10, 20),
		core.NewVec3(-10, 10, 20),
		material.NewEmissive(LightColor, LightStrength),
	))
	s.mustAdd(geometry.NewSphere(core.NewVec3(0, 0, 10), 2, material.NewDiffuse(core.NewColor(0.8, 0.8, 0.8))))

	return s
}

// mustAdd is used by the built-in builders, which never add to a frozen scene
func (s *Scene) mustAdd(p geometry.Primitive) {
	if err := s.AddPrimitive(p); err != nil {
		panic(err)
	}
}
