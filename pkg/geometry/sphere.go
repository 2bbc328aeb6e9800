package geometry

import (
	"math"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, m *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: m,
	}
}

// NewUnitSphere creates a sphere of radius 1 at the origin
func NewUnitSphere(m *material.Material) *Sphere {
	return NewSphere(core.Zero, 1.0, m)
}

// Material returns the sphere's material
func (s *Sphere) Material() *material.Material {
	return s.material
}

func (s *Sphere) primitive() {}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray, minDistance, maxDistance float64, closest *HitInfo) bool {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Direction is unit length, so the quadratic reduces to t² + 2bt + c = 0
	b := oc.Dot(ray.Direction())
	c := oc.Dot(oc) - s.Radius*s.Radius

	// Origin outside the sphere and pointing away from it
	if c > 0.0 && b > 0.0 {
		return false
	}

	discriminant := b*b - c
	if discriminant < 0.0 {
		return false
	}

	// Near root first; a negative near root means the origin is inside
	sqrtD := math.Sqrt(discriminant)
	inside := false
	t := -b - sqrtD
	if t < 0.0 {
		inside = true
		t = -b + sqrtD
	}

	if !closest.accepts(t, minDistance, maxDistance) {
		return false
	}

	point := ray.At(t)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	if inside {
		normal = normal.Negate()
	}

	closest.record(t, point, normal, s.material)
	return true
}
