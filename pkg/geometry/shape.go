package geometry

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// HitInfo records the closest intersection found so far along a ray
type HitInfo struct {
	Distance float64            // Distance along the ray; the current upper bound while searching
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Unit normal facing the incoming ray
	DidHit   bool               // Whether any primitive accepted the ray
	Material *material.Material // Material of the winning primitive
}

// NewHitInfo creates an empty record bounded by maxDistance
func NewHitInfo(maxDistance float64) HitInfo {
	return HitInfo{Distance: maxDistance}
}

// accepts reports whether a hit at distance t should replace the current best
func (h *HitInfo) accepts(t, minDistance, maxDistance float64) bool {
	return t > minDistance && t < maxDistance && t < h.Distance
}

func (h *HitInfo) record(t float64, point, normal core.Vec3, m *material.Material) {
	h.Distance = t
	h.Point = point
	h.Normal = normal
	h.DidHit = true
	h.Material = m
}

// Primitive is the closed set of shapes the renderer can trace against:
// *Sphere and *Quad.
type Primitive interface {
	// Intersect tests the ray against the primitive and overwrites closest
	// when a hit lies strictly inside (minDistance, maxDistance) and strictly
	// before closest.Distance. Neither the primitive nor the ray is modified.
	Intersect(ray core.Ray, minDistance, maxDistance float64, closest *HitInfo) bool

	// Material returns the material owned by the primitive
	Material() *material.Material

	primitive()
}

// Intersect runs a fresh intersection query against a single primitive
func Intersect(p Primitive, ray core.Ray, minDistance, maxDistance float64) HitInfo {
	hit := NewHitInfo(maxDistance)
	p.Intersect(ray, minDistance, maxDistance, &hit)
	return hit
}
