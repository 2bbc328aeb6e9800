package geometry

import (
	"math"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// axisThreshold is the smallest direction component trusted as a divisor
// when recovering the hit distance from the intersection point
const axisThreshold = 0.1

// parallelEpsilon rejects rays running along the quad's plane
const parallelEpsilon = 1e-12

// Quad represents a planar quadrilateral given by four coplanar corners in
// counter-clockwise order when seen from the front face
type Quad struct {
	BottomLeft  core.Vec3
	BottomRight core.Vec3
	TopRight    core.Vec3
	TopLeft     core.Vec3
	material    *material.Material
}

// NewQuad creates a new quad from its corners
func NewQuad(bottomLeft, bottomRight, topRight, topLeft core.Vec3, m *material.Material) *Quad {
	return &Quad{
		BottomLeft:  bottomLeft,
		BottomRight: bottomRight,
		TopRight:    topRight,
		TopLeft:     topLeft,
		material:    m,
	}
}

// NewUnitQuad creates a 1x1 quad centered on the origin in the z=0 plane,
// facing +Z
func NewUnitQuad(m *material.Material) *Quad {
	return NewQuad(
		core.NewVec3(-0.5, -0.5, 0),
		core.NewVec3(0.5, -0.5, 0),
		core.NewVec3(0.5, 0.5, 0),
		core.NewVec3(-0.5, 0.5, 0),
		m,
	)
}

// Material returns the quad's material
func (q *Quad) Material() *material.Material {
	return q.material
}

func (q *Quad) primitive() {}

// Normal returns the unit normal of the front face
func (q *Quad) Normal() core.Vec3 {
	return q.TopRight.Subtract(q.BottomLeft).Cross(q.TopRight.Subtract(q.BottomRight)).Normalize()
}

// Intersect tests if a ray intersects with the quad. The quad is split along
// the bottomLeft/topRight diagonal and each triangle is tested with scalar
// triple products against the line through the ray.
func (q *Quad) Intersect(ray core.Ray, minDistance, maxDistance float64, closest *HitInfo) bool {
	a, b, c, d := q.BottomLeft, q.BottomRight, q.TopRight, q.TopLeft
	normal := q.Normal()
	facing := normal.Dot(ray.Direction())

	// Also rejects degenerate quads, whose normal is NaN
	if !(math.Abs(facing) > parallelEpsilon) {
		return false
	}

	// Test the face the ray approaches; working on local copies keeps the
	// quad itself untouched
	if facing > 0.0 {
		normal = normal.Negate()
		a, d = d, a
		b, c = c, b
	}

	pq := ray.Direction()
	pa := a.Subtract(ray.Origin)
	pb := b.Subtract(ray.Origin)
	pc := c.Subtract(ray.Origin)

	// Which side of the diagonal the line passes selects the triangle
	m := pc.Cross(pq)
	v := pa.Dot(m)

	var intersection core.Vec3
	if v >= 0.0 {
		// Triangle a, b, c
		u := -pb.Dot(m)
		if u < 0.0 {
			return false
		}
		w := scalarTripleProduct(pq, pb, pa)
		if w < 0.0 {
			return false
		}

		sum := u + v + w
		if sum == 0.0 {
			return false
		}
		inv := 1.0 / sum
		intersection = a.Multiply(u * inv).Add(b.Multiply(v * inv)).Add(c.Multiply(w * inv))
	} else {
		// Triangle a, d, c
		pd := d.Subtract(ray.Origin)
		u := pd.Dot(m)
		if u < 0.0 {
			return false
		}
		w := scalarTripleProduct(pq, pa, pd)
		if w < 0.0 {
			return false
		}
		v = -v

		sum := u + v + w
		if sum == 0.0 {
			return false
		}
		inv := 1.0 / sum
		intersection = a.Multiply(u * inv).Add(d.Multiply(v * inv)).Add(c.Multiply(w * inv))
	}

	t, ok := distanceAlong(ray, intersection)
	if !ok || !closest.accepts(t, minDistance, maxDistance) {
		return false
	}

	closest.record(t, intersection, normal, q.material)
	return true
}

// distanceAlong recovers the ray parameter of a point known to lie on the
// ray's line, dividing by the largest direction component
func distanceAlong(ray core.Ray, point core.Vec3) (float64, bool) {
	dir := ray.Direction()
	offset := point.Subtract(ray.Origin)

	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)
	switch {
	case ax >= ay && ax >= az && ax > axisThreshold:
		return offset.X / dir.X, true
	case ay >= az && ay > axisThreshold:
		return offset.Y / dir.Y, true
	case az > axisThreshold:
		return offset.Z / dir.Z, true
	}
	return 0, false
}

func scalarTripleProduct(a, b, c core.Vec3) float64 {
	return a.Cross(b).Dot(c)
}
