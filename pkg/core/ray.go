package core

// Ray represents a ray with an origin and a unit-length direction.
// The integrator advances a single Ray from bounce to bounce instead of
// allocating a new one, so the fields are mutated through SetDirection.
type Ray struct {
	Origin    Vec3
	direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, direction: direction.Normalize()}
}

// Direction returns the normalized direction
func (r Ray) Direction() Vec3 {
	return r.direction
}

// SetDirection replaces the direction, normalizing it
func (r *Ray) SetDirection(direction Vec3) {
	r.direction = direction.Normalize()
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.direction.Multiply(t))
}
