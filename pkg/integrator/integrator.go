package integrator

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
)

// Tracer finds the closest primitive along a ray. *scene.Scene implements it.
type Tracer interface {
	TraceClosest(ray core.Ray, minDistance, maxDistance float64) geometry.HitInfo
}

// DefaultSurfaceOffset is how far a bounced ray starts above the surface it
// left, so it does not immediately re-hit that surface
const DefaultSurfaceOffset = 0.01

// Config contains the integrator's ray settings
type Config struct {
	MinRayLength  float64 // Hits closer than this are ignored
	MaxRayLength  float64 // Hits farther than this count as misses
	MaxBounces    int     // Hard cap on path length
	SurfaceOffset float64 // Offset along the normal for bounced rays
}

// DefaultConfig returns the settings used by the built-in scenes
func DefaultConfig() Config {
	return Config{
		MinRayLength:  0.01,
		MaxRayLength:  10000.0,
		MaxBounces:    4,
		SurfaceOffset: DefaultSurfaceOffset,
	}
}
