package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// PathTracingIntegrator implements fixed-length unidirectional path tracing.
//
// Paths end when a ray escapes the scene or after MaxBounces surface hits.
// There is no Russian roulette, so paths still carrying energy are cut off
// at the bounce limit and low limits render darker than the converged image.
type PathTracingIntegrator struct {
	tracer Tracer
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(tracer Tracer, config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		tracer: tracer,
		config: config,
	}
}

// Config returns the integrator settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// TracePixel follows one camera ray through the scene and returns the light
// it carries back. The ray is advanced in place; random must not be shared
// with other goroutines.
func (pt *PathTracingIntegrator) TracePixel(ray core.Ray, random *rand.Rand) core.Color {
	color := core.Black
	throughput := core.White

	for bounce := 0; bounce < pt.config.MaxBounces; bounce++ {
		hit := pt.tracer.TraceClosest(ray, pt.config.MinRayLength, pt.config.MaxRayLength)
		if !hit.DidHit {
			break
		}
		m := hit.Material

		incoming := ray.Direction()
		hitPoint := ray.At(hit.Distance)
		ray.Origin = hitPoint.Add(hit.Normal.Multiply(pt.config.SurfaceOffset))

		useSpecular := random.Float64() < m.Specularness()

		diffuseDir := diffuseDirection(hit.Normal, random)

		// Squared roughness gives a perceptually more even blur ramp
		roughness := m.Roughness()
		specularDir := incoming.Reflect(hit.Normal).Lerp(diffuseDir, roughness*roughness)

		if useSpecular {
			ray.SetDirection(specularDir)
		} else {
			ray.SetDirection(diffuseDir)
		}

		color = color.Add(m.Emission().MultiplyColor(throughput))

		if useSpecular {
			throughput = throughput.MultiplyColor(m.Specular())
		} else {
			throughput = throughput.MultiplyColor(m.Albedo())
		}
	}

	return color
}

// diffuseDirection offsets the normal by a random unit vector, approximating
// a cosine-weighted hemisphere sample
func diffuseDirection(normal core.Vec3, random *rand.Rand) core.Vec3 {
	dir := normal.Add(core.RandomUnitVector(random))
	if dir.LengthSquared() < 1e-18 || math.IsNaN(dir.X) {
		return normal
	}
	return dir.Normalize()
}
