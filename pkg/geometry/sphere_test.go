package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

const tolerance = 1e-9

var testMaterial = material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5))

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit := Intersect(sphere, ray, 0.001, 1000.0)
	assert.False(t, hit.DidHit)
}

func TestSphere_Intersect_PointingAway(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 5), 1.0, testMaterial)
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, -1))

	hit := Intersect(sphere, ray, 0.001, 1000.0)
	assert.False(t, hit.DidHit)
}

func TestSphere_Intersect_DistanceAlongAxis(t *testing.T) {
	tests := []struct {
		name      string
		radius    float64
		distance  float64
		direction core.Vec3
	}{
		{"unit sphere from z", 1, 5, core.NewVec3(0, 0, 1)},
		{"large sphere from x", 3, 10, core.NewVec3(1, 0, 0)},
		{"small sphere diagonal", 0.25, 2, core.NewVec3(1, 1, 1)},
		{"just outside", 2, 2.0001, core.NewVec3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.Zero, tt.radius, testMaterial)
			dir := tt.direction.Normalize()
			ray := core.NewRay(dir.Multiply(-tt.distance), dir)

			hit := Intersect(sphere, ray, 1e-6, 1000.0)
			require.True(t, hit.DidHit)
			assert.InDelta(t, tt.distance-tt.radius, hit.Distance, 1e-9)
			assert.InDelta(t, 1.0, hit.Normal.Length(), 1e-9)
			assert.Less(t, hit.Normal.Dot(dir), 0.0, "normal must face the incoming ray")
			assert.Same(t, testMaterial, hit.Material)
		})
	}
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	sphere := NewSphere(core.Zero, 2.0, testMaterial)
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	hit := Intersect(sphere, ray, 0.001, 1000.0)
	require.True(t, hit.DidHit)
	assert.InDelta(t, 2.0, hit.Distance, tolerance)
	assert.InDelta(t, -1.0, hit.Normal.Z, tolerance, "normal flips to point back inside")
}

func TestSphere_Intersect_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 10), 1.0, testMaterial)
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	tests := []struct {
		name        string
		minDistance float64
		maxDistance float64
		expectHit   bool
	}{
		{"within range", 0.01, 100, true},
		{"beyond max", 0.01, 8.5, false},
		{"max equals distance", 0.01, 9, false},
		{"closer than min", 9.5, 100, false},
		{"min equals distance", 9, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Intersect(sphere, ray, tt.minDistance, tt.maxDistance)
			assert.Equal(t, tt.expectHit, hit.DidHit)
		})
	}
}

func TestSphere_Intersect_KeepsCloserHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 10), 1.0, testMaterial)
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, 1))

	closest := NewHitInfo(1000)
	closest.Distance = 4
	closest.DidHit = true

	assert.False(t, sphere.Intersect(ray, 0.01, 1000, &closest))
	assert.Equal(t, 4.0, closest.Distance)
	assert.Nil(t, closest.Material)
}

func TestSphere_Intersect_DoesNotMutate(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 1.5, testMaterial)
	before := *sphere
	ray := core.NewRay(core.Zero, core.NewVec3(1, 2, 3))
	rayBefore := ray

	Intersect(sphere, ray, 0.001, math.Inf(1))
	assert.Equal(t, before, *sphere)
	assert.Equal(t, rayBefore, ray)
}

func TestNewUnitSphere(t *testing.T) {
	sphere := NewUnitSphere(testMaterial)
	assert.Equal(t, core.Zero, sphere.Center)
	assert.Equal(t, 1.0, sphere.Radius)
}
