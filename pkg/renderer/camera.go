package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// Camera is a pinhole camera at the origin looking down +Z. The horizontal
// image axis spans [-1, 1]; the vertical axis is scaled by the aspect ratio.
type Camera struct {
	width       int
	height      int
	aspectRatio float64
	distance    float64 // Distance to the image plane
}

// NewCamera creates a camera for a width x height image with the given
// field of view in degrees
func NewCamera(width, height int, fieldOfView float64) *Camera {
	return &Camera{
		width:       width,
		height:      height,
		aspectRatio: float64(width) / float64(height),
		distance:    1.0 / math.Tan(fieldOfView*0.5*math.Pi/180.0),
	}
}

// Distance returns the distance from the origin to the image plane
func (c *Camera) Distance() float64 {
	return c.distance
}

// GetRay returns a ray through pixel (x, y) offset by (jitterU, jitterV),
// each in [-0.5, 0.5]. Row 0 is the top of the image.
func (c *Camera) GetRay(x, y int, jitterU, jitterV float64) core.Ray {
	u := (float64(x) + jitterU) / float64(c.width)
	v := (float64(y) + jitterV) / float64(c.height)

	// Flip so that row 0 is at the top
	v = 1.0 - v

	u = u*2.0 - 1.0
	v = v*2.0 - 1.0
	v /= c.aspectRatio

	return core.NewRay(core.Zero, core.NewVec3(u, v, c.distance))
}

// GetJitteredRay returns a ray through a uniformly jittered point of pixel (x, y)
func (c *Camera) GetJitteredRay(x, y int, random *rand.Rand) core.Ray {
	jitterU := random.Float64() - 0.5
	jitterV := random.Float64() - 0.5
	return c.GetRay(x, y, jitterU, jitterV)
}
