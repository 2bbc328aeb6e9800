package core

import "math"

// ACES filmic curve coefficients (Narkowicz fit)
const (
	acesA = 2.51
	acesB = 0.03
	acesC = 2.43
	acesD = 0.59
	acesE = 0.14
)

// DefaultGamma is the display gamma used when none is configured
const DefaultGamma = 2.2

// Color is a linear RGB triple. Channels are unbounded before tone mapping
// and lie in [0, 1] afterwards.
type Color struct {
	data Vec3
}

// NewColor creates a color from its channels
func NewColor(r, g, b float64) Color {
	return Color{data: Vec3{X: r, Y: g, Z: b}}
}

// ColorFromVec3 reinterprets a vector as a color
func ColorFromVec3(v Vec3) Color {
	return Color{data: v}
}

var (
	Black  = NewColor(0, 0, 0)
	White  = NewColor(1, 1, 1)
	Red    = NewColor(1, 0, 0)
	Green  = NewColor(0, 1, 0)
	Blue   = NewColor(0, 0, 1)
	Purple = NewColor(1, 0, 1)
)

// R returns the red channel
func (c Color) R() float64 { return c.data.X }

// G returns the green channel
func (c Color) G() float64 { return c.data.Y }

// B returns the blue channel
func (c Color) B() float64 { return c.data.Z }

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{data: c.data.Add(other.data)}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{data: c.data.Multiply(scalar)}
}

// MultiplyColor returns the channel-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{data: c.data.MultiplyVec(other.data)}
}

// Mix linearly blends towards other by t
func (c Color) Mix(other Color, t float64) Color {
	return Color{data: c.data.Lerp(other.data, t)}
}

// Clamp01 limits every channel to [0, 1]
func (c Color) Clamp01() Color {
	return NewColor(Clamp01(c.data.X), Clamp01(c.data.Y), Clamp01(c.data.Z))
}

// ToneMapACES compresses HDR channels into [0, 1] with the ACES filmic curve
func (c Color) ToneMapACES() Color {
	return NewColor(aces(c.data.X), aces(c.data.Y), aces(c.data.Z))
}

// GammaCorrect encodes linear channels for display
func (c Color) GammaCorrect(gamma float64) Color {
	invGamma := 1.0 / gamma
	return NewColor(
		math.Pow(c.data.X, invGamma),
		math.Pow(c.data.Y, invGamma),
		math.Pow(c.data.Z, invGamma),
	)
}

// Equals compares channels exactly
func (c Color) Equals(other Color) bool {
	return c.data.Equals(other.data)
}

func aces(x float64) float64 {
	return Clamp01((x * (acesA*x + acesB)) / (x*(acesC*x+acesD) + acesE))
}
