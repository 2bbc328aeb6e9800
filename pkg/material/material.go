package material

import (
	"math"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// Material holds the shading parameters of a surface. It is immutable once
// constructed and shared by every hit against its owning primitive.
type Material struct {
	albedo           core.Color
	emissive         core.Color
	specular         core.Color
	emissiveStrength float64
	roughness        float64
	specularness     float64
}

// Config describes a material before its parameters are clamped
type Config struct {
	Albedo           core.Color
	Emissive         core.Color
	Specular         core.Color
	EmissiveStrength float64
	Roughness        float64 // 0 = mirror, 1 = fully diffuse reflection
	Specularness     float64 // probability of a specular bounce
}

// New creates a material, clamping roughness and specularness to [0, 1]
// and the emissive strength to be non-negative
func New(config Config) *Material {
	return &Material{
		albedo:           config.Albedo,
		emissive:         config.Emissive,
		specular:         config.Specular,
		emissiveStrength: math.Max(0, config.EmissiveStrength),
		roughness:        core.Clamp01(config.Roughness),
		specularness:     core.Clamp01(config.Specularness),
	}
}

// NewDiffuse creates a purely diffuse, non-emissive material
func NewDiffuse(albedo core.Color) *Material {
	return New(Config{Albedo: albedo})
}

// NewEmissive creates a light source material
func NewEmissive(emissive core.Color, strength float64) *Material {
	return New(Config{Emissive: emissive, EmissiveStrength: strength})
}

// NewGlossy creates a material that reflects specularly with the given probability
func NewGlossy(albedo, specular core.Color, roughness, specularness float64) *Material {
	return New(Config{
		Albedo:       albedo,
		Specular:     specular,
		Roughness:    roughness,
		Specularness: specularness,
	})
}

func (m *Material) Albedo() core.Color        { return m.albedo }
func (m *Material) Emissive() core.Color      { return m.emissive }
func (m *Material) Specular() core.Color      { return m.specular }
func (m *Material) EmissiveStrength() float64 { return m.emissiveStrength }
func (m *Material) Roughness() float64        { return m.roughness }
func (m *Material) Specularness() float64     { return m.specularness }

// Emission returns the emitted radiance, the emissive color scaled by its strength
func (m *Material) Emission() core.Color {
	return m.emissive.Multiply(m.emissiveStrength)
}
