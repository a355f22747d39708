package material

import (
	"errors"
	"fmt"

	"github.com/curious-energy/learn-raytracing/pkg/core"
)

// ErrInvalidMaterial is returned when material parameters are out of range
var ErrInvalidMaterial = errors.New("invalid material")

// Material describes how a surface responds to light in the Whitted model.
// Materials are plain values and are copied into the geometry that owns them.
type Material struct {
	RefractiveIndex  float64     // Index of refraction, 1 for opaque surfaces
	Albedo           core.Albedo // Weights of diffuse, specular, reflective, refractive terms
	DiffuseColor     core.Vec3   // Base color used by the diffuse term
	SpecularExponent float64     // Phong exponent of the specular highlight
}

// New creates a new material
func New(refractiveIndex float64, albedo core.Albedo, diffuseColor core.Vec3, specularExponent float64) Material {
	return Material{
		RefractiveIndex:  refractiveIndex,
		Albedo:           albedo,
		DiffuseColor:     diffuseColor,
		SpecularExponent: specularExponent,
	}
}

// Default returns a purely diffuse black material with index of refraction 1
func Default() Material {
	return New(1, core.NewAlbedo(1, 0, 0, 0), core.Vec3{}, 0)
}

// WithDiffuseColor returns a copy of m with a different diffuse color
func (m Material) WithDiffuseColor(c core.Vec3) Material {
	m.DiffuseColor = c
	return m
}

// Validate checks that the material parameters are physically meaningful
func (m Material) Validate() error {
	if m.RefractiveIndex < 1 {
		return fmt.Errorf("%w: refractive index must be >= 1, got %g", ErrInvalidMaterial, m.RefractiveIndex)
	}
	for i, w := range m.Albedo {
		if w < 0 {
			return fmt.Errorf("%w: albedo[%d] must be non-negative, got %g", ErrInvalidMaterial, i, w)
		}
	}
	if m.SpecularExponent < 0 {
		return fmt.Errorf("%w: specular exponent must be non-negative, got %g", ErrInvalidMaterial, m.SpecularExponent)
	}
	return nil
}
