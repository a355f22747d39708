package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Albedo weights the four light contributions of a surface:
// diffuse, specular, reflective and refractive, in that order.
// Weights are combined linearly and need not sum to 1.
type Albedo [4]float64

// NewAlbedo creates a new Albedo
func NewAlbedo(diffuse, specular, reflective, refractive float64) Albedo {
	return Albedo{diffuse, specular, reflective, refractive}
}

// Diffuse returns the weight of the diffuse term
func (a Albedo) Diffuse() float64 { return a[0] }

// Specular returns the weight of the specular highlight term
func (a Albedo) Specular() float64 { return a[1] }

// Reflective returns the weight of the reflected ray
func (a Albedo) Reflective() float64 { return a[2] }

// Refractive returns the weight of the refracted ray
func (a Albedo) Refractive() float64 { return a[3] }
