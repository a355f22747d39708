package geometry

import (
	"math"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect returns the distance along the ray to the nearest intersection
// that lies further than Epsilon from the origin.
// A ray starting inside the sphere reports the exit point.
// Spheres with a non-positive radius are never hit.
func (s Sphere) Intersect(origin, direction core.Vec3) (float64, bool) {
	if s.Radius <= 0 {
		return 0, false
	}

	// Vector from ray origin to sphere center, and its projection on the ray
	l := s.Center.Subtract(origin)
	tca := l.Dot(direction)

	// Squared distance from the center to the ray
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}

	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t0 < Epsilon {
		t0 = t1
	}
	if t0 < Epsilon {
		return 0, false
	}
	return t0, true
}

// NormalAt returns the outward unit normal at a point on the surface
func (s Sphere) NormalAt(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Normalize()
}

// HitAt builds the hit record for the intersection at distance t
func (s Sphere) HitAt(origin, direction core.Vec3, t float64) Hit {
	point := core.NewRay(origin, direction).At(t)
	return Hit{
		Point:    point,
		Normal:   s.NormalAt(point),
		Material: s.Material,
		Distance: t,
	}
}
