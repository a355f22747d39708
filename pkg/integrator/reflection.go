package integrator

import (
	"math"

	"github.com/curious-energy/learn-raytracing/pkg/core"
)

// Reflect mirrors the direction i about the normal n
func Reflect(i, n core.Vec3) core.Vec3 {
	// r = i - 2*dot(i,n)*n
	return i.Subtract(n.Multiply(2).Multiply(i.Dot(n)))
}

// Refract bends the direction i through a surface with normal n using Snell's law.
// The surface separates vacuum from a medium with the given refractive index;
// rays arriving from inside the medium (i·n > 0) are handled by swapping the
// indices and flipping the normal. On total internal reflection the zero vector
// is returned.
func Refract(i, n core.Vec3, refractiveIndex float64) core.Vec3 {
	cosi := -max(-1, min(1, i.Dot(n)))
	etai, etat := 1.0, refractiveIndex
	normal := n
	if cosi < 0 {
		cosi = -cosi
		etai, etat = etat, etai
		normal = n.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}
	return i.Multiply(eta).Add(normal.Multiply(eta*cosi - math.Sqrt(k)))
}
