package geometry

import (
	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/material"
)

// Epsilon is the self-intersection tolerance shared by every primitive and by
// the offsets applied to secondary ray origins. It is expressed in scene units.
const Epsilon = 1e-3

// Hit contains information about the nearest ray-scene intersection
type Hit struct {
	Point    core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit surface normal, pointing outward
	Material material.Material // Material at the hit point
	Distance float64           // Parameter t along the ray
}

// Shape is a primitive that can be intersected by a ray.
// direction must be unit length.
type Shape interface {
	Intersect(origin, direction core.Vec3) (t float64, ok bool)
	HitAt(origin, direction core.Vec3, t float64) Hit
}
