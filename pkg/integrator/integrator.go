package integrator

import (
	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the unclamped linear color seen along a ray.
	// The ray direction must be unit length.
	RayColor(ray core.Ray, s *scene.Scene) core.Vec3
}
