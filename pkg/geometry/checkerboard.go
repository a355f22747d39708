package geometry

import (
	"math"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/material"
)

// Checkerboard is a horizontal floor at a fixed height, bounded to a
// rectangle in x/z, with a procedural two-color checker pattern.
type Checkerboard struct {
	Height    float64   // Y coordinate of the floor
	HalfWidth float64   // Floor spans -HalfWidth < x < HalfWidth
	ZNear     float64   // Floor spans ZFar < z < ZNear
	ZFar      float64
	Odd       core.Vec3 // Color of odd cells
	Even      core.Vec3 // Color of even cells
}

// DefaultCheckerboard returns the reference floor below the default scene
func DefaultCheckerboard() Checkerboard {
	return Checkerboard{
		Height:    -4,
		HalfWidth: 10,
		ZNear:     -10,
		ZFar:      -30,
		Odd:       core.NewVec3(0.3, 0.3, 0.3),
		Even:      core.NewVec3(0.3, 0.2, 0.1),
	}
}

// Intersect returns the distance to the floor if the ray hits it inside its bounds
func (c Checkerboard) Intersect(origin, direction core.Vec3) (float64, bool) {
	// Rays (nearly) parallel to the floor never hit it
	if math.Abs(direction.Y) <= Epsilon {
		return 0, false
	}

	t := -(origin.Y - c.Height) / direction.Y
	if t <= Epsilon {
		return 0, false
	}

	p := core.NewRay(origin, direction).At(t)
	if math.Abs(p.X) >= c.HalfWidth || p.Z >= c.ZNear || p.Z <= c.ZFar {
		return 0, false
	}
	return t, true
}

// ColorAt returns the checker color at a point on the floor.
// Cells are two units wide; the x offset keeps the pattern from mirroring at x = 0.
func (c Checkerboard) ColorAt(p core.Vec3) core.Vec3 {
	if (int(0.5*p.X+1000)+int(0.5*p.Z))&1 == 1 {
		return c.Odd
	}
	return c.Even
}

// HitAt builds the hit record for the intersection at distance t
func (c Checkerboard) HitAt(origin, direction core.Vec3, t float64) Hit {
	point := core.NewRay(origin, direction).At(t)
	return Hit{
		Point:    point,
		Normal:   core.NewVec3(0, 1, 0),
		Material: material.Default().WithDiffuseColor(c.ColorAt(point)),
		Distance: t,
	}
}
