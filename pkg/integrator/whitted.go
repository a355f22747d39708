package integrator

import (
	"math"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/geometry"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

// DefaultMaxDepth is the deepest recursion level that still intersects the
// scene; a call at depth DefaultMaxDepth+1 returns the background.
// With the default of 4, depth 5 is the first depth that returns the background.
const DefaultMaxDepth = 4

// Config contains the Whitted integrator settings
type Config struct {
	MaxDepth int // Deepest traced recursion level
}

// DefaultConfig returns the reference recursion bound
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// Whitted implements recursive ray tracing: direct diffuse and specular
// lighting with hard shadows, plus recursively traced reflection and
// refraction, weighted by the material albedo.
type Whitted struct {
	config Config
}

// NewWhitted creates a new Whitted integrator
func NewWhitted(config Config) *Whitted {
	return &Whitted{config: config}
}

var defaultWhitted = NewWhitted(DefaultConfig())

// Cast traces a ray with the default recursion bound.
// See (*Whitted).Cast.
func Cast(origin, direction core.Vec3, s *scene.Scene, depth int) core.Vec3 {
	return defaultWhitted.Cast(origin, direction, s, depth)
}

// RayColor implements Integrator for a primary ray
func (w *Whitted) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	return w.Cast(ray.Origin, ray.Direction, s, 0)
}

// Cast returns the unclamped linear color seen from origin along direction.
// direction must be unit length; the zero direction (no transmission after
// total internal reflection) carries no light. Rays past the recursion bound
// and rays that escape the scene return the scene background.
func (w *Whitted) Cast(origin, direction core.Vec3, s *scene.Scene, depth int) core.Vec3 {
	if depth > w.config.MaxDepth {
		return s.Background
	}
	if direction.IsZero() {
		return core.Vec3{}
	}

	hit, ok := s.Intersect(origin, direction)
	if !ok {
		return s.Background
	}

	m := hit.Material
	n := hit.Normal

	reflectDir := Reflect(direction, n).Normalize()
	refractDir := Refract(direction, n, m.RefractiveIndex).Normalize()
	reflectColor := w.Cast(offsetOrigin(hit.Point, reflectDir, n), reflectDir, s, depth+1)
	refractColor := w.Cast(offsetOrigin(hit.Point, refractDir, n), refractDir, s, depth+1)

	diffuse, specular := w.directLight(hit, direction, s)

	return m.DiffuseColor.Multiply(diffuse).Multiply(m.Albedo.Diffuse()).
		Add(core.NewVec3(1, 1, 1).Multiply(specular).Multiply(m.Albedo.Specular())).
		Add(reflectColor.Multiply(m.Albedo.Reflective())).
		Add(refractColor.Multiply(m.Albedo.Refractive()))
}

// directLight sums the diffuse and specular intensity of every light that is
// not occluded from the hit point
func (w *Whitted) directLight(hit geometry.Hit, direction core.Vec3, s *scene.Scene) (diffuse, specular float64) {
	n := hit.Normal
	for _, light := range s.Lights {
		toLight := light.Position.Subtract(hit.Point)
		lightDir := toLight.Normalize()
		lightDist := toLight.Length()

		shadowOrig := offsetOrigin(hit.Point, lightDir, n)
		if s.Occluded(shadowOrig, lightDir, lightDist) {
			continue
		}

		diffuse += light.Intensity * max(0, lightDir.Dot(n))
		highlight := max(0, Reflect(lightDir.Negate(), n).Negate().Dot(direction))
		specular += math.Pow(highlight, hit.Material.SpecularExponent) * light.Intensity
	}
	return diffuse, specular
}

// offsetOrigin moves a point off the surface by geometry.Epsilon, onto the
// side of the surface that dir leaves towards
func offsetOrigin(point, dir, normal core.Vec3) core.Vec3 {
	if dir.Dot(normal) < 0 {
		return point.Subtract(normal.Multiply(geometry.Epsilon))
	}
	return point.Add(normal.Multiply(geometry.Epsilon))
}
