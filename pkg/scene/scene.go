package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/geometry"
)

// MaxDistance is the distance beyond which a hit is treated as a miss
const MaxDistance = 1000.0

// ErrInvalidScene is returned when a scene fails validation
var ErrInvalidScene = errors.New("invalid scene")

// Light is a point light
type Light struct {
	Position  core.Vec3
	Intensity float64
}

// NewLight creates a new point light
func NewLight(position core.Vec3, intensity float64) Light {
	return Light{Position: position, Intensity: intensity}
}

// Scene contains all the elements needed for rendering.
// A Scene must not be modified while it is being rendered; every query
// only reads it, so one Scene can be shared by any number of goroutines.
type Scene struct {
	Spheres    []geometry.Sphere      // Objects in the scene, searched linearly
	Lights     []Light                // Point lights in the scene
	Floor      *geometry.Checkerboard // Optional checkerboard floor
	Background core.Vec3              // Color returned for rays that escape
}

// Option configures a Scene built with New
type Option func(*Scene)

// WithFloor adds a checkerboard floor
func WithFloor(floor geometry.Checkerboard) Option {
	return func(s *Scene) {
		s.Floor = &floor
	}
}

// WithBackground overrides the background color
func WithBackground(color core.Vec3) Option {
	return func(s *Scene) {
		s.Background = color
	}
}

// DefaultBackground is the sky color seen by rays that hit nothing
func DefaultBackground() core.Vec3 {
	return core.NewVec3(0.2, 0.7, 0.8)
}

// New creates a scene from spheres and lights
func New(spheres []geometry.Sphere, lights []Light, opts ...Option) *Scene {
	s := &Scene{
		Spheres:    spheres,
		Lights:     lights,
		Background: DefaultBackground(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks sphere radii, light intensities and materials
func (s *Scene) Validate() error {
	for i, sphere := range s.Spheres {
		if sphere.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d radius must be > 0, got %g", ErrInvalidScene, i, sphere.Radius)
		}
		if err := sphere.Material.Validate(); err != nil {
			return fmt.Errorf("%w: sphere %d: %w", ErrInvalidScene, i, err)
		}
	}
	for i, light := range s.Lights {
		if light.Intensity <= 0 {
			return fmt.Errorf("%w: light %d intensity must be > 0, got %g", ErrInvalidScene, i, light.Intensity)
		}
	}
	if s.Floor != nil && (s.Floor.HalfWidth <= 0 || s.Floor.ZFar >= s.Floor.ZNear) {
		return fmt.Errorf("%w: floor bounds are empty", ErrInvalidScene)
	}
	return nil
}

// Nearest returns the closest shape along a ray and its distance.
// direction must be unit length. Hits at MaxDistance or beyond are misses.
func (s *Scene) Nearest(origin, direction core.Vec3) (geometry.Shape, float64, bool) {
	nearest := math.MaxFloat64
	hitSphere := -1
	hitFloor := false

	for i := range s.Spheres {
		if t, ok := s.Spheres[i].Intersect(origin, direction); ok && t < nearest {
			nearest = t
			hitSphere = i
		}
	}

	if s.Floor != nil {
		if t, ok := s.Floor.Intersect(origin, direction); ok && t < nearest {
			nearest = t
			hitFloor = true
		}
	}

	switch {
	case nearest >= MaxDistance:
		return nil, 0, false
	case hitFloor:
		return *s.Floor, nearest, true
	default:
		return s.Spheres[hitSphere], nearest, true
	}
}

// Intersect finds the nearest hit along a ray among all spheres and the floor
func (s *Scene) Intersect(origin, direction core.Vec3) (geometry.Hit, bool) {
	shape, t, ok := s.Nearest(origin, direction)
	if !ok {
		return geometry.Hit{}, false
	}
	return shape.HitAt(origin, direction, t), true
}

// Occluded reports whether anything lies between origin and a point at
// distance maxDist along direction.
func (s *Scene) Occluded(origin, direction core.Vec3, maxDist float64) bool {
	hit, ok := s.Intersect(origin, direction)
	return ok && hit.Point.Distance(origin) < maxDist
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Spheres)
	if s.Floor != nil {
		count++
	}
	return count
}
