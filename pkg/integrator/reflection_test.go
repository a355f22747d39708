package integrator

import (
	"math"
	"testing"

	"github.com/curious-energy/learn-raytracing/pkg/core"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incoming core.Vec3
		normal   core.Vec3
		expected core.Vec3
	}{
		{
			name:     "45 degrees onto floor",
			incoming: core.NewVec3(1, -1, 0).Normalize(),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "head on",
			incoming: core.NewVec3(0, 0, -1),
			normal:   core.NewVec3(0, 0, 1),
			expected: core.NewVec3(0, 0, 1),
		},
		{
			name:     "grazing",
			incoming: core.NewVec3(1, 0, 0),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.incoming, tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
			// Angle of incidence equals angle of reflection
			if math.Abs(result.Dot(tt.normal)+tt.incoming.Dot(tt.normal)) > 1e-12 {
				t.Errorf("Incidence and reflection angles differ")
			}
		})
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	tests := []struct {
		name     string
		incoming core.Vec3
		normal   core.Vec3
	}{
		{"entering", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)},
		{"exiting", core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Refract(tt.incoming, tt.normal, 1.5)
			if result.Subtract(tt.incoming).Length() > 1e-12 {
				t.Errorf("Expected ray to pass straight through as %v, got %v", tt.incoming, result)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	const ior = 1.5
	normal := core.NewVec3(0, 1, 0)
	theta := math.Pi / 4
	incoming := core.NewVec3(math.Sin(theta), -math.Cos(theta), 0)

	result := Refract(incoming, normal, ior)
	if math.Abs(result.Length()-1) > 1e-12 {
		t.Errorf("Expected unit refracted direction, got length %f", result.Length())
	}
	if result.Y >= 0 {
		t.Errorf("Expected refracted ray to continue into the surface, got %v", result)
	}

	sinT := math.Sqrt(1 - result.Y*result.Y)
	if expected := math.Sin(theta) / ior; math.Abs(sinT-expected) > 1e-12 {
		t.Errorf("Expected sin(theta_t)=%f, got %f", expected, sinT)
	}

	// Leaving the medium bends the ray back to its original angle
	back := Refract(result.Negate(), normal, ior)
	if back.Subtract(incoming.Negate()).Length() > 1e-12 {
		t.Errorf("Expected reverse path %v, got %v", incoming.Negate(), back)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	theta := math.Pi / 3 // beyond the critical angle of ~41.8 degrees for glass
	incoming := core.NewVec3(math.Sin(theta), math.Cos(theta), 0)

	result := Refract(incoming, normal, 1.5)
	if !result.IsZero() {
		t.Errorf("Expected zero vector on total internal reflection, got %v", result)
	}

	// The same angle entering the medium refracts normally
	entering := Refract(incoming.Negate(), normal, 1.5)
	if entering.IsZero() {
		t.Error("Expected refraction when entering the medium")
	}
}

func TestRefract_IndexOne(t *testing.T) {
	incoming := core.NewVec3(1, -2, 0.5).Normalize()
	result := Refract(incoming, core.NewVec3(0, 1, 0), 1.0)
	if result.Subtract(incoming).Length() > 1e-12 {
		t.Errorf("Expected unchanged direction for index 1, got %v", result)
	}
}
