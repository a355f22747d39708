package core

import (
	"encoding/json"

	"github.com/golang/geo/r3"
)

// Vec3 represents a 3D vector. Depending on context it is a point, a direction
// or a linear RGB color.
type Vec3 r3.Vector

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) r3() r3.Vector { return r3.Vector(v) }

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(v.r3().Add(other.r3()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(v.r3().Sub(other.r3()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(v.r3().Mul(scalar))
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return v.Multiply(-1)
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.r3().Dot(other.r3())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(v.r3().Cross(other.r3()))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return v.r3().Norm()
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.r3().Norm2()
}

// Distance returns the euclidean distance between two points
func (v Vec3) Distance(other Vec3) float64 {
	return v.r3().Distance(other.r3())
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	return Vec3(v.r3().Normalize())
}

// IsZero reports whether all components are exactly zero
func (v Vec3) IsZero() bool {
	return v == Vec3{}
}

// MaxComponent returns the largest of the three components
func (v Vec3) MaxComponent() float64 {
	return max(v.X, v.Y, v.Z)
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

type vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalJSON encodes the vector as {"x":..,"y":..,"z":..}
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal(vec3JSON{X: v.X, Y: v.Y, Z: v.Z})
}

// UnmarshalJSON decodes a vector written by MarshalJSON
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var j vec3JSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*v = Vec3{X: j.X, Y: j.Y, Z: j.Z}
	return nil
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
