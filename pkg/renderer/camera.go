package renderer

import (
	"math"

	"github.com/curious-energy/learn-raytracing/pkg/core"
)

// CameraConfig contains the pinhole camera parameters
type CameraConfig struct {
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	FOV    float64   // Vertical field of view in radians
	Origin core.Vec3 // Eye position
}

// DefaultCameraConfig returns the reference 1024x768 view with a 60 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:  1024,
		Height: 768,
		FOV:    math.Pi / 3,
		Origin: core.NewVec3(0, 0, 0),
	}
}

// Camera generates primary rays for a pinhole eye looking down -Z
type Camera struct {
	origin      core.Vec3
	width       int
	height      int
	halfHeight  float64 // tan(fov/2)
	aspectRatio float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	aspect := 1.0
	if config.Height > 0 {
		aspect = float64(config.Width) / float64(config.Height)
	}
	return &Camera{
		origin:      config.Origin,
		width:       config.Width,
		height:      config.Height,
		halfHeight:  math.Tan(config.FOV / 2),
		aspectRatio: aspect,
	}
}

// Direction returns the unit direction through the center of pixel (i, j).
// Column i runs left to right and row j runs top to bottom.
func (c *Camera) Direction(i, j int) core.Vec3 {
	x := (2*(float64(i)+0.5)/float64(c.width) - 1) * c.halfHeight * c.aspectRatio
	y := -(2*(float64(j)+0.5)/float64(c.height) - 1) * c.halfHeight
	return core.NewVec3(x, y, -1).Normalize()
}

// GetRay generates the primary ray for pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	return core.NewRay(c.origin, c.Direction(i, j))
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
