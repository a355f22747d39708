package scene

import (
	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/geometry"
	"github.com/curious-energy/learn-raytracing/pkg/material"
)

// defaultSpheres returns the four reference spheres, one per material preset
func defaultSpheres() []geometry.Sphere {
	return []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(-3, 0, -16), 2, material.Ivory()),
		geometry.NewSphere(core.NewVec3(-1.0, -1.5, -12), 2, material.Glass()),
		geometry.NewSphere(core.NewVec3(1.5, -0.5, -18), 3, material.RedRubber()),
		geometry.NewSphere(core.NewVec3(7, 5, -18), 4, material.Mirror()),
	}
}

// defaultLights returns the three reference point lights
func defaultLights() []Light {
	return []Light{
		NewLight(core.NewVec3(-20, 20, 20), 1.5),
		NewLight(core.NewVec3(30, 50, -25), 1.8),
		NewLight(core.NewVec3(30, 20, 30), 1.7),
	}
}

// NewDefaultScene creates the reference scene: four spheres of different
// materials lit by three point lights above a checkerboard floor
func NewDefaultScene() *Scene {
	return New(defaultSpheres(), defaultLights(), WithFloor(geometry.DefaultCheckerboard()))
}

// NewSpheresScene creates the reference spheres and lights without the floor
func NewSpheresScene() *Scene {
	return New(defaultSpheres(), defaultLights())
}
