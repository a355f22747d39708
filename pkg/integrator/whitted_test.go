package integrator

import (
	"math"
	"sync"
	"testing"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/geometry"
	"github.com/curious-energy/learn-raytracing/pkg/material"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

var (
	origin  = core.NewVec3(0, 0, 0)
	forward = core.NewVec3(0, 0, -1)
)

// matte returns a purely diffuse white material
func matte() material.Material {
	return material.New(1, core.NewAlbedo(1, 0, 0, 0), core.NewVec3(1, 1, 1), 0)
}

func TestCast_BackgroundFallback(t *testing.T) {
	s := scene.New(nil, []scene.Light{scene.NewLight(core.NewVec3(0, 10, 0), 1)})

	for depth := 0; depth <= DefaultMaxDepth+1; depth++ {
		if got := Cast(origin, forward, s, depth); got != s.Background {
			t.Errorf("Depth %d: expected background %v, got %v", depth, s.Background, got)
		}
	}
}

func TestCast_DepthTermination(t *testing.T) {
	s := scene.New(
		[]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, matte())},
		[]scene.Light{scene.NewLight(core.NewVec3(0, 0, 10), 1)},
	)

	if got := Cast(origin, forward, s, DefaultMaxDepth+1); got != s.Background {
		t.Errorf("Expected background past the depth bound, got %v", got)
	}

	if got := Cast(origin, forward, s, DefaultMaxDepth); got == s.Background {
		t.Errorf("Expected geometry to be shaded at the deepest traced level")
	}

	shallow := NewWhitted(Config{MaxDepth: 0})
	if got := shallow.Cast(origin, forward, s, 1); got != s.Background {
		t.Errorf("Expected background with MaxDepth 0 at depth 1, got %v", got)
	}
}

func TestCast_DiffuseWithoutLightsIsBlack(t *testing.T) {
	s := scene.New([]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, matte())}, nil)

	if got := Cast(origin, forward, s, 0); !got.IsZero() {
		t.Errorf("Expected exactly black, got %v", got)
	}
}

func TestCast_DiffuseLighting(t *testing.T) {
	s := scene.New(
		[]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, matte())},
		[]scene.Light{scene.NewLight(core.NewVec3(0, 0, 20), 0.75)},
	)

	// The light is straight behind the eye, so the cosine term is 1
	got := Cast(origin, forward, s, 0)
	expected := core.NewVec3(0.75, 0.75, 0.75)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// A light below the horizon of the hit point contributes nothing
	s.Lights = []scene.Light{scene.NewLight(core.NewVec3(0, 0, -20), 1)}
	if got := Cast(origin, forward, s, 0); !got.IsZero() {
		t.Errorf("Expected black for a light behind the surface, got %v", got)
	}
}

func TestCast_ShadowOcclusion(t *testing.T) {
	target := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, matte())
	light := scene.NewLight(core.NewVec3(0, 0, 20), 1)

	lit := scene.New([]geometry.Sphere{target}, []scene.Light{light})
	if got := Cast(origin, forward, lit, 0); got.IsZero() {
		t.Fatal("Expected lit point without a blocker")
	}

	// The blocker sits behind the eye, between the light and the shaded point
	blocker := geometry.NewSphere(core.NewVec3(0, 0, 10), 1, material.RedRubber())
	shadowed := scene.New([]geometry.Sphere{target, blocker}, []scene.Light{light})
	if got := Cast(origin, forward, shadowed, 0); !got.IsZero() {
		t.Errorf("Expected occluded light to contribute nothing, got %v", got)
	}

	// A sphere beyond the light does not cast a shadow
	beyond := geometry.NewSphere(core.NewVec3(0, 0, 30), 1, material.RedRubber())
	unshadowed := scene.New([]geometry.Sphere{target, beyond}, []scene.Light{light})
	if got := Cast(origin, forward, unshadowed, 0); got.IsZero() {
		t.Error("Expected sphere beyond the light not to occlude it")
	}
}

func TestCast_SpecularHighlight(t *testing.T) {
	shiny := material.New(1, core.NewAlbedo(0, 1, 0, 0), core.Vec3{}, 50)
	s := scene.New(
		[]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, shiny)},
		[]scene.Light{scene.NewLight(core.NewVec3(0, 0, 20), 2)},
	)

	// Light, eye and normal are aligned: the highlight is at full strength
	got := Cast(origin, forward, s, 0)
	expected := core.NewVec3(2, 2, 2)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestCast_Reflection(t *testing.T) {
	mirror := material.New(1, core.NewAlbedo(0, 0, 1, 0), core.Vec3{}, 0)
	s := scene.New([]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mirror)}, nil)

	// Straight back out into the sky
	if got := Cast(origin, forward, s, 0); got != s.Background {
		t.Errorf("Expected reflected background %v, got %v", s.Background, got)
	}

	// A matte lit sphere behind the eye shows up in the mirror
	red := material.New(1, core.NewAlbedo(1, 0, 0, 0), core.NewVec3(1, 0, 0), 0)
	s.Spheres = append(s.Spheres, geometry.NewSphere(core.NewVec3(0, 0, 5), 1, red))
	s.Lights = []scene.Light{scene.NewLight(core.NewVec3(0, 20, 0), 1)}
	got := Cast(origin, forward, s, 0)
	if got.X <= 0 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Expected pure red reflection, got %v", got)
	}
}

func TestCast_RefractionThroughSphere(t *testing.T) {
	transparent := material.New(1.5, core.NewAlbedo(0, 0, 0, 1), core.Vec3{}, 0)
	s := scene.New([]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, transparent)}, nil)

	got := Cast(origin, forward, s, 0)
	if got.Subtract(s.Background).Length() > 1e-9 {
		t.Errorf("Expected background seen through the sphere, got %v", got)
	}
}

func TestCast_ZeroDirectionIsDark(t *testing.T) {
	s := scene.NewDefaultScene()
	if got := Cast(origin, core.Vec3{}, s, 1); !got.IsZero() {
		t.Errorf("Expected zero direction to carry no light, got %v", got)
	}
}

func TestCast_ReferenceSceneDeterministic(t *testing.T) {
	s := scene.NewDefaultScene()

	directions := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(-0.2, 0, -1).Normalize(),      // ivory
		core.NewVec3(-0.08, -0.12, -1).Normalize(), // glass
		core.NewVec3(0.4, 0.3, -1).Normalize(),     // mirror
		core.NewVec3(0, -0.3, -1).Normalize(),      // floor
		core.NewVec3(0, 1, 0),                      // sky
	}

	for _, dir := range directions {
		first := Cast(origin, dir, s, 0)
		second := Cast(origin, dir, s, 0)
		if first != second {
			t.Errorf("Direction %v: results differ between runs: %v vs %v", dir, first, second)
		}
		for _, c := range []float64{first.X, first.Y, first.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				t.Errorf("Direction %v: invalid color %v", dir, first)
			}
		}
	}
}

func TestCast_ConcurrentCallersAgree(t *testing.T) {
	s := scene.NewDefaultScene()
	whitted := NewWhitted(DefaultConfig())

	const n = 64
	dirs := make([]core.Vec3, n)
	expected := make([]core.Vec3, n)
	for i := range dirs {
		x := -0.5 + float64(i)/float64(n)
		dirs[i] = core.NewVec3(x, -0.1, -1).Normalize()
		expected[i] = whitted.RayColor(core.NewRay(origin, dirs[i]), s)
	}

	results := make([]core.Vec3, n)
	var wg sync.WaitGroup
	for i := range dirs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = whitted.RayColor(core.NewRay(origin, dirs[i]), s)
		}(i)
	}
	wg.Wait()

	for i := range results {
		if results[i] != expected[i] {
			t.Errorf("Ray %d: concurrent result %v differs from sequential %v", i, results[i], expected[i])
		}
	}
}

// referenceDirection is the primary ray through pixel (i, j) of the
// 1024x768 reference view with a 60 degree field of view
func referenceDirection(i, j int) core.Vec3 {
	const width, height = 1024, 768
	halfHeight := math.Tan(math.Pi / 3 / 2)
	x := (2*(float64(i)+0.5)/width - 1) * halfHeight * (float64(width) / height)
	y := -(2*(float64(j)+0.5)/height - 1) * halfHeight
	return core.NewVec3(x, y, -1).Normalize()
}

func TestCast_ReferenceSceneGoldenPixels(t *testing.T) {
	s := scene.NewDefaultScene()

	tests := []struct {
		name     string
		i, j     int
		expected core.Vec3
	}{
		{"glass center", 512, 384, core.NewVec3(0.177679425099, 0.204088794051, 0.170050163003)},
		{"glass lower rim", 420, 480, core.NewVec3(0.162459682314, 0.564314454876, 0.644281227438)},
		{"ivory", 300, 380, core.NewVec3(0.257306564015, 0.307306564015, 0.257979923011)},
		{"red rubber", 600, 400, core.NewVec3(0.782032973554, 0.327636716540, 0.327636716540)},
		{"mirror reflecting sky", 700, 330, core.NewVec3(0.16, 0.56, 0.64)},
		{"floor even cell", 600, 560, core.NewVec3(0.210183929757, 0.140122619838, 0.070061309919)},
		{"floor odd cell", 700, 520, core.NewVec3(0.407890890916, 0.407890890916, 0.407890890916)},
		{"sky", 10, 10, core.NewVec3(0.2, 0.7, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cast(origin, referenceDirection(tt.i, tt.j), s, 0)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.i, tt.j, tt.expected, got)
			}
		})
	}
}
