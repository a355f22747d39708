package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/geometry"
	"github.com/curious-energy/learn-raytracing/pkg/material"
)

// MaterialCfg is the JSON form of a material. Either Preset names one of
// material.PresetNames, or the remaining fields describe it inline.
type MaterialCfg struct {
	Preset           string       `json:"preset,omitempty"`
	RefractiveIndex  float64      `json:"refractiveIndex,omitempty"` // defaults to 1
	Albedo           *core.Albedo `json:"albedo,omitempty"`          // defaults to [1,0,0,0]
	DiffuseColor     core.Vec3    `json:"diffuseColor"`
	SpecularExponent float64      `json:"specularExponent,omitempty"`
}

type SphereCfg struct {
	Center   core.Vec3   `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

type LightCfg struct {
	Position  core.Vec3 `json:"position"`
	Intensity float64   `json:"intensity"`
}

// FloorCfg is the JSON form of the checkerboard floor.
// Missing fields take the value of geometry.DefaultCheckerboard.
type FloorCfg struct {
	Height    *float64   `json:"height,omitempty"`
	HalfWidth *float64   `json:"halfWidth,omitempty"`
	ZNear     *float64   `json:"zNear,omitempty"`
	ZFar      *float64   `json:"zFar,omitempty"`
	Odd       *core.Vec3 `json:"odd,omitempty"`
	Even      *core.Vec3 `json:"even,omitempty"`
}

// Config is the JSON representation of a scene file
type Config struct {
	Background *core.Vec3  `json:"background,omitempty"`
	Spheres    []SphereCfg `json:"spheres"`
	Lights     []LightCfg  `json:"lights"`
	Floor      *FloorCfg   `json:"floor,omitempty"`
}

// Build validates and constructs the runtime material
func (mc MaterialCfg) Build() (material.Material, error) {
	if mc.Preset != "" {
		return material.Preset(mc.Preset)
	}
	m := material.Default()
	if mc.RefractiveIndex != 0 {
		m.RefractiveIndex = mc.RefractiveIndex
	}
	if mc.Albedo != nil {
		m.Albedo = *mc.Albedo
	}
	m.DiffuseColor = mc.DiffuseColor
	m.SpecularExponent = mc.SpecularExponent
	return m, m.Validate()
}

// Build constructs the runtime floor
func (fc FloorCfg) Build() geometry.Checkerboard {
	floor := geometry.DefaultCheckerboard()
	if fc.Height != nil {
		floor.Height = *fc.Height
	}
	if fc.HalfWidth != nil {
		floor.HalfWidth = *fc.HalfWidth
	}
	if fc.ZNear != nil {
		floor.ZNear = *fc.ZNear
	}
	if fc.ZFar != nil {
		floor.ZFar = *fc.ZFar
	}
	if fc.Odd != nil {
		floor.Odd = *fc.Odd
	}
	if fc.Even != nil {
		floor.Even = *fc.Even
	}
	return floor
}

// Build validates and constructs the runtime scene
func (c Config) Build() (*Scene, error) {
	spheres := make([]geometry.Sphere, 0, len(c.Spheres))
	for i, sc := range c.Spheres {
		m, err := sc.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		spheres = append(spheres, geometry.NewSphere(sc.Center, sc.Radius, m))
	}

	lights := make([]Light, 0, len(c.Lights))
	for _, lc := range c.Lights {
		lights = append(lights, NewLight(lc.Position, lc.Intensity))
	}

	var opts []Option
	if c.Background != nil {
		opts = append(opts, WithBackground(*c.Background))
	}
	if c.Floor != nil {
		opts = append(opts, WithFloor(c.Floor.Build()))
	}

	s := New(spheres, lights, opts...)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ToConfig converts a scene into its JSON representation with inline materials
func ToConfig(s *Scene) Config {
	bg := s.Background
	c := Config{
		Background: &bg,
		Spheres:    make([]SphereCfg, 0, len(s.Spheres)),
		Lights:     make([]LightCfg, 0, len(s.Lights)),
	}
	for _, sphere := range s.Spheres {
		albedo := sphere.Material.Albedo
		c.Spheres = append(c.Spheres, SphereCfg{
			Center: sphere.Center,
			Radius: sphere.Radius,
			Material: MaterialCfg{
				RefractiveIndex:  sphere.Material.RefractiveIndex,
				Albedo:           &albedo,
				DiffuseColor:     sphere.Material.DiffuseColor,
				SpecularExponent: sphere.Material.SpecularExponent,
			},
		})
	}
	for _, light := range s.Lights {
		c.Lights = append(c.Lights, LightCfg{Position: light.Position, Intensity: light.Intensity})
	}
	if s.Floor != nil {
		floor := *s.Floor
		c.Floor = &FloorCfg{
			Height:    &floor.Height,
			HalfWidth: &floor.HalfWidth,
			ZNear:     &floor.ZNear,
			ZFar:      &floor.ZFar,
			Odd:       &floor.Odd,
			Even:      &floor.Even,
		}
	}
	return c
}

// Decode reads a scene from JSON
func Decode(r io.Reader) (*Scene, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return c.Build()
}

// Encode writes a scene as indented JSON
func Encode(w io.Writer, s *Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToConfig(s)); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Load reads a Scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Save writes a Scene to a JSON file.
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	return Encode(f, s)
}
