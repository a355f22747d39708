package material

import (
	"fmt"
	"sort"

	"github.com/curious-energy/learn-raytracing/pkg/core"
)

// Ivory is a mostly diffuse off-white material with a soft highlight
func Ivory() Material {
	return New(1.0, core.NewAlbedo(0.6, 0.3, 0.1, 0.0), core.NewVec3(0.4, 0.4, 0.3), 50)
}

// Glass is a transparent material that mostly refracts
func Glass() Material {
	return New(1.5, core.NewAlbedo(0.0, 0.5, 0.1, 0.8), core.NewVec3(0.6, 0.7, 0.8), 125)
}

// RedRubber is a dull red material with almost no highlight
func RedRubber() Material {
	return New(1.0, core.NewAlbedo(0.9, 0.1, 0.0, 0.0), core.NewVec3(0.3, 0.1, 0.1), 10)
}

// Mirror reflects most incoming light and has a very sharp highlight
func Mirror() Material {
	return New(1.0, core.NewAlbedo(0.0, 10.0, 0.8, 0.0), core.NewVec3(1.0, 1.0, 1.0), 1425)
}

var presets = map[string]func() Material{
	"ivory":      Ivory,
	"glass":      Glass,
	"red_rubber": RedRubber,
	"mirror":     Mirror,
	"default":    Default,
}

// Preset looks up a named material
func Preset(name string) (Material, error) {
	fn, ok := presets[name]
	if !ok {
		return Material{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidMaterial, name)
	}
	return fn(), nil
}

// PresetNames returns the names accepted by Preset in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
