package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Create for names that match no scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

var builtinScenes = map[string]struct {
	info   SceneInfo
	create func() *Scene
}{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Four spheres, three point lights and a checkerboard floor",
			Type:        "builtin",
		},
		create: NewDefaultScene,
	},
	"spheres": {
		info: SceneInfo{
			ID:          "spheres",
			DisplayName: "Spheres Only",
			Description: "The default spheres and lights without the floor",
			Type:        "builtin",
		},
		create: NewSpheresScene,
	},
}

// Names returns the IDs of the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds a scene by built-in name or from a path to a JSON scene file
func Create(name string) (*Scene, error) {
	if builtin, ok := builtinScenes[name]; ok {
		return builtin.create(), nil
	}
	if strings.HasSuffix(name, ".json") {
		s, err := Load(name)
		if err != nil {
			return nil, fmt.Errorf("load scene %s: %w", name, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ListFileScenes scans dir for JSON scene files
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		base := strings.TrimSuffix(filepath.Base(filePath), ".json")
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: titleCase(base),
			Type:        "file",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, name := range Names() {
		all = append(all, builtinScenes[name].info)
	}

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(all, fileScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
