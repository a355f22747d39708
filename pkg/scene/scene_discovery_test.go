package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-spheres", "Glass Spheres"},
		{"mirror_room", "Mirror Room"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"spheres scene", "spheres", false},
		{"unknown scene", "nonexistent", true},
		{"missing file", filepath.Join(t.TempDir(), "missing.json"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.sceneName)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.sceneName)
				}
				if s != nil {
					t.Errorf("Expected nil scene for %q", tt.sceneName)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneName, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene %q is invalid: %v", tt.sceneName, err)
			}
		})
	}

	if _, err := Create("nonexistent"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestCreate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.json")
	if err := Save(path, NewDefaultScene()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s, err := Create(path)
	if err != nil {
		t.Fatalf("Create from file failed: %v", err)
	}
	if len(s.Spheres) != 4 || len(s.Lights) != 3 || s.Floor == nil {
		t.Errorf("Unexpected scene contents: %d spheres, %d lights, floor=%v", len(s.Spheres), len(s.Lights), s.Floor != nil)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"mirror_room.json", "glass-spheres.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	scenes, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	expected := []string{"Default Scene", "Spheres Only", "Glass Spheres", "Mirror Room"}
	if len(scenes) != len(expected) {
		t.Fatalf("Expected %d scenes, got %d: %+v", len(expected), len(scenes), scenes)
	}
	for i, name := range expected {
		if scenes[i].DisplayName != name {
			t.Errorf("Scene %d: expected %q, got %q", i, name, scenes[i].DisplayName)
		}
	}
	if scenes[2].Type != "file" || scenes[2].FilePath != filepath.Join(dir, "glass-spheres.json") {
		t.Errorf("Unexpected file scene info: %+v", scenes[2])
	}
}

func TestListFileScenes_MissingDir(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}
