package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/curious-energy/learn-raytracing/pkg/integrator"
	"github.com/curious-energy/learn-raytracing/pkg/renderer"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

// Config holds the command line settings
type Config struct {
	SceneType  string
	Width      int
	Height     int
	FOV        float64 // degrees
	MaxDepth   int
	NumWorkers int
	Output     string
	SceneDir   string
	SaveScene  string
	Help       bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp(config.SceneDir)
		return
	}

	if err := run(context.Background(), config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	defaults := renderer.DefaultConfig()
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene name or path to a .json scene file")
	flag.IntVar(&config.Width, "width", defaults.Width, "Image width in pixels")
	flag.IntVar(&config.Height, "height", defaults.Height, "Image height in pixels")
	flag.Float64Var(&config.FOV, "fov", 60, "Vertical field of view in degrees")
	flag.IntVar(&config.MaxDepth, "depth", integrator.DefaultMaxDepth, "Deepest traced reflection/refraction level")
	flag.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect)")
	flag.StringVar(&config.Output, "out", "out.ppm", "Output file (.ppm or .png)")
	flag.StringVar(&config.SceneDir, "scenes", "scenes", "Directory listed by -help for JSON scenes")
	flag.StringVar(&config.SaveScene, "save-scene", "", "Also write the scene as JSON to this path")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp(sceneDir string) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")

	scenes, err := scene.ListAllScenes(sceneDir)
	if err != nil {
		fmt.Printf("  (error listing scenes: %v)\n", err)
		return
	}
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Printf("  %-24s %s\n", info.ID, info.Description)
		} else {
			fmt.Printf("  %-24s %s\n", info.ID, info.DisplayName)
		}
	}
}

// run renders the configured scene and writes the image
func run(ctx context.Context, config Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Println("Starting Raytracer...")

	sceneObj, err := createScene(config.SceneType)
	if err != nil {
		return err
	}

	if config.SaveScene != "" {
		if err := scene.Save(config.SaveScene, sceneObj); err != nil {
			return err
		}
		fmt.Printf("Scene saved as %s\n", config.SaveScene)
	}

	raytracer := renderer.NewRaytracer(sceneObj, renderer.Config{
		Width:      config.Width,
		Height:     config.Height,
		FOV:        config.FOV * math.Pi / 180,
		NumWorkers: config.NumWorkers,
		MaxDepth:   config.MaxDepth,
	}, renderer.NewDefaultLogger())

	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())

	if err := saveImage(fb, config.Output); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", config.Output)
	return nil
}

// createScene creates a scene based on the scene type
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name is empty")
	}
	return scene.Create(sceneType)
}

// saveImage writes the framebuffer in the format selected by the file extension
func saveImage(fb *renderer.Framebuffer, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if renderer.IsPNGPath(path) {
		return fb.SavePNG(path)
	}
	if ext := filepath.Ext(path); ext != "" && !strings.EqualFold(ext, ".ppm") {
		return fmt.Errorf("unsupported output format %q (use .ppm or .png)", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	return fb.WritePPM(file)
}
