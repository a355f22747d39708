package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/integrator"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

// ErrInvalidConfig is returned when render settings cannot produce an image
var ErrInvalidConfig = errors.New("invalid render config")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains rendering configuration
type Config struct {
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	FOV        float64 // Vertical field of view in radians
	NumWorkers int     // Number of parallel workers (0 = auto-detect)
	MaxDepth   int     // Deepest traced recursion level
}

// DefaultConfig returns the reference render settings
func DefaultConfig() Config {
	return Config{
		Width:      1024,
		Height:     768,
		FOV:        math.Pi / 3,
		NumWorkers: 0,
		MaxDepth:   integrator.DefaultMaxDepth,
	}
}

// Validate checks that the settings describe a non-empty image
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= math.Pi {
		return fmt.Errorf("%w: fov %f outside (0, pi)", ErrInvalidConfig, c.FOV)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// Raytracer renders a scene into a framebuffer, one primary ray per pixel
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene: s,
		camera: NewCamera(CameraConfig{
			Width:  config.Width,
			Height: config.Height,
			FOV:    config.FOV,
			Origin: core.NewVec3(0, 0, 0),
		}),
		integrator: integrator.NewWhitted(integrator.Config{MaxDepth: config.MaxDepth}),
		config:     config,
		logger:     logger,
	}
}

// RenderRow traces every pixel of one scanline into the framebuffer
func (rt *Raytracer) RenderRow(j int, fb *Framebuffer) {
	for i := 0; i < fb.Width; i++ {
		fb.Set(i, j, rt.integrator.RayColor(rt.camera.GetRay(i, j), rt.scene))
	}
}

// Render traces the whole image in parallel. Scanlines are independent, so
// the result does not depend on the number of workers. A cancelled context
// stops the render and returns the context error.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)

	pool := NewWorkerPool(rt, fb, rt.config.NumWorkers)
	pool.Start(ctx)
	rt.logger.Printf("Rendering %dx%d with %d workers (%d primitives)\n",
		fb.Width, fb.Height, pool.GetNumWorkers(), rt.scene.GetPrimitiveCount())

	for j := 0; j < fb.Height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}
	pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.Rows++
	}
	stats.TotalPixels = stats.Rows * fb.Width
	stats.Duration = time.Since(start)

	if renderErr != nil {
		rt.logger.Printf("Render stopped after %d of %d rows: %v\n", stats.Rows, fb.Height, renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Rendered %d pixels in %v\n", stats.TotalPixels, stats.Duration)
	return fb, stats, nil
}
