package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/curious-energy/learn-raytracing/pkg/integrator"
	"github.com/curious-energy/learn-raytracing/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	sceneDir string
}

// NewServer creates a new web server that also serves the JSON scenes in sceneDir
func NewServer(port int, sceneDir string) *Server {
	return &Server{port: port, sceneDir: sceneDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene ID (builtin name or scene file path)
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	FOV      float64 `json:"fov"`      // Vertical field of view in degrees
	MaxDepth int     `json:"maxDepth"` // Deepest traced recursion level
	Workers  int     `json:"workers"`  // Number of parallel workers (0 = auto-detect)
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the JSON description of a scene and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := map[string]interface{}{
		"scene":  sceneName,
		"config": scene.ToConfig(sceneObj),
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 16, "max": 2048},
			"height":   map[string]int{"min": 16, "max": 2048},
			"fov":      map[string]float64{"min": 10, "max": 170},
			"maxDepth": map[string]int{"min": 0, "max": 16},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates the common render parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 512, 16, 2048); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 384, 16, 2048); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(query, "fov", 60, 10, 170); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", integrator.DefaultMaxDepth, 0, 16); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1024*768 && req.MaxDepth > 8 {
		log.Printf("Render warning: Large image with deep recursion may render slowly")
	}

	return req, nil
}

// fovRadians converts the request field of view to radians
func (req *RenderRequest) fovRadians() float64 {
	return req.FOV * math.Pi / 180
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds a listed scene. Only built-in names and files found in
// the scene directory are accepted, never arbitrary paths.
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	scenes, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == sceneName {
			return scene.Create(sceneName)
		}
	}
	return nil, fmt.Errorf("Unknown scene: %s", sceneName)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
