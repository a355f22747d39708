package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/curious-energy/learn-raytracing/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int   `json:"totalPixels"`
	Rows        int   `json:"rows"`
	Workers     int   `json:"workers"`
	DurationMs  int64 `json:"durationMs"`
}

// RenderResponse is the JSON body of a finished render
type RenderResponse struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// handleRender renders a scene and returns the image. The format parameter
// selects "png" (default), "ppm", or "json" with a base64 PNG and stats.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "ppm" && format != "json" {
		writeError(w, http.StatusBadRequest, "format must be png, ppm or json")
		return
	}

	startTime := time.Now()
	fb, stats, err := s.render(r.Context(), req, NewWebLogger(newRenderID(), nil))
	if err != nil {
		if r.Context().Err() != nil {
			// Client disconnected
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch format {
	case "ppm":
		var buf bytes.Buffer
		if err := fb.WritePPM(&buf); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
		w.Write(buf.Bytes())
	case "json":
		response, err := s.renderResponse(req, fb, stats, startTime)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, response)
	default:
		var buf bytes.Buffer
		if err := fb.EncodePNG(&buf); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}
}

// handleRenderStream renders a scene while streaming console output via SSE,
// then sends the finished image as a "complete" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine owns the response until the channel closes
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	startTime := time.Now()
	fb, stats, err := s.render(ctx, req, webLogger)
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	response, err := s.renderResponse(req, fb, stats, startTime)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	data, err := json.Marshal(response)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
}

// render builds the requested scene and traces it
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger) (*renderer.Framebuffer, renderer.RenderStats, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	logger.Printf("Rendering scene %s\n", req.Scene)
	raytracer := renderer.NewRaytracer(sceneObj, renderer.Config{
		Width:      req.Width,
		Height:     req.Height,
		FOV:        req.fovRadians(),
		NumWorkers: req.Workers,
		MaxDepth:   req.MaxDepth,
	}, logger)
	return raytracer.Render(ctx)
}

// renderResponse packages a finished framebuffer for JSON clients
func (s *Server) renderResponse(req *RenderRequest, fb *renderer.Framebuffer, stats renderer.RenderStats, startTime time.Time) (RenderResponse, error) {
	imageData, err := imageToBase64PNG(fb)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("failed to encode image: %w", err)
	}
	return RenderResponse{
		Scene:     req.Scene,
		Width:     fb.Width,
		Height:    fb.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels: stats.TotalPixels,
			Rows:        stats.Rows,
			Workers:     stats.Workers,
			DurationMs:  stats.Duration.Milliseconds(),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	return consoleChan, NewWebLogger(newRenderID(), consoleChan)
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	data, _ := json.Marshal(map[string]string{"error": message})
	sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: string(data)})
}

// imageToBase64PNG converts a framebuffer to base64-encoded PNG
func imageToBase64PNG(fb *renderer.Framebuffer) (string, error) {
	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
