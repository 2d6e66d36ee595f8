package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/sphere-raytracer/pkg/scene"
)

// Image size limits accepted by the API
const (
	minImageSize = 16
	maxImageSize = 2000
)

// Server handles web requests for the sphere raytracer
type Server struct {
	port     int
	sceneDir string
	mux      *http.ServeMux
}

// NewServer creates a new web server that resolves JSON scenes from sceneDir
func NewServer(port int, sceneDir string) *Server {
	s := &Server{port: port, sceneDir: sceneDir, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene", s.handleScene)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.sceneDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleScene returns the full JSON description of a scene
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sf, err := sceneObj.ToFile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sf)
}

// createScene resolves a built-in ID or a JSON file stem in the scene directory and validates it
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	if !isSceneName(sceneName) {
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, sceneName)
	}
	sceneObj, err := scene.NewScene(sceneName, s.sceneDir)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q is invalid: %w", sceneName, err)
	}
	return sceneObj, nil
}

// isSceneName reports whether name can only refer to a built-in scene or a file directly inside the scene directory
func isSceneName(name string) bool {
	return filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`) && filepath.Ext(name) != ".json"
}

// applySize overrides the scene's image size; zero keeps the scene's value.
// A height changes the aspect ratio so the width is preserved.
func applySize(sceneObj *scene.Scene, width, height int) {
	if width > 0 {
		sceneObj.CameraConfig.Width = width
	}
	if height > 0 {
		sceneObj.CameraConfig.AspectRatio = float64(sceneObj.CameraConfig.Width) / float64(height)
	}
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
