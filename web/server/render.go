package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/integrator"
	"github.com/df07/sphere-raytracer/pkg/loaders"
	"github.com/df07/sphere-raytracer/pkg/renderer"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

// Request limits
const (
	maxSamples     = 64
	maxBounceParam = 1000 // accepted, but the integrator caps reflections at integrator.MaxBounces
	maxBodyBytes   = 1 << 20
)

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client.
// GET requests fill it from query parameters, POST requests from a JSON body.
type RenderRequest struct {
	Scene     string             `json:"scene"`               // Scene name (built-in or JSON file stem)
	SceneFile *loaders.SceneFile `json:"sceneFile,omitempty"` // Inline scene, POST only; overrides Scene
	Width     int                `json:"width"`               // Image width (0 = scene default)
	Height    int                `json:"height"`              // Image height (0 = keep aspect ratio)
	Bounces   *int               `json:"bounces,omitempty"`   // Bounce limit (nil = scene default)
	Samples   int                `json:"samples"`             // Samples per pixel (0 = scene default)
	Gamma     float64            `json:"gamma"`               // Output gamma (0 = linear)
	Format    string             `json:"format"`              // "png" (default) or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels   int   `json:"totalPixels"`
	CoveredPixels int   `json:"coveredPixels"`
	TotalSamples  int   `json:"totalSamples"`
	Tiles         int   `json:"tiles"`
	Workers       int   `json:"workers"`
	ElapsedMs     int64 `json:"elapsedMs"`
}

// RenderResponse is returned for format=json
type RenderResponse struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	ImageData string   `json:"imageData"` // Base64 encoded PNG
	Stats     Stats    `json:"stats"`
	Log       []string `json:"log"`
}

// handleRender renders a scene and returns it as a PNG with an alpha channel
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req *RenderRequest
	var err error

	switch r.Method {
	case http.MethodGet:
		req, err = s.parseRenderRequest(r)
	case http.MethodPost:
		req, err = s.decodeRenderRequest(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	sceneObj, err := s.buildScene(req, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultRenderConfig()
	config.SamplesPerPixel = req.Samples
	if req.Gamma > 0 {
		config.Gamma = req.Gamma
	}

	raytracer := renderer.NewRaytracer(sceneObj, config, webLogger)
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		log.Printf("Render error: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	logLines := drainConsole(consoleChan)
	apiStats := Stats{
		TotalPixels:   stats.TotalPixels,
		CoveredPixels: stats.CoveredPixels,
		TotalSamples:  stats.TotalSamples,
		Tiles:         stats.Tiles,
		Workers:       stats.Workers,
		ElapsedMs:     stats.Elapsed.Milliseconds(),
	}

	if req.Format == "json" {
		imageData, err := s.imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Width:     img.Bounds().Dx(),
			Height:    img.Bounds().Dy(),
			ImageData: imageData,
			Stats:     apiStats,
			Log:       logLines,
		})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Covered-Pixels", strconv.Itoa(apiStats.CoveredPixels))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(apiStats.ElapsedMs, 10))
	for _, line := range logLines {
		w.Header().Add("X-Render-Log", line)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing PNG: %v", err)
	}
}

// parseRenderRequest parses query parameters of a GET render request
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Format: query.Get("format")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 0, 0.1, 5); err != nil {
		return nil, err
	}
	if query.Get("bounces") != "" {
		bounces, err := parseIntParam(query, "bounces", 0, 0, maxBounceParam)
		if err != nil {
			return nil, err
		}
		req.Bounces = &bounces
	}

	return req, validateFormat(req.Format)
}

// decodeRenderRequest reads a JSON render request body
func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	if req.Scene == "" && req.SceneFile == nil {
		req.Scene = "default"
	}

	if req.Width != 0 && (req.Width < minImageSize || req.Width > maxImageSize) {
		return nil, fmt.Errorf("width must be between %d and %d, got: %d", minImageSize, maxImageSize, req.Width)
	}
	if req.Height != 0 && (req.Height < minImageSize || req.Height > maxImageSize) {
		return nil, fmt.Errorf("height must be between %d and %d, got: %d", minImageSize, maxImageSize, req.Height)
	}
	if req.Samples < 0 || req.Samples > maxSamples {
		return nil, fmt.Errorf("samples must be between 0 and %d, got: %d", maxSamples, req.Samples)
	}
	if req.Bounces != nil && (*req.Bounces < 0 || *req.Bounces > maxBounceParam) {
		return nil, fmt.Errorf("bounces must be between 0 and %d, got: %d", maxBounceParam, *req.Bounces)
	}
	if req.Gamma < 0 || req.Gamma > 5 {
		return nil, fmt.Errorf("gamma must be between 0 and 5, got: %f", req.Gamma)
	}

	return req, validateFormat(req.Format)
}

func validateFormat(format string) error {
	switch format {
	case "", "png", "json":
		return nil
	}
	return fmt.Errorf("format must be png or json, got: %s", format)
}

// buildScene creates the scene for a render request and applies its overrides.
// Inline and named scenes are held to the same size and sample limits as query parameters.
func (s *Server) buildScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	var sceneObj *scene.Scene
	var err error
	if req.SceneFile != nil {
		if err := scene.CheckLocalPaths(req.SceneFile); err != nil {
			return nil, err
		}
		sceneObj, err = scene.FromFile(req.SceneFile, s.sceneDir)
	} else {
		sceneObj, err = s.createScene(req.Scene)
	}
	if err != nil {
		return nil, err
	}

	applySize(sceneObj, req.Width, req.Height)
	if req.Bounces != nil {
		sceneObj.BounceLimit = *req.Bounces
	}
	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if err := sceneObj.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if err := checkRenderLimits(sceneObj); err != nil {
		return nil, err
	}

	if sceneObj.BounceLimit > integrator.MaxBounces {
		logger.Printf("Warning: bounce limit %d exceeds the cap of %d\n", sceneObj.BounceLimit, integrator.MaxBounces)
	}
	return sceneObj, nil
}

// checkRenderLimits bounds the work a single request can ask for
func checkRenderLimits(sceneObj *scene.Scene) error {
	width, height := sceneObj.CameraConfig.Width, sceneObj.CameraConfig.Height()
	if width < minImageSize || width > maxImageSize {
		return fmt.Errorf("width must be between %d and %d, got: %d", minImageSize, maxImageSize, width)
	}
	if height < minImageSize || height > maxImageSize {
		return fmt.Errorf("height must be between %d and %d, got: %d", minImageSize, maxImageSize, height)
	}
	if spp := sceneObj.SamplingConfig.SamplesPerPixel; spp > maxSamples {
		return fmt.Errorf("samples must be between 1 and %d, got: %d", maxSamples, spp)
	}
	return nil
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d-%d", time.Now().UnixNano(), renderCounter.Add(1))
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// drainConsole collects the buffered log lines without blocking.
// Lines above info level are prefixed with their level.
func drainConsole(consoleChan chan ConsoleMessage) []string {
	lines := []string{}
	for {
		select {
		case msg := <-consoleChan:
			line := strings.TrimSpace(msg.Message)
			if line == "" {
				continue
			}
			if msg.Level != levelInfo {
				line = fmt.Sprintf("[%s] %s", msg.Level, line)
			}
			lines = append(lines, line)
		default:
			return lines
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
