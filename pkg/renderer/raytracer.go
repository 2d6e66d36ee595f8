package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/integrator"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

// RenderConfig contains configuration for a single render
type RenderConfig struct {
	TileSize        int     // Size of each square tile in pixels
	NumWorkers      int     // Number of parallel workers (0 = use CPU count)
	SamplesPerPixel int     // Camera rays per pixel (0 = use the scene's sampling config)
	Gamma           float64 // Output gamma; 1 writes linear color
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:        32,
		NumWorkers:      0, // Auto-detect CPU count
		SamplesPerPixel: 0, // Scene decides
		Gamma:           1.0,
	}
}

// Raytracer renders a scene into an image with per-pixel coverage alpha
type Raytracer struct {
	scene         *scene.Scene
	camera        *geometry.Camera
	integrator    integrator.Integrator
	width, height int
	config        RenderConfig
	logger        core.Logger
}

// NewRaytracer creates a new raytracer using a Whitted integrator over the scene.
// The scene must not be modified until every Render call has returned.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}

	return &Raytracer{
		scene:      s,
		camera:     s.GetCamera(),
		integrator: integrator.NewWhittedIntegrator(s),
		width:      s.CameraConfig.Width,
		height:     s.CameraConfig.Height(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport used for subsequent renders
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Width returns the output image width
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the output image height
func (rt *Raytracer) Height() int { return rt.height }

// Render traces every pixel and returns a non-premultiplied image.
// Alpha is the fraction of a pixel's samples that hit a sphere; transparent
// pixels still carry the environment color.
func (rt *Raytracer) Render(ctx context.Context) (*image.NRGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.width, rt.height)
	}

	start := time.Now()
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)
	pool := NewWorkerPool(rt.config.NumWorkers)
	tileRenderer := NewTileRenderer(rt.camera, rt.integrator, rt.config.SamplesPerPixel)

	pixelStats := make([][]PixelStats, rt.height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, rt.width)
	}

	rt.logger.Printf("Rendering %s at %dx%d: %d samples/pixel, %d bounces, %d tiles on %d workers...\n",
		rt.scene.Name, rt.width, rt.height, rt.config.SamplesPerPixel,
		integrator.ClampBounceLimit(rt.scene.BounceLimit), len(tiles), pool.GetNumWorkers())

	// Each tile has non-overlapping bounds, so writes to pixelStats never race
	stats, err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) (RenderStats, error) {
		return tileRenderer.RenderTileBounds(tile.Bounds, pixelStats), nil
	})
	if err != nil {
		rt.logger.Printf("Render cancelled: %v\n", err)
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	img := rt.assembleImage(pixelStats)
	stats.Elapsed = time.Since(start)

	rt.logger.Printf("Render completed in %v (%d/%d pixels covered)\n",
		stats.Elapsed, stats.CoveredPixels, stats.TotalPixels)

	return img, stats, nil
}

// assembleImage converts the accumulated pixel statistics into an image
func (rt *Raytracer) assembleImage(pixelStats [][]PixelStats) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, rt.width, rt.height))
	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			pixel := &pixelStats[y][x]
			img.SetNRGBA(x, y, rt.vec3ToColor(pixel.GetColor(), pixel.GetAlpha()))
		}
	}
	return img
}

// vec3ToColor converts a linear color and coverage to 8-bit NRGBA with clamping and gamma correction
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3, alpha float64) color.NRGBA {
	// Clamp first so gamma never sees negative values
	colorVec = colorVec.Clamp(0.0, 1.0)
	if rt.config.Gamma > 0 && rt.config.Gamma != 1.0 {
		colorVec = colorVec.GammaCorrect(rt.config.Gamma)
	}
	alpha = max(0.0, min(1.0, alpha))

	return color.NRGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: uint8(255*alpha + 0.5),
	}
}
