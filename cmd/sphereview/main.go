// Command sphereview renders a scene in a window and re-renders it as the bounce limit changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/integrator"
	"github.com/df07/sphere-raytracer/pkg/renderer"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

type renderResult struct {
	generation int
	bounces    int
	frame      []byte // RGBA pixels composited over the backdrop
	stats      renderer.RenderStats
	err        error
}

type viewerGame struct {
	base     *scene.Scene
	config   renderer.RenderConfig
	width    int
	height   int
	bounces  int
	backdrop *image.RGBA // Checkerboard shown through transparent pixels

	frame      *ebiten.Image
	generation int
	cancel     context.CancelFunc
	results    chan renderResult
}

func newViewerGame(s *scene.Scene, config renderer.RenderConfig) *viewerGame {
	g := &viewerGame{
		base:     s,
		config:   config,
		width:    s.CameraConfig.Width,
		height:   s.CameraConfig.Height(),
		bounces:  integrator.ClampBounceLimit(s.BounceLimit),
		backdrop: renderer.NewCheckerboard(s.CameraConfig.Width, s.CameraConfig.Height(), 16,
			color.RGBA{90, 90, 90, 255}, color.RGBA{60, 60, 60, 255}),
		frame:    ebiten.NewImage(s.CameraConfig.Width, s.CameraConfig.Height()),
		results:  make(chan renderResult, 1),
	}
	g.startRender()
	return g
}

// startRender cancels any render in flight and starts a new one at the current bounce limit
func (g *viewerGame) startRender() {
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.generation++

	// The scene is read-only during a render, so each render gets its own shallow copy
	frameScene := *g.base
	frameScene.BounceLimit = g.bounces
	generation, bounces := g.generation, g.bounces
	ebiten.SetWindowTitle(fmt.Sprintf("sphereview: %s (%d bounces, rendering...)", g.base.Name, bounces))

	go func() {
		raytracer := renderer.NewRaytracer(&frameScene, g.config, renderer.NewDefaultLogger())
		img, stats, err := raytracer.Render(ctx)
		result := renderResult{generation: generation, bounces: bounces, stats: stats, err: err}
		if err == nil {
			result.frame = renderer.CompositeOver(img, g.backdrop).Pix
		}

		// A superseded render must not displace the result of a newer one
		if ctx.Err() != nil {
			return
		}
		renderer.PublishLatest(g.results, result, func(a, b renderResult) bool {
			return a.generation > b.generation
		}, ctx.Done())
	}()
}

func (g *viewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.cancel != nil {
			g.cancel()
		}
		return ebiten.Termination
	}

	next := g.bounces
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		next = min(g.bounces+1, integrator.MaxBounces)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		next = max(g.bounces-1, 0)
	}
	if next != g.bounces {
		g.bounces = next
		g.startRender()
	}

	select {
	case result := <-g.results:
		if result.generation != g.generation {
			break
		}
		if result.err != nil {
			log.Printf("Render failed: %v", result.err)
			break
		}
		g.frame.WritePixels(result.frame)
		ebiten.SetWindowTitle(fmt.Sprintf("sphereview: %s (%d bounces, %v, %.0f%% covered)",
			g.base.Name, result.bounces, result.stats.Elapsed.Round(time.Millisecond), 100*result.stats.Coverage()))
	default:
	}
	return nil
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame, nil)
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	sceneName := flag.String("scene", "default", "Built-in scene name or path to a .json scene")
	sceneDir := flag.String("scenes", "scenes", "Directory containing JSON scene files")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	scale := flag.Int("scale", 2, "Window scale factor")
	flag.Parse()

	s, err := scene.NewScene(*sceneName, *sceneDir, geometry.CameraConfig{Width: *width})
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
	if err := s.Validate(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	config := renderer.DefaultRenderConfig()
	config.SamplesPerPixel = *samples
	config.NumWorkers = *workers

	ebiten.SetWindowSize(s.CameraConfig.Width*max(1, *scale), s.CameraConfig.Height()*max(1, *scale))
	ebiten.SetTPS(30)

	log.Printf("Up/Down change the bounce limit (0-%d), Escape quits", integrator.MaxBounces)
	if err := ebiten.RunGame(newViewerGame(s, config)); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
