package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

// quietLogger discards render progress lines
type quietLogger struct{}

func (quietLogger) Printf(format string, args ...interface{}) {}

// halfPlaneIntegrator covers rays pointing left of the camera axis
type halfPlaneIntegrator struct{}

func (halfPlaneIntegrator) Trace(ray core.Ray) (core.Vec3, bool) {
	if ray.Direction.X < 0 {
		return core.NewVec3(1, 0, 0), true
	}
	return core.NewVec3(0, 0, 1), false
}

func newSingleSphereRaytracer(width int, config RenderConfig) *Raytracer {
	s := scene.NewSingleSphereScene(geometry.CameraConfig{Width: width, AspectRatio: 1})
	return NewRaytracer(s, config, quietLogger{})
}

func TestDefaultRenderConfig(t *testing.T) {
	config := DefaultRenderConfig()
	if config.Gamma != 1.0 {
		t.Errorf("Expected linear output by default, got gamma %f", config.Gamma)
	}
	if config.TileSize <= 0 {
		t.Errorf("Expected positive tile size, got %d", config.TileSize)
	}
}

func TestRaytracer_SingleSphereCoverage(t *testing.T) {
	rt := newSingleSphereRaytracer(16, DefaultRenderConfig())

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("Expected 16x16 image, got %v", img.Bounds())
	}

	center := img.NRGBAAt(8, 8)
	if center.A != 255 {
		t.Errorf("Expected opaque center pixel, got %+v", center)
	}
	if center.G != 0 || center.B != 0 {
		t.Errorf("Red matte sphere should have no green or blue, got %+v", center)
	}

	// Corner misses the sphere and keeps the environment color
	corner := img.NRGBAAt(0, 0)
	expected := color.NRGBA{R: 51, G: 51, B: 51, A: 0}
	if corner != expected {
		t.Errorf("Expected corner %+v, got %+v", expected, corner)
	}

	if stats.TotalPixels != 256 || stats.TotalSamples != 256 {
		t.Errorf("Unexpected pixel/sample counts %+v", stats)
	}
	if stats.CoveredPixels == 0 || stats.CoveredPixels == stats.TotalPixels {
		t.Errorf("Expected partial coverage, got %d/%d", stats.CoveredPixels, stats.TotalPixels)
	}
}

func TestRaytracer_AlphaIsCoveredFraction(t *testing.T) {
	config := DefaultRenderConfig()
	config.SamplesPerPixel = 4
	rt := newSingleSphereRaytracer(15, config)
	rt.SetIntegrator(halfPlaneIntegrator{})

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	tests := []struct {
		x        int
		expected color.NRGBA
	}{
		{0, color.NRGBA{R: 255, G: 0, B: 0, A: 255}},
		{7, color.NRGBA{R: 128, G: 0, B: 128, A: 128}}, // pixel straddles the axis
		{14, color.NRGBA{R: 0, G: 0, B: 255, A: 0}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, 3); got != tt.expected {
			t.Errorf("Pixel (%d, 3): expected %+v, got %+v", tt.x, tt.expected, got)
		}
	}

	if stats.TotalSamples != 15*15*4 {
		t.Errorf("Expected %d samples, got %d", 15*15*4, stats.TotalSamples)
	}
	if stats.CoveredPixels != 8*15 {
		t.Errorf("Expected %d covered pixels, got %d", 8*15, stats.CoveredPixels)
	}
}

func TestRaytracer_DeterministicAcrossWorkers(t *testing.T) {
	s := scene.NewDefaultScene(geometry.CameraConfig{Width: 48, AspectRatio: 1.5})

	render := func(tileSize, workers int) []byte {
		config := DefaultRenderConfig()
		config.TileSize = tileSize
		config.NumWorkers = workers
		config.SamplesPerPixel = 2
		img, _, err := NewRaytracer(s, config, quietLogger{}).Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return img.Pix
	}

	serial := render(64, 1)
	parallel := render(5, 4)
	if !bytes.Equal(serial, parallel) {
		t.Error("Parallel tiled render differs from serial render")
	}
}

func TestRaytracer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := newSingleSphereRaytracer(32, DefaultRenderConfig()).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
}

func TestRaytracer_SamplesFromScene(t *testing.T) {
	s := scene.NewSingleSphereScene(geometry.CameraConfig{Width: 4, AspectRatio: 1})
	s.SamplingConfig.SamplesPerPixel = 3

	_, stats, err := NewRaytracer(s, DefaultRenderConfig(), quietLogger{}).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.TotalSamples != 4*4*3 {
		t.Errorf("Expected %d samples, got %d", 4*4*3, stats.TotalSamples)
	}
}

func TestStratifiedOffset(t *testing.T) {
	tests := []struct {
		sample, n int
		su, sv    float64
	}{
		{0, 1, 0.5, 0.5},
		{0, 4, 0.25, 0.25},
		{3, 4, 0.75, 0.75},
		{1, 2, 0.75, 0.25},
		{4, 9, 0.5, 0.5},
	}

	for _, tt := range tests {
		su, sv := stratifiedOffset(tt.sample, tt.n)
		if math.Abs(su-tt.su) > 1e-12 || math.Abs(sv-tt.sv) > 1e-12 {
			t.Errorf("stratifiedOffset(%d, %d) = (%f, %f), want (%f, %f)", tt.sample, tt.n, su, sv, tt.su, tt.sv)
		}
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		gamma    float64
		color    core.Vec3
		alpha    float64
		expected color.NRGBA
	}{
		{"linear", 1.0, core.NewVec3(1, 0.5, 0), 1, color.NRGBA{255, 128, 0, 255}},
		{"clamps out of range", 1.0, core.NewVec3(3, -1, 0.2), 0, color.NRGBA{255, 0, 51, 0}},
		{"gamma 2", 2.0, core.NewVec3(0.25, 1, 0), 0.5, color.NRGBA{128, 255, 0, 128}},
		{"zero gamma treated as linear", 0, core.NewVec3(0.2, 0.2, 0.2), 1, color.NRGBA{51, 51, 51, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &Raytracer{config: RenderConfig{Gamma: tt.gamma}}
			if got := rt.vec3ToColor(tt.color, tt.alpha); got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
