package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/loaders"
	"github.com/df07/sphere-raytracer/pkg/renderer"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

const sceneDir = "scenes"

// Config holds all command-line configuration
type Config struct {
	SceneType string
	Width     int
	Height    int
	Bounces   int
	Samples   int
	Workers   int
	Gamma     float64
	SaveScene string
	List      bool
	Help      bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}
	if config.List {
		listScenes()
		return
	}

	fmt.Println("Starting Sphere Raytracer...")

	sceneObj, err := createScene(config.SceneType, cameraOverrides(config))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if config.Bounces >= 0 {
		sceneObj.BounceLimit = config.Bounces
	}
	if config.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = config.Samples
	}

	if config.SaveScene != "" {
		if err := saveScene(sceneObj, config.SaveScene); err != nil {
			fmt.Printf("Error saving scene: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scene saved as %s\n", config.SaveScene)
	}

	outputDir := createOutputDir(config.SceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = config.Workers
	renderConfig.Gamma = config.Gamma

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(sceneObj, renderConfig, renderer.NewDefaultLogger())
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Traced %d samples over %d pixels (%.1f%% covered, average luminance %.3f)\n",
		stats.TotalSamples, stats.TotalPixels, 100*stats.Coverage(), renderer.CalculateAverageLuminance(img))

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(filename, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Built-in scene name, scene file stem in ./scenes, or path to a .json scene")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = keep the scene's aspect ratio)")
	flag.IntVar(&config.Bounces, "bounces", -1, "Reflection bounce limit (-1 = scene default, capped at 16)")
	flag.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Float64Var(&config.Gamma, "gamma", 1.0, "Output gamma (1 = linear)")
	flag.StringVar(&config.SaveScene, "save-scene", "", "Write the resolved scene as JSON to this path")
	flag.BoolVar(&config.List, "list", false, "List available scenes")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: sphere-raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Printf("  <name>     - %s/<name>.json\n", sceneDir)
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// listScenes prints every built-in and JSON scene
func listScenes() {
	scenes, err := scene.ListScenes(sceneDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, info := range scenes {
		fmt.Printf("%-20s %-8s %s\n", info.ID, info.Type, info.Description)
	}
}

// cameraOverrides maps size flags onto camera fields; zero fields keep the scene's values
func cameraOverrides(config Config) geometry.CameraConfig {
	override := geometry.CameraConfig{Width: config.Width}
	if config.Height > 0 {
		width := config.Width
		if width <= 0 {
			width = config.Height
		}
		override.Width = width
		override.AspectRatio = float64(width) / float64(config.Height)
	}
	return override
}

// createScene creates a scene based on the scene type string
func createScene(sceneType string, overrides geometry.CameraConfig) (*scene.Scene, error) {
	s, err := scene.NewScene(sceneType, sceneDir, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %q: %w", sceneType, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q is invalid: %w", sceneType, err)
	}
	return s, nil
}

// createOutputDir returns the output directory for a scene: built-in IDs are used
// as-is, scene files use their base name without extension
func createOutputDir(sceneType string) string {
	name := strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join("output", name)
}

// saveScene writes the scene as JSON
func saveScene(s *scene.Scene, path string) error {
	sf, err := s.ToFile()
	if err != nil {
		return err
	}
	return loaders.SaveSceneFile(path, sf)
}

// savePNG writes img as a PNG file
func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
