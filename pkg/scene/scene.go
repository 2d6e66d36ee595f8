package scene

import (
	"fmt"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/lights"
	"github.com/df07/sphere-raytracer/pkg/loaders"
	"github.com/df07/sphere-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is built once per frame and must not be modified while a render is running.
type Scene struct {
	Name           string
	Spheres        []geometry.Sphere   // Tested in order; earlier spheres win exact ties
	Lights         []lights.PointLight // Point lights used for direct shading
	Environment    lights.Environment  // Background seen by escaping rays
	BounceLimit    int                 // Requested reflection depth, clamped by the integrator
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig

	// environmentFile remembers how a file-based environment was described so the
	// scene can be written back out.
	environmentFile *loaders.EnvironmentFile
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Camera rays per pixel (1 = pixel center only)
}

// DefaultSamplingConfig returns one sample per pixel, matching a per-fragment tracer
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{SamplesPerPixel: 1}
}

// DefaultCameraConfig returns the camera used when a scene does not specify one
func DefaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 6),
		LookAt:      core.NewVec3(0, 0.75, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		Width:       400,
		AspectRatio: 16.0 / 9.0,
	}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mtl material.Phong) {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, mtl))
}

// AddPointLight appends a point light to the scene
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// GetCamera builds the camera described by CameraConfig
func (s *Scene) GetCamera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}

// Validate reports scene data that would violate the tracer's preconditions.
// Rendering an invalid scene does not fail, but the picture is meaningless.
func (s *Scene) Validate() error {
	for i, sphere := range s.Spheres {
		if err := sphere.Validate(); err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	if s.SamplingConfig.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", s.SamplingConfig.SamplesPerPixel)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}
