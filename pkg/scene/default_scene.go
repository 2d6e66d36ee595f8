package scene

import (
	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/lights"
	"github.com/df07/sphere-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with colored and mirror spheres on a ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:           "default",
		BounceLimit:    5,
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
		Environment: lights.NewGradientEnvironment(
			core.NewVec3(0.5, 0.7, 1.0), // topColor (blue sky)
			core.NewVec3(1.0, 1.0, 1.0), // bottomColor (white ground)
		),
	}

	ground := material.NewPhong(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.2, 0.2, 0.2), 20)
	red := material.NewPhong(core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0.3, 0.3, 0.3), 50)
	blue := material.NewPhong(core.NewVec3(0.1, 0.2, 0.8), core.NewVec3(0.3, 0.3, 0.3), 50)
	gold := material.NewPhong(core.NewVec3(0.6, 0.45, 0.1), core.NewVec3(0.6, 0.5, 0.2), 100)
	mirror := material.NewPhong(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.9, 0.9, 0.9), 500)

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)
	s.AddSphere(core.NewVec3(-1.6, 1, 0), 1, red)
	s.AddSphere(core.NewVec3(0, 1, -1), 1, mirror)
	s.AddSphere(core.NewVec3(1.6, 1, 0), 1, blue)
	s.AddSphere(core.NewVec3(0.6, 0.4, 1.4), 0.4, gold)

	s.AddPointLight(core.NewVec3(-4, 8, 6), core.NewVec3(0.7, 0.7, 0.7))
	s.AddPointLight(core.NewVec3(5, 6, -2), core.NewVec3(0.4, 0.4, 0.5))

	return s
}

// NewMirrorScene creates two mirror spheres facing each other with a colored sphere between them
func NewMirrorScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(3, 2.5, 0),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60.0,
		Width:       400,
		AspectRatio: 1.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:           "mirrors",
		BounceLimit:    8,
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
		Environment:    lights.NewUniformEnvironment(core.NewVec3(0.05, 0.05, 0.1)),
	}

	mirror := material.NewMirror(core.NewVec3(0.85, 0.85, 0.85), 200)
	green := material.NewPhong(core.NewVec3(0.1, 0.8, 0.2), core.NewVec3(0.1, 0.1, 0.1), 30)

	s.AddSphere(core.NewVec3(0, 0, -3), 2, mirror)
	s.AddSphere(core.NewVec3(0, 0, 3), 2, mirror)
	s.AddSphere(core.NewVec3(0, -0.5, 0), 0.5, green)

	s.AddPointLight(core.NewVec3(0, 6, 0), core.NewVec3(1, 1, 1))

	return s
}

// NewSingleSphereScene creates a single red matte unit sphere lit from above
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		Width:       200,
		AspectRatio: 1.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:           "single",
		BounceLimit:    1,
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
		Environment:    lights.NewUniformEnvironment(core.NewVec3(0.2, 0.2, 0.2)),
	}

	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewVec3(1, 0, 0)))
	s.AddPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

	return s
}
