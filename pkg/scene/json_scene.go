package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/lights"
	"github.com/df07/sphere-raytracer/pkg/loaders"
	"github.com/df07/sphere-raytracer/pkg/material"
)

// NewJSONScene creates a scene from a JSON scene file.
// Cube map face paths are resolved relative to the file's directory.
func NewJSONScene(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := FromFile(sf, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(cameraOverrides) > 0 {
		s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}
	return s, nil
}

// ErrNonLocalPath reports a file reference that is absolute or leaves the scene directory
var ErrNonLocalPath = errors.New("path must be relative to the scene directory")

// CheckLocalPaths rejects a scene file whose cube map faces would be read from
// outside the base directory. Use it before FromFile on scene files from untrusted sources.
func CheckLocalPaths(sf *loaders.SceneFile) error {
	for i, face := range sf.Environment.Faces {
		if !filepath.IsLocal(face) {
			return fmt.Errorf("cube map face %s: %w", lights.CubeFace(i), ErrNonLocalPath)
		}
	}
	return nil
}

// FromFile converts a parsed scene description into a validated Scene
func FromFile(sf *loaders.SceneFile, baseDir string) (*Scene, error) {
	s := &Scene{
		Name:           sf.Name,
		BounceLimit:    sf.BounceLimit,
		CameraConfig:   DefaultCameraConfig(),
		SamplingConfig: DefaultSamplingConfig(),
	}

	if sf.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = sf.SamplesPerPixel
	}
	if sf.Camera != nil {
		// Center and lookAt are positions, so the origin is a real value for them
		fileCamera := convertCamera(sf.Camera)
		s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, fileCamera)
		s.CameraConfig.Center = fileCamera.Center
		s.CameraConfig.LookAt = fileCamera.LookAt
	}

	for _, sphere := range sf.Spheres {
		mtl := material.NewPhong(
			sphere.Material.Diffuse.Vec3(),
			sphere.Material.Specular.Vec3(),
			sphere.Material.Shininess,
		)
		s.AddSphere(sphere.Center.Vec3(), sphere.Radius, mtl)
	}

	for _, light := range sf.Lights {
		s.AddPointLight(light.Position.Vec3(), light.Intensity.Vec3())
	}

	env, err := convertEnvironment(&sf.Environment, baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to convert environment: %w", err)
	}
	s.Environment = env
	envFile := sf.Environment
	s.environmentFile = &envFile

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return s, nil
}

// convertCamera maps the file camera onto a CameraConfig
func convertCamera(cf *loaders.CameraFile) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      cf.Center.Vec3(),
		LookAt:      cf.LookAt.Vec3(),
		Up:          cf.Up.Vec3(),
		VFov:        cf.VFov,
		Width:       cf.Width,
		AspectRatio: cf.AspectRatio,
	}
}

// convertEnvironment builds the environment sampler described by ef
func convertEnvironment(ef *loaders.EnvironmentFile, baseDir string) (lights.Environment, error) {
	switch lights.EnvironmentType(ef.Type) {
	case lights.EnvironmentTypeUniform, "":
		color := core.Vec3{}
		if ef.Color != nil {
			color = ef.Color.Vec3()
		}
		return lights.NewUniformEnvironment(color), nil

	case lights.EnvironmentTypeGradient:
		if ef.Top == nil || ef.Bottom == nil {
			return nil, fmt.Errorf("gradient environment needs both top and bottom colors")
		}
		return lights.NewGradientEnvironment(ef.Top.Vec3(), ef.Bottom.Vec3()), nil

	case lights.EnvironmentTypeCubeMap:
		if len(ef.Faces) != 6 {
			return nil, fmt.Errorf("cube map environment needs 6 faces, got %d", len(ef.Faces))
		}
		var paths [6]string
		copy(paths[:], ef.Faces)
		return loaders.LoadCubeMap(baseDir, paths, ef.SwapYZ)
	}

	return nil, fmt.Errorf("unknown environment type %q", ef.Type)
}

// ToFile converts the scene back into its file description.
// Cube map environments can only be written when the scene was loaded from a file.
func (s *Scene) ToFile() (*loaders.SceneFile, error) {
	cc := s.CameraConfig
	sf := &loaders.SceneFile{
		Name:            s.Name,
		BounceLimit:     s.BounceLimit,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		Camera: &loaders.CameraFile{
			Center:      loaders.NewTriple(cc.Center),
			LookAt:      loaders.NewTriple(cc.LookAt),
			Up:          loaders.NewTriple(cc.Up),
			VFov:        cc.VFov,
			Width:       cc.Width,
			AspectRatio: cc.AspectRatio,
		},
		Spheres: make([]loaders.SphereFile, 0, len(s.Spheres)),
		Lights:  make([]loaders.LightFile, 0, len(s.Lights)),
	}

	for _, sphere := range s.Spheres {
		sf.Spheres = append(sf.Spheres, loaders.SphereFile{
			Center: loaders.NewTriple(sphere.Center),
			Radius: sphere.Radius,
			Material: loaders.MaterialFile{
				Diffuse:   loaders.NewTriple(sphere.Material.Diffuse),
				Specular:  loaders.NewTriple(sphere.Material.Specular),
				Shininess: sphere.Material.Shininess,
			},
		})
	}
	for _, light := range s.Lights {
		sf.Lights = append(sf.Lights, loaders.LightFile{
			Position:  loaders.NewTriple(light.Position),
			Intensity: loaders.NewTriple(light.Intensity),
		})
	}

	switch env := s.Environment.(type) {
	case nil:
		sf.Environment = loaders.EnvironmentFile{Type: string(lights.EnvironmentTypeUniform)}
	case *lights.UniformEnvironment:
		color := loaders.NewTriple(env.Color)
		sf.Environment = loaders.EnvironmentFile{Type: string(env.Type()), Color: &color}
	case *lights.GradientEnvironment:
		top, bottom := loaders.NewTriple(env.TopColor), loaders.NewTriple(env.BottomColor)
		sf.Environment = loaders.EnvironmentFile{Type: string(env.Type()), Top: &top, Bottom: &bottom}
	default:
		if s.environmentFile == nil {
			return nil, fmt.Errorf("environment of type %s cannot be saved", env.Type())
		}
		sf.Environment = *s.environmentFile
	}

	return sf, nil
}
