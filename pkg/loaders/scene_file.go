package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// Triple is a JSON-friendly [x, y, z] vector or [r, g, b] color
type Triple [3]float64

// NewTriple converts a Vec3 to a Triple
func NewTriple(v core.Vec3) Triple {
	return Triple{v.X, v.Y, v.Z}
}

// Vec3 converts the triple back to a Vec3
func (t Triple) Vec3() core.Vec3 {
	return core.NewVec3(t[0], t[1], t[2])
}

// SceneFile is the on-disk description of a sphere scene
type SceneFile struct {
	Name            string          `json:"name,omitempty"`
	Description     string          `json:"description,omitempty"`
	BounceLimit     int             `json:"bounceLimit"`
	SamplesPerPixel int             `json:"samplesPerPixel,omitempty"`
	Camera          *CameraFile     `json:"camera,omitempty"`
	Spheres         []SphereFile    `json:"spheres"`
	Lights          []LightFile     `json:"lights"`
	Environment     EnvironmentFile `json:"environment"`
}

// CameraFile describes the pinhole camera used to generate primary rays
type CameraFile struct {
	Center      Triple  `json:"center"`
	LookAt      Triple  `json:"lookAt"`
	Up          Triple  `json:"up"`
	VFov        float64 `json:"vfov"`
	Width       int     `json:"width"`
	AspectRatio float64 `json:"aspectRatio"`
}

// SphereFile describes one sphere and its material
type SphereFile struct {
	Center   Triple       `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialFile `json:"material"`
}

// MaterialFile holds Blinn-Phong coefficients
type MaterialFile struct {
	Diffuse   Triple  `json:"diffuse"`
	Specular  Triple  `json:"specular"`
	Shininess float64 `json:"shininess"`
}

// LightFile describes a point light
type LightFile struct {
	Position  Triple `json:"position"`
	Intensity Triple `json:"intensity"`
}

// EnvironmentFile describes the background. Type is "uniform", "gradient" or "cubemap".
type EnvironmentFile struct {
	Type   string   `json:"type"`
	Color  *Triple  `json:"color,omitempty"`  // uniform
	Top    *Triple  `json:"top,omitempty"`    // gradient
	Bottom *Triple  `json:"bottom,omitempty"` // gradient
	Faces  []string `json:"faces,omitempty"`  // cubemap: posx, negx, posy, negy, posz, negz
	SwapYZ bool     `json:"swapYZ,omitempty"` // cubemap
}

// DecodeSceneFile reads a scene description from JSON
func DecodeSceneFile(r io.Reader) (*SceneFile, error) {
	var sf SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &sf, nil
}

// LoadSceneFile reads a scene description from a JSON file
func LoadSceneFile(path string) (*SceneFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return DecodeSceneFile(f)
}

// EncodeSceneFile writes a scene description as indented JSON
func EncodeSceneFile(w io.Writer, sf *SceneFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// SaveSceneFile writes a scene description to a JSON file
func SaveSceneFile(path string, sf *SceneFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	if err := EncodeSceneFile(f, sf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
