package material

import (
	"fmt"
	"math"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// Phong holds Blinn-Phong coefficients for a surface.
// It is a plain value so hits carry their own copy.
type Phong struct {
	Diffuse   core.Vec3 // k_d
	Specular  core.Vec3 // k_s, also the mirror reflectance
	Shininess float64   // specular exponent n
}

// NewPhong creates a new Blinn-Phong material
func NewPhong(diffuse, specular core.Vec3, shininess float64) Phong {
	return Phong{Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

// NewMatte creates a material with no specular term, so it never spawns reflection rays
func NewMatte(diffuse core.Vec3) Phong {
	return Phong{Diffuse: diffuse}
}

// NewMirror creates a purely specular material
func NewMirror(reflectance core.Vec3, shininess float64) Phong {
	return Phong{Specular: reflectance, Shininess: shininess}
}

// Reflective reports whether the material carries any specular energy into reflections
func (p Phong) Reflective() bool {
	return p.Specular.Sum() > 0
}

// Validate checks the coefficients a renderer expects to be well formed
func (p Phong) Validate() error {
	if !p.Diffuse.IsFinite() || !p.Specular.IsFinite() {
		return fmt.Errorf("material coefficients must be finite (k_d=%v, k_s=%v)", p.Diffuse, p.Specular)
	}
	if p.Shininess < 0 || math.IsNaN(p.Shininess) {
		return fmt.Errorf("shininess must be >= 0, got %v", p.Shininess)
	}
	return nil
}
