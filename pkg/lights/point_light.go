package lights

import (
	"fmt"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// PointLight is an infinitesimal light with no falloff
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit direction from point toward the light.
// ok is false when the point coincides with the light, in which case the
// direction is undefined and the light should contribute nothing.
func (l PointLight) DirectionFrom(point core.Vec3) (core.Vec3, bool) {
	dir := l.Position.Subtract(point).Normalize()
	return dir, !dir.IsZero()
}

// Validate checks the light is usable for shading
func (l PointLight) Validate() error {
	if !l.Position.IsFinite() || !l.Intensity.IsFinite() {
		return fmt.Errorf("light position and intensity must be finite (position=%v, intensity=%v)", l.Position, l.Intensity)
	}
	return nil
}
