package integrator

import (
	"github.com/df07/sphere-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the color seen along a camera ray.
	// covered reports whether the ray hit scene geometry; renderers use it as alpha.
	Trace(ray core.Ray) (color core.Vec3, covered bool)
}
