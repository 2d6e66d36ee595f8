package lights

import "github.com/df07/sphere-raytracer/pkg/core"

type EnvironmentType string

const (
	EnvironmentTypeUniform  EnvironmentType = "uniform"
	EnvironmentTypeGradient EnvironmentType = "gradient"
	EnvironmentTypeCubeMap  EnvironmentType = "cubemap"
)

// Environment supplies the background color seen by rays that escape the scene.
// Lookup must be a pure function of direction: it is called concurrently from
// every render worker.
type Environment interface {
	Type() EnvironmentType

	// Lookup returns the radiance arriving along direction.
	// The direction is not required to be normalized.
	Lookup(direction core.Vec3) core.Vec3
}
