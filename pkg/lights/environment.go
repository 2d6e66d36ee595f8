package lights

import (
	"github.com/df07/sphere-raytracer/pkg/core"
)

// UniformEnvironment returns the same color in every direction
type UniformEnvironment struct {
	Color core.Vec3
}

// NewUniformEnvironment creates a new uniform environment
func NewUniformEnvironment(color core.Vec3) *UniformEnvironment {
	return &UniformEnvironment{Color: color}
}

func (ue *UniformEnvironment) Type() EnvironmentType {
	return EnvironmentTypeUniform
}

// Lookup implements the Environment interface
func (ue *UniformEnvironment) Lookup(direction core.Vec3) core.Vec3 {
	return ue.Color
}

// GradientEnvironment blends between a bottom and a top color along the Y axis
type GradientEnvironment struct {
	TopColor    core.Vec3 // Color straight up
	BottomColor core.Vec3 // Color straight down
}

// NewGradientEnvironment creates a new gradient environment
func NewGradientEnvironment(topColor, bottomColor core.Vec3) *GradientEnvironment {
	return &GradientEnvironment{TopColor: topColor, BottomColor: bottomColor}
}

func (ge *GradientEnvironment) Type() EnvironmentType {
	return EnvironmentTypeGradient
}

// Lookup implements the Environment interface
func (ge *GradientEnvironment) Lookup(direction core.Vec3) core.Vec3 {
	// Normalize the direction to get consistent results
	unitDirection := direction.Normalize()
	if unitDirection.IsZero() {
		return core.Vec3{}
	}

	t := 0.5 * (unitDirection.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return ge.BottomColor.Multiply(1.0 - t).Add(ge.TopColor.Multiply(t))
}
