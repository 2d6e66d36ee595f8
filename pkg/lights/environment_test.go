package lights

import (
	"math"
	"testing"

	"github.com/df07/sphere-raytracer/pkg/core"
)

func TestUniformEnvironment_Lookup(t *testing.T) {
	env := NewUniformEnvironment(core.NewVec3(0.2, 0.3, 0.4))

	for _, dir := range []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(-3, 0, 7),
		core.NewVec3(0, 0, 0),
	} {
		if got := env.Lookup(dir); got != env.Color {
			t.Errorf("Lookup(%v) = %v, expected %v", dir, got, env.Color)
		}
	}
	if env.Type() != EnvironmentTypeUniform {
		t.Errorf("Expected uniform type, got %s", env.Type())
	}
}

func TestGradientEnvironment_Lookup(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1.0, 1.0, 1.0)
	env := NewGradientEnvironment(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), top},
		{"straight up, long vector", core.NewVec3(0, 10, 0), top},
		{"straight down", core.NewVec3(0, -1, 0), bottom},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
		{"zero direction", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.Lookup(tt.direction)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPointLight_DirectionFrom(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

	dir, ok := light.DirectionFrom(core.NewVec3(0, 1, 0))
	if !ok {
		t.Fatal("Expected a valid direction")
	}
	if dir.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected (0,1,0), got %v", dir)
	}

	if _, ok := light.DirectionFrom(light.Position); ok {
		t.Error("Point at light position must not yield a direction")
	}
}

func TestPointLight_Validate(t *testing.T) {
	if err := NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1)).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewPointLight(core.NewVec3(0, math.NaN(), 0), core.NewVec3(1, 1, 1)).Validate(); err == nil {
		t.Error("Expected error for NaN position")
	}
}
