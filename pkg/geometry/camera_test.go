package geometry

import (
	"testing"

	"github.com/df07/sphere-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		Width:       100,
		AspectRatio: 1.0,
	}
}

func TestCamera_Forward(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	if !vecNear(camera.Forward(), core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected forward (0,0,-1), got %v", camera.Forward())
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	tests := []struct {
		name      string
		i, j      int
		su, sv    float64
		direction core.Vec3
	}{
		{"image center", 50, 50, 0, 0, core.NewVec3(0, 0, -1)},
		{"top left corner", 0, 0, 0, 0, core.NewVec3(-1, 1, -1)},
		{"bottom right corner", 99, 99, 1, 1, core.NewVec3(1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.i, tt.j, tt.su, tt.sv)
			if ray.Origin != core.NewVec3(0, 0, 0) {
				t.Errorf("Expected origin at camera center, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCameraConfig_Height(t *testing.T) {
	config := testCameraConfig()
	config.Width = 400
	config.AspectRatio = 16.0 / 9.0
	if got := config.Height(); got != 225 {
		t.Errorf("Expected height 225, got %d", got)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*CameraConfig)
		expectError bool
	}{
		{"valid", func(c *CameraConfig) {}, false},
		{"zero width", func(c *CameraConfig) { c.Width = 0 }, true},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }, true},
		{"vfov too wide", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"lookAt equals center", func(c *CameraConfig) { c.LookAt = c.Center }, true},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := testCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{Width: 640, VFov: 30})

	if merged.Width != 640 || merged.VFov != 30 {
		t.Errorf("Expected overrides to apply, got width=%d vfov=%v", merged.Width, merged.VFov)
	}
	if merged.Center != base.Center || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Expected untouched fields to keep base values, got %+v", merged)
	}
}
