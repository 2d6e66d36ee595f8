package geometry

import (
	"fmt"
	"math"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 `json:"center"`      // Camera position
	LookAt      core.Vec3 `json:"lookAt"`      // Point the camera looks at
	Up          core.Vec3 `json:"up"`          // Up direction
	VFov        float64   `json:"vfov"`        // Vertical field of view in degrees
	Width       int       `json:"width"`       // Image width in pixels
	AspectRatio float64   `json:"aspectRatio"` // Width / height
}

// Height returns the image height implied by width and aspect ratio
func (cc CameraConfig) Height() int {
	return max(1, int(math.Round(float64(cc.Width)/cc.AspectRatio)))
}

// Validate checks the camera can produce rays
func (cc CameraConfig) Validate() error {
	if cc.Width <= 0 {
		return fmt.Errorf("camera width must be positive, got %d", cc.Width)
	}
	if !(cc.AspectRatio > 0) {
		return fmt.Errorf("camera aspect ratio must be positive, got %v", cc.AspectRatio)
	}
	if !(cc.VFov > 0 && cc.VFov < 180) {
		return fmt.Errorf("camera vfov must be in (0, 180), got %v", cc.VFov)
	}
	if cc.LookAt.Subtract(cc.Center).IsZero() {
		return fmt.Errorf("camera center and lookAt must differ")
	}
	if cc.Up.Cross(cc.LookAt.Subtract(cc.Center)).IsZero() {
		return fmt.Errorf("camera up must not be parallel to the view direction")
	}
	return nil
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Center.IsZero() {
		result.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// Camera generates primary rays for image pixels
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	width, height   int
}

// NewCamera creates a camera from the config
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		width:           config.Width,
		height:          config.Height(),
	}
}

// GetRay returns the ray through pixel (i, j) offset by (su, sv) within the pixel.
// Row j = 0 is the top of the image. The direction is not normalized.
func (c *Camera) GetRay(i, j int, su, sv float64) core.Ray {
	s := (float64(i) + su) / float64(c.width)
	t := 1.0 - (float64(j)+sv)/float64(c.height)

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.vertical.Cross(c.horizontal).Normalize()
}
