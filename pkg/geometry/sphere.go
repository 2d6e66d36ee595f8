package geometry

import (
	"fmt"
	"math"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Phong
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mtl material.Phong) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mtl,
	}
}

// Hit tests the ray against the sphere and returns the near root if it lies in (0, tMax).
//
// Only the near root is considered, so a ray starting inside the sphere does not
// see it. The direction does not have to be normalized.
func (s Sphere) Hit(ray core.Ray, tMax float64) (HitInfo, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a <= 0 {
		return HitInfo{}, false
	}
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	delta := b*b - 4*a*c
	if delta < 0 {
		return HitInfo{}, false
	}

	t1 := (-b - math.Sqrt(delta)) / (2 * a)
	if t1 <= 0 || t1 >= tMax {
		return HitInfo{}, false
	}

	position := ray.At(t1)
	return HitInfo{
		T:        t1,
		Position: position,
		Normal:   position.Subtract(s.Center).Normalize(),
		Material: s.Material,
	}, true
}

// Validate reports spheres that would make the quadratic meaningless
func (s Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return fmt.Errorf("sphere center must be finite, got %v", s.Center)
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere radius must be positive and finite, got %v", s.Radius)
	}
	if err := s.Material.Validate(); err != nil {
		return fmt.Errorf("sphere material: %w", err)
	}
	return nil
}

// Intersect finds the closest sphere hit along the ray.
// Spheres are tested in order and a later sphere replaces the current hit only when
// strictly closer, so the first of two equally distant spheres wins.
// When nothing is hit the returned HitInfo keeps T at NoHitT.
func Intersect(ray core.Ray, spheres []Sphere) (HitInfo, bool) {
	closest := NewHitInfo()
	found := false

	for i := range spheres {
		if hit, ok := spheres[i].Hit(ray, closest.T); ok {
			closest = hit
			found = true
		}
	}

	return closest, found
}

// Occluded reports whether the ray hits any sphere at all
func Occluded(ray core.Ray, spheres []Sphere) bool {
	for i := range spheres {
		if _, ok := spheres[i].Hit(ray, NoHitT); ok {
			return true
		}
	}
	return false
}
