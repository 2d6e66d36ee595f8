package geometry

import (
	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/material"
)

// NoHitT is the ray parameter a HitInfo holds before any sphere has been accepted
const NoHitT = 1e30

// HitInfo contains information about the closest ray-sphere intersection
type HitInfo struct {
	T        float64        // Parameter t along the ray
	Position core.Vec3      // Point of intersection
	Normal   core.Vec3      // Unit normal pointing away from the sphere center
	Material material.Phong // Copy of the sphere's material
}

// NewHitInfo returns a HitInfo with T at the "no hit yet" sentinel
func NewHitInfo() HitInfo {
	return HitInfo{T: NoHitT}
}
