package integrator

import (
	"math"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/lights"
	"github.com/df07/sphere-raytracer/pkg/material"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

// MaxBounces caps reflection depth regardless of the scene's bounce limit,
// so every ray has a fixed worst-case cost.
const MaxBounces = 16

// ClampBounceLimit restricts a requested bounce limit to [0, MaxBounces]
func ClampBounceLimit(limit int) int {
	return min(max(limit, 0), MaxBounces)
}

// WhittedIntegrator implements Blinn-Phong direct lighting with hard shadows
// and mirror reflections.
//
// It only reads the scene, so one integrator may be shared by any number of
// goroutines.
type WhittedIntegrator struct {
	spheres     []geometry.Sphere
	lights      []lights.PointLight
	environment lights.Environment
	bounceLimit int
}

// NewWhittedIntegrator creates a new integrator over the scene's current contents
func NewWhittedIntegrator(s *scene.Scene) *WhittedIntegrator {
	return &WhittedIntegrator{
		spheres:     s.Spheres,
		lights:      s.Lights,
		environment: s.Environment,
		bounceLimit: ClampBounceLimit(s.BounceLimit),
	}
}

// BounceLimit returns the effective (clamped) number of reflection bounces
func (wi *WhittedIntegrator) BounceLimit() int {
	return wi.bounceLimit
}

// Shade returns the Blinn-Phong color at a surface point summed over all lights.
// view points from the surface toward the viewer and must be unit length.
//
// Shadow rays start exactly at position with no offset and any hit along them
// blocks the light, even one beyond the light itself.
func (wi *WhittedIntegrator) Shade(mtl material.Phong, position, normal, view core.Vec3) core.Vec3 {
	color := core.Vec3{}

	for _, light := range wi.lights {
		lightDir, ok := light.DirectionFrom(position)
		if !ok {
			continue
		}

		if geometry.Occluded(core.NewRay(position, lightDir), wi.spheres) {
			continue
		}

		diffuse := light.Intensity.MultiplyVec(mtl.Diffuse).Multiply(math.Max(normal.Dot(lightDir), 0))
		color = color.Add(diffuse)

		halfway := lightDir.Add(view).Normalize()
		if halfway.IsZero() {
			continue
		}
		specularTerm := math.Pow(math.Max(normal.Dot(halfway), 0), mtl.Shininess)
		color = color.Add(light.Intensity.MultiplyVec(mtl.Specular).Multiply(specularTerm))
	}

	return color
}

// Trace implements the Integrator interface.
//
// The primary hit is shaded, then up to BounceLimit mirror reflections are
// followed. Each reflection's contribution is scaled by the product of specular
// coefficients seen so far. The loop ends early when that product has no energy
// left or when a reflection ray escapes to the environment.
func (wi *WhittedIntegrator) Trace(ray core.Ray) (core.Vec3, bool) {
	hit, isHit := geometry.Intersect(ray, wi.spheres)
	if !isHit {
		return wi.lookupEnvironment(ray.Direction), false
	}

	view := ray.Direction.Negate().Normalize()
	color := wi.Shade(hit.Material, hit.Position, hit.Normal, view)
	attenuation := hit.Material.Specular

	for bounce := 0; bounce < wi.bounceLimit; bounce++ {
		if attenuation.Sum() <= 0 {
			break
		}

		reflected := core.NewRay(hit.Position, view.Negate().Reflect(hit.Normal))
		next, isHit := geometry.Intersect(reflected, wi.spheres)
		if !isHit {
			color = color.Add(attenuation.MultiplyVec(wi.lookupEnvironment(reflected.Direction)))
			break
		}

		view = reflected.Direction.Negate().Normalize()
		color = color.Add(attenuation.MultiplyVec(wi.Shade(next.Material, next.Position, next.Normal, view)))
		attenuation = attenuation.MultiplyVec(next.Material.Specular)
		hit = next
	}

	return color, true
}

// TraceRGBA is Trace with coverage folded into an alpha channel (1 for a hit, 0 for a miss)
func (wi *WhittedIntegrator) TraceRGBA(ray core.Ray) (core.Vec3, float64) {
	color, covered := wi.Trace(ray)
	if covered {
		return color, 1
	}
	return color, 0
}

// lookupEnvironment returns black when the scene has no environment
func (wi *WhittedIntegrator) lookupEnvironment(direction core.Vec3) core.Vec3 {
	if wi.environment == nil {
		return core.Vec3{}
	}
	return wi.environment.Lookup(direction)
}
