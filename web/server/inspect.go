package server

import (
	"net/http"
	"strconv"

	"github.com/df07/sphere-raytracer/pkg/core"
	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/integrator"
	"github.com/df07/sphere-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"` // -1 on a miss
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"` // Ray parameter t; the ray direction is not normalized
	Color       [3]float64 `json:"color"`    // Linear traced color before clamping
	Alpha       float64    `json:"alpha"`    // Coverage of the center sample
	Properties  Properties `json:"properties"`
}

// Properties describes the sphere and material that were hit
type Properties struct {
	Center     [3]float64 `json:"center"`
	Radius     float64    `json:"radius"`
	Diffuse    [3]float64 `json:"diffuse"`
	Specular   [3]float64 `json:"specular"`
	Shininess  float64    `json:"shininess"`
	Reflective bool       `json:"reflective"` // Reflection rays are followed from this surface
}

func triple(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel casts a ray through the pixel center and reports what it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	camera := sceneObj.GetCamera()
	ray := camera.GetRay(pixelX, pixelY, 0.5, 0.5)

	color, alpha := integrator.NewWhittedIntegrator(sceneObj).TraceRGBA(ray)
	response := InspectResponse{SphereIndex: -1, Color: triple(color), Alpha: alpha}

	hit, isHit := geometry.Intersect(ray, sceneObj.Spheres)
	if !isHit {
		return response
	}

	// Intersect does not report which sphere won, so find the first one at the same t
	for i, sphere := range sceneObj.Spheres {
		if sphereHit, ok := sphere.Hit(ray, geometry.NoHitT); ok && sphereHit.T == hit.T {
			response.SphereIndex = i
			response.Properties.Center = triple(sphere.Center)
			response.Properties.Radius = sphere.Radius
			break
		}
	}

	response.Hit = true
	response.Point = triple(hit.Position)
	response.Normal = triple(hit.Normal)
	response.Distance = hit.T
	response.Properties.Diffuse = triple(hit.Material.Diffuse)
	response.Properties.Specular = triple(hit.Material.Specular)
	response.Properties.Shininess = hit.Material.Shininess
	response.Properties.Reflective = hit.Material.Reflective()
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.buildScene(req, NewWebLogger("inspect", nil))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, height := sceneObj.CameraConfig.Width, sceneObj.CameraConfig.Height()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
