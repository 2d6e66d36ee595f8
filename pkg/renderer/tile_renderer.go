package renderer

import (
	"image"
	"math"

	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera          *geometry.Camera
	integrator      integrator.Integrator
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer with the given camera and integrator
func NewTileRenderer(camera *geometry.Camera, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		integrator:      integratorInst,
		samplesPerPixel: max(1, samplesPerPixel),
	}
}

// RenderTileBounds renders pixels within the specified bounds into pixelStats.
// pixelStats is indexed [y][x] in image coordinates; only cells inside bounds are written.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			for sample := 0; sample < tr.samplesPerPixel; sample++ {
				su, sv := stratifiedOffset(sample, tr.samplesPerPixel)
				color, covered := tr.integrator.Trace(tr.camera.GetRay(i, j, su, sv))
				ps.AddSample(color, covered)
			}
			stats.TotalSamples += tr.samplesPerPixel
			if ps.CoveredCount > 0 {
				stats.CoveredPixels++
			}
		}
	}

	return stats
}

// stratifiedOffset returns the center of cell sample in a k×k grid over the pixel,
// where k is the smallest square side holding n samples. One sample lands on the pixel center.
func stratifiedOffset(sample, n int) (su, sv float64) {
	k := int(math.Ceil(math.Sqrt(float64(n))))
	su = (float64(sample%k) + 0.5) / float64(k)
	sv = (float64(sample/k) + 0.5) / float64(k)
	return su, sv
}
