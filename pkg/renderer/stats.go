package renderer

import (
	"image"
	"time"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	CoveredPixels int           // Pixels where at least one sample hit a sphere
	TotalSamples  int           // Total number of camera rays traced
	Tiles         int           // Number of tiles the image was split into
	Workers       int           // Maximum number of tiles rendered at once
	Elapsed       time.Duration // Wall-clock render time
}

// Coverage returns the fraction of pixels touched by geometry
func (rs RenderStats) Coverage() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.CoveredPixels) / float64(rs.TotalPixels)
}

// add merges the counters of a single tile into rs
func (rs *RenderStats) add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.CoveredPixels += other.CoveredPixels
	rs.TotalSamples += other.TotalSamples
}

// PixelStats accumulates the samples taken for a single pixel
type PixelStats struct {
	ColorAccum   core.Vec3 // RGB accumulator for final result
	CoveredCount int       // Samples whose ray hit geometry
	SampleCount  int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3, covered bool) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	if covered {
		ps.CoveredCount++
	}
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// GetAlpha returns the fraction of samples that hit geometry
func (ps *PixelStats) GetAlpha() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return float64(ps.CoveredCount) / float64(ps.SampleCount)
}

// CalculateAverageLuminance returns the mean luminance of img with channels mapped to [0,1].
// Transparent pixels count with their stored color.
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var c core.Vec3
			if nrgba, ok := img.(*image.NRGBA); ok {
				p := nrgba.NRGBAAt(x, y)
				c = core.NewVec3(float64(p.R), float64(p.G), float64(p.B)).Multiply(1.0 / 255)
			} else {
				r, g, b, _ := img.At(x, y).RGBA()
				c = core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0 / 65535)
			}
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
