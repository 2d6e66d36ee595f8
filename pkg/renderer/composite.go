package renderer

import (
	"image"
	"image/color"
	"image/draw"
)

// NewCheckerboard creates a two-color checkerboard used as a backdrop behind transparent pixels
func NewCheckerboard(width, height, cellSize int, light, dark color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cellSize = max(1, cellSize)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cellSize+y/cellSize)%2 == 0 {
				img.Set(x, y, light)
			} else {
				img.Set(x, y, dark)
			}
		}
	}
	return img
}

// CompositeOver blends a rendered image over backdrop using its alpha channel.
// The backdrop is aligned to the image's top-left corner.
func CompositeOver(img *image.NRGBA, backdrop image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, backdrop, backdrop.Bounds().Min, draw.Src)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
	return dst
}
