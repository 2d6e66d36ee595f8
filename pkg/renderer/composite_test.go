package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestNewCheckerboard(t *testing.T) {
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{50, 50, 50, 255}
	board := NewCheckerboard(8, 8, 4, light, dark)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, light},
		{3, 3, light},
		{4, 0, dark},
		{0, 4, dark},
		{4, 4, light},
	}
	for _, tt := range tests {
		if got := board.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestCompositeOver(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255}) // covered
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 0})   // missed: environment color is ignored
	img.SetNRGBA(2, 0, color.NRGBA{255, 0, 0, 128}) // half covered

	backdrop := image.NewUniform(color.RGBA{0, 255, 0, 255})
	out := CompositeOver(img, backdrop)

	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Opaque pixel: expected red, got %v", got)
	}
	if got := out.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Transparent pixel: expected backdrop, got %v", got)
	}

	half := out.RGBAAt(2, 0)
	if half.A != 255 || half.R < 120 || half.R > 135 || half.G < 120 || half.G > 135 || half.B != 0 {
		t.Errorf("Half covered pixel: expected an even red/green blend, got %v", half)
	}
}
