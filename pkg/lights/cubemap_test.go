package lights

import (
	"testing"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// solidFaces builds a cube map whose faces are uniformly colored by face index
func solidFaces(size int) [6]FaceImage {
	var faces [6]FaceImage
	for i := range faces {
		pixels := make([]core.Vec3, size*size)
		for p := range pixels {
			pixels[p] = core.NewVec3(float64(i), 0, 0)
		}
		faces[i] = FaceImage{Width: size, Height: size, Pixels: pixels}
	}
	return faces
}

func TestCubeMapEnvironment_FaceSelection(t *testing.T) {
	env, err := NewCubeMapEnvironment(solidFaces(2), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		direction core.Vec3
		face      CubeFace
	}{
		{core.NewVec3(1, 0.2, -0.3), FacePositiveX},
		{core.NewVec3(-1, 0.2, 0.3), FaceNegativeX},
		{core.NewVec3(0.1, 2, 0.3), FacePositiveY},
		{core.NewVec3(0.1, -2, 0.3), FaceNegativeY},
		{core.NewVec3(0.1, 0.2, 5), FacePositiveZ},
		{core.NewVec3(0.1, 0.2, -5), FaceNegativeZ},
	}

	for _, tt := range tests {
		t.Run(tt.face.String(), func(t *testing.T) {
			got := env.Lookup(tt.direction)
			if got.X != float64(tt.face) {
				t.Errorf("Lookup(%v) sampled face %v, expected %s", tt.direction, got.X, tt.face)
			}
		})
	}
}

func TestCubeMapEnvironment_SwapYZ(t *testing.T) {
	env, err := NewCubeMapEnvironment(solidFaces(1), true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// With the swap, +Z in scene space maps to the +Y face
	if got := env.Lookup(core.NewVec3(0, 0, 1)); got.X != float64(FacePositiveY) {
		t.Errorf("Expected +Y face for +Z direction, got face %v", got.X)
	}
	if got := env.Lookup(core.NewVec3(0, -1, 0)); got.X != float64(FaceNegativeZ) {
		t.Errorf("Expected -Z face for -Y direction, got face %v", got.X)
	}
}

func TestCubeMapEnvironment_TexelOrientation(t *testing.T) {
	// 2x2 +Z face: top-left red, top-right green, bottom-left blue, bottom-right white
	faces := solidFaces(2)
	faces[FacePositiveZ].Pixels = []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1),
	}
	env, err := NewCubeMapEnvironment(faces, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		// +Z face: s follows +X, t follows -Y
		{"upper left", core.NewVec3(-0.5, 0.5, 1), core.NewVec3(1, 0, 0)},
		{"upper right", core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 1, 0)},
		{"lower left", core.NewVec3(-0.5, -0.5, 1), core.NewVec3(0, 0, 1)},
		{"lower right", core.NewVec3(0.5, -0.5, 1), core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.Lookup(tt.direction); got != tt.expected {
				t.Errorf("Lookup(%v) = %v, expected %v", tt.direction, got, tt.expected)
			}
		})
	}
}

func TestCubeMapEnvironment_ZeroDirection(t *testing.T) {
	env, err := NewCubeMapEnvironment(solidFaces(1), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := env.Lookup(core.Vec3{}); !got.IsZero() {
		t.Errorf("Expected black for zero direction, got %v", got)
	}
}

func TestNewCubeMapEnvironment_RejectsBadFaces(t *testing.T) {
	faces := solidFaces(2)
	faces[FaceNegativeY] = FaceImage{}
	if _, err := NewCubeMapEnvironment(faces, false); err == nil {
		t.Error("Expected error for empty face")
	}

	faces = solidFaces(2)
	faces[FacePositiveX].Pixels = faces[FacePositiveX].Pixels[:3]
	if _, err := NewCubeMapEnvironment(faces, false); err == nil {
		t.Error("Expected error for short pixel slice")
	}
}
