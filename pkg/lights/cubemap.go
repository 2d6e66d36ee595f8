package lights

import (
	"fmt"
	"math"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// CubeFace identifies one face of a cube map, in OpenGL order
type CubeFace int

const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// String returns the conventional short name of the face (posx, negx, ...)
func (f CubeFace) String() string {
	switch f {
	case FacePositiveX:
		return "posx"
	case FaceNegativeX:
		return "negx"
	case FacePositiveY:
		return "posy"
	case FaceNegativeY:
		return "negy"
	case FacePositiveZ:
		return "posz"
	case FaceNegativeZ:
		return "negz"
	}
	return fmt.Sprintf("face(%d)", int(f))
}

// FaceImage is a row-major RGB image for one cube face. Row 0 is the top row.
type FaceImage struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Pixels[y*Width + x]
}

// CubeMapEnvironment samples six face images by direction
type CubeMapEnvironment struct {
	Faces [6]FaceImage

	// SwapYZ looks up (x, z, y) instead of (x, y, z), for scenes modelled Z-up
	// against a Y-up cube map.
	SwapYZ bool
}

// NewCubeMapEnvironment creates a cube map environment after checking every face holds pixels
func NewCubeMapEnvironment(faces [6]FaceImage, swapYZ bool) (*CubeMapEnvironment, error) {
	for i, face := range faces {
		if face.Width <= 0 || face.Height <= 0 {
			return nil, fmt.Errorf("cube face %s is empty (%dx%d)", CubeFace(i), face.Width, face.Height)
		}
		if len(face.Pixels) != face.Width*face.Height {
			return nil, fmt.Errorf("cube face %s has %d pixels, want %d", CubeFace(i), len(face.Pixels), face.Width*face.Height)
		}
	}
	return &CubeMapEnvironment{Faces: faces, SwapYZ: swapYZ}, nil
}

func (cm *CubeMapEnvironment) Type() EnvironmentType {
	return EnvironmentTypeCubeMap
}

// Lookup implements the Environment interface using nearest-texel filtering
func (cm *CubeMapEnvironment) Lookup(direction core.Vec3) core.Vec3 {
	if cm.SwapYZ {
		direction = core.NewVec3(direction.X, direction.Z, direction.Y)
	}

	face, s, t, ok := selectCubeFace(direction)
	if !ok {
		return core.Vec3{}
	}

	img := &cm.Faces[face]
	x := min(max(int(s*float64(img.Width)), 0), img.Width-1)
	y := min(max(int(t*float64(img.Height)), 0), img.Height-1)
	return img.Pixels[y*img.Width+x]
}

// selectCubeFace picks the face along the major axis and returns face-local
// coordinates in [0,1], following the OpenGL cube map table.
func selectCubeFace(d core.Vec3) (CubeFace, float64, float64, bool) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face CubeFace
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, sc, tc = FacePositiveX, -d.Z, -d.Y
		} else {
			face, sc, tc = FaceNegativeX, d.Z, -d.Y
		}
	case ay >= az:
		ma = ay
		if d.Y > 0 {
			face, sc, tc = FacePositiveY, d.X, d.Z
		} else {
			face, sc, tc = FaceNegativeY, d.X, -d.Z
		}
	default:
		ma = az
		if d.Z > 0 {
			face, sc, tc = FacePositiveZ, d.X, -d.Y
		} else {
			face, sc, tc = FaceNegativeZ, -d.X, -d.Y
		}
	}

	if ma == 0 || math.IsNaN(ma) {
		return 0, 0, 0, false
	}

	return face, 0.5 * (sc/ma + 1), 0.5 * (tc/ma + 1), true
}
