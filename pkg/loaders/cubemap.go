package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/df07/sphere-raytracer/pkg/lights"
)

// CubeMapFaceNames are the default file stems for the six faces, in OpenGL order
var CubeMapFaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// LoadCubeMap loads six face images (in OpenGL face order) into a cube map environment.
// Relative paths are resolved against baseDir.
func LoadCubeMap(baseDir string, paths [6]string, swapYZ bool) (*lights.CubeMapEnvironment, error) {
	var faces [6]lights.FaceImage

	for i, path := range paths {
		if path == "" {
			return nil, fmt.Errorf("cube map face %s: no image path", lights.CubeFace(i))
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		img, err := LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("cube map face %s: %w", lights.CubeFace(i), err)
		}
		faces[i] = lights.FaceImage{Width: img.Width, Height: img.Height, Pixels: img.Pixels}
	}

	return lights.NewCubeMapEnvironment(faces, swapYZ)
}

// CubeMapPathsInDir returns <dir>/<face><ext> for every face, e.g. dir/posx.jpg
func CubeMapPathsInDir(dir, ext string) [6]string {
	var paths [6]string
	for i, name := range CubeMapFaceNames {
		paths[i] = filepath.Join(dir, name+ext)
	}
	return paths
}
