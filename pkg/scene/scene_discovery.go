package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/sphere-raytracer/pkg/geometry"
	"github.com/df07/sphere-raytracer/pkg/loaders"
)

// ErrUnknownScene is returned when a scene name is neither built in nor a readable scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by NewScene
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

type builtinScene struct {
	info    SceneInfo
	factory func(...geometry.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			DisplayName: "Default Scene",
			Description: "Colored and mirror spheres on a ground sphere under a sky gradient",
			Type:        "builtin",
		},
		factory: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirrors",
			Name:        "Facing Mirrors",
			DisplayName: "Facing Mirrors",
			Description: "Two mirror spheres reflecting each other",
			Type:        "builtin",
		},
		factory: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "single",
			Name:        "Single Sphere",
			DisplayName: "Single Sphere",
			Description: "One matte sphere lit from above",
			Type:        "builtin",
		},
		factory: NewSingleSphereScene,
	},
}

// BuiltinScenes returns metadata for every built-in scene
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		infos[i] = b.info
	}
	return infos
}

// ListJSONScenes scans dir for *.json scene files.
// A missing directory yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		scenes = append(scenes, parseJSONMetadata(filePath))
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// parseJSONMetadata reads the name and description of a scene file,
// falling back to the file name when the file cannot be parsed
func parseJSONMetadata(filePath string) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Type:        "json",
		FilePath:    filePath,
	}

	sf, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return info
	}
	if sf.Name != "" {
		info.Name = sf.Name
		info.DisplayName = sf.Name
	}
	info.Description = sf.Description
	return info
}

// ListScenes returns built-in scenes followed by JSON scenes found in dir
func ListScenes(dir string) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return append(BuiltinScenes(), jsonScenes...), nil
}

// NewScene resolves name to a scene: a built-in ID, a path to a .json file, or the
// stem of a .json file inside sceneDir.
func NewScene(name, sceneDir string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty scene name", ErrUnknownScene)
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.factory(cameraOverrides...), nil
		}
	}

	path := name
	if !strings.HasSuffix(name, ".json") {
		path = filepath.Join(sceneDir, name+".json")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}

	return NewJSONScene(path, cameraOverrides...)
}

// titleCase converts a filename-style string to title case
// e.g., "facing-mirrors" -> "Facing Mirrors"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
