package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Load for an unregistered scene id
var ErrUnknownScene = errors.New("unknown scene")

// Preset is a built-in scene with the camera and image size it was
// composed for
type Preset struct {
	Scene  *Scene
	Camera renderer.CameraConfig // Geometry only: position, axes and view plane
	Width  int
	Height int

	SoftShadows bool // Sample light disks for area shadows
	ShadowGrid  int  // Shadow rays per axis when SoftShadows is set
}

// SceneInfo describes a registered preset
type SceneInfo struct {
	ID          string
	Description string
}

type registration struct {
	info  SceneInfo
	build func() *Preset
}

var registry = map[string]registration{}

func register(info SceneInfo, build func() *Preset) {
	registry[info.ID] = registration{info: info, build: build}
}

func init() {
	register(SceneInfo{
		ID:          "default",
		Description: "Floor plane, pipe, capped cylinder, mirror sphere and a triangle",
	}, NewDefaultScene)
	register(SceneInfo{
		ID:          "two-spheres",
		Description: "Red sphere inside a transparent blue sphere",
	}, NewTwoSpheresScene)
	register(SceneInfo{
		ID:          "mirrored-spheres",
		Description: "Nested spheres reflected in two triangular mirrors",
	}, NewMirroredSpheresScene)
	register(SceneInfo{
		ID:          "transparent-shadow",
		Description: "Transparent sphere casting a partial shadow on two triangles",
	}, NewTransparentShadowScene)
	register(SceneInfo{
		ID:          "soft-shadows",
		Description: "Three spheres on two planes under a wide point light",
	}, NewSoftShadowsScene)
	register(SceneInfo{
		ID:          "mesh",
		Description: "Twelve PLY icosahedra over a reflective floor",
	}, NewMeshScene)
}

// ListScenes returns every registered preset sorted by id
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Load builds the preset registered under id
func Load(id string) (*Preset, error) {
	r, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", id, ErrUnknownScene)
	}
	return r.build(), nil
}

func vec(x, y, z float64) *core.Vec3 {
	v := core.NewVec3(x, y, z)
	return &v
}

// frontCamera looks down -Z from (0,0,distance) at a square view plane
func frontCamera(distance, size float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Location:          vec(0, 0, distance),
		Forward:           vec(0, 0, -1),
		Up:                vec(0, 1, 0),
		ViewPlaneWidth:    size,
		ViewPlaneHeight:   size,
		ViewPlaneDistance: distance,
	}
}
