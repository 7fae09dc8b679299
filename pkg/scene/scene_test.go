package scene

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

type constantTracer struct{}

func (constantTracer) RayColor(ray core.Ray, sampler core.Sampler, stats *core.RayStats) core.Vec3 {
	return core.Gray(1)
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(registry) {
		t.Fatalf("Expected %d scenes, got %d", len(registry), len(scenes))
	}
	if !sort.SliceIsSorted(scenes, func(i, j int) bool { return scenes[i].ID < scenes[j].ID }) {
		t.Error("Expected scenes sorted by id")
	}
	for _, info := range scenes {
		if info.Description == "" {
			t.Errorf("Scene %q has no description", info.ID)
		}
	}
}

func TestLoad_UnknownScene(t *testing.T) {
	if _, err := Load("no-such-scene"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestLoad_PresetsBuildValidCameras(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			preset, err := Load(info.ID)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if preset.Scene.Name == "" {
				t.Error("Expected a scene name")
			}
			if preset.Width <= 0 || preset.Height <= 0 {
				t.Errorf("Expected a positive image size, got %dx%d", preset.Width, preset.Height)
			}
			if preset.Scene.Geometries.Len() == 0 || len(preset.Scene.Lights) == 0 {
				t.Errorf("Expected geometries and lights, got %d and %d",
					preset.Scene.Geometries.Len(), len(preset.Scene.Lights))
			}
			if preset.SoftShadows && preset.ShadowGrid <= 0 {
				t.Errorf("Soft shadows need a positive grid, got %d", preset.ShadowGrid)
			}

			config := preset.Camera
			config.Sink = renderer.NewImageBuffer(preset.Width, preset.Height)
			config.Integrator = constantTracer{}
			if _, err := renderer.NewCamera(config); err != nil {
				t.Errorf("Preset camera rejected: %v", err)
			}
		})
	}
}

func TestScene_Preprocess(t *testing.T) {
	s := New("test").Add(
		geometry.NewGeometry(geometry.Must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))), core.Vec3{}, material.Material{}),
	)
	for i := 0; i < 12; i++ {
		center := core.NewVec3(float64(i)*3, 1, 0)
		s.Add(geometry.NewGeometry(geometry.Must(geometry.NewSphere(center, 1)), core.Vec3{}, material.Material{}))
	}
	s.Ambient = nil

	prepared := s.Preprocess(geometry.DefaultBVHConfig())

	if prepared == s || prepared.Geometries == s.Geometries {
		t.Fatal("Expected Preprocess to return a new scene")
	}
	if got := prepared.GetPrimitiveCount(); got != 13 {
		t.Errorf("Expected 13 primitives after preprocessing, got %d", got)
	}
	if s.Geometries.Len() != 13 {
		t.Errorf("Expected the original aggregate to stay flat, got %d children", s.Geometries.Len())
	}
	if stats := prepared.Geometries.Stats(); stats.Unbounded != 1 || stats.Nodes <= 1 {
		t.Errorf("Expected a hierarchy with the plane at the root, got %+v", stats)
	}
	if prepared.Ambient == nil {
		t.Error("Expected a non-nil ambient light after preprocessing")
	}
}

func TestScene_Builders(t *testing.T) {
	ambient := lights.NewAmbientLight(core.Gray(200), core.Gray(0.5))
	light := lights.NewPointLight(core.Gray(100), core.NewVec3(0, 10, 0))
	s := New("builders").
		WithBackground(core.NewVec3(1, 2, 3)).
		WithAmbient(ambient).
		AddLights(light)

	if s.Background != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected background (1,2,3), got %v", s.Background)
	}
	if got := s.Ambient.Intensity(core.Vec3{}); got != core.Gray(100) {
		t.Errorf("Expected ambient intensity 100, got %v", got)
	}
	if len(s.Lights) != 1 || s.Lights[0] != light {
		t.Errorf("Expected one light, got %v", s.Lights)
	}
}

func TestNewMeshScene_LoadsEmbeddedMesh(t *testing.T) {
	preset := NewMeshScene()

	// Twelve icosahedra of twenty faces plus the floor
	if got := preset.Scene.GetPrimitiveCount(); got != 12*20+1 {
		t.Errorf("Expected %d primitives, got %d", 12*20+1, got)
	}

	prepared := preset.Scene.Preprocess(geometry.DefaultBVHConfig())
	if stats := prepared.Geometries.Stats(); stats.Primitives != 12*20+1 || stats.MaxDepth < 2 {
		t.Errorf("Expected a multi-level hierarchy over every face, got %+v", stats)
	}
}

func TestMeshGeometries_RejectsSkippedFaces(t *testing.T) {
	embedded, err := loaders.ReadPLY(bytes.NewReader(icosahedronPLY))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	faces, err := meshGeometries(embedded, core.Vec3{}, material.Material{})
	if err != nil {
		t.Fatalf("Expected every embedded face to convert, got %v", err)
	}
	if faces.Len() != 20 {
		t.Errorf("Expected 20 faces, got %d", faces.Len())
	}

	// The second face repeats a vertex
	degenerate := strings.Join([]string{
		"ply",
		"format ascii 1.0",
		"element vertex 3",
		"property float x",
		"property float y",
		"property float z",
		"element face 2",
		"property list uchar int vertex_indices",
		"end_header",
		"0 0 0",
		"1 0 0",
		"0 1 0",
		"3 0 1 2",
		"3 0 1 1",
	}, "\n") + "\n"
	mesh, err := loaders.ReadPLY(strings.NewReader(degenerate))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	if _, err := meshGeometries(mesh, core.Vec3{}, material.Material{}); !errors.Is(err, loaders.ErrInvalidPLY) {
		t.Errorf("Expected ErrInvalidPLY for a skipped face, got %v", err)
	}
}
