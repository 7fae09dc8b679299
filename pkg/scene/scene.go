package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering. Colors are in
// 8-bit units: 255 is full intensity.
type Scene struct {
	Name       string
	Background core.Vec3            // Color of rays that hit nothing
	Ambient    *lights.AmbientLight // Added once per primary hit
	Geometries *geometry.Geometries // Objects in the scene
	Lights     []lights.Light       // Light sources, in evaluation order
}

// New creates an empty scene with a black background and no ambient light
func New(name string) *Scene {
	return &Scene{
		Name:       name,
		Ambient:    lights.NoAmbient(),
		Geometries: geometry.NewGeometries(),
	}
}

// WithBackground sets the background color
func (s *Scene) WithBackground(color core.Vec3) *Scene {
	s.Background = color
	return s
}

// WithAmbient sets the ambient light
func (s *Scene) WithAmbient(ambient *lights.AmbientLight) *Scene {
	s.Ambient = ambient
	return s
}

// Add appends geometries to the scene
func (s *Scene) Add(items ...geometry.Intersectable) *Scene {
	s.Geometries.Add(items...)
	return s
}

// AddLights appends light sources to the scene
func (s *Scene) AddLights(sources ...lights.Light) *Scene {
	s.Lights = append(s.Lights, sources...)
	return s
}

// Preprocess returns a copy of the scene ready for rendering, with its
// geometries arranged per cfg. The receiver is left unchanged; the returned
// scene is read-only for the duration of a render.
func (s *Scene) Preprocess(cfg geometry.BVHConfig) *Scene {
	prepared := *s
	prepared.Geometries = s.Geometries.BuildBVH(cfg)
	if prepared.Ambient == nil {
		prepared.Ambient = lights.NoAmbient()
	}
	prepared.Lights = append([]lights.Light(nil), s.Lights...)
	return &prepared
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Geometries.Stats().Primitives
}
