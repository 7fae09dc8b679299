package scene

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

//go:embed assets/icosahedron.ply
var icosahedronPLY []byte

// NewMeshScene arranges a grid of icosahedron meshes loaded from PLY over a
// reflective floor. Its hundreds of polygons make the BVH worthwhile.
func NewMeshScene() *Preset {
	s := New("Mesh Grid").
		WithBackground(core.NewVec3(15, 15, 25)).
		WithAmbient(lights.NewAmbientLight(white, core.Gray(0.08)))

	icosahedron := geometry.Must(loaders.ReadPLY(bytes.NewReader(icosahedronPLY)))

	glossy := material.NewPhong(0.5, 0.5, 60)
	mirrored := material.NewPhong(0.3, 0.4, 80).WithReflection(core.Gray(0.4))
	glass := material.NewPhong(0.1, 0.4, 120).WithTransparency(core.Gray(0.7))
	palette := []struct {
		emission core.Vec3
		mat      material.Material
	}{
		{core.NewVec3(120, 30, 30), glossy},
		{core.NewVec3(30, 90, 140), mirrored},
		{core.NewVec3(20, 60, 20), glass},
	}

	i := 0
	for _, z := range []float64{0, -70, -140} {
		for _, x := range []float64{-90, -30, 30, 90} {
			style := palette[i%len(palette)]
			s.Add(geometry.Must(meshGeometries(icosahedron.Transformed(12, core.NewVec3(x, -10, z)), style.emission, style.mat)))
			i++
		}
	}

	s.Add(plane(core.NewVec3(0, -40, 0), core.NewVec3(0, 1, 0), core.NewVec3(25, 25, 30),
		material.NewPhong(0.6, 0.2, 20).WithReflection(core.Gray(0.3))))

	s.AddLights(
		lights.NewPointLight(core.NewVec3(700, 650, 600), core.NewVec3(-60, 120, 120)).
			WithAttenuation(1, 0.0005, 0.00001).
			WithRadius(15),
		geometry.Must(lights.NewDirectionalLight(core.NewVec3(90, 90, 110), core.NewVec3(1, -1, -2))),
	)

	return &Preset{
		Scene:       s,
		Camera:      frontCamera(1000, 240),
		Width:       640,
		Height:      640,
		SoftShadows: true,
		ShadowGrid:  3,
	}
}

// meshGeometries converts every face of mesh into a polygon. A face that
// cannot become a polygon is an error rather than a hole in the surface.
func meshGeometries(mesh *loaders.Mesh, emission core.Vec3, mat material.Material) (*geometry.Geometries, error) {
	faces, skipped := mesh.Geometries(emission, mat)
	if skipped > 0 {
		return nil, fmt.Errorf("%d of %d faces are degenerate or non-convex: %w", skipped, len(mesh.Faces), loaders.ErrInvalidPLY)
	}
	return faces, nil
}
