package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a scene with one of every primitive kind: a floor
// plane, an infinite pipe, a capped cylinder, spheres and a triangle
func NewDefaultScene() *Preset {
	s := New("Default").
		WithBackground(core.NewVec3(20, 20, 35)).
		WithAmbient(lights.NewAmbientLight(core.NewVec3(255, 255, 255), core.Gray(0.1)))

	// Materials
	matte := material.NewPhong(0.6, 0.2, 20)
	glossy := material.NewPhong(0.4, 0.6, 100)
	floorMirror := material.NewPhong(0.5, 0.3, 40).WithReflection(core.Gray(0.25))
	glass := material.NewPhong(0.2, 0.2, 30).WithTransparency(core.Gray(0.6))
	mirror := material.NewMirror(0.9)

	floor := geometry.Must(geometry.NewPlane(core.NewVec3(0, -60, 0), core.NewVec3(0, 1, 0)))
	pipe := geometry.Must(geometry.NewTube(
		core.NewRay(core.NewVec3(0, 40, -250), core.NewVec3(1, 0, 0)), 15))
	column := geometry.Must(geometry.NewCylinder(
		core.NewRay(core.NewVec3(-55, -60, -40), core.NewVec3(0, 1, 0)), 20, 70))
	ball := geometry.Must(geometry.NewSphere(core.NewVec3(10, -30, -20), 30))
	bubble := geometry.Must(geometry.NewSphere(core.NewVec3(50, -45, 30), 15))
	panel := geometry.Must(geometry.NewTriangle(
		core.NewVec3(40, -60, -120),
		core.NewVec3(110, -60, -60),
		core.NewVec3(90, 30, -110),
	))

	s.Add(
		geometry.NewGeometry(floor, core.NewVec3(30, 30, 40), floorMirror),
		geometry.NewGeometry(pipe, core.NewVec3(90, 40, 20), glossy),
		geometry.NewGeometry(column, core.NewVec3(40, 90, 60), matte),
		geometry.NewGeometry(ball, core.NewVec3(0, 0, 0), mirror),
		geometry.NewGeometry(bubble, core.NewVec3(20, 40, 120), glass),
		geometry.NewGeometry(panel, core.NewVec3(120, 60, 30), matte),
	)

	s.AddLights(
		geometry.Must(lights.NewSpotLight(core.NewVec3(900, 700, 500), core.NewVec3(-80, 120, 150), core.NewVec3(1, -2, -2))).
			WithAttenuation(1, 0.00005, 0.000002).
			WithNarrowBeam(2).
			WithRadius(10),
		geometry.Must(lights.NewDirectionalLight(core.NewVec3(120, 120, 100), core.NewVec3(1, -1, -1))),
	)

	return &Preset{
		Scene:       s,
		Camera:      frontCamera(1000, 260),
		Width:       600,
		Height:      600,
		SoftShadows: true,
		ShadowGrid:  4,
	}
}
