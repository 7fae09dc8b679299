package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var (
	blue   = core.NewVec3(0, 0, 255)
	red    = core.NewVec3(255, 0, 0)
	yellow = core.NewVec3(255, 255, 0)
	white  = core.NewVec3(255, 255, 255)
)

func sphere(center core.Vec3, radius float64, emission core.Vec3, mat material.Material) *geometry.Geometry {
	return geometry.NewGeometry(geometry.Must(geometry.NewSphere(center, radius)), emission, mat)
}

func triangle(a, b, c, emission core.Vec3, mat material.Material) *geometry.Geometry {
	return geometry.NewGeometry(geometry.Must(geometry.NewTriangle(a, b, c)), emission, mat)
}

func plane(point, normal, emission core.Vec3, mat material.Material) *geometry.Geometry {
	return geometry.NewGeometry(geometry.Must(geometry.NewPlane(point, normal)), emission, mat)
}

// NewTwoSpheresScene places a red sphere inside a transparent blue one
func NewTwoSpheresScene() *Preset {
	s := New("Two Spheres")
	s.Add(
		sphere(core.NewVec3(0, 0, -50), 50, blue,
			material.NewPhong(0.4, 0.3, 100).WithTransparency(core.Gray(0.3))),
		sphere(core.NewVec3(0, 0, -50), 25, red,
			material.NewPhong(0.5, 0.5, 100)),
	)
	s.AddLights(
		geometry.Must(lights.NewSpotLight(core.NewVec3(1000, 600, 0), core.NewVec3(-100, -100, 500), core.NewVec3(-1, -1, -2))).
			WithAttenuation(1, 0.0004, 0.0000006),
	)

	return &Preset{
		Scene:       s,
		Camera:      frontCamera(1000, 150),
		Width:       500,
		Height:      500,
		SoftShadows: true,
		ShadowGrid:  9,
	}
}

// NewMirroredSpheresScene reflects nested spheres in two triangular mirrors
func NewMirroredSpheresScene() *Preset {
	s := New("Mirrored Spheres").
		WithAmbient(lights.NewAmbientLight(white, core.Gray(0.1)))

	mirrorEmission := core.NewVec3(20, 20, 20)
	s.Add(
		sphere(core.NewVec3(-950, -900, -1000), 400, core.NewVec3(0, 50, 100),
			material.NewPhong(0.25, 0.25, 20).WithTransparency(core.NewVec3(0.5, 0, 0))),
		sphere(core.NewVec3(-950, -900, -1000), 200, core.NewVec3(100, 50, 20),
			material.NewPhong(0.25, 0.25, 20)),
		triangle(core.NewVec3(1500, -1500, -1500), core.NewVec3(-1500, 1500, -1500), core.NewVec3(670, 670, 3000),
			mirrorEmission, material.NewMirror(1)),
		triangle(core.NewVec3(1500, -1500, -1500), core.NewVec3(-1500, 1500, -1500), core.NewVec3(-1500, -1500, -2000),
			mirrorEmission, material.Material{}.WithReflection(core.NewVec3(0.5, 0, 0.4))),
	)
	s.AddLights(
		geometry.Must(lights.NewSpotLight(core.NewVec3(1020, 400, 400), core.NewVec3(-750, -750, -150), core.NewVec3(-1, -1, -4))).
			WithAttenuation(1, 0.00001, 0.000005),
	)

	return &Preset{
		Scene:       s,
		Camera:      frontCamera(10000, 2500),
		Width:       500,
		Height:      500,
		SoftShadows: true,
		ShadowGrid:  9,
	}
}

// NewTransparentShadowScene lets a transparent sphere cast a partial shadow
// onto two triangles
func NewTransparentShadowScene() *Preset {
	s := New("Transparent Shadow").
		WithAmbient(lights.NewAmbientLight(white, core.Gray(0.15)))

	surface := material.NewPhong(0.5, 0.5, 60)
	s.Add(
		triangle(core.NewVec3(-150, -150, -115), core.NewVec3(150, -150, -135), core.NewVec3(75, 75, -150),
			core.Vec3{}, surface),
		triangle(core.NewVec3(-150, -150, -115), core.NewVec3(-70, 70, -140), core.NewVec3(75, 75, -150),
			core.Vec3{}, surface),
		sphere(core.NewVec3(60, 50, -50), 30, blue,
			material.NewPhong(0.2, 0.2, 30).WithTransparency(core.Gray(0.6))),
	)
	s.AddLights(
		geometry.Must(lights.NewSpotLight(core.NewVec3(700, 400, 400), core.NewVec3(60, 50, 0), core.NewVec3(0, 0, -1))).
			WithAttenuation(1, 4e-5, 2e-7),
	)

	return &Preset{
		Scene:       s,
		Camera:      frontCamera(1000, 200),
		Width:       600,
		Height:      600,
		SoftShadows: true,
		ShadowGrid:  9,
	}
}

// NewSoftShadowsScene puts three spheres on two planes under a point light
// of radius 40, viewed from an oblique camera
func NewSoftShadowsScene() *Preset {
	s := New("Soft Shadows").
		WithAmbient(lights.NewAmbientLight(white, core.Gray(0.15)))

	surface := material.NewPhong(0.5, 0.5, 30)
	shiny := material.NewPhong(0.4, 0.8, 100)
	s.Add(
		plane(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), core.NewVec3(0, 255, 0), surface),
		plane(core.NewVec3(0, -200, 0), core.NewVec3(0, 1, 0), core.NewVec3(135, 206, 250), surface),
		sphere(core.NewVec3(0, 0, 30), 30, core.NewVec3(80, 80, 200), shiny),
		sphere(core.NewVec3(-100, 0, 30), 30, yellow, shiny),
		sphere(core.NewVec3(100, 0, 30), 30, red, shiny),
	)

	// A small flower of spheres between the outer balls
	center := core.NewVec3(-50, 50, 35)
	s.Add(sphere(center, 5, core.NewVec3(255, 215, 0), surface))
	for i := 0; i < 6; i++ {
		angle := math.Pi / 3 * float64(i)
		petal := center.Add(core.NewVec3(math.Cos(angle)*8, 0, math.Sin(angle)*8))
		s.Add(sphere(petal, 5, core.NewVec3(255, 175, 175), surface))
	}

	s.AddLights(
		lights.NewPointLight(white, core.NewVec3(0, -60, 160)).
			WithAttenuation(1, 4e-5, 2e-7).
			WithRadius(40),
	)

	return &Preset{
		Scene: s,
		Camera: renderer.CameraConfig{
			Location:          vec(800, 800, 200),
			Forward:           vec(-100, -100, -20),
			Up:                vec(-164.8, -181.09, 1729.45),
			ViewPlaneWidth:    200,
			ViewPlaneHeight:   200,
			ViewPlaneDistance: 1000,
		},
		Width:       1024,
		Height:      1024,
		SoftShadows: true,
		ShadowGrid:  9,
	}
}
