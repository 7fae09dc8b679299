package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeAmbient     LightType = "ambient"
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
)

// Light is a light source evaluated at a surface point
type Light interface {
	Type() LightType

	// Intensity returns the light's color arriving at point
	Intensity(point core.Vec3) core.Vec3

	// Direction returns the unit vector FROM the light TO point.
	// It is absent for ambient light and when point coincides with the light.
	Direction(point core.Vec3) (core.Vec3, bool)

	// Distance from the light to point; +Inf for lights at infinity
	Distance(point core.Vec3) float64

	// Radius of the emitting disk used for soft shadows; 0 for ideal lights
	Radius() float64
}

// Positioned is implemented by lights with a location in space
type Positioned interface {
	Position() core.Vec3
}
