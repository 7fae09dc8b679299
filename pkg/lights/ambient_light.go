package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AmbientLight is a uniform fill light with intensity iA·kA
type AmbientLight struct {
	intensity core.Vec3
}

// NewAmbientLight scales the ambient color by the per-channel factor kA
func NewAmbientLight(color, kA core.Vec3) *AmbientLight {
	return &AmbientLight{intensity: color.MultiplyVec(kA)}
}

// NoAmbient is a black ambient light
func NoAmbient() *AmbientLight {
	return &AmbientLight{}
}

func (a *AmbientLight) Type() LightType { return LightTypeAmbient }

func (a *AmbientLight) Intensity(core.Vec3) core.Vec3 {
	if a == nil {
		return core.Vec3{}
	}
	return a.intensity
}

func (a *AmbientLight) Direction(core.Vec3) (core.Vec3, bool) { return core.Vec3{}, false }

func (a *AmbientLight) Distance(core.Vec3) float64 { return math.Inf(1) }

func (a *AmbientLight) Radius() float64 { return 0 }
