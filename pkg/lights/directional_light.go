package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along a fixed direction
type DirectionalLight struct {
	intensity core.Vec3
	direction core.Vec3
}

// NewDirectionalLight creates a directional light. A zero direction is
// rejected with core.ErrInvalidGeometry.
func NewDirectionalLight(intensity, direction core.Vec3) (*DirectionalLight, error) {
	unit, err := core.UnitVector(direction)
	if err != nil {
		return nil, fmt.Errorf("directional light: %w", err)
	}
	return &DirectionalLight{
		intensity: intensity,
		direction: unit,
	}, nil
}

func (d *DirectionalLight) Type() LightType { return LightTypeDirectional }

func (d *DirectionalLight) Intensity(core.Vec3) core.Vec3 { return d.intensity }

func (d *DirectionalLight) Direction(core.Vec3) (core.Vec3, bool) { return d.direction, true }

func (d *DirectionalLight) Distance(core.Vec3) float64 { return math.Inf(1) }

func (d *DirectionalLight) Radius() float64 { return 0 }
