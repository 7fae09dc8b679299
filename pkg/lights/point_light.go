package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight radiates from a position with distance attenuation
// 1/(kc + kl·d + kq·d²)
type PointLight struct {
	intensity  core.Vec3
	position   core.Vec3
	kc, kl, kq float64
	radius     float64
}

// NewPointLight creates an unattenuated point light (kc=1, kl=kq=0) of radius 1
func NewPointLight(intensity, position core.Vec3) *PointLight {
	return &PointLight{
		intensity: intensity,
		position:  position,
		kc:        1,
		radius:    1,
	}
}

// WithAttenuation sets the constant, linear and quadratic attenuation factors
func (p *PointLight) WithAttenuation(kc, kl, kq float64) *PointLight {
	p.kc, p.kl, p.kq = kc, kl, kq
	return p
}

// WithRadius sets the emitter radius used for soft shadows
func (p *PointLight) WithRadius(radius float64) *PointLight {
	p.radius = radius
	return p
}

func (p *PointLight) Type() LightType { return LightTypePoint }

func (p *PointLight) Position() core.Vec3 { return p.position }

func (p *PointLight) Intensity(point core.Vec3) core.Vec3 {
	d := p.position.Distance(point)
	return p.intensity.Multiply(1 / (p.kc + p.kl*d + p.kq*d*d))
}

func (p *PointLight) Direction(point core.Vec3) (core.Vec3, bool) {
	l := point.Subtract(p.position)
	if l.IsNearZero() {
		return core.Vec3{}, false
	}
	return l.Normalize(), true
}

func (p *PointLight) Distance(point core.Vec3) float64 {
	return p.position.Distance(point)
}

func (p *PointLight) Radius() float64 { return p.radius }

// SpotLight is a point light focused along a direction. The beam falls off
// as max(0, dir·l)^narrowBeam.
type SpotLight struct {
	PointLight
	direction  core.Vec3
	narrowBeam int
}

// NewSpotLight creates a spot light with a narrow beam exponent of 1.
// A zero direction is rejected with core.ErrInvalidGeometry.
func NewSpotLight(intensity, position, direction core.Vec3) (*SpotLight, error) {
	unit, err := core.UnitVector(direction)
	if err != nil {
		return nil, fmt.Errorf("spot light: %w", err)
	}
	return &SpotLight{
		PointLight: *NewPointLight(intensity, position),
		direction:  unit,
		narrowBeam: 1,
	}, nil
}

// WithAttenuation sets the constant, linear and quadratic attenuation factors
func (s *SpotLight) WithAttenuation(kc, kl, kq float64) *SpotLight {
	s.PointLight.WithAttenuation(kc, kl, kq)
	return s
}

// WithRadius sets the emitter radius used for soft shadows
func (s *SpotLight) WithRadius(radius float64) *SpotLight {
	s.PointLight.WithRadius(radius)
	return s
}

// WithNarrowBeam sets the beam exponent; larger values focus the beam
func (s *SpotLight) WithNarrowBeam(narrowBeam int) *SpotLight {
	s.narrowBeam = narrowBeam
	return s
}

func (s *SpotLight) Type() LightType { return LightTypeSpot }

func (s *SpotLight) Intensity(point core.Vec3) core.Vec3 {
	l, ok := s.PointLight.Direction(point)
	if !ok {
		return s.intensity
	}

	projection := core.AlignZero(s.direction.Dot(l))
	if projection <= 0 {
		return core.Vec3{}
	}
	return s.PointLight.Intensity(point).Multiply(math.Pow(projection, float64(s.narrowBeam)))
}
