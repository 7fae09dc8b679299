package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // Reference point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a plane through point with the given normal
func NewPlane(point, normal core.Vec3) (*Plane, error) {
	unit, err := core.UnitVector(normal)
	if err != nil {
		return nil, fmt.Errorf("plane normal: %w", err)
	}
	return &Plane{
		Point:  point,
		Normal: unit,
	}, nil
}

// NewPlaneFromPoints creates the plane through three points.
// The points must be distinct and not collinear.
func NewPlaneFromPoints(p1, p2, p3 core.Vec3) (*Plane, error) {
	normal := p2.Subtract(p1).Cross(p3.Subtract(p2))
	if normal.IsNearZero() {
		return nil, fmt.Errorf("plane points %v, %v, %v are collinear: %w", p1, p2, p3, core.ErrInvalidGeometry)
	}
	return &Plane{
		Point:  p1,
		Normal: normal.Normalize(),
	}, nil
}

// intersect computes t = n·(p0−o) / n·d, rejecting parallel rays and rays
// starting at the reference point
func (p *Plane) intersect(ray core.Ray, maxDistance float64) []core.Vec3 {
	denominator := p.Normal.Dot(ray.Direction)
	if core.IsZero(denominator) {
		return nil
	}

	toPlane := p.Point.Subtract(ray.Origin)
	if toPlane.IsNearZero() {
		return nil
	}

	t := core.AlignZero(p.Normal.Dot(toPlane) / denominator)
	if !inRange(t, maxDistance) {
		return nil
	}
	return []core.Vec3{ray.At(t)}
}
