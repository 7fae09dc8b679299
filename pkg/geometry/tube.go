package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tube is an infinite cylinder of the given radius around an axis ray
type Tube struct {
	Axis   core.Ray // Axis.Direction is unit length
	Radius float64
}

// NewTube creates an infinite tube around the axis ray
func NewTube(axis core.Ray, radius float64) (*Tube, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("tube radius %g is not positive: %w", radius, core.ErrInvalidGeometry)
	}
	if axis.Direction.IsZero() {
		return nil, fmt.Errorf("tube axis has no direction: %w", core.ErrInvalidGeometry)
	}
	return &Tube{
		Axis:   core.NewRay(axis.Origin, axis.Direction),
		Radius: radius,
	}, nil
}

// project returns the signed distance of point along the axis from its head
func (t *Tube) project(point core.Vec3) float64 {
	return t.Axis.Direction.Dot(point.Subtract(t.Axis.Origin))
}

func (t *Tube) normalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(t.Axis.At(t.project(point))).Normalize()
}

// perpendicular strips the axis component of v
func (t *Tube) perpendicular(v core.Vec3) core.Vec3 {
	return v.Subtract(t.Axis.Direction.Multiply(t.Axis.Direction.Dot(v)))
}

// roots solves |perp(o + t·d − p0)|² = r² for the ray parameter
func (t *Tube) roots(ray core.Ray) (float64, float64, bool) {
	dPerp := t.perpendicular(ray.Direction)
	a := dPerp.LengthSquared()
	if core.IsZero(a) {
		return 0, 0, false // Parallel to the axis
	}

	deltaPerp := t.perpendicular(ray.Origin.Subtract(t.Axis.Origin))
	halfB := dPerp.Dot(deltaPerp)
	c := deltaPerp.LengthSquared() - t.Radius*t.Radius

	discriminant := core.AlignZero(halfB*halfB - a*c)
	if discriminant <= 0 {
		return 0, 0, false // Miss or tangent
	}

	sqrtD := math.Sqrt(discriminant)
	return core.AlignZero((-halfB - sqrtD) / a), core.AlignZero((-halfB + sqrtD) / a), true
}

func (t *Tube) intersect(ray core.Ray, maxDistance float64) []core.Vec3 {
	t1, t2, ok := t.roots(ray)
	if !ok {
		return nil
	}

	var points []core.Vec3
	for _, root := range [2]float64{t1, t2} {
		if inRange(root, maxDistance) {
			points = append(points, ray.At(root))
		}
	}
	return points
}
