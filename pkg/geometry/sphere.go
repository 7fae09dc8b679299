package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius %g is not positive: %w", radius, core.ErrInvalidGeometry)
	}
	return &Sphere{
		Center: center,
		Radius: radius,
	}, nil
}

func (s *Sphere) normalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// intersect projects the center onto the ray (tm), takes the perpendicular
// distance d and returns tm ∓ √(r²−d²), keeping positive parameters only
func (s *Sphere) intersect(ray core.Ray, maxDistance float64) []core.Vec3 {
	u := s.Center.Subtract(ray.Origin)

	// Origin at the center: exactly one hit, one radius away
	if u.IsNearZero() {
		if !inRange(s.Radius, maxDistance) {
			return nil
		}
		return []core.Vec3{ray.At(s.Radius)}
	}

	tm := core.AlignZero(ray.Direction.Dot(u))
	dSquared := u.LengthSquared() - tm*tm
	thSquared := core.AlignZero(s.Radius*s.Radius - dSquared)
	if thSquared <= 0 {
		return nil // Miss or tangent
	}

	th := math.Sqrt(thSquared)
	var points []core.Vec3
	for _, t := range [2]float64{core.AlignZero(tm - th), core.AlignZero(tm + th)} {
		if inRange(t, maxDistance) {
			points = append(points, ray.At(t))
		}
	}
	return points
}

func (s *Sphere) boundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
