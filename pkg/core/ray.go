package core

import "math"

// rayOffset is how far secondary ray origins are pushed off the surface
const rayOffset = 0.1

// Ray represents a ray with an origin and a normalized direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewOffsetRay creates a secondary ray whose origin is moved off the surface
// along the normal, on the side the direction points to. This keeps shadow,
// reflection and refraction rays from re-hitting the surface they start on.
func NewOffsetRay(point, direction, normal Vec3) Ray {
	nd := normal.Dot(direction)
	origin := point
	if !IsZero(nd) {
		if nd > 0 {
			origin = point.Add(normal.Multiply(rayOffset))
		} else {
			origin = point.Add(normal.Multiply(-rayOffset))
		}
	}
	return NewRay(origin, direction)
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	if IsZero(t) {
		return r.Origin
	}
	return r.Origin.Add(r.Direction.Multiply(t))
}

// ClosestPoint returns the point nearest to the ray origin
func (r Ray) ClosestPoint(points []Vec3) (Vec3, bool) {
	if len(points) == 0 {
		return Vec3{}, false
	}

	closest := points[0]
	minDistance := math.Inf(1)
	for _, p := range points {
		if d := p.DistanceSquared(r.Origin); d < minDistance {
			minDistance = d
			closest = p
		}
	}
	return closest, true
}
