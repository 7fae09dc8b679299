package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Polygon is a convex, planar polygon. Its interior is an open set: rays
// through an edge or a vertex miss.
type Polygon struct {
	Vertices []core.Vec3
	plane    *Plane // Supporting plane
}

// NewTriangle creates a triangle, the three-vertex polygon
func NewTriangle(v0, v1, v2 core.Vec3) (*Polygon, error) {
	return NewPolygon(v0, v1, v2)
}

// NewPolygon creates a convex polygon from its vertices in edge order
func NewPolygon(vertices ...core.Vec3) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d: %w", len(vertices), core.ErrInvalidGeometry)
	}

	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2])
	if err != nil {
		return nil, fmt.Errorf("degenerate polygon: %w", err)
	}

	p := &Polygon{
		Vertices: append([]core.Vec3(nil), vertices...),
		plane:    plane,
	}
	if len(vertices) == 3 {
		return p, nil
	}

	n := plane.Normal
	last := len(vertices) - 1

	// Consecutive edge cross products must all point the same way along n
	edge1 := vertices[last].Subtract(vertices[last-1])
	edge2 := vertices[0].Subtract(vertices[last])
	positive := edge1.Cross(edge2).Dot(n) > 0

	for i := 1; i < len(vertices); i++ {
		if !core.IsZero(n.Dot(vertices[i].Subtract(vertices[0]))) {
			return nil, fmt.Errorf("polygon vertex %d is not coplanar: %w", i, core.ErrInvalidGeometry)
		}

		edge1 = edge2
		edge2 = vertices[i].Subtract(vertices[i-1])
		turn := core.AlignZero(edge1.Cross(edge2).Dot(n))
		if turn == 0 || (turn > 0) != positive {
			return nil, fmt.Errorf("polygon is not convex at vertex %d: %w", i, core.ErrInvalidGeometry)
		}
	}

	return p, nil
}

// Normal returns the polygon's unit normal
func (p *Polygon) Normal() core.Vec3 {
	return p.plane.Normal
}

// intersect takes the supporting-plane hit and keeps it only when the ray
// direction lies strictly on the same side of every edge fan built from the
// ray origin
func (p *Polygon) intersect(ray core.Ray, maxDistance float64) []core.Vec3 {
	points := p.plane.intersect(ray, maxDistance)
	if points == nil {
		return nil
	}

	count := len(p.Vertices)
	sign := 0.0
	for i := 0; i < count; i++ {
		v1 := p.Vertices[i].Subtract(ray.Origin)
		v2 := p.Vertices[(i+1)%count].Subtract(ray.Origin)

		fanNormal := v1.Cross(v2)
		if fanNormal.IsNearZero() {
			return nil // Ray origin on an edge line
		}

		s := core.AlignZero(ray.Direction.Dot(fanNormal.Normalize()))
		if s == 0 {
			return nil // Through an edge or vertex
		}
		if sign == 0 {
			sign = s
		} else if (s > 0) != (sign > 0) {
			return nil
		}
	}

	return points
}
