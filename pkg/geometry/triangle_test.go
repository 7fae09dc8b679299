package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Normal(t *testing.T) {
	points := []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	triangle := Must(NewTriangle(points[0], points[1], points[2]))
	normal := normalAt(triangle, points[0])

	if math.Abs(normal.Length()-1) > tolerance {
		t.Errorf("Expected unit normal, got length %f", normal.Length())
	}
	for i := range points {
		if !core.IsZero(normal.Dot(points[i].Subtract(points[(i+2)%3]))) {
			t.Errorf("Normal %v is not orthogonal to edge %d", normal, i)
		}
	}
}

func TestTriangle_Intersect(t *testing.T) {
	triangle := Must(NewTriangle(core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)))
	origin := core.NewVec3(0.5, 0.5, 1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  []core.Vec3
	}{
		{"inside triangle", core.NewVec3(-0.5, -1, -1), []core.Vec3{core.NewVec3(0.3, 0.1, 0.6)}},
		{"outside against edge", core.NewVec3(-2, -0.5, -1), nil},
		{"outside against vertex", core.NewVec3(1, -0.5, -1), nil},
		{"on edge", core.NewVec3(-0.5, -0.1, -0.4), nil},
		{"on vertex", core.NewVec3(-0.5, 0.5, -1), nil},
		{"on edge continuation", core.NewVec3(-0.5, -1, 0.5), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := triangle.intersect(core.NewRay(origin, tt.direction), math.Inf(1))
			if len(points) != len(tt.expected) {
				t.Fatalf("Expected %d intersections, got %d: %v", len(tt.expected), len(points), points)
			}
			for i := range points {
				if !vecNear(points[i], tt.expected[i]) {
					t.Errorf("Expected %v, got %v", tt.expected[i], points[i])
				}
			}
		})
	}
}

func TestPolygon_Quad(t *testing.T) {
	points := []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(-1, 1, 1)}
	quad := Must(NewPolygon(points...))

	normal := quad.Normal()
	for i := range points {
		prev := points[(i+len(points)-1)%len(points)]
		if !core.IsZero(normal.Dot(points[i].Subtract(prev))) {
			t.Errorf("Normal %v is not orthogonal to edge %d", normal, i)
		}
	}

	box, ok := NewGeometry(quad, core.Vec3{}, materialZero).BoundingBox()
	if !ok {
		t.Fatal("Expected polygon to be bounded")
	}
	if box.Min != core.NewVec3(-1, 0, 0) || box.Max != core.NewVec3(1, 1, 1) {
		t.Errorf("Unexpected box %v - %v", box.Min, box.Max)
	}
}

func TestNewPolygon_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		vertices []core.Vec3
	}{
		{"too few vertices", []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)}},
		{"collinear", []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0)}},
		{"not coplanar", []core.Vec3{
			core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 1),
		}},
		{"concave", []core.Vec3{
			core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 0.5, 0), core.NewVec3(2, 2, 0), core.NewVec3(0, 2, 0),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPolygon(tt.vertices...); !errors.Is(err, core.ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}
