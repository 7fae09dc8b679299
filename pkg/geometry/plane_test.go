package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewPlaneFromPoints_Normal(t *testing.T) {
	points := []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	plane := Must(NewPlaneFromPoints(points[0], points[1], points[2]))

	if math.Abs(plane.Normal.Length()-1) > tolerance {
		t.Errorf("Expected unit normal, got length %f", plane.Normal.Length())
	}
	for i := range points {
		edge := points[i].Subtract(points[(i+2)%3])
		if !core.IsZero(plane.Normal.Dot(edge)) {
			t.Errorf("Normal %v is not orthogonal to edge %v", plane.Normal, edge)
		}
	}
}

func TestNewPlane_ZeroNormal(t *testing.T) {
	if _, err := NewPlane(core.NewVec3(1, 2, 3), core.Vec3{}); !errors.Is(err, core.ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
}

func TestNewPlaneFromPoints_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 core.Vec3
	}{
		{"coincident points", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0)},
		{"collinear points", core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPlaneFromPoints(tt.p1, tt.p2, tt.p3); !errors.Is(err, core.ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestPlane_Intersect(t *testing.T) {
	// Horizontal plane at y=0
	plane := Must(NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  []core.Vec3
	}{
		{"crosses plane", core.NewVec3(1, 1, 0), core.NewVec3(0, -1, 0), []core.Vec3{core.NewVec3(1, 0, 0)}},
		{"oblique crossing", core.NewVec3(0, 2, 0), core.NewVec3(1, -1, 0), []core.Vec3{core.NewVec3(2, 0, 0)}},
		{"points away", core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0), nil},
		{"parallel above", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), nil},
		{"parallel inside", core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0), nil},
		{"orthogonal from plane", core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil},
		{"orthogonal from reference point", core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := plane.intersect(core.NewRay(tt.origin, tt.direction), math.Inf(1))
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

func TestPlane_IsUnbounded(t *testing.T) {
	geometry := NewGeometry(Must(NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))), core.Vec3{}, materialZero)
	if _, ok := geometry.BoundingBox(); ok {
		t.Error("Expected plane to have no bounding box")
	}
	if n := geometry.NormalAt(core.NewVec3(3, 4, 0)); n != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}
}
