package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	inf := math.Inf(1)

	tests := []struct {
		name     string
		ray      Ray
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), inf, true},
		{"diagonal through", NewRay(NewVec3(-1, -1, -1), NewVec3(1, 1, 1)), inf, true},
		{"parallel outside slab", NewRay(NewVec3(-1, 2, 0.5), NewVec3(1, 0, 0)), inf, false},
		{"pointing away", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(-1, 0, 0)), inf, false},
		{"origin inside", NewRay(NewVec3(0.5, 0.5, 0.5), NewVec3(0, 1, 0)), inf, true},
		{"too short", NewRay(NewVec3(-5, 0.5, 0.5), NewVec3(1, 0, 0)), 2, false},
		{"misses corner", NewRay(NewVec3(-1, 1.5, 0.5), NewVec3(1, 1, 0)), inf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_UnionAndAxis(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-2, 0.5, 0), NewVec3(0, 3, 1))

	u := a.Union(b)
	if u.Min != NewVec3(-2, 0, 0) || u.Max != NewVec3(1, 3, 1) {
		t.Errorf("Unexpected union %v - %v", u.Min, u.Max)
	}
	if axis := u.LongestAxis(); axis != 0 && axis != 1 {
		t.Errorf("Expected X or Y as longest axis (both 3), got %d", axis)
	}
	if axis := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 5)).LongestAxis(); axis != 2 {
		t.Errorf("Expected Z axis, got %d", axis)
	}
	if c := a.Center(); c != NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected center (0.5,0.5,0.5), got %v", c)
	}
}

func TestNewAABBFromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -1, 0), NewVec3(-2, 3, 4), NewVec3(0, 0, -5))
	if box.Min != NewVec3(-2, -1, -5) || box.Max != NewVec3(1, 3, 4) {
		t.Errorf("Unexpected bounds %v - %v", box.Min, box.Max)
	}
}
