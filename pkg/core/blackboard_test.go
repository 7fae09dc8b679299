package core

import (
	"math"
	"testing"
)

func TestBlackboard_RayCountAndOrigin(t *testing.T) {
	base := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	board := NewBlackboard(4, base, 10, 1)
	rays := board.Rays(NewSeededSampler(7))

	if len(rays) != 16 {
		t.Fatalf("Expected 16 rays, got %d", len(rays))
	}

	for i, ray := range rays {
		if ray.Origin != base.Origin {
			t.Errorf("Ray %d: expected origin %v, got %v", i, base.Origin, ray.Origin)
		}
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("Ray %d: direction not normalized", i)
		}

		// Each ray must land inside the 2x2 square at distance 10
		tHit := 10 / ray.Direction.Dot(base.Direction)
		p := ray.At(tHit)
		if math.Abs(p.X-1) > 1+1e-9 || math.Abs(p.Y-2) > 1+1e-9 {
			t.Errorf("Ray %d: point %v outside blackboard square", i, p)
		}
	}
}

func TestBlackboard_SingleCellCenterIsBaseRay(t *testing.T) {
	base := NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 0))
	rays := NewBlackboard(1, base, 5, 2).Rays(CenterSampler{})

	if len(rays) != 1 {
		t.Fatalf("Expected 1 ray, got %d", len(rays))
	}
	if rays[0].Direction.Subtract(base.Direction).Length() > 1e-9 {
		t.Errorf("Expected base direction %v, got %v", base.Direction, rays[0].Direction)
	}
}

func TestBlackboard_IndependentJitterPerCall(t *testing.T) {
	base := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	board := NewBlackboard(3, base, 1, 1)
	sampler := NewSeededSampler(1)

	first := board.Rays(sampler)
	second := board.Rays(sampler)

	same := true
	for i := range first {
		if first[i].Direction != second[i].Direction {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected fresh jitter on each call")
	}
}
