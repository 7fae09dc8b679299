package core

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get2D() Vec2
}

// CenterSampler always returns the middle of the unit square.
// Blackboards driven by it place every ray at its cell center.
type CenterSampler struct{}

func (CenterSampler) Get2D() Vec2 { return NewVec2(0.5, 0.5) }
