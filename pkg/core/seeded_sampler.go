package core

import "math/rand/v2"

// SeededSampler draws from a PCG stream that can be restarted. Resetting it
// per pixel makes a pixel's samples independent of the worker that renders it.
type SeededSampler struct {
	source *rand.PCG
	random *rand.Rand
}

// NewSeededSampler creates a sampler positioned at stream 0 of seed
func NewSeededSampler(seed uint64) *SeededSampler {
	source := rand.NewPCG(seed, 0)
	return &SeededSampler{
		source: source,
		random: rand.New(source),
	}
}

// Reset restarts the sampler at the given seed and stream
func (s *SeededSampler) Reset(seed, stream uint64) {
	s.source.Seed(seed, stream)
}

// Get2D returns two random float64 values in [0, 1)
func (s *SeededSampler) Get2D() Vec2 {
	return NewVec2(s.random.Float64(), s.random.Float64())
}
