package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Pixels written to the sink
	SamplesPerPixel int           // Primary rays averaged per pixel
	Workers         int           // Goroutines used; 0 for a synchronous render
	Rays            core.RayStats // Merged per-worker ray counters
	Duration        time.Duration // Wall time of the render
}

// RaysPerSecond returns the throughput of all traced rays
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	total := s.Rays.PrimaryRays + s.Rays.ShadowRays + s.Rays.ReflectionRays + s.Rays.RefractionRays
	return float64(total) / s.Duration.Seconds()
}
