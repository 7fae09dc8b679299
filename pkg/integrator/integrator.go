package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// It matches renderer.RayTracer so any integrator can drive a camera.
type Integrator interface {
	// RayColor computes the color seen along ray. Randomness comes only from
	// sampler and ray counts are added to stats, so one integrator can be
	// shared by concurrent workers.
	RayColor(ray core.Ray, sampler core.Sampler, stats *core.RayStats) core.Vec3
}
