package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// RayStats counts the rays cast while shading. Each worker owns one and the
// renderer merges them after the workers join, so no field is shared.
type RayStats struct {
	PrimaryRays    int64 // Rays cast from the camera
	ShadowRays     int64 // Transparency/shadow rays toward lights
	ReflectionRays int64 // Reflected secondary rays that were traced
	RefractionRays int64 // Refracted secondary rays that were traced
	MaxLevel       int   // Deepest recursion level reached (1 = primary hit only)
}

// Merge adds other's counters into s
func (s *RayStats) Merge(other RayStats) {
	s.PrimaryRays += other.PrimaryRays
	s.ShadowRays += other.ShadowRays
	s.ReflectionRays += other.ReflectionRays
	s.RefractionRays += other.RefractionRays
	s.MaxLevel = max(s.MaxLevel, other.MaxLevel)
}
