package core

// Blackboard is a jittered sampling grid on a square perpendicular to a base
// ray. It approximates an area (light disk, pixel footprint) by a finite set
// of rays from the base ray origin through one jittered point per grid cell.
type Blackboard struct {
	resolution int     // Cells per side
	origin     Vec3    // Origin shared by every generated ray
	center     Vec3    // Center of the square
	up         Vec3    // In-plane vertical axis
	right      Vec3    // In-plane horizontal axis
	cellSize   float64 // Edge length of one cell
}

// NewBlackboard creates a resolution x resolution grid of half-size halfSize,
// centered on the base ray at the given distance from its origin
func NewBlackboard(resolution int, base Ray, distance, halfSize float64) Blackboard {
	if resolution < 1 {
		resolution = 1
	}
	up := base.Direction.FindOrthogonal()
	right := up.Cross(base.Direction).Normalize()

	return Blackboard{
		resolution: resolution,
		origin:     base.Origin,
		center:     base.At(distance),
		up:         up,
		right:      right,
		cellSize:   2 * halfSize / float64(resolution),
	}
}

// NewBlackboardWithAxes creates a grid whose in-plane axes are given
// explicitly, for example a camera's right/up pair
func NewBlackboardWithAxes(resolution int, origin, center, right, up Vec3, halfSize float64) Blackboard {
	if resolution < 1 {
		resolution = 1
	}
	return Blackboard{
		resolution: resolution,
		origin:     origin,
		center:     center,
		up:         up,
		right:      right,
		cellSize:   2 * halfSize / float64(resolution),
	}
}

// Size returns the number of rays produced by Rays
func (b Blackboard) Size() int {
	return b.resolution * b.resolution
}

// Rays returns one ray per cell. Every call draws fresh jitter from sampler.
func (b Blackboard) Rays(sampler Sampler) []Ray {
	rays := make([]Ray, 0, b.Size())
	half := float64(b.resolution-1) / 2

	for i := 0; i < b.resolution; i++ {
		for j := 0; j < b.resolution; j++ {
			jitter := sampler.Get2D()
			xj := (float64(j)-half)*b.cellSize + (jitter.X-0.5)*b.cellSize
			yi := (float64(i)-half)*b.cellSize + (jitter.Y-0.5)*b.cellSize

			point := b.center
			if !IsZero(xj) {
				point = point.Add(b.right.Multiply(xj))
			}
			if !IsZero(yi) {
				point = point.Add(b.up.Multiply(-yi))
			}

			direction := point.Subtract(b.origin)
			if direction.IsNearZero() {
				continue
			}
			rays = append(rays, NewRay(b.origin, direction))
		}
	}
	return rays
}
