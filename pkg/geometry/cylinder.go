package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a tube capped by two disks, one at the axis head and one at
// Height along the axis
type Cylinder struct {
	Tube
	Height float64
}

// NewCylinder creates a finite capped cylinder
func NewCylinder(axis core.Ray, radius, height float64) (*Cylinder, error) {
	if height <= 0 {
		return nil, fmt.Errorf("cylinder height %g is not positive: %w", height, core.ErrInvalidGeometry)
	}
	tube, err := NewTube(axis, radius)
	if err != nil {
		return nil, err
	}
	return &Cylinder{Tube: *tube, Height: height}, nil
}

// top returns the center of the far cap
func (c *Cylinder) top() core.Vec3 {
	return c.Axis.At(c.Height)
}

func (c *Cylinder) normalAt(point core.Vec3) core.Vec3 {
	if point.Subtract(c.Axis.Origin).IsNearZero() {
		return c.Axis.Direction
	}

	t := c.project(point)
	if core.IsZero(t) || core.IsZero(t-c.Height) {
		return c.Axis.Direction
	}
	return c.Tube.normalAt(point)
}

func (c *Cylinder) intersect(ray core.Ray, maxDistance float64) []core.Vec3 {
	var ts []float64

	// Lateral surface, strictly between the caps
	if t1, t2, ok := c.roots(ray); ok {
		for _, t := range [2]float64{t1, t2} {
			if !inRange(t, maxDistance) {
				continue
			}
			s := core.AlignZero(c.project(ray.At(t)))
			if s > 0 && core.AlignZero(s-c.Height) < 0 {
				ts = append(ts, t)
			}
		}
	}

	// Caps, strictly inside the disks
	denominator := c.Axis.Direction.Dot(ray.Direction)
	if !core.IsZero(denominator) {
		for _, center := range [2]core.Vec3{c.Axis.Origin, c.top()} {
			t := core.AlignZero(c.Axis.Direction.Dot(center.Subtract(ray.Origin)) / denominator)
			if !inRange(t, maxDistance) {
				continue
			}
			if core.AlignZero(ray.At(t).DistanceSquared(center)-c.Radius*c.Radius) < 0 {
				ts = append(ts, t)
			}
		}
	}

	if len(ts) == 0 {
		return nil
	}

	sort.Float64s(ts)
	points := make([]core.Vec3, len(ts))
	for i, t := range ts {
		points[i] = ray.At(t)
	}
	return points
}

// boundingBox encloses both cap disks. A disk of radius r with unit normal v
// extends r·√(1−v_i²) along axis i.
func (c *Cylinder) boundingBox() core.AABB {
	v := c.Axis.Direction
	extent := core.NewVec3(
		c.Radius*math.Sqrt(math.Max(0, 1-v.X*v.X)),
		c.Radius*math.Sqrt(math.Max(0, 1-v.Y*v.Y)),
		c.Radius*math.Sqrt(math.Max(0, 1-v.Z*v.Z)),
	)

	bottom := core.NewAABB(c.Axis.Origin.Subtract(extent), c.Axis.Origin.Add(extent))
	top := core.NewAABB(c.top().Subtract(extent), c.top().Add(extent))
	return bottom.Union(top)
}
