package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is the closed set of primitive kinds: *Plane, *Sphere, *Polygon,
// *Tube and *Cylinder. Normals and intersections are dispatched by a single
// type switch, so each kind only carries its own fields.
type Shape interface {
	isShape()
}

func (*Plane) isShape()    {}
func (*Sphere) isShape()   {}
func (*Polygon) isShape()  {}
func (*Tube) isShape()     {}
func (*Cylinder) isShape() {}

// Intersectable is anything a ray can be tested against: a single Geometry
// or a Geometries aggregate
type Intersectable interface {
	// Intersect returns every hit with t in (0, maxDistance).
	// ok is false exactly when there are no hits.
	Intersect(ray core.Ray, maxDistance float64) (hits []GeoPoint, ok bool)

	// BoundingBox returns false for unbounded objects
	BoundingBox() (core.AABB, bool)
}

// Geometry is a shape with its emission color and material
type Geometry struct {
	Shape    Shape
	Emission core.Vec3
	Material material.Material

	box     core.AABB // Cached bounding box
	bounded bool      // False for planes and tubes
}

// NewGeometry wraps a shape with its emission and material
func NewGeometry(shape Shape, emission core.Vec3, mat material.Material) *Geometry {
	box, bounded := shapeBounds(shape)
	return &Geometry{
		Shape:    shape,
		Emission: emission,
		Material: mat,
		box:      box,
		bounded:  bounded,
	}
}

// NormalAt returns the outward unit normal at a point assumed to lie on the surface
func (g *Geometry) NormalAt(point core.Vec3) core.Vec3 {
	return normalAt(g.Shape, point)
}

// Intersect returns the hits with t in (0, maxDistance)
func (g *Geometry) Intersect(ray core.Ray, maxDistance float64) ([]GeoPoint, bool) {
	points := intersectShape(g.Shape, ray, maxDistance)
	if len(points) == 0 {
		return nil, false
	}

	hits := make([]GeoPoint, len(points))
	for i, p := range points {
		hits[i] = GeoPoint{Geometry: g, Point: p}
	}
	return hits, true
}

// BoundingBox returns the cached box, or false for unbounded shapes
func (g *Geometry) BoundingBox() (core.AABB, bool) {
	return g.box, g.bounded
}

func normalAt(shape Shape, point core.Vec3) core.Vec3 {
	switch s := shape.(type) {
	case *Plane:
		return s.Normal
	case *Sphere:
		return s.normalAt(point)
	case *Polygon:
		return s.plane.Normal
	case *Tube:
		return s.normalAt(point)
	case *Cylinder:
		return s.normalAt(point)
	default:
		panic("geometry: unknown shape")
	}
}

func intersectShape(shape Shape, ray core.Ray, maxDistance float64) []core.Vec3 {
	switch s := shape.(type) {
	case *Plane:
		return s.intersect(ray, maxDistance)
	case *Sphere:
		return s.intersect(ray, maxDistance)
	case *Polygon:
		return s.intersect(ray, maxDistance)
	case *Tube:
		return s.intersect(ray, maxDistance)
	case *Cylinder:
		return s.intersect(ray, maxDistance)
	default:
		panic("geometry: unknown shape")
	}
}

func shapeBounds(shape Shape) (core.AABB, bool) {
	switch s := shape.(type) {
	case *Sphere:
		return s.boundingBox(), true
	case *Polygon:
		return core.NewAABBFromPoints(s.Vertices...), true
	case *Cylinder:
		return s.boundingBox(), true
	default:
		return core.AABB{}, false
	}
}

// inRange reports whether t lies in the open interval (0, maxDistance)
func inRange(t, maxDistance float64) bool {
	if t <= 0 {
		return false
	}
	if math.IsInf(maxDistance, 1) {
		return true
	}
	return core.AlignZero(t-maxDistance) < 0
}

// Must unwraps a constructor result, panicking on error.
// Meant for static scenes whose parameters are known to be valid.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}
