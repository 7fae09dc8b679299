package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// GeoPoint pairs an intersection point with the geometry that produced it
type GeoPoint struct {
	Geometry *Geometry
	Point    core.Vec3
}

// Equal compares geometry identity and point value
func (gp GeoPoint) Equal(other GeoPoint) bool {
	return gp.Geometry == other.Geometry && gp.Point == other.Point
}

// Normal returns the surface normal of the geometry at this point
func (gp GeoPoint) Normal() core.Vec3 {
	return gp.Geometry.NormalAt(gp.Point)
}

// ClosestGeoPoint returns the hit nearest to the ray origin
func ClosestGeoPoint(ray core.Ray, hits []GeoPoint) (GeoPoint, bool) {
	if len(hits) == 0 {
		return GeoPoint{}, false
	}

	closest := hits[0]
	minDistance := math.Inf(1)
	for _, hit := range hits {
		if d := hit.Point.DistanceSquared(ray.Origin); d < minDistance {
			minDistance = d
			closest = hit
		}
	}
	return closest, true
}
