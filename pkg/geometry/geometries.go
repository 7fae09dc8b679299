package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// BVHConfig controls the optional bounding volume hierarchy build
type BVHConfig struct {
	Enabled bool
	FanOut  int // Aggregates with more finite children than this are split
	MinLeaf int // Split groups of this size or fewer stay flat
}

// DefaultBVHConfig returns an enabled hierarchy with fan-out 4 and leaves of 2
func DefaultBVHConfig() BVHConfig {
	return BVHConfig{
		Enabled: true,
		FanOut:  4,
		MinLeaf: 2,
	}
}

// Geometries is a composite of intersectables. Finite children are kept
// apart from unbounded ones; the aggregate box exists only while every
// child is finite.
type Geometries struct {
	finite    []Intersectable
	unbounded []Intersectable

	box     core.AABB
	bounded bool
	cull    bool // Test boxes before descending; set on hierarchy nodes
}

// NewGeometries creates a flat aggregate of the given items
func NewGeometries(items ...Intersectable) *Geometries {
	g := &Geometries{}
	g.Add(items...)
	return g
}

// Add appends items, classifying them as finite or unbounded
func (g *Geometries) Add(items ...Intersectable) {
	for _, item := range items {
		box, ok := item.BoundingBox()
		if !ok {
			g.unbounded = append(g.unbounded, item)
			continue
		}

		if len(g.finite) == 0 {
			g.box = box
		} else {
			g.box = g.box.Union(box)
		}
		g.finite = append(g.finite, item)
	}
	g.bounded = len(g.finite) > 0 && len(g.unbounded) == 0
}

// Len returns the number of direct children
func (g *Geometries) Len() int {
	return len(g.finite) + len(g.unbounded)
}

// BoundingBox returns the union of the children's boxes, or false when any
// child is unbounded or the aggregate is empty
func (g *Geometries) BoundingBox() (core.AABB, bool) {
	return g.box, g.bounded
}

// Intersect merges the hits of every child
func (g *Geometries) Intersect(ray core.Ray, maxDistance float64) ([]GeoPoint, bool) {
	if g.cull && g.bounded && !g.box.Hit(ray, 0, maxDistance) {
		return nil, false
	}

	var hits []GeoPoint
	for _, item := range g.finite {
		if g.cull {
			// Nested nodes check their own box
			if _, nested := item.(*Geometries); !nested {
				if box, _ := item.BoundingBox(); !box.Hit(ray, 0, maxDistance) {
					continue
				}
			}
		}
		if childHits, ok := item.Intersect(ray, maxDistance); ok {
			hits = append(hits, childHits...)
		}
	}
	for _, item := range g.unbounded {
		if childHits, ok := item.Intersect(ray, maxDistance); ok {
			hits = append(hits, childHits...)
		}
	}

	return hits, len(hits) > 0
}

// Closest returns the hit nearest to the ray origin
func (g *Geometries) Closest(ray core.Ray, maxDistance float64) (GeoPoint, bool) {
	hits, ok := g.Intersect(ray, maxDistance)
	if !ok {
		return GeoPoint{}, false
	}
	return ClosestGeoPoint(ray, hits)
}

// BuildBVH returns a new aggregate holding the same primitives arranged as
// a hierarchy. The receiver is not modified. Unbounded children stay in a
// flat list at the root.
func (g *Geometries) BuildBVH(cfg BVHConfig) *Geometries {
	primitives := g.primitives(nil)

	if !cfg.Enabled {
		return NewGeometries(primitives...)
	}
	if cfg.FanOut < 2 {
		cfg.FanOut = 2
	}
	if cfg.MinLeaf < 1 {
		cfg.MinLeaf = 1
	}

	var finite, unbounded []Intersectable
	for _, item := range primitives {
		if _, ok := item.BoundingBox(); ok {
			finite = append(finite, item)
		} else {
			unbounded = append(unbounded, item)
		}
	}

	root := buildNode(finite, cfg)
	root.Add(unbounded...)
	return root
}

// primitives flattens nested aggregates into their leaf geometries
func (g *Geometries) primitives(out []Intersectable) []Intersectable {
	for _, list := range [2][]Intersectable{g.finite, g.unbounded} {
		for _, item := range list {
			if nested, ok := item.(*Geometries); ok {
				out = nested.primitives(out)
			} else {
				out = append(out, item)
			}
		}
	}
	return out
}

// buildNode splits items at the midpoint of their union box's longest axis
// into left, right and straddling groups. Left and right groups larger than
// MinLeaf become child nodes; everything else stays at this level.
func buildNode(items []Intersectable, cfg BVHConfig) *Geometries {
	node := &Geometries{cull: true}
	if len(items) <= cfg.FanOut {
		node.Add(items...)
		return node
	}

	box, _ := NewGeometries(items...).BoundingBox()
	axis := box.LongestAxis()
	mid := core.Component(box.Center(), axis)

	var left, right, straddle []Intersectable
	for _, item := range items {
		itemBox, _ := item.BoundingBox()
		switch {
		case core.Component(itemBox.Max, axis) < mid:
			left = append(left, item)
		case core.Component(itemBox.Min, axis) > mid:
			right = append(right, item)
		default:
			straddle = append(straddle, item)
		}
	}

	for _, group := range [2][]Intersectable{left, right} {
		if len(group) > cfg.MinLeaf {
			node.Add(buildNode(group, cfg))
		} else {
			node.Add(group...)
		}
	}
	node.Add(straddle...)
	return node
}

// BVHStats describes the shape of an aggregate
type BVHStats struct {
	Nodes      int // Aggregates, including the root
	Primitives int
	Unbounded  int
	MaxDepth   int
}

// Stats walks the aggregate and counts its nodes and primitives
func (g *Geometries) Stats() BVHStats {
	stats := BVHStats{}
	g.collectStats(0, &stats)
	return stats
}

func (g *Geometries) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, list := range [2][]Intersectable{g.finite, g.unbounded} {
		for _, item := range list {
			if nested, ok := item.(*Geometries); ok {
				nested.collectStats(depth+1, stats)
				continue
			}
			stats.Primitives++
			if _, bounded := item.BoundingBox(); !bounded {
				stats.Unbounded++
			}
		}
	}
}
