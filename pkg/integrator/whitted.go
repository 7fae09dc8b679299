package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config controls recursion and shadow sampling of the Whitted integrator
type Config struct {
	MaxDepth       int     // Recursion levels including the primary hit
	MinAttenuation float64 // Contributions whose accumulated factor falls below this are pruned
	SoftShadows    bool    // Sample the light's disk instead of a single shadow ray
	ShadowGrid     int     // Shadow rays per disk axis when SoftShadows is set
}

// DefaultConfig returns depth 10, attenuation floor 0.001 and hard shadows
func DefaultConfig() Config {
	return Config{
		MaxDepth:       10,
		MinAttenuation: 0.001,
		ShadowGrid:     9,
	}
}

// WhittedIntegrator implements recursive Whitted-style ray tracing: a Phong
// local term with transmittance shadows, plus mirror reflection and
// straight-through refraction.
type WhittedIntegrator struct {
	scene  *scene.Scene
	config Config
}

// NewWhittedIntegrator creates an integrator over a preprocessed scene.
// Non-positive config values fall back to the defaults.
func NewWhittedIntegrator(s *scene.Scene, config Config) *WhittedIntegrator {
	defaults := DefaultConfig()
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.MinAttenuation <= 0 {
		config.MinAttenuation = defaults.MinAttenuation
	}
	if config.ShadowGrid <= 0 {
		config.ShadowGrid = defaults.ShadowGrid
	}
	return &WhittedIntegrator{scene: s, config: config}
}

// shadingContext carries the per-ray state through the recursion
type shadingContext struct {
	sampler core.Sampler
	stats   *core.RayStats
}

// RayColor returns the background on a miss; otherwise the recursive color
// of the closest hit plus the ambient light, added once
func (wi *WhittedIntegrator) RayColor(ray core.Ray, sampler core.Sampler, stats *core.RayStats) core.Vec3 {
	if stats == nil {
		stats = &core.RayStats{}
	}
	if sampler == nil {
		sampler = core.CenterSampler{}
	}
	stats.PrimaryRays++

	gp, ok := wi.findClosest(ray)
	if !ok {
		return wi.scene.Background
	}

	ctx := shadingContext{sampler: sampler, stats: stats}
	color := wi.calcColor(ctx, gp, ray, wi.config.MaxDepth, core.Gray(1))
	return color.Add(wi.scene.Ambient.Intensity(gp.Point))
}

func (wi *WhittedIntegrator) findClosest(ray core.Ray) (geometry.GeoPoint, bool) {
	return wi.scene.Geometries.Closest(ray, math.Inf(1))
}

// calcColor evaluates the local term and, above level 1, the reflected and
// refracted contributions. k is the attenuation accumulated so far.
func (wi *WhittedIntegrator) calcColor(ctx shadingContext, gp geometry.GeoPoint, ray core.Ray, level int, k core.Vec3) core.Vec3 {
	if reached := wi.config.MaxDepth - level + 1; reached > ctx.stats.MaxLevel {
		ctx.stats.MaxLevel = reached
	}

	color := wi.localEffects(ctx, gp, ray, k)
	if level == 1 {
		return color
	}
	return color.Add(wi.globalEffects(ctx, gp, ray, level, k))
}

// localEffects adds emission and the Phong diffuse/specular term of every
// light that reaches the point from the viewer's side of the surface
func (wi *WhittedIntegrator) localEffects(ctx shadingContext, gp geometry.GeoPoint, ray core.Ray, k core.Vec3) core.Vec3 {
	color := gp.Geometry.Emission
	mat := gp.Geometry.Material

	n := gp.Normal()
	v := ray.Direction
	nv := core.AlignZero(n.Dot(v))
	if nv == 0 {
		return color
	}

	for _, light := range wi.scene.Lights {
		l, ok := light.Direction(gp.Point)
		if !ok {
			continue
		}
		nl := core.AlignZero(n.Dot(l))
		if nl*nv <= 0 {
			continue // Light and viewer on opposite sides
		}

		ktr := wi.transparency(ctx, gp, light, l, n)
		if ktr.MultiplyVec(k).LowerThan(wi.config.MinAttenuation) {
			continue
		}

		intensity := light.Intensity(gp.Point).MultiplyVec(ktr)
		diffuse := mat.KD.Multiply(math.Abs(nl))
		specular := calcSpecular(mat.KS, mat.Shininess, n, l, nl, v)
		color = color.Add(intensity.MultiplyVec(diffuse.Add(specular)))
	}
	return color
}

// calcSpecular returns kS·max(0, −r·v)^shininess with r the reflection of l about n
func calcSpecular(ks core.Vec3, shininess int, n, l core.Vec3, nl float64, v core.Vec3) core.Vec3 {
	r := l.Subtract(n.Multiply(2 * nl))
	minusRV := -core.AlignZero(r.Dot(v))
	if minusRV <= 0 {
		return core.Vec3{}
	}
	return ks.Multiply(math.Pow(minusRV, float64(shininess)))
}

// transparency returns the fraction of the light reaching gp per channel.
// With soft shadows a grid of rays over the light's disk is averaged.
func (wi *WhittedIntegrator) transparency(ctx shadingContext, gp geometry.GeoPoint, light lights.Light, l, n core.Vec3) core.Vec3 {
	toLight := l.Negate()
	distance := light.Distance(gp.Point)
	base := core.NewOffsetRay(gp.Point, toLight, n)

	radius := light.Radius()
	if _, positioned := light.(lights.Positioned); !wi.config.SoftShadows || radius <= 0 || !positioned {
		return wi.transmittance(ctx, base, distance)
	}

	rays := core.NewBlackboard(wi.config.ShadowGrid, base, distance, radius).Rays(ctx.sampler)
	if len(rays) == 0 {
		return wi.transmittance(ctx, base, distance)
	}

	total := core.Vec3{}
	for _, shadowRay := range rays {
		total = total.Add(wi.transmittance(ctx, shadowRay, distance))
	}
	return total.Multiply(1.0 / float64(len(rays)))
}

// transmittance multiplies kT over every hit closer than maxDistance
func (wi *WhittedIntegrator) transmittance(ctx shadingContext, ray core.Ray, maxDistance float64) core.Vec3 {
	ctx.stats.ShadowRays++

	ktr := core.Gray(1)
	hits, ok := wi.scene.Geometries.Intersect(ray, maxDistance)
	if !ok {
		return ktr
	}

	for _, hit := range hits {
		if hit.Geometry.Material.IsOpaque() {
			return core.Vec3{}
		}
		ktr = ktr.MultiplyVec(hit.Geometry.Material.KT)
		if ktr.LowerThan(wi.config.MinAttenuation) {
			return core.Vec3{}
		}
	}
	return ktr
}

// globalEffects traces the mirror-reflected ray with kR and the
// straight-through refracted ray with kT
func (wi *WhittedIntegrator) globalEffects(ctx shadingContext, gp geometry.GeoPoint, ray core.Ray, level int, k core.Vec3) core.Vec3 {
	mat := gp.Geometry.Material
	n := gp.Normal()
	v := ray.Direction

	reflected := v.Subtract(n.Multiply(2 * v.Dot(n)))
	reflectedRay := core.NewOffsetRay(gp.Point, reflected, n)
	refractedRay := core.NewOffsetRay(gp.Point, v, n)

	return wi.globalEffect(ctx, reflectedRay, level, k, mat.KR, &ctx.stats.ReflectionRays).
		Add(wi.globalEffect(ctx, refractedRay, level, k, mat.KT, &ctx.stats.RefractionRays))
}

func (wi *WhittedIntegrator) globalEffect(ctx shadingContext, ray core.Ray, level int, k, kx core.Vec3, counter *int64) core.Vec3 {
	kkx := kx.MultiplyVec(k)
	if kkx.LowerThan(wi.config.MinAttenuation) {
		return core.Vec3{}
	}
	*counter++

	gp, ok := wi.findClosest(ray)
	if !ok {
		return wi.scene.Background.MultiplyVec(kx)
	}
	return wi.calcColor(ctx, gp, ray, level-1, kkx).MultiplyVec(kx)
}
