package integrator

import (
	"sync/atomic"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/lights"
	"github.com/lumen-rt/lumen/pkg/scene"
)

// Russian roulette survival probability bounds. The lower bound keeps
// compensation factors finite, the upper bound guarantees termination.
const (
	rrMinSurvival = 0.05
	rrMaxSurvival = 0.95
)

// PathTracer implements unidirectional path tracing with next-event
// estimation. Light sampling and BSDF sampling are combined with the
// power heuristic; paths terminate on a hard depth limit or by Russian
// roulette once past the configured start depth.
//
// A single PathTracer is shared by all render workers; it carries no
// per-path state and is safe for concurrent use.
type PathTracer struct {
	config Config

	// Count of samples discarded because a contribution went NaN or
	// infinite, typically a near-zero pdf division
	discarded atomic.Uint64
}

// pathState is the per-sample mutable state carried through one random
// walk. It lives on the stack of the worker tracing the sample.
type pathState struct {
	ray            core.Ray
	throughput     core.Vec3
	depth          int
	specularBounce bool
	prevBSDFPdf    float64
	prevPoint      core.Vec3
}

// NewPathTracer creates a new path tracing integrator
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// DiscardedSamples reports how many samples were dropped due to
// non-finite contributions
func (pt *PathTracer) DiscardedSamples() uint64 {
	return pt.discarded.Load()
}

// Li implements the Integrator interface: one iterative random walk.
// The walk is a loop rather than recursion to bound stack usage.
func (pt *PathTracer) Li(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	state := pathState{
		ray:            ray,
		throughput:     core.NewVec3(1, 1, 1),
		specularBounce: true, // Camera rays count emission directly
	}

	for state.depth = 0; state.depth <= pt.config.MaxDepth; state.depth++ {
		si, hit := sc.BVH().IntersectNearest(state.ray)
		if !hit {
			// Escaped: background acts as an infinite light with no
			// sampling strategy, so it is always weighted by throughput
			radiance = radiance.Add(state.throughput.MultiplyVec(sc.Background(state.ray)))
			break
		}

		// Emission at the hit. After a specular bounce (or for camera
		// rays) BSDF sampling was the only strategy, so the weight is 1;
		// otherwise combine with the light sampler's density for this
		// direction via the power heuristic.
		if emitter, ok := si.Material.(core.Emitter); ok {
			weight := 1.0
			if !state.specularBounce {
				lightPDF := lights.LightPDF(sc.Lights(), sc.LightSampler(), state.prevPoint, state.ray.Direction.Normalize())
				weight = core.PowerHeuristic(1, state.prevBSDFPdf, 1, lightPDF)
			}
			emitted := emitter.Emit(state.ray, *si)
			radiance = radiance.Add(state.throughput.MultiplyVec(emitted).Multiply(weight))
		}

		if state.depth == pt.config.MaxDepth {
			break
		}

		wo := state.ray.Direction.Normalize().Negate()

		// Next-event estimation: direct light through the light sampler
		direct := pt.directLighting(sc, si, wo, sampler)
		radiance = radiance.Add(state.throughput.MultiplyVec(direct))

		// BSDF sampling decides the next path segment
		scatter, didScatter := si.Material.Scatter(state.ray, *si, sampler)
		if !didScatter {
			break // Absorbed
		}

		if scatter.IsSpecular() {
			state.throughput = state.throughput.MultiplyVec(scatter.Attenuation)
			state.specularBounce = true
		} else {
			wi := scatter.Scattered.Direction.Normalize()
			cosTheta := wi.Dot(si.Normal)
			if cosTheta <= 0 || scatter.PDF <= 0 {
				break // Degenerate sample, not an error
			}
			state.throughput = state.throughput.MultiplyVec(scatter.Attenuation).Multiply(cosTheta / scatter.PDF)
			state.specularBounce = false
			state.prevBSDFPdf = scatter.PDF
		}

		// Russian roulette: unbiased stochastic termination once the
		// path is deep enough to be cheap to kill
		if state.depth >= pt.config.RussianRouletteDepth {
			survival := state.throughput.MaxComponent()
			if survival > rrMaxSurvival {
				survival = rrMaxSurvival
			}
			if survival < rrMinSurvival {
				survival = rrMinSurvival
			}
			if sampler.Get1D() > survival {
				break
			}
			state.throughput = state.throughput.Multiply(1.0 / survival)
		}

		state.prevPoint = si.Point
		state.ray = scatter.Scattered
	}

	// A single corrupted sample must not poison an averaged pixel
	if !radiance.IsFinite() {
		pt.discarded.Add(1)
		return core.Vec3{}
	}
	return radiance
}

// directLighting estimates reflected radiance from one sampled light at
// the interaction, MIS-weighted against BSDF sampling for area lights
func (pt *PathTracer) directLighting(sc *scene.Scene, si *core.SurfaceInteraction, wo core.Vec3, sampler core.Sampler) core.Vec3 {
	sample, light, ok := lights.SampleOneLight(sc.LightSampler(), si.Point, sampler)
	if !ok || !sample.Valid() {
		return core.Vec3{}
	}

	cosTheta := sample.Direction.Dot(si.Normal)
	if cosTheta <= 0 {
		return core.Vec3{} // Light is behind the surface
	}

	brdf := si.Material.EvaluateBRDF(wo, sample.Direction, si)
	if brdf.IsBlack() {
		return core.Vec3{}
	}

	// Occlusion test: any hit blocks, details are irrelevant
	shadowRay := core.SpawnShadowRay(si.Point, sample.Direction, sample.Distance)
	if sc.BVH().IntersectAny(shadowRay) {
		return core.Vec3{}
	}

	// Delta lights have no competing BSDF strategy
	weight := 1.0
	if !light.IsDelta() {
		bsdfPDF := si.Material.PDF(wo, sample.Direction, si)
		weight = core.PowerHeuristic(1, sample.PDF, 1, bsdfPDF)
	}

	return brdf.MultiplyVec(sample.Emission).Multiply(cosTheta * weight / sample.PDF)
}
