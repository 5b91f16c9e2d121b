package lights

import (
	"github.com/lumen-rt/lumen/pkg/core"
)

// SampleOneLight selects a light through the sampler and draws an
// incident sample from it. The returned sample's PDF already includes
// the light selection probability, so it can be used directly in the
// MIS estimator.
func SampleOneLight(lightSampler LightSampler, point core.Vec3, sampler core.Sampler) (LightSample, Light, bool) {
	if lightSampler.Count() == 0 {
		return LightSample{}, nil, false
	}

	light, selectionPDF, _ := lightSampler.SampleLight(sampler.Get1D())
	if light == nil || selectionPDF <= 0 {
		return LightSample{}, nil, false
	}

	sample := light.Sample(point, sampler.Get2D())
	sample.PDF *= selectionPDF

	return sample, light, true
}

// LightPDF returns the combined solid-angle density of sampling the given
// direction from point across all lights, weighted by each light's
// selection probability. Used for the MIS weight of BSDF-sampled paths.
func LightPDF(lights []Light, lightSampler LightSampler, point core.Vec3, direction core.Vec3) float64 {
	totalPDF := 0.0
	for i, light := range lights {
		if light.IsDelta() {
			continue // Delta lights cannot be hit by sampled directions
		}
		totalPDF += light.PDF(point, direction) * lightSampler.Probability(i)
	}
	return totalPDF
}
