package lights

import (
	"github.com/lumen-rt/lumen/pkg/core"
)

// UniformLightSampler selects among lights with equal probability
type UniformLightSampler struct {
	lights []Light
}

// NewUniformLightSampler creates a sampler with equal weights for all lights
func NewUniformLightSampler(lights []Light) *UniformLightSampler {
	return &UniformLightSampler{lights: lights}
}

// SampleLight implements the LightSampler interface
func (s *UniformLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	idx := int(u * float64(len(s.lights)))
	if idx >= len(s.lights) {
		idx = len(s.lights) - 1
	}
	return s.lights[idx], 1.0 / float64(len(s.lights)), idx
}

// Probability implements the LightSampler interface
func (s *UniformLightSampler) Probability(lightIndex int) float64 {
	if lightIndex < 0 || lightIndex >= len(s.lights) {
		return 0
	}
	return 1.0 / float64(len(s.lights))
}

// Count implements the LightSampler interface
func (s *UniformLightSampler) Count() int {
	return len(s.lights)
}

// PowerLightSampler selects lights proportionally to their estimated
// power, reducing variance in scenes where light brightness varies widely
type PowerLightSampler struct {
	lights       []Light
	distribution *core.Distribution1D
}

// NewPowerLightSampler creates a sampler weighting each light by the
// luminance of its power estimate
func NewPowerLightSampler(lights []Light) *PowerLightSampler {
	weights := make([]float64, len(lights))
	for i, light := range lights {
		weights[i] = light.Power().Luminance()
	}
	return &PowerLightSampler{
		lights:       lights,
		distribution: core.NewDistribution1D(weights),
	}
}

// SampleLight implements the LightSampler interface
func (s *PowerLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	idx, pdf := s.distribution.SampleDiscrete(u)
	return s.lights[idx], pdf, idx
}

// Probability implements the LightSampler interface
func (s *PowerLightSampler) Probability(lightIndex int) float64 {
	return s.distribution.DiscretePDF(lightIndex)
}

// Count implements the LightSampler interface
func (s *PowerLightSampler) Count() int {
	return len(s.lights)
}
