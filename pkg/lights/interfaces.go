package lights

import "github.com/lumen-rt/lumen/pkg/core"

type LightType string

const (
	LightTypeArea    LightType = "area"
	LightTypePoint   LightType = "point"
	LightTypeDistant LightType = "distant"
)

// Light is the sampling capability surface for anything that can
// illuminate a scene point
type Light interface {
	Type() LightType

	// IsDelta reports whether the light occupies a zero-measure set
	// (point or pure direction) and therefore cannot be hit by BSDF
	// sampling
	IsDelta() bool

	// Sample picks an incident direction from point toward the light.
	// The returned direction points FROM the shading point TO the light,
	// and the PDF is expressed with respect to solid angle at point.
	Sample(point core.Vec3, sample core.Vec2) LightSample

	// PDF returns the solid-angle density that Sample would have used
	// to generate the given direction from point. Zero when the
	// direction misses the light. Must be consistent with Sample.
	PDF(point core.Vec3, direction core.Vec3) float64

	// Power estimates the total emitted power, used for power-weighted
	// light selection. Lights with zero power are excluded from scenes.
	Power() core.Vec3
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light source
	Normal    core.Vec3 // Normal at the light sample point
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to the light sample
	Emission  core.Vec3 // Radiance arriving from the sample
	PDF       float64   // Solid-angle density of this sample
}

// Valid reports whether the sample can contribute anything
func (ls LightSample) Valid() bool {
	return ls.PDF > 0 && !ls.Emission.IsBlack()
}

// LightSampler selects one light out of the scene's light list
type LightSampler interface {
	// SampleLight maps a uniform sample to a light, its selection
	// probability, and its index
	SampleLight(u float64) (Light, float64, int)

	// Probability returns the selection probability of the light at the
	// given index
	Probability(lightIndex int) float64

	// Count returns the number of lights in this sampler
	Count() int
}
