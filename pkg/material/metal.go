package material

import (
	"github.com/lumen-rt/lumen/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3
	Fuzzness float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the core.Material interface for specular reflection
func (m *Metal) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), si.Normal)

	if m.Fuzzness > 0 {
		perturbation := core.SampleOnUnitSphere(sampler.Get2D()).Multiply(m.Fuzzness * sampler.Get1D())
		reflected = reflected.Add(perturbation)
	}

	// Absorbed if the perturbed direction dips below the surface
	if reflected.Dot(si.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	scattered := core.SpawnRay(si.Point, si.GeoNormal, reflected)

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: m.Albedo, // No π factor for specular
		PDF:         0,        // Delta distribution
	}, true
}

// EvaluateBRDF implements the core.Material interface. A delta
// distribution evaluates to zero for any sampled direction pair.
func (m *Metal) EvaluateBRDF(wo, wi core.Vec3, si *core.SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// PDF implements the core.Material interface: zero for delta distributions
func (m *Metal) PDF(wo, wi core.Vec3, si *core.SurfaceInteraction) float64 {
	return 0
}

// reflect calculates the reflection of v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
