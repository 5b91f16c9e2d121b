package material

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the core.Material interface with cosine-weighted
// hemisphere sampling
func (l *Lambertian) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	scatterDirection := core.SampleCosineHemisphere(si.Normal, sampler.Get2D())
	scattered := core.SpawnRay(si.Point, si.GeoNormal, scatterDirection)

	cosTheta := scatterDirection.Dot(si.Normal)
	if cosTheta < 0 {
		cosTheta = 0
	}
	pdf := cosTheta / math.Pi

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: l.Albedo.Multiply(1.0 / math.Pi), // BRDF: albedo/π
		PDF:         pdf,
	}, true
}

// EvaluateBRDF implements the core.Material interface: albedo/π for any
// direction pair above the surface
func (l *Lambertian) EvaluateBRDF(wo, wi core.Vec3, si *core.SurfaceInteraction) core.Vec3 {
	if wi.Dot(si.Normal) <= 0 || wo.Dot(si.Normal) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// PDF implements the core.Material interface: cos(θ)/π
func (l *Lambertian) PDF(wo, wi core.Vec3, si *core.SurfaceInteraction) float64 {
	cosTheta := wi.Dot(si.Normal)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}
