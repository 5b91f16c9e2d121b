package material

import (
	"github.com/lumen-rt/lumen/pkg/core"
)

// Emissive represents a light-emitting material. Emission is one-sided:
// only the front face radiates.
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter implements the core.Material interface. Emissive materials
// absorb all incoming rays.
func (e *Emissive) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit implements the core.Emitter interface
func (e *Emissive) Emit(rayIn core.Ray, si core.SurfaceInteraction) core.Vec3 {
	if !si.FrontFace {
		return core.Vec3{}
	}
	return e.Emission
}

// EvaluateBRDF implements the core.Material interface: lights emit, they
// do not reflect
func (e *Emissive) EvaluateBRDF(wo, wi core.Vec3, si *core.SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// PDF implements the core.Material interface
func (e *Emissive) PDF(wo, wi core.Vec3, si *core.SurfaceInteraction) float64 {
	return 0
}
