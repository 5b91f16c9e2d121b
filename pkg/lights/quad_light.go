package lights

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/geometry"
)

// QuadLight represents a rectangular area light
type QuadLight struct {
	*geometry.Quad         // Embed quad for hit testing
	Area           float64 // Cached for PDF calculations
}

// NewQuadLight creates a new quad light. The material should implement
// core.Emitter for the light to contribute anything.
func NewQuadLight(corner, u, v core.Vec3, material core.Material) *QuadLight {
	quad := geometry.NewQuad(corner, u, v, material)
	return &QuadLight{
		Quad: quad,
		Area: quad.Area(),
	}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

func (ql *QuadLight) IsDelta() bool {
	return false
}

// Sample implements the Light interface, sampling uniformly over the quad
// surface and converting the area density to a solid-angle density using
// the geometric term.
func (ql *QuadLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	samplePoint := ql.Corner.Add(ql.U.Multiply(sample.X)).Add(ql.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	// PDF_solidAngle = PDF_area * distance² / |cos θ|, where θ is the
	// angle at the light sample
	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-8 {
		return LightSample{
			Point:     samplePoint,
			Normal:    ql.Normal,
			Direction: direction,
			Distance:  distance,
		}
	}
	solidAnglePDF := distance * distance / (cosTheta * ql.Area)

	// Only the front face emits
	var emission core.Vec3
	if direction.Dot(ql.Normal) < 0 {
		emission = ql.emission()
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       solidAnglePDF,
	}
}

// PDF implements the Light interface, returning the solid-angle density
// Sample would have assigned to this direction
func (ql *QuadLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	si, hit := ql.Quad.Intersect(ray, core.Epsilon, math.Inf(1))
	if !hit {
		return 0
	}

	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-8 {
		return 0
	}

	return si.T * si.T / (cosTheta * ql.Area)
}

// Power implements the Light interface: one-sided Lambertian emission
// integrated over area and hemisphere
func (ql *QuadLight) Power() core.Vec3 {
	return ql.emission().Multiply(ql.Area * math.Pi)
}

func (ql *QuadLight) emission() core.Vec3 {
	if emitter, ok := ql.Material.(core.Emitter); ok {
		return emitter.Emit(core.Ray{}, core.SurfaceInteraction{FrontFace: true})
	}
	return core.Vec3{}
}
