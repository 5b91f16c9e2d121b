package lights

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/geometry"
)

// SphereLight represents a spherical area light
type SphereLight struct {
	*geometry.Sphere // Embed sphere for hit testing
}

// NewSphereLight creates a new spherical light
func NewSphereLight(center core.Vec3, radius float64, material core.Material) *SphereLight {
	return &SphereLight{Sphere: geometry.NewSphere(center, radius, material)}
}

func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

func (sl *SphereLight) IsDelta() bool {
	return false
}

// Sample implements the Light interface by sampling the cone of
// directions the sphere subtends. Emission is one-sided, pointing
// outward: a point inside the shell sees only back faces, so no
// sample is produced there. BSDF rays hitting the interior agree,
// the emissive material is dark on its back face.
func (sl *SphereLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return LightSample{}
	}
	return sl.sampleCone(point, distanceToCenter, sample)
}

// sampleCone samples the cone of directions subtended by the sphere as
// seen from the shading point
func (sl *SphereLight) sampleCone(point core.Vec3, distanceToCenter float64, sample core.Vec2) LightSample {
	w := sl.Center.Subtract(point).Multiply(1.0 / distanceToCenter)

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))

	direction := core.SampleCone(w, cosThetaMax, sample)

	// Project the sampled direction onto the sphere
	ray := core.NewRay(point, direction)
	si, hit := sl.Sphere.Intersect(ray, core.Epsilon, math.Inf(1))
	if !hit {
		// Grazing numerical miss; treat as the silhouette point
		si = &core.SurfaceInteraction{
			T:     distanceToCenter,
			Point: point.Add(direction.Multiply(distanceToCenter)),
		}
		si.Normal = si.Point.Subtract(sl.Center).Normalize()
	}

	return LightSample{
		Point:     si.Point,
		Normal:    si.Normal,
		Direction: direction,
		Distance:  si.T,
		Emission:  sl.emission(),
		PDF:       core.UniformConePDF(cosThetaMax),
	}
}

// PDF implements the Light interface, mirroring the density used by Sample
func (sl *SphereLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return 0 // Interior points are never sampled
	}

	// Cone sampling: constant density inside the cone, zero outside
	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	cosTheta := direction.Dot(toCenter.Multiply(1.0 / distanceToCenter))
	if cosTheta < cosThetaMax {
		return 0
	}
	return core.UniformConePDF(cosThetaMax)
}

// Power implements the Light interface
func (sl *SphereLight) Power() core.Vec3 {
	return sl.emission().Multiply(sl.Area() * math.Pi)
}

func (sl *SphereLight) emission() core.Vec3 {
	if emitter, ok := sl.Material.(core.Emitter); ok {
		return emitter.Emit(core.Ray{}, core.SurfaceInteraction{FrontFace: true})
	}
	return core.Vec3{}
}
