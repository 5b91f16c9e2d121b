package lights

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// PointLight is an isotropic point light emitting the same intensity in
// all directions
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // Radiant intensity (power per solid angle)
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

func (pl *PointLight) IsDelta() bool {
	return true
}

// Sample implements the Light interface. The pdf is 1 because a delta
// light admits exactly one direction from any shading point.
func (pl *PointLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	toLight := pl.Position.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return LightSample{}
	}
	distance := math.Sqrt(distanceSquared)
	direction := toLight.Multiply(1.0 / distance)

	return LightSample{
		Point:     pl.Position,
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  distance,
		Emission:  pl.Intensity.Multiply(1.0 / distanceSquared), // Inverse-square falloff
		PDF:       1.0,
	}
}

// PDF implements the Light interface. A delta light cannot be reached by
// sampling a direction, so the density is always zero.
func (pl *PointLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: intensity integrated over the
// full sphere of directions
func (pl *PointLight) Power() core.Vec3 {
	return pl.Intensity.Multiply(4.0 * math.Pi)
}
