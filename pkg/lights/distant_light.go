package lights

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// DistantLight models a light source so far away that all of its rays
// arrive parallel, like sunlight
type DistantLight struct {
	Direction core.Vec3 // Unit direction the light travels (away from the source)
	Radiance  core.Vec3

	worldCenter core.Vec3
	worldRadius float64
}

// NewDistantLight creates a directional light traveling along direction
func NewDistantLight(direction, radiance core.Vec3) *DistantLight {
	return &DistantLight{
		Direction:   direction.Normalize(),
		Radiance:    radiance,
		worldRadius: 1e6, // Overwritten once scene bounds are known
	}
}

// SetWorldBounds informs the light of the scene extent so shadow rays and
// power estimates can be bounded
func (dl *DistantLight) SetWorldBounds(center core.Vec3, radius float64) {
	dl.worldCenter = center
	if radius > 0 {
		dl.worldRadius = radius
	}
}

func (dl *DistantLight) Type() LightType {
	return LightTypeDistant
}

func (dl *DistantLight) IsDelta() bool {
	return true
}

// Sample implements the Light interface. The shadow ray is bounded by a
// point outside the scene rather than infinity.
func (dl *DistantLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	direction := dl.Direction.Negate()
	distance := 2.0 * dl.worldRadius

	return LightSample{
		Point:     point.Add(direction.Multiply(distance)),
		Normal:    dl.Direction,
		Direction: direction,
		Distance:  distance,
		Emission:  dl.Radiance,
		PDF:       1.0,
	}
}

// PDF implements the Light interface: zero, as for all delta lights
func (dl *DistantLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: radiance through a disk the size
// of the scene
func (dl *DistantLight) Power() core.Vec3 {
	return dl.Radiance.Multiply(math.Pi * dl.worldRadius * dl.worldRadius)
}
