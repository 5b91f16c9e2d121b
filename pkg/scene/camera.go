package scene

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// PerspectiveCamera generates primary rays through a pinhole or thin-lens
// projection. It implements the Camera interface.
type PerspectiveCamera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64

	width, height int
}

// CameraConfig describes a perspective camera
type CameraConfig struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFov          float64 // Vertical field of view in degrees
	Aperture      float64 // Lens diameter, 0 for a pinhole camera
	FocusDistance float64 // Distance to the focal plane, 0 = distance to LookAt
}

// NewPerspectiveCamera creates a camera covering a width x height image
func NewPerspectiveCamera(config CameraConfig, width, height int) *PerspectiveCamera {
	aspectRatio := float64(width) / float64(height)

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := aspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.LookFrom).Length()
	}

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &PerspectiveCamera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		width:           width,
		height:          height,
	}
}

// GenerateRay implements the Camera interface. The pixel sample
// jitters within the pixel footprint; the lens sample positions the ray
// origin on the aperture for depth of field.
func (c *PerspectiveCamera) GenerateRay(i, j int, sample, lensSample core.Vec2) core.Ray {
	s := (float64(i) + sample.X) / float64(c.width)
	t := 1.0 - (float64(j)+sample.Y)/float64(c.height) // Image y grows downward

	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(lensSample)
		offset := c.u.Multiply(rd.X * c.lensRadius).Add(c.v.Multiply(rd.Y * c.lensRadius))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}
