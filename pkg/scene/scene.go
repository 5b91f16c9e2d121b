package scene

import (
	"fmt"

	"github.com/lumen-rt/lumen/pkg/accel"
	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/lights"
	"github.com/lumen-rt/lumen/pkg/log"
)

// Camera produces primary rays for pixel coordinates. Projection math is
// outside the engine; the integrator consumes this as a black box.
type Camera interface {
	// GenerateRay returns the ray through pixel (i, j), jittered within
	// the pixel by sample and through the lens by lensSample
	GenerateRay(i, j int, sample, lensSample core.Vec2) core.Ray
}

// Scene holds everything needed to trace rays: geometry indexed by a BVH,
// lights with their sampler, and a camera. Once built a scene is immutable
// and safe to share across render workers without locking.
type Scene struct {
	camera Camera

	shapes []core.Shape
	lights []lights.Light

	bvh          *accel.BVH
	lightSampler lights.LightSampler

	// Background gradient returned for rays that escape the scene
	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3

	built bool
}

// NewScene creates an empty scene with the given camera
func NewScene(camera Camera) *Scene {
	return &Scene{camera: camera}
}

// AddShape registers a geometric primitive. Must be called before Build.
func (s *Scene) AddShape(shape core.Shape) {
	if s.built {
		panic("scene: AddShape after Build")
	}
	s.shapes = append(s.shapes, shape)
}

// AddLight registers a light. Lights that are also geometry (area lights)
// are added to the shape list as well so BSDF-sampled paths can hit them.
func (s *Scene) AddLight(light lights.Light) {
	if s.built {
		panic("scene: AddLight after Build")
	}
	s.lights = append(s.lights, light)
	if shape, ok := light.(core.Shape); ok {
		s.shapes = append(s.shapes, shape)
	}
}

// Build finalizes the scene: zero-power lights are dropped, distant
// lights learn the world bounds, the BVH is constructed, and the
// power-weighted light sampler is set up. Build is called exactly once;
// no mutation is possible afterwards.
func (s *Scene) Build() error {
	if s.built {
		return fmt.Errorf("scene: already built")
	}
	logger := log.New("scene")

	s.bvh = accel.NewBVH(s.shapes)

	bounds := s.bvh.BoundingBox()
	center := bounds.Center()
	radius := bounds.Size().Length() * 0.5

	// Zero-power lights are excluded from enumeration rather than sampled
	kept := s.lights[:0]
	for _, light := range s.lights {
		if dl, ok := light.(*lights.DistantLight); ok {
			dl.SetWorldBounds(center, radius)
		}
		if light.Power().IsBlack() {
			logger.Warningf("excluding %s light with zero power", light.Type())
			continue
		}
		kept = append(kept, light)
	}
	s.lights = kept

	s.lightSampler = lights.NewPowerLightSampler(s.lights)
	s.built = true

	stats := s.bvh.Stats()
	logger.Infof("scene built: %d shapes, %d lights, %d bvh nodes (depth %d)",
		len(s.shapes), len(s.lights), stats.TotalNodes, stats.MaxDepth)

	return nil
}

// Camera returns the scene's camera
func (s *Scene) Camera() Camera {
	return s.camera
}

// BVH returns the acceleration structure. Panics if the scene has not
// been built, since tracing an unindexed scene is a programming error.
func (s *Scene) BVH() *accel.BVH {
	if !s.built {
		panic("scene: BVH requested before Build")
	}
	return s.bvh
}

// Lights returns the scene's light list
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// LightSampler returns the light selection strategy
func (s *Scene) LightSampler() lights.LightSampler {
	return s.lightSampler
}

// Background returns the radiance arriving from an escaped ray's
// direction: a vertical gradient between the configured colors
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BackgroundBottom.Multiply(1.0 - t).Add(s.BackgroundTop.Multiply(t))
}
