package scene

import (
	"fmt"
	"sort"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/geometry"
	"github.com/lumen-rt/lumen/pkg/lights"
	"github.com/lumen-rt/lumen/pkg/material"
)

// Builder constructs a built-in scene for a given image size
type Builder func(width, height int) *Scene

// builtins maps scene names to their builders. Scenes are registered
// here rather than discovered so the CLI can list them without building.
var builtins = map[string]Builder{
	"cornell": NewCornellScene,
	"default": NewDefaultScene,
	"spheres": NewSphereGridScene,
}

// ByName returns the builder for a built-in scene
func ByName(name string) (Builder, error) {
	builder, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q (available: %v)", name, Names())
	}
	return builder, nil
}

// Names returns the sorted list of built-in scene names
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewCornellScene creates the classic Cornell box: five diffuse walls, a
// ceiling quad light, and a metal and a glass sphere
func NewCornellScene(width, height int) *Scene {
	camera := NewPerspectiveCamera(CameraConfig{
		LookFrom: core.NewVec3(278, 278, -800),
		LookAt:   core.NewVec3(278, 278, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
	}, width, height)

	s := NewScene(camera)
	// Black background; the quad light is the only energy source

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	boxSize := 555.0

	// Floor, ceiling, back wall
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white))
	s.AddShape(geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white))
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white))

	// Red left wall, green right wall
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red))
	s.AddShape(geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green))

	// Ceiling light, slightly below the ceiling so it is not coplanar
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	emissive := material.NewEmissive(core.NewVec3(15, 15, 15))
	s.AddLight(lights.NewQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		emissive,
	))

	s.AddShape(geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0)))
	s.AddShape(geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewDielectric(1.5)))

	return s
}

// NewDefaultScene creates a small showcase scene: a ground plane, three
// spheres with different materials, a sphere light and the sky gradient
func NewDefaultScene(width, height int) *Scene {
	camera := NewPerspectiveCamera(CameraConfig{
		LookFrom: core.NewVec3(0, 1.2, 4),
		LookAt:   core.NewVec3(0, 0.6, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
	}, width, height)

	s := NewScene(camera)
	s.BackgroundTop = core.NewVec3(0.5, 0.7, 1.0)
	s.BackgroundBottom = core.NewVec3(1.0, 1.0, 1.0)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddShape(geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(100, 0, 0),
		core.NewVec3(0, 0, 100),
		ground,
	))

	s.AddShape(geometry.NewSphere(core.NewVec3(-1.3, 0.6, 0), 0.6, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0.6, 0), 0.6, material.NewDielectric(1.5)))
	s.AddShape(geometry.NewSphere(core.NewVec3(1.3, 0.6, 0), 0.6, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05)))

	s.AddLight(lights.NewSphereLight(
		core.NewVec3(0, 4, 2), 0.5,
		material.NewEmissive(core.NewVec3(20, 19, 17)),
	))

	return s
}

// NewSphereGridScene creates a grid of metal spheres under a distant
// light, mostly useful for exercising the BVH on many primitives
func NewSphereGridScene(width, height int) *Scene {
	camera := NewPerspectiveCamera(CameraConfig{
		LookFrom: core.NewVec3(8, 10, 18),
		LookAt:   core.NewVec3(4.5, 0, 4.5),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
	}, width, height)

	s := NewScene(camera)
	s.BackgroundTop = core.NewVec3(0.4, 0.6, 0.9)
	s.BackgroundBottom = core.NewVec3(0.9, 0.9, 0.9)

	s.AddShape(geometry.NewQuad(
		core.NewVec3(-50, -0.5, -50),
		core.NewVec3(100, 0, 0),
		core.NewVec3(0, 0, 100),
		material.NewLambertian(core.NewVec3(0.4, 0.4, 0.4)),
	))

	const gridSize = 10
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i*gridSize+j) / float64(gridSize*gridSize)
			albedo := core.NewVec3(0.4+0.5*hue, 0.5, 0.9-0.5*hue)
			s.AddShape(geometry.NewSphere(core.NewVec3(float64(i), 0, float64(j)), 0.35, material.NewMetal(albedo, 0.1)))
		}
	}

	s.AddLight(lights.NewDistantLight(core.NewVec3(-0.4, -1, -0.3), core.NewVec3(3, 3, 2.8)))

	return s
}
