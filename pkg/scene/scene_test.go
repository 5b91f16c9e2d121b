package scene

import (
	"math"
	"testing"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/geometry"
	"github.com/lumen-rt/lumen/pkg/lights"
	"github.com/lumen-rt/lumen/pkg/material"
)

func TestScene_Build_DropsZeroPowerLights(t *testing.T) {
	s := NewScene(nil)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(10, 10, 10)))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 5, 0), core.Vec3{})) // Dark light

	if err := s.Build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(s.Lights()) != 1 {
		t.Errorf("expected 1 light after build, got %d", len(s.Lights()))
	}
	if s.LightSampler().Count() != 1 {
		t.Errorf("light sampler should only see surviving lights, got %d", s.LightSampler().Count())
	}
}

func TestScene_Build_Twice(t *testing.T) {
	s := NewScene(nil)
	if err := s.Build(); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if err := s.Build(); err == nil {
		t.Error("second build should fail")
	}
}

func TestScene_MutationAfterBuildPanics(t *testing.T) {
	s := NewScene(nil)
	if err := s.Build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("AddShape after Build should panic")
		}
	}()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil))
}

func TestScene_BVHBeforeBuildPanics(t *testing.T) {
	s := NewScene(nil)

	defer func() {
		if recover() == nil {
			t.Error("BVH before Build should panic")
		}
	}()
	s.BVH()
}

func TestScene_AreaLightsAreShapes(t *testing.T) {
	s := NewScene(nil)
	s.AddLight(lights.NewQuadLight(
		core.NewVec3(-1, 5, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		material.NewEmissive(core.NewVec3(10, 10, 10)),
	))
	if err := s.Build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// The light's geometry must be intersectable through the BVH
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	si, ok := s.BVH().IntersectNearest(ray)
	if !ok {
		t.Fatal("area light geometry missing from the acceleration structure")
	}
	if math.Abs(si.T-5.0) > 1e-9 {
		t.Errorf("expected hit at t=5, got t=%f", si.T)
	}
}

func TestScene_Background(t *testing.T) {
	s := NewScene(nil)
	s.BackgroundTop = core.NewVec3(0, 0, 1)
	s.BackgroundBottom = core.NewVec3(1, 0, 0)

	up := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
	if math.Abs(up.Z-1.0) > 1e-9 || up.X != 0 {
		t.Errorf("upward ray should see the top color, got %v", up)
	}

	down := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	if math.Abs(down.X-1.0) > 1e-9 || down.Z != 0 {
		t.Errorf("downward ray should see the bottom color, got %v", down)
	}

	horizon := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)))
	if math.Abs(horizon.X-0.5) > 1e-9 || math.Abs(horizon.Z-0.5) > 1e-9 {
		t.Errorf("horizontal ray should see the blend, got %v", horizon)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		builder, err := ByName(name)
		if err != nil {
			t.Fatalf("registered scene %q not found: %v", name, err)
		}
		s := builder(32, 32)
		if err := s.Build(); err != nil {
			t.Fatalf("built-in scene %q failed to build: %v", name, err)
		}
		if len(s.Lights()) == 0 {
			t.Errorf("built-in scene %q has no lights", name)
		}
		if s.Camera() == nil {
			t.Errorf("built-in scene %q has no camera", name)
		}
	}

	if _, err := ByName("no-such-scene"); err == nil {
		t.Error("unknown scene name should return an error")
	}
}

func TestPerspectiveCamera_GenerateRay(t *testing.T) {
	camera := NewPerspectiveCamera(CameraConfig{
		LookFrom: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
	}, 100, 100)

	// For an even-sized image the optical axis passes between pixels 49
	// and 50; the zero-offset corner of pixel (50, 50) lies exactly on it
	ray := camera.GenerateRay(50, 50, core.Vec2{}, core.Vec2{})
	dir := ray.Direction.Normalize()
	if math.Abs(dir.X) > 1e-9 || math.Abs(dir.Y) > 1e-9 || math.Abs(dir.Z+1) > 1e-9 {
		t.Errorf("center ray should point down -z, got %v", dir)
	}
	if ray.Origin != camera.origin {
		t.Errorf("pinhole ray should start at the camera origin")
	}

	// Image y grows downward: a pixel above the center looks up
	upper := camera.GenerateRay(50, 10, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))
	if upper.Direction.Y <= 0 {
		t.Errorf("pixel above the center should generate an upward ray, got %v", upper.Direction)
	}
}

func TestPerspectiveCamera_DepthOfField(t *testing.T) {
	camera := NewPerspectiveCamera(CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 5),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          60,
		Aperture:      0.5,
		FocusDistance: 5,
	}, 100, 100)

	a := camera.GenerateRay(50, 50, core.NewVec2(0.5, 0.5), core.NewVec2(0.1, 0.9))
	b := camera.GenerateRay(50, 50, core.NewVec2(0.5, 0.5), core.NewVec2(0.9, 0.1))
	if a.Origin == b.Origin {
		t.Error("different lens samples should offset the ray origin")
	}

	// Both rays converge on the focal plane at z=0
	pa := a.At((0.0 - a.Origin.Z) / a.Direction.Z)
	pb := b.At((0.0 - b.Origin.Z) / b.Direction.Z)
	if math.Abs(pa.X-pb.X) > 1e-9 || math.Abs(pa.Y-pb.Y) > 1e-9 {
		t.Errorf("rays should converge at the focal plane: %v vs %v", pa, pb)
	}
}
