package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/material"
)

func vec3Close(a, b core.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestPointLight_Sample_InverseSquareFalloff(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(100, 100, 100))

	near := light.Sample(core.NewVec3(0, 9, 0), core.NewVec2(0.5, 0.5))
	far := light.Sample(core.NewVec3(0, 0, 0), core.NewVec2(0.5, 0.5))

	if math.Abs(near.Emission.X-100.0) > 1e-9 {
		t.Errorf("at distance 1 expected emission 100, got %f", near.Emission.X)
	}
	if math.Abs(far.Emission.X-1.0) > 1e-9 {
		t.Errorf("at distance 10 expected emission 1, got %f", far.Emission.X)
	}

	if !vec3Close(far.Direction, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("expected direction toward light, got %v", far.Direction)
	}
	if math.Abs(far.Distance-10.0) > 1e-9 {
		t.Errorf("expected distance 10, got %f", far.Distance)
	}
}

func TestPointLight_PDF_AlwaysZero(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

	if pdf := light.PDF(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)); pdf != 0 {
		t.Errorf("delta light PDF must be zero, got %f", pdf)
	}
	if !light.IsDelta() {
		t.Error("point light must report IsDelta")
	}
}

func TestQuadLight_SamplePDFRoundTrip(t *testing.T) {
	// Quad at y=5 facing down toward the origin
	emissive := material.NewEmissive(core.NewVec3(10, 10, 10))
	light := NewQuadLight(
		core.NewVec3(-1, 5, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		emissive,
	)

	random := rand.New(rand.NewSource(13))
	point := core.NewVec3(0.3, 0, -0.2)

	for i := 0; i < 1000; i++ {
		sample := light.Sample(point, core.NewVec2(random.Float64(), random.Float64()))
		if !sample.Valid() {
			t.Fatalf("sample %d invalid: %+v", i, sample)
		}

		pdf := light.PDF(point, sample.Direction)
		if pdf <= 0 {
			t.Fatalf("PDF returned zero for a sampled direction")
		}
		relErr := math.Abs(pdf-sample.PDF) / sample.PDF
		if relErr > 1e-6 {
			t.Fatalf("sample pdf %f but PDF() %f", sample.PDF, pdf)
		}
	}
}

func TestQuadLight_PDF_MissingDirection(t *testing.T) {
	light := NewQuadLight(
		core.NewVec3(-1, 5, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		material.NewEmissive(core.NewVec3(5, 5, 5)),
	)

	// Pointing away from the quad
	if pdf := light.PDF(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)); pdf != 0 {
		t.Errorf("direction away from the light should have zero pdf, got %f", pdf)
	}
}

func TestQuadLight_BackFaceEmitsNothing(t *testing.T) {
	// Normal is u x v; this quad faces -y, so a point above sees the back
	light := NewQuadLight(
		core.NewVec3(-1, 0, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		material.NewEmissive(core.NewVec3(5, 5, 5)),
	)

	sample := light.Sample(core.NewVec3(0, 3, 0), core.NewVec2(0.5, 0.5))
	if !sample.Emission.IsBlack() {
		t.Errorf("back face should not emit, got %v", sample.Emission)
	}
}

func TestQuadLight_Power(t *testing.T) {
	emission := core.NewVec3(10, 10, 10)
	light := NewQuadLight(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 3),
		material.NewEmissive(emission),
	)

	// One-sided Lambertian emitter: power = L * area * pi
	expected := 10.0 * 6.0 * math.Pi
	if math.Abs(light.Power().X-expected) > 1e-9 {
		t.Errorf("expected power %f, got %f", expected, light.Power().X)
	}
}

func TestSphereLight_SamplePDFRoundTrip_Outside(t *testing.T) {
	light := NewSphereLight(core.NewVec3(0, 5, 0), 1.0, material.NewEmissive(core.NewVec3(8, 8, 8)))

	random := rand.New(rand.NewSource(19))
	point := core.NewVec3(0, 0, 0)

	for i := 0; i < 1000; i++ {
		sample := light.Sample(point, core.NewVec2(random.Float64(), random.Float64()))
		if sample.PDF <= 0 {
			t.Fatalf("sample %d has non-positive pdf", i)
		}

		pdf := light.PDF(point, sample.Direction)
		relErr := math.Abs(pdf-sample.PDF) / sample.PDF
		if relErr > 1e-6 {
			t.Fatalf("sample pdf %f but PDF() %f", sample.PDF, pdf)
		}
	}
}

func TestSphereLight_PDF_OutsideCone(t *testing.T) {
	light := NewSphereLight(core.NewVec3(0, 5, 0), 1.0, material.NewEmissive(core.NewVec3(1, 1, 1)))

	if pdf := light.PDF(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)); pdf != 0 {
		t.Errorf("direction outside the subtended cone should have zero pdf, got %f", pdf)
	}
}

func TestSphereLight_DarkFromInside(t *testing.T) {
	// Emission points outward, so a point inside the shell sees only
	// back faces. Light sampling and the density must agree with the
	// material: nothing is visible from inside.
	emissive := material.NewEmissive(core.NewVec3(4, 4, 4))
	light := NewSphereLight(core.NewVec3(0, 0, 0), 2.0, emissive)

	random := rand.New(rand.NewSource(23))
	point := core.NewVec3(0.5, 0, 0) // Inside the light

	for i := 0; i < 200; i++ {
		sample := light.Sample(point, core.NewVec2(random.Float64(), random.Float64()))
		if sample.Valid() {
			t.Fatalf("interior point produced a light sample: %+v", sample)
		}
	}
	if pdf := light.PDF(point, core.NewVec3(1, 0, 0)); pdf != 0 {
		t.Errorf("interior point should have zero light pdf, got %f", pdf)
	}

	// A ray from inside hitting the shell sees the back face
	ray := core.NewRay(point, core.NewVec3(1, 0, 0))
	si, hit := light.Intersect(ray, core.Epsilon, math.Inf(1))
	if !hit {
		t.Fatal("expected the interior ray to hit the shell")
	}
	if got := emissive.Emit(ray, *si); !got.IsBlack() {
		t.Errorf("back face of the shell should be dark, got %v", got)
	}
}

func TestDistantLight_Sample(t *testing.T) {
	light := NewDistantLight(core.NewVec3(0, -1, 0), core.NewVec3(3, 3, 3))
	light.SetWorldBounds(core.NewVec3(0, 0, 0), 50)

	sample := light.Sample(core.NewVec3(1, 0, 2), core.NewVec2(0.5, 0.5))
	if !vec3Close(sample.Direction, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("expected direction opposite the light travel, got %v", sample.Direction)
	}
	if sample.Distance < 50 {
		t.Errorf("shadow distance %f should exceed the world radius", sample.Distance)
	}
	if !vec3Close(sample.Emission, core.NewVec3(3, 3, 3), 1e-9) {
		t.Errorf("distant light emission should not attenuate, got %v", sample.Emission)
	}
	if light.PDF(core.Vec3{}, sample.Direction) != 0 {
		t.Error("delta light PDF must be zero")
	}
}

func TestPowerLightSampler_Proportional(t *testing.T) {
	dim := NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))
	bright := NewPointLight(core.NewVec3(5, 1, 0), core.NewVec3(9, 9, 9))

	sampler := NewPowerLightSampler([]Light{dim, bright})

	if math.Abs(sampler.Probability(0)-0.1) > 1e-9 {
		t.Errorf("dim light probability: expected 0.1, got %f", sampler.Probability(0))
	}
	if math.Abs(sampler.Probability(1)-0.9) > 1e-9 {
		t.Errorf("bright light probability: expected 0.9, got %f", sampler.Probability(1))
	}

	random := rand.New(rand.NewSource(29))
	brightCount := 0
	const n = 50000
	for i := 0; i < n; i++ {
		light, pdf, index := sampler.SampleLight(random.Float64())
		if light == nil || pdf <= 0 {
			t.Fatal("sampler returned no light")
		}
		if index == 1 {
			brightCount++
		}
	}
	observed := float64(brightCount) / n
	if math.Abs(observed-0.9) > 0.01 {
		t.Errorf("expected bright light frequency 0.9, observed %f", observed)
	}
}

func TestUniformLightSampler(t *testing.T) {
	ls := []Light{
		NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)),
		NewPointLight(core.NewVec3(1, 1, 0), core.NewVec3(50, 50, 50)),
		NewPointLight(core.NewVec3(2, 1, 0), core.NewVec3(2, 2, 2)),
	}
	sampler := NewUniformLightSampler(ls)

	for i := range ls {
		if math.Abs(sampler.Probability(i)-1.0/3.0) > 1e-12 {
			t.Errorf("uniform sampler probability for %d: got %f", i, sampler.Probability(i))
		}
	}
	if sampler.Count() != 3 {
		t.Errorf("expected 3 lights, got %d", sampler.Count())
	}
}

func TestSampleOneLight_FoldsSelectionProbability(t *testing.T) {
	// Two identical quad lights; the selection probability must appear in
	// the returned pdf so the estimator divides by it
	emissive := material.NewEmissive(core.NewVec3(10, 10, 10))
	a := NewQuadLight(core.NewVec3(-3, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), emissive)
	b := NewQuadLight(core.NewVec3(1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), emissive)

	sampler := NewPowerLightSampler([]Light{a, b})
	random := rand.New(rand.NewSource(31))
	rs := core.NewRandomSampler(random)

	point := core.NewVec3(0, 0, 0)
	for i := 0; i < 100; i++ {
		sample, light, ok := SampleOneLight(sampler, point, rs)
		if !ok {
			t.Fatal("expected a light sample")
		}

		// The light's own pdf for this direction, times selection 0.5,
		// must equal the folded pdf
		own := light.PDF(point, sample.Direction)
		relErr := math.Abs(own*0.5-sample.PDF) / sample.PDF
		if relErr > 1e-6 {
			t.Fatalf("expected folded pdf %f, got %f", own*0.5, sample.PDF)
		}
	}
}

func TestLightPDF_SkipsDeltaLights(t *testing.T) {
	emissive := material.NewEmissive(core.NewVec3(10, 10, 10))
	area := NewQuadLight(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), emissive)
	point := NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(100, 100, 100))

	ls := []Light{area, point}
	sampler := NewPowerLightSampler(ls)

	shading := core.NewVec3(0, 0, 0)
	direction := core.NewVec3(0, 1, 0)

	pdf := LightPDF(ls, sampler, shading, direction)
	expected := area.PDF(shading, direction) * sampler.Probability(0)
	if math.Abs(pdf-expected) > 1e-9 {
		t.Errorf("expected pdf %f, got %f", expected, pdf)
	}
}
