package core

import (
	"math/rand"
	"testing"
)

func TestStratifiedSampler_SampleCount(t *testing.T) {
	sampler := NewStratifiedSampler(4, 4, 2, rand.New(rand.NewSource(1)))

	if sampler.SamplesPerPixel() != 16 {
		t.Fatalf("expected 16 samples per pixel, got %d", sampler.SamplesPerPixel())
	}

	sampler.StartPixel()
	count := 0
	for sampler.StartSample() {
		count++
	}
	if count != 16 {
		t.Errorf("expected 16 samples, got %d", count)
	}
}

func TestStratifiedSampler_SamplesInUnitRange(t *testing.T) {
	sampler := NewStratifiedSampler(3, 3, 4, rand.New(rand.NewSource(2)))

	sampler.StartPixel()
	for sampler.StartSample() {
		for d := 0; d < 6; d++ { // past the precomputed dims to hit the fallback
			v := sampler.Get1D()
			if v < 0 || v >= 1 {
				t.Fatalf("1D sample out of range: %f", v)
			}
			p := sampler.Get2D()
			if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
				t.Fatalf("2D sample out of range: %v", p)
			}
		}
	}
}

func TestStratifiedSampler_CoversStrata(t *testing.T) {
	const strata = 4
	sampler := NewStratifiedSampler(strata, strata, 1, rand.New(rand.NewSource(3)))

	sampler.StartPixel()
	covered := make(map[int]bool)
	for sampler.StartSample() {
		p := sampler.Get2D()
		sx := int(p.X * strata)
		sy := int(p.Y * strata)
		covered[sy*strata+sx] = true
	}

	// One jittered sample per grid cell means every cell is covered
	if len(covered) != strata*strata {
		t.Errorf("expected %d covered strata, got %d", strata*strata, len(covered))
	}
}

func TestStratifiedSampler_DeterministicForSeed(t *testing.T) {
	collect := func(seed int64) []float64 {
		sampler := NewStratifiedSampler(2, 2, 2, rand.New(rand.NewSource(seed)))
		var out []float64
		sampler.StartPixel()
		for sampler.StartSample() {
			out = append(out, sampler.Get1D())
			p := sampler.Get2D()
			out = append(out, p.X, p.Y)
		}
		return out
	}

	a := collect(99)
	b := collect(99)
	if len(a) != len(b) {
		t.Fatalf("sample counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %f vs %f", i, a[i], b[i])
		}
	}
}
