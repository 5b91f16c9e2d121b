package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestPowerHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		nf       int
		fPdf     float64
		ng       int
		gPdf     float64
		expected float64
	}{
		{"equal pdfs", 1, 1.0, 1, 1.0, 0.5},
		{"dominant f", 1, 10.0, 1, 1.0, 100.0 / 101.0},
		{"zero f", 1, 0.0, 1, 1.0, 0.0},
		{"zero both", 1, 0.0, 1, 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PowerHeuristic(tt.nf, tt.fPdf, tt.ng, tt.gPdf)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestPowerHeuristic_WeightsSumToOne(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		f := random.Float64() * 10
		g := random.Float64() * 10
		if f == 0 && g == 0 {
			continue
		}
		sum := PowerHeuristic(1, f, 1, g) + PowerHeuristic(1, g, 1, f)
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("weights for pdfs (%f, %f) sum to %f", f, g, sum)
		}
	}
}

func TestSampleCosineHemisphere(t *testing.T) {
	random := rand.New(rand.NewSource(23))
	normal := NewVec3(0, 0, 1)

	sumCos := 0.0
	const n = 50000
	for i := 0; i < n; i++ {
		sample := NewVec2(random.Float64(), random.Float64())
		dir := SampleCosineHemisphere(normal, sample)

		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("direction not unit length: %f", dir.Length())
		}
		cos := dir.Dot(normal)
		if cos < 0 {
			t.Fatalf("sampled direction below the hemisphere: cos=%f", cos)
		}
		sumCos += cos
	}

	// E[cos] = 2/3 for a cosine-weighted hemisphere
	mean := sumCos / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("expected mean cosine 2/3, got %f", mean)
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(29))
	var sum Vec3
	const n = 50000
	for i := 0; i < n; i++ {
		p := SampleOnUnitSphere(NewVec2(random.Float64(), random.Float64()))
		if math.Abs(p.Length()-1.0) > 1e-9 {
			t.Fatalf("point not on unit sphere: %f", p.Length())
		}
		sum = sum.Add(p)
	}
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("sphere samples are not centered, mean %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(31))
	for i := 0; i < 10000; i++ {
		p := SamplePointInUnitDisk(NewVec2(random.Float64(), random.Float64()))
		if p.X*p.X+p.Y*p.Y > 1.0+1e-9 {
			t.Fatalf("point outside unit disk: (%f, %f)", p.X, p.Y)
		}
	}
}

func TestSampleCone(t *testing.T) {
	random := rand.New(rand.NewSource(37))
	axis := NewVec3(0, 1, 0)
	cosWidth := math.Cos(math.Pi / 6)

	for i := 0; i < 10000; i++ {
		dir := SampleCone(axis, cosWidth, NewVec2(random.Float64(), random.Float64()))
		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("cone direction not unit length: %f", dir.Length())
		}
		if dir.Dot(axis) < cosWidth-1e-9 {
			t.Fatalf("direction outside cone: cos=%f < %f", dir.Dot(axis), cosWidth)
		}
	}
}

func TestOrthonormalBasis(t *testing.T) {
	random := rand.New(rand.NewSource(41))
	for i := 0; i < 1000; i++ {
		w := NewVec3(
			random.Float64()*2-1,
			random.Float64()*2-1,
			random.Float64()*2-1,
		)
		if w.Length() < 1e-6 {
			continue
		}
		w = w.Normalize()
		u, v := OrthonormalBasis(w)

		const tol = 1e-9
		if math.Abs(u.Length()-1) > tol || math.Abs(v.Length()-1) > tol {
			t.Fatalf("basis vectors not unit length: |u|=%f |v|=%f", u.Length(), v.Length())
		}
		if math.Abs(u.Dot(w)) > tol || math.Abs(v.Dot(w)) > tol || math.Abs(u.Dot(v)) > tol {
			t.Fatalf("basis not orthogonal for w=%v", w)
		}
	}
}
