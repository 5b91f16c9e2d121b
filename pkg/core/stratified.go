package core

import (
	"math/rand"
)

// StratifiedSampler jitters samples within a grid of strata, reducing
// clumping compared to plain uniform sampling. Strata are generated per
// pixel for a fixed number of dimensions; once the precomputed dimensions
// are exhausted the sampler falls back to uniform randoms.
type StratifiedSampler struct {
	strataX, strataY int
	dims             int

	samples1D [][]float64 // [dim][sampleIndex]
	samples2D [][]Vec2

	sampleIndex int
	dim1D       int
	dim2D       int

	random *rand.Rand
}

// NewStratifiedSampler creates a sampler with strataX*strataY samples per
// pixel and dims precomputed stratified dimensions
func NewStratifiedSampler(strataX, strataY, dims int, random *rand.Rand) *StratifiedSampler {
	n := strataX * strataY
	s := &StratifiedSampler{
		strataX:   strataX,
		strataY:   strataY,
		dims:      dims,
		samples1D: make([][]float64, dims),
		samples2D: make([][]Vec2, dims),
		random:    random,
	}
	for d := 0; d < dims; d++ {
		s.samples1D[d] = make([]float64, n)
		s.samples2D[d] = make([]Vec2, n)
	}
	return s
}

// SamplesPerPixel returns the number of stratified samples per pixel
func (s *StratifiedSampler) SamplesPerPixel() int {
	return s.strataX * s.strataY
}

// StartPixel regenerates stratified samples for a new pixel
func (s *StratifiedSampler) StartPixel() {
	for d := 0; d < s.dims; d++ {
		s.generateStrata1D(s.samples1D[d])
		s.generateStrata2D(s.samples2D[d])
	}
	s.sampleIndex = 0
	s.dim1D = 0
	s.dim2D = 0
}

// StartSample advances to the next sample within the current pixel.
// Returns false when all samples for the pixel have been consumed.
func (s *StratifiedSampler) StartSample() bool {
	s.dim1D = 0
	s.dim2D = 0
	if s.sampleIndex >= s.SamplesPerPixel() {
		return false
	}
	s.sampleIndex++
	return true
}

// Get1D returns the next 1D sample for the current pixel sample
func (s *StratifiedSampler) Get1D() float64 {
	if s.dim1D < s.dims && s.sampleIndex > 0 {
		v := s.samples1D[s.dim1D][s.sampleIndex-1]
		s.dim1D++
		return v
	}
	return s.random.Float64()
}

// Get2D returns the next 2D sample for the current pixel sample
func (s *StratifiedSampler) Get2D() Vec2 {
	if s.dim2D < s.dims && s.sampleIndex > 0 {
		v := s.samples2D[s.dim2D][s.sampleIndex-1]
		s.dim2D++
		return v
	}
	return NewVec2(s.random.Float64(), s.random.Float64())
}

// generateStrata1D fills out with one jittered sample per stratum, shuffled
// so consecutive dimensions are decorrelated
func (s *StratifiedSampler) generateStrata1D(out []float64) {
	invN := 1.0 / float64(len(out))
	for i := range out {
		out[i] = (float64(i) + s.random.Float64()) * invN
	}
	s.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
}

// generateStrata2D fills out with one jittered sample per grid cell, shuffled
func (s *StratifiedSampler) generateStrata2D(out []Vec2) {
	invX := 1.0 / float64(s.strataX)
	invY := 1.0 / float64(s.strataY)
	i := 0
	for x := 0; x < s.strataX; x++ {
		for y := 0; y < s.strataY; y++ {
			sx := (float64(x) + s.random.Float64()) * invX
			sy := (float64(y) + s.random.Float64()) * invY
			out[i] = NewVec2(sx, sy)
			i++
		}
	}
	s.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
}
