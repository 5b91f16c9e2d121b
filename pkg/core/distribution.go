package core

import "sort"

// Distribution1D represents a piecewise-constant 1D distribution built
// from a non-negative weight function, supporting discrete sampling with
// the inverse CDF method. Used for power-weighted light selection.
type Distribution1D struct {
	weights      []float64
	cdf          []float64
	funcIntegral float64
}

// NewDistribution1D builds a distribution from the given weights.
// Negative weights are treated as zero. If all weights are zero the
// distribution degenerates to uniform.
func NewDistribution1D(weights []float64) *Distribution1D {
	w := make([]float64, len(weights))
	cdf := make([]float64, len(weights)+1)
	for i, f := range weights {
		if f < 0 {
			f = 0
		}
		w[i] = f
		cdf[i+1] = cdf[i] + f
	}

	integral := cdf[len(weights)]
	if integral == 0 {
		for i := 1; i < len(cdf); i++ {
			cdf[i] = float64(i) / float64(len(weights))
		}
	} else {
		for i := 1; i < len(cdf); i++ {
			cdf[i] /= integral
		}
	}

	return &Distribution1D{weights: w, cdf: cdf, funcIntegral: integral}
}

// Len returns the number of entries in the distribution
func (d *Distribution1D) Len() int {
	return len(d.weights)
}

// Integral returns the unnormalized sum of the weights
func (d *Distribution1D) Integral() float64 {
	return d.funcIntegral
}

// SampleDiscrete maps a uniform sample u in [0,1) to an index and the
// probability of selecting that index
func (d *Distribution1D) SampleDiscrete(u float64) (index int, pdf float64) {
	if len(d.weights) == 0 {
		return -1, 0
	}
	index = d.searchOffset(u)
	return index, d.DiscretePDF(index)
}

// DiscretePDF returns the probability of selecting the given index
func (d *Distribution1D) DiscretePDF(index int) float64 {
	if index < 0 || index >= len(d.weights) {
		return 0
	}
	return d.cdf[index+1] - d.cdf[index]
}

// searchOffset finds the largest index whose CDF value is <= u. Skipping
// past runs of equal CDF values keeps zero-weight entries unselectable.
func (d *Distribution1D) searchOffset(u float64) int {
	idx := sort.SearchFloat64s(d.cdf, u)
	if idx == len(d.cdf) || d.cdf[idx] > u {
		idx--
	} else {
		for idx+1 < len(d.cdf) && d.cdf[idx+1] == u {
			idx++
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(d.weights) {
		idx = len(d.weights) - 1
	}
	return idx
}
