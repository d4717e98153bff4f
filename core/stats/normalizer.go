// Package stats maps raw feature values to percentiles of a fitted normal
// distribution so heterogeneous features can be blended.
package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normalizer holds the population mean and standard deviation of one
// feature. It is immutable after construction.
type Normalizer struct {
	mean float64
	std  float64
	dist distuv.Normal
}

// NewNormalizer fits mean and population standard deviation to samples.
// An empty population is treated as degenerate.
func NewNormalizer(samples []float64) Normalizer {
	if len(samples) == 0 {
		return Normalizer{}
	}
	mean, std := stat.PopMeanStdDev(samples, nil)
	n := Normalizer{mean: mean, std: std}
	if std > 0 {
		n.dist = distuv.Normal{Mu: mean, Sigma: std}
	}
	return n
}

// NewIntNormalizer is NewNormalizer for integer features.
func NewIntNormalizer(samples []int) Normalizer {
	f := make([]float64, len(samples))
	for i, v := range samples {
		f[i] = float64(v)
	}
	return NewNormalizer(f)
}

// Mean returns the fitted mean.
func (n Normalizer) Mean() float64 { return n.mean }

// StdDev returns the fitted population standard deviation.
func (n Normalizer) StdDev() float64 { return n.std }

// Degenerate reports whether the population has no spread.
func (n Normalizer) Degenerate() bool { return !(n.std > 0) }

// Percentile returns P(X <= v) for X ~ N(mean, std). A degenerate
// population yields 0.5 for every v.
func (n Normalizer) Percentile(v float64) float64 {
	if n.Degenerate() {
		return 0.5
	}
	return n.dist.CDF(v)
}
