// Package stats holds the single authoritative implementations of the
// descriptive statistics used across the analysis engine. Every Gini call in
// the repository goes through Gini here; keeping one formula in one place is
// what prevents the per-region and global paths from drifting apart.
package stats

import (
	"math"
	"sort"
)

// Gini returns the Gini coefficient of a value array: 0 for a perfectly even
// distribution, approaching 1 for a maximally uneven one. It uses the
// rank-weighted form over an ascending copy,
//
//	G = sum_i (2(i+1) - n - 1) * a[i] / (n * total)
//
// which is O(n log n) and equivalent to the pairwise mean-absolute-difference
// form for non-negative inputs. An empty array or a zero mean returns 0;
// neither is an error. The input is not modified. The result is clamped to
// [0, 1] to absorb floating-point drift.
func Gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	if total == 0 {
		return 0
	}

	var acc float64
	for i, v := range sorted {
		acc += (2*float64(i+1) - float64(n) - 1) * v
	}

	return clamp01(acc / (float64(n) * total))
}

// GiniCounts is Gini over integer counts.
func GiniCounts(counts []int) float64 {
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	return Gini(values)
}

// Mean returns the arithmetic mean, 0 for an empty array.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// VarianceAround returns the population variance of values around the given
// center. The coverage scorer measures spread around the ideal per-region
// share rather than around the sample mean, so the center is a parameter.
func VarianceAround(values []float64, center float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var acc float64
	for _, v := range values {
		d := v - center
		acc += d * d
	}
	return acc / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(VarianceAround(values, Mean(values)))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
