// Package mathutil holds the small robust-statistics helpers shared by the
// contact pipeline layers. Heavy lifting is delegated to gonum/stat; the
// helpers here fix the conventions (sorted copies, empty-input behaviour,
// population vs. sample spread) so every layer computes them the same way.
package mathutil

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MADScale converts a median absolute deviation into a standard-deviation
// estimate for normally distributed data.
const MADScale = 1.48

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SortedCopy returns an ascending copy of x, leaving x untouched.
func SortedCopy(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	sort.Float64s(out)
	return out
}

// Median returns the midpoint median of x (mean of the two middle values for
// even lengths). Returns 0 for empty input.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	s := SortedCopy(x)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// MAD returns the median absolute deviation of x around its median, together
// with the median itself.
func MAD(x []float64) (median, mad float64) {
	if len(x) == 0 {
		return 0, 0
	}
	median = Median(x)
	dev := make([]float64, len(x))
	for i, v := range x {
		dev[i] = math.Abs(v - median)
	}
	return median, Median(dev)
}

// Percentile returns the p-th quantile (p in [0,1]) of x using linear
// interpolation of the empirical distribution. Returns 0 for empty input.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Quantile(Clamp01(p), stat.LinInterp, SortedCopy(x), nil)
}

// EmpiricalQuantile returns the smallest sample whose empirical CDF reaches p.
// Returns 0 for empty input.
func EmpiricalQuantile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Quantile(Clamp01(p), stat.Empirical, SortedCopy(x), nil)
}

// MeanStdDev returns the population mean and standard deviation of x.
func MeanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.PopMeanStdDev(x, nil)
}

// Mean returns the arithmetic mean of x, 0 for empty input.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Range returns max(x) - min(x), 0 for empty input.
func Range(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x) - floats.Min(x)
}

// Pearson returns the Pearson correlation of x and y. Series of different
// length, fewer than two samples, or zero variance yield 0.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	_, sx := MeanStdDev(x)
	_, sy := MeanStdDev(y)
	if sx == 0 || sy == 0 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return Clamp(r, -1, 1)
}

// CoefficientOfVariation returns std/mean of x, or +Inf when the mean is 0.
func CoefficientOfVariation(x []float64) float64 {
	mean, std := MeanStdDev(x)
	if mean == 0 {
		return math.Inf(1)
	}
	return std / math.Abs(mean)
}
