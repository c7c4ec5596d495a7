package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CoefficientOfVariation returns stddev/mean as a percentage, a unitless
// volatility measure for financial series. Only positive values are
// considered; returns 100 when fewer than 2 positive points exist, so
// sparse series read as maximally volatile rather than perfectly stable.
func CoefficientOfVariation(values []float64) float64 {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) < 2 {
		return 100
	}
	mean := stat.Mean(positive, nil)
	if mean == 0 {
		return 100
	}
	// Population stddev, matching the upstream methodology
	variance := 0.0
	for _, v := range positive {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(positive))
	return math.Sqrt(variance) / mean * 100
}

// MeanOfValid averages the non-nil, non-zero entries of a nullable series
func MeanOfValid(values []*float64) float64 {
	valid := Compact(values)
	nonZero := valid[:0]
	for _, v := range valid {
		if v != 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return 0
	}
	return stat.Mean(nonZero, nil)
}

// Compact drops nil entries from a nullable series
func Compact(values []*float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
