package analysis

import (
	"math"

	"github.com/aristath/ruleone/internal/domain"
)

// Growth thresholds, as percentages
const (
	GrowthStrongThreshold = 15.0
	GrowthPassThreshold   = 10.0
)

// Negative-value ratio bands. A series where most values are negative has
// no meaningful compound growth rate; a series with a sizeable negative
// minority is too volatile to compound reliably.
const (
	negativeRatioNegative     = 0.70
	negativeRatioInconsistent = 0.30
)

// GrowthPoint is one (year, value) observation of a financial attribute
type GrowthPoint struct {
	Year  int
	Value *float64
}

// GrowthCalculator evaluates compound annual growth over a sparse,
// possibly gap-ridden yearly series.
type GrowthCalculator struct {
	passThreshold float64
}

// NewGrowthCalculator creates a calculator with the default 10% pass threshold
func NewGrowthCalculator() *GrowthCalculator {
	return &GrowthCalculator{passThreshold: GrowthPassThreshold}
}

// Evaluate produces a GrowthMetric for one named attribute. Points must be
// ordered oldest first; nil values are tolerated and filtered out.
func (c *GrowthCalculator) Evaluate(name string, points []GrowthPoint) domain.GrowthMetric {
	metric := domain.GrowthMetric{
		Name:   name,
		Values: make([]*float64, 0, len(points)),
	}

	usable := make([]GrowthPoint, 0, len(points))
	for _, p := range points {
		metric.Values = append(metric.Values, p.Value)
		if p.Value != nil {
			usable = append(usable, p)
		}
	}
	if len(points) > 0 {
		metric.DataCoverage = float64(len(usable)) / float64(len(points))
	}

	if len(usable) < 2 {
		metric.Status = domain.GrowthNoData
		metric.Note = "fewer than 2 usable data points"
		return metric
	}

	negatives := 0
	for _, p := range usable {
		if *p.Value < 0 {
			negatives++
		}
	}
	negativeRatio := float64(negatives) / float64(len(usable))

	switch {
	case negativeRatio >= negativeRatioNegative:
		metric.Status = domain.GrowthNegative
		metric.Note = "predominantly negative values, growth rate not meaningful"
		return metric
	case negativeRatio >= negativeRatioInconsistent:
		metric.Status = domain.GrowthInconsistent
		metric.Note = "values alternate sign too often to compound reliably"
		return metric
	}

	// CAGR over the earliest and latest usable non-negative values, using
	// the calendar span between them. The span matters: filtered-out years
	// must not inflate the growth rate.
	var first, last *GrowthPoint
	for i := range usable {
		if *usable[i].Value < 0 {
			continue
		}
		if first == nil {
			first = &usable[i]
		}
		last = &usable[i]
	}
	if first == nil || last == nil || first == last {
		metric.Status = domain.GrowthNoData
		metric.Note = "fewer than 2 usable data points"
		return metric
	}

	span := last.Year - first.Year
	start := *first.Value
	end := *last.Value
	if span <= 0 || start <= 0 {
		metric.Status = domain.GrowthNoData
		metric.Note = "no positive base value to compound from"
		return metric
	}

	cagrPct := (math.Pow(end/start, 1/float64(span)) - 1) * 100
	metric.Years = span
	metric.CAGRPct = &cagrPct
	metric.Passes = cagrPct >= c.passThreshold

	switch {
	case cagrPct >= GrowthStrongThreshold:
		metric.Status = domain.GrowthStrong
	case cagrPct >= c.passThreshold:
		metric.Status = domain.GrowthPass
	case cagrPct >= 0:
		metric.Status = domain.GrowthWeak
	default:
		metric.Status = domain.GrowthFail
	}

	return metric
}
