package analysis

import (
	"fmt"

	"github.com/aristath/ruleone/internal/domain"
)

// BigFiveEvaluator runs the five Rule #1 growth checks: Revenue, EPS,
// Book Value, Operating Cash Flow and Free Cash Flow.
type BigFiveEvaluator struct {
	growth *GrowthCalculator
}

// NewBigFiveEvaluator creates an evaluator with default growth thresholds
func NewBigFiveEvaluator() *BigFiveEvaluator {
	return &BigFiveEvaluator{growth: NewGrowthCalculator()}
}

// BigFiveSeries holds the five yearly series for one security, oldest first
type BigFiveSeries struct {
	Revenue     []GrowthPoint
	EPS         []GrowthPoint
	Equity      []GrowthPoint
	OperatingCF []GrowthPoint
	FreeCF      []GrowthPoint
}

// Evaluate scores the five metrics. A company should have at least 3 of 5
// growing at 10%+ to pass the gate.
func (e *BigFiveEvaluator) Evaluate(series BigFiveSeries) domain.BigFiveResult {
	result := domain.BigFiveResult{
		Revenue:     e.growth.Evaluate("Revenue", series.Revenue),
		EPS:         e.growth.Evaluate("EPS", series.EPS),
		Equity:      e.growth.Evaluate("Book Value", series.Equity),
		OperatingCF: e.growth.Evaluate("Operating Cash Flow", series.OperatingCF),
		FreeCF:      e.growth.Evaluate("Free Cash Flow", series.FreeCF),
		Total:       5,
	}

	for _, m := range result.Metrics() {
		if m.Passes {
			result.Score++
		}
	}
	result.Passes = result.Score >= 3
	result.Grade = bigFiveGrade(result.Score)

	// Negative equity is common for profitable companies running aggressive
	// buybacks; surface it as context rather than hiding it behind a FAIL.
	switch result.Equity.Status {
	case domain.GrowthNegative, domain.GrowthInconsistent:
		result.Notes = append(result.Notes,
			"book value growth unusable: equity is negative or erratic, often a side effect of share buybacks rather than distress")
	}

	for _, m := range result.Metrics() {
		if m.Status == domain.GrowthNoData {
			result.Notes = append(result.Notes, fmt.Sprintf("%s: insufficient data", m.Name))
		}
	}

	return result
}

func bigFiveGrade(score int) string {
	switch score {
	case 5:
		return "A"
	case 4:
		return "B"
	case 3:
		return "C"
	case 2:
		return "D"
	default:
		return "F"
	}
}
