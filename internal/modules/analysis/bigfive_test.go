package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/ruleone/internal/domain"
)

// series builds a two-point 5-year series compounding at ratePct
func series(ratePct float64) []GrowthPoint {
	end := 100.0 * math.Pow(1+ratePct/100, 5)
	return []GrowthPoint{
		{Year: 2018, Value: domain.Float64Ptr(100)},
		{Year: 2023, Value: domain.Float64Ptr(end)},
	}
}

func TestBigFivePassBoundary(t *testing.T) {
	eval := NewBigFiveEvaluator()

	t.Run("3 of 5 passes with grade C", func(t *testing.T) {
		result := eval.Evaluate(BigFiveSeries{
			Revenue:     series(12),
			EPS:         series(14),
			Equity:      series(11),
			OperatingCF: series(4),
			FreeCF:      series(2),
		})

		assert.Equal(t, 3, result.Score)
		assert.Equal(t, 5, result.Total)
		assert.True(t, result.Passes)
		assert.Equal(t, "C", result.Grade)
	})

	t.Run("2 of 5 fails with grade D", func(t *testing.T) {
		result := eval.Evaluate(BigFiveSeries{
			Revenue:     series(12),
			EPS:         series(14),
			Equity:      series(4),
			OperatingCF: series(4),
			FreeCF:      series(2),
		})

		assert.Equal(t, 2, result.Score)
		assert.False(t, result.Passes)
		assert.Equal(t, "D", result.Grade)
	})

	t.Run("clean sweep is grade A", func(t *testing.T) {
		result := eval.Evaluate(BigFiveSeries{
			Revenue:     series(16),
			EPS:         series(18),
			Equity:      series(15),
			OperatingCF: series(20),
			FreeCF:      series(17),
		})

		assert.Equal(t, 5, result.Score)
		assert.True(t, result.Passes)
		assert.Equal(t, "A", result.Grade)
	})
}

func TestBigFiveNegativeEquityNote(t *testing.T) {
	eval := NewBigFiveEvaluator()

	result := eval.Evaluate(BigFiveSeries{
		Revenue:     series(12),
		EPS:         series(14),
		Equity:      pts(2014, -10.0, -12.0, -15.0, -18.0, -20.0),
		OperatingCF: series(12),
		FreeCF:      series(12),
	})

	assert.Equal(t, domain.GrowthNegative, result.Equity.Status)
	assert.False(t, result.Equity.Passes)
	assert.Equal(t, 4, result.Score)
	assert.True(t, result.Passes)

	found := false
	for _, n := range result.Notes {
		if strings.Contains(n, "buybacks") {
			found = true
		}
	}
	assert.True(t, found, "expected a buyback context note")
}

func TestBigFiveMetricsOrdering(t *testing.T) {
	eval := NewBigFiveEvaluator()
	result := eval.Evaluate(BigFiveSeries{})

	names := make([]string, 0, 5)
	for _, m := range result.Metrics() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Revenue", "EPS", "Book Value", "Operating Cash Flow", "Free Cash Flow"}, names)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "F", result.Grade)
	assert.False(t, result.Passes)
}
