package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeaningPredictableBusiness(t *testing.T) {
	scorer := NewMeaningScorer()

	// A decade of flat revenue and steady profits is maximally predictable
	result := scorer.Calculate(
		fptrs(1000, 1010, 1020, 1015, 1025, 1030, 1040, 1035, 1045, 1050),
		fptrs(100, 101, 102, 101, 103, 104, 105, 104, 106, 107),
	)

	assert.Equal(t, 25.0, result.Components["revenue_stability"])
	assert.Equal(t, 25.0, result.Components["earnings_consistency"])
	assert.Equal(t, 25.0, result.Components["net_income_stability"])
	assert.Equal(t, 25.0, result.Components["data_quality"])
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, "A", result.Grade)
}

func TestMeaningErraticEarnings(t *testing.T) {
	scorer := NewMeaningScorer()

	// Half the years are losses
	result := scorer.Calculate(
		fptrs(500, 800, 300, 900, 200, 1000, 250, 850, 400, 950),
		fptrs(50, -20, 12, -35, 90, -10, 8, -50, 140, -5),
	)

	assert.Equal(t, 10.0, result.Components["earnings_consistency"])
	assert.Less(t, result.Score, 70.0)
}

func TestMeaningShortHistory(t *testing.T) {
	scorer := NewMeaningScorer()

	result := scorer.Calculate(
		fptrs(100, 105, 110),
		fptrs(10, 11, 12),
	)

	assert.Equal(t, 10.0, result.Components["data_quality"])
}

func TestMeaningHandlesEmptyInput(t *testing.T) {
	scorer := NewMeaningScorer()

	result := scorer.Calculate(nil, nil)

	assert.Equal(t, "F", result.Grade)
	assert.Greater(t, result.Score, 0.0)
	assert.NotEmpty(t, result.Notes)
}
