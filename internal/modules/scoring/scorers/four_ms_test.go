package scorers

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ruleone/internal/domain"
)

func fptrs(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}

// growingSeries returns n values compounding from base at ratePct
func growingSeries(base, ratePct float64, n int) []*float64 {
	out := make([]*float64, n)
	for i := 0; i < n; i++ {
		v := base * math.Pow(1+ratePct/100, float64(i))
		out[i] = &v
	}
	return out
}

func healthyInput() FourMsInput {
	return FourMsInput{
		Revenue:         growingSeries(1000, 12, 10),
		NetIncome:       growingSeries(150, 12, 10),
		ROE:             fptrs(18, 19, 20, 21, 20, 22, 19, 20, 21, 22),
		GrossMargin:     fptrs(42, 43, 44, 43, 44, 45, 44, 45, 46, 45),
		OperatingMargin: fptrs(22, 23, 24, 23, 24, 25, 24, 25, 26, 25),
		DebtToEquity:    fptrs(0.4, 0.4, 0.35, 0.35, 0.3, 0.3, 0.3, 0.25, 0.25, 0.25),
		FreeCashFlow:    growingSeries(140, 12, 10),
		DebtAllowance:   1.0,
		CurrentPrice:    domain.Float64Ptr(100),
		StickerPrice:    domain.Float64Ptr(250),
		BigFiveScore:    4,
		BigFivePasses:   true,
	}
}

func TestFourMsHealthyComposite(t *testing.T) {
	scorer := NewFourMsScorer()
	result := scorer.Calculate(healthyInput())

	assert.GreaterOrEqual(t, result.OverallScore, 70.0)
	assert.Contains(t, []string{"A", "B"}, result.OverallGrade)
	assert.False(t, result.BigFiveWarning)
	assert.Equal(t, 0, result.BigFivePenalty)
	assert.NotEmpty(t, result.Summary)

	// Sub-scores all carry components and grades
	for _, sub := range []domain.SubScore{result.Meaning, result.Moat, result.Management, result.MarginOfSafety} {
		assert.NotEmpty(t, sub.Components)
		assert.NotEmpty(t, sub.Grade)
	}
}

func TestFourMsBigFivePenaltyIsExactlyFlat(t *testing.T) {
	scorer := NewFourMsScorer()

	passing := healthyInput()
	failing := healthyInput()
	failing.BigFiveScore = 2
	failing.BigFivePasses = false

	withGate := scorer.Calculate(passing)
	withoutGate := scorer.Calculate(failing)

	// Same fundamentals, only the gate differs: the delta is the flat penalty
	assert.InDelta(t, float64(BigFivePenalty), withGate.OverallScore-withoutGate.OverallScore, 1e-9)
	assert.True(t, withoutGate.BigFiveWarning)
	assert.Equal(t, BigFivePenalty, withoutGate.BigFivePenalty)

	found := false
	for _, line := range withoutGate.Summary {
		if strings.Contains(line, "Big Five failed") {
			found = true
		}
	}
	assert.True(t, found, "summary should mention the failed gate")
}

func TestFourMsPenaltyClampsAtZero(t *testing.T) {
	scorer := NewFourMsScorer()

	// Nearly empty input scores low; the penalty must not push it negative
	result := scorer.Calculate(FourMsInput{
		NetIncome:     fptrs(-10, -12, -8),
		BigFiveScore:  0,
		BigFivePasses: false,
	})

	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.Equal(t, "F", result.OverallGrade)
}

func TestFourMsWeights(t *testing.T) {
	// The policy weights must stay a proper convex combination
	assert.InDelta(t, 1.0, WeightMeaning+WeightMoat+WeightManagement+WeightMarginOfSafety, 1e-12)
}

func TestFourMsGradeCutoffs(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 92, want: "A"},
		{score: 85, want: "A"},
		{score: 84.9, want: "B"},
		{score: 70, want: "B"},
		{score: 69.9, want: "C"},
		{score: 55, want: "C"},
		{score: 54.9, want: "D"},
		{score: 40, want: "D"},
		{score: 39.9, want: "F"},
		{score: 0, want: "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scoreToGrade(tt.score), "score %.1f", tt.score)
	}
}

func TestRoundingHelpers(t *testing.T) {
	require.Equal(t, 12.3, round1(12.34))
	require.Equal(t, 12.35, round2(12.351))
	require.Equal(t, 0.0, round1(0.04))
}
