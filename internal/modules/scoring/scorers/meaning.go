package scorers

import (
	"fmt"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/pkg/formulas"
)

// MeaningScorer measures business predictability: how confidently the
// historical record can be extrapolated.
// Components:
// - Revenue Stability (25): low volatility = predictable business
// - Earnings Consistency (25): fraction of profitable years
// - Net Income Stability (25): low volatility = predictable earnings
// - Data Quality (25): years of data available
type MeaningScorer struct{}

// NewMeaningScorer creates a new meaning scorer
func NewMeaningScorer() *MeaningScorer {
	return &MeaningScorer{}
}

// Calculate scores predictability from the revenue and net income series
// (oldest first, nil entries for unreported years).
func (s *MeaningScorer) Calculate(revenue, netIncome []*float64) domain.SubScore {
	var notes []string
	components := make(map[string]float64)

	// Revenue stability (25)
	revenueCV := formulas.CoefficientOfVariation(formulas.Compact(revenue))
	var stabilityScore float64
	switch {
	case revenueCV < 15:
		stabilityScore = 25
		notes = append(notes, "Highly stable revenue - predictable business")
	case revenueCV < 25:
		stabilityScore = 20
		notes = append(notes, "Stable revenue stream")
	case revenueCV < 40:
		stabilityScore = 15
		notes = append(notes, "Moderate revenue volatility")
	case revenueCV < 60:
		stabilityScore = 10
		notes = append(notes, "Revenue shows significant volatility")
	default:
		stabilityScore = 5
		notes = append(notes, "Highly volatile revenue - harder to predict")
	}
	components["revenue_stability"] = stabilityScore

	// Earnings consistency (25)
	profitablePct := formulas.PositiveFraction(netIncome)
	var earningsScore float64
	switch {
	case profitablePct >= 100:
		earningsScore = 25
		notes = append(notes, "Profitable every year - strong earnings quality")
	case profitablePct >= 80:
		earningsScore = 20
		notes = append(notes, "Profitable most years")
	case profitablePct >= 60:
		earningsScore = 15
	case profitablePct >= 40:
		earningsScore = 10
		notes = append(notes, "Inconsistent profitability")
	default:
		earningsScore = 5
		notes = append(notes, "Frequently unprofitable - high risk")
	}
	components["earnings_consistency"] = earningsScore

	// Net income stability (25), only positive years count toward the CV
	positiveNI := make([]float64, 0, len(netIncome))
	for _, v := range netIncome {
		if v != nil && *v > 0 {
			positiveNI = append(positiveNI, *v)
		}
	}
	niCV := formulas.CoefficientOfVariation(positiveNI)
	var niScore float64
	switch {
	case niCV < 20:
		niScore = 25
		notes = append(notes, "Highly predictable earnings")
	case niCV < 35:
		niScore = 20
		notes = append(notes, "Stable earnings pattern")
	case niCV < 50:
		niScore = 15
	case niCV < 70:
		niScore = 10
		notes = append(notes, "Volatile earnings - harder to predict")
	default:
		niScore = 5
		notes = append(notes, "Highly volatile earnings")
	}
	components["net_income_stability"] = niScore

	// Data quality (25)
	years := len(formulas.Compact(revenue))
	if ni := len(formulas.Compact(netIncome)); ni > years {
		years = ni
	}
	var dataScore float64
	switch {
	case years >= 10:
		dataScore = 25
	case years >= 7:
		dataScore = 20
	case years >= 5:
		dataScore = 15
		notes = append(notes, fmt.Sprintf("Limited history (%d years)", years))
	case years >= 3:
		dataScore = 10
		notes = append(notes, fmt.Sprintf("Short history (%d years) - less certainty", years))
	default:
		dataScore = 5
		notes = append(notes, "Insufficient data for confident analysis")
	}
	components["data_quality"] = dataScore

	total := stabilityScore + earningsScore + niScore + dataScore

	return domain.SubScore{
		Score:      round1(total),
		Grade:      scoreToGrade(total),
		Components: components,
		Notes:      notes,
	}
}
