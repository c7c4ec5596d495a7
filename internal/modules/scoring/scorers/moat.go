package scorers

import (
	"fmt"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/pkg/formulas"
)

// MoatScorer measures durable competitive advantage.
// Components:
// - ROE Level (30): sustained return on equity
// - ROE Consistency (20): consistently above 15%
// - Gross Margin Level (20): pricing power
// - Gross Margin Trend (15): moat strengthening or eroding
// - Operating Margin (15): operational efficiency
//
// ROE entries are nil for years with non-positive equity (aggressive
// buybacks). Those years are excluded, and when nothing valid remains the
// ROE components score neutral with an explanatory note instead of
// collapsing to zero.
type MoatScorer struct{}

// NewMoatScorer creates a new moat scorer
func NewMoatScorer() *MoatScorer {
	return &MoatScorer{}
}

// Calculate scores the moat from ROE and margin histories (percentages,
// oldest first, nil where unavailable).
func (s *MoatScorer) Calculate(roe, grossMargin, operatingMargin []*float64) domain.SubScore {
	var notes []string
	components := make(map[string]float64)

	// Extreme ROE readings come from near-zero equity and carry no signal
	validROE := filterROE(roe)
	hasInvalidROE := len(validROE) < len(formulas.Compact(roe)) || (len(roe) > 0 && len(validROE) == 0)

	// ROE level (30)
	var roeLevelScore float64
	if len(validROE) > 0 {
		roeAvg := formulas.Mean(validROE)
		switch {
		case roeAvg >= 20:
			roeLevelScore = 30
			notes = append(notes, fmt.Sprintf("Excellent ROE of %.1f%% indicates strong moat", roeAvg))
		case roeAvg >= 15:
			roeLevelScore = 24
			notes = append(notes, fmt.Sprintf("Good ROE of %.1f%% suggests competitive advantage", roeAvg))
		case roeAvg >= 10:
			roeLevelScore = 18
			notes = append(notes, fmt.Sprintf("Moderate ROE of %.1f%%", roeAvg))
		case roeAvg >= 5:
			roeLevelScore = 12
			notes = append(notes, fmt.Sprintf("Below-average ROE of %.1f%%", roeAvg))
		default:
			roeLevelScore = 6
			notes = append(notes, fmt.Sprintf("Weak ROE of %.1f%% - no evident moat", roeAvg))
		}
	} else {
		roeLevelScore = 15 // neutral, middle of the 0-30 range
		notes = append(notes, "ROE unavailable (negative equity from stock buybacks)")
	}
	components["roe_level"] = roeLevelScore

	// ROE consistency (20)
	var roeConsistencyScore float64
	if len(validROE) >= 2 {
		roePtrs := toPtrs(validROE)
		switch {
		case formulas.IsConsistent(roePtrs, 15):
			roeConsistencyScore = 20
			notes = append(notes, "Consistent ROE > 15% shows durable advantage")
		case formulas.IsConsistent(roePtrs, 10):
			roeConsistencyScore = 12
		default:
			roeConsistencyScore = 6
		}
	} else {
		roeConsistencyScore = 10 // neutral, middle of the 0-20 range
		if hasInvalidROE {
			notes = append(notes, "ROE consistency cannot be measured (negative equity)")
		}
	}
	components["roe_consistency"] = roeConsistencyScore

	// Gross margin level (20)
	gmAvg := formulas.MeanOfValid(grossMargin)
	var gmLevelScore float64
	switch {
	case gmAvg >= 40:
		gmLevelScore = 20
		notes = append(notes, "High gross margins indicate pricing power")
	case gmAvg >= 30:
		gmLevelScore = 15
	case gmAvg >= 20:
		gmLevelScore = 10
	case gmAvg >= 10:
		gmLevelScore = 6
	default:
		gmLevelScore = 3
	}
	components["gross_margin_level"] = gmLevelScore

	// Gross margin trend (15)
	trend := formulas.DetectTrend(grossMargin)
	var gmTrendScore float64
	switch trend {
	case formulas.TrendGrowing:
		gmTrendScore = 15
		notes = append(notes, "Expanding gross margins - strengthening moat")
	case formulas.TrendStable:
		gmTrendScore = 10
	default:
		gmTrendScore = 5
		notes = append(notes, "Declining gross margins - potential moat erosion")
	}
	components["gross_margin_trend"] = gmTrendScore

	// Operating margin (15)
	omAvg := formulas.MeanOfValid(operatingMargin)
	var omScore float64
	switch {
	case omAvg >= 25:
		omScore = 15
		notes = append(notes, "Excellent operating efficiency")
	case omAvg >= 15:
		omScore = 12
	case omAvg >= 10:
		omScore = 8
	case omAvg >= 5:
		omScore = 5
	default:
		omScore = 2
	}
	components["operating_margin"] = omScore

	total := roeLevelScore + roeConsistencyScore + gmLevelScore + gmTrendScore + omScore

	return domain.SubScore{
		Score:      round1(total),
		Grade:      scoreToGrade(total),
		Components: components,
		Notes:      notes,
	}
}

// filterROE drops nil entries and outliers beyond +/-100%, which in
// practice mean equity was near zero and the ratio is noise.
func filterROE(roe []*float64) []float64 {
	out := make([]float64, 0, len(roe))
	for _, v := range roe {
		if v != nil && *v >= -100 && *v <= 100 {
			out = append(out, *v)
		}
	}
	return out
}

func toPtrs(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
