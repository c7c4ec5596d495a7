package scorers

import (
	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/pkg/formulas"
)

// ManagementScorer measures capital allocation quality.
// Components:
// - ROE Consistency (34): returns compounded on retained earnings
// - Debt Management (33): leverage relative to what the business type carries
// - Cash Generation (33): free cash flow backing reported earnings
//
// Debt thresholds scale by DebtAllowance so that banks, NBFIs and REITs,
// which structurally run leveraged balance sheets, are not penalized on
// the same scale as industrials.
type ManagementScorer struct{}

// NewManagementScorer creates a new management scorer
func NewManagementScorer() *ManagementScorer {
	return &ManagementScorer{}
}

// ManagementInput holds the yearly series feeding the scorer. Series are
// oldest first with nil entries where the ratio could not be computed
// (ROE and D/E are nil on non-positive equity).
type ManagementInput struct {
	ROE           []*float64
	DebtToEquity  []*float64
	FreeCashFlow  []*float64
	NetIncome     []*float64
	DebtAllowance float64 // 1.0 for industrials, >1 for structurally leveraged sectors
}

// Calculate scores management quality
func (s *ManagementScorer) Calculate(in ManagementInput) domain.SubScore {
	var notes []string
	components := make(map[string]float64)

	allowance := in.DebtAllowance
	if allowance <= 0 {
		allowance = 1.0
	}

	// ROE consistency (34)
	validROE := filterROE(in.ROE)
	var roeScore float64
	if len(validROE) >= 2 {
		roePtrs := toPtrs(validROE)
		roeAvg := formulas.Mean(validROE)
		switch {
		case formulas.IsConsistent(roePtrs, 15):
			roeScore = 34
			notes = append(notes, "Consistent ROE > 15% shows good capital allocation")
		case formulas.IsConsistent(roePtrs, 10):
			roeScore = 24
		case roeAvg >= 10:
			roeScore = 16
		default:
			roeScore = 8
		}
	} else {
		roeScore = 17 // neutral, middle of the 0-34 range
		notes = append(notes, "Capital allocation hard to measure (negative equity from buybacks)")
	}
	components["roe_consistency"] = roeScore

	// Debt management (33)
	validDE := formulas.Compact(in.DebtToEquity)
	var debtScore float64
	if len(validDE) > 0 {
		deAvg := formulas.Mean(validDE) / allowance
		switch {
		case deAvg < 0.3:
			debtScore = 33
			notes = append(notes, "Very low debt provides financial flexibility")
		case deAvg < 0.5:
			debtScore = 26
			notes = append(notes, "Conservative debt levels")
		case deAvg < 1.0:
			debtScore = 18
			notes = append(notes, "Moderate debt - monitor carefully")
		case deAvg < 2.0:
			debtScore = 10
			notes = append(notes, "Elevated debt levels")
		default:
			debtScore = 5
			notes = append(notes, "High debt is a concern")
		}
	} else {
		// Negative equity hides the ratio; such companies often carry
		// modest actual debt, so score neutral-positive and say why.
		debtScore = 20
		notes = append(notes, "Debt/equity ratio unavailable (negative equity)")
	}
	components["debt_management"] = debtScore

	// Cash generation (33): FCF relative to net income
	fcfAvg := formulas.MeanOfValid(in.FreeCashFlow)
	niAvg := formulas.MeanOfValid(in.NetIncome)
	ratio := 0.0
	if niAvg > 0 {
		ratio = fcfAvg / niAvg
	}
	var fcfScore float64
	switch {
	case ratio >= 1.0:
		fcfScore = 33
		notes = append(notes, "FCF exceeds net income - high quality earnings")
	case ratio >= 0.8:
		fcfScore = 26
		notes = append(notes, "Strong free cash flow generation")
	case ratio >= 0.5:
		fcfScore = 18
	case ratio >= 0.2:
		fcfScore = 10
		notes = append(notes, "Weak cash conversion")
	default:
		fcfScore = 5
		notes = append(notes, "Poor cash generation vs earnings")
	}
	components["cash_generation"] = fcfScore

	total := roeScore + debtScore + fcfScore

	return domain.SubScore{
		Score:      round1(total),
		Grade:      scoreToGrade(total),
		Components: components,
		Notes:      notes,
	}
}
