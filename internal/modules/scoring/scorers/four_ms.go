package scorers

import (
	"fmt"
	"math"

	"github.com/aristath/ruleone/internal/domain"
)

// Composite weights and the Big Five penalty, all policy constants
const (
	WeightMeaning        = 0.20
	WeightMoat           = 0.30
	WeightManagement     = 0.20
	WeightMarginOfSafety = 0.30

	// Applied once, as a flat deduction, when fewer than 3 of the Big
	// Five growth checks pass.
	BigFivePenalty = 15
)

// FourMsScorer combines the four quality dimensions into one weighted
// composite with a letter grade.
type FourMsScorer struct {
	meaning    *MeaningScorer
	moat       *MoatScorer
	management *ManagementScorer
	mos        *MOSScorer
}

// NewFourMsScorer creates a scorer with the default sub-scorers
func NewFourMsScorer() *FourMsScorer {
	return &FourMsScorer{
		meaning:    NewMeaningScorer(),
		moat:       NewMoatScorer(),
		management: NewManagementScorer(),
		mos:        NewMOSScorer(),
	}
}

// FourMsInput carries everything the composite needs. Ratio series are
// yearly, oldest first, nil where unavailable.
type FourMsInput struct {
	Revenue         []*float64
	NetIncome       []*float64
	ROE             []*float64
	GrossMargin     []*float64
	OperatingMargin []*float64
	DebtToEquity    []*float64
	FreeCashFlow    []*float64
	DebtAllowance   float64

	CurrentPrice *float64
	StickerPrice *float64

	BigFiveScore  int
	BigFivePasses bool
}

// Calculate runs the four sub-scorers and applies the composite policy:
// weights 20/30/20/30, a flat penalty when the Big Five gate fails, and
// grade cutoffs 85/70/55/40.
func (s *FourMsScorer) Calculate(in FourMsInput) domain.FourMsResult {
	meaning := s.meaning.Calculate(in.Revenue, in.NetIncome)
	moat := s.moat.Calculate(in.ROE, in.GrossMargin, in.OperatingMargin)
	management := s.management.Calculate(ManagementInput{
		ROE:           in.ROE,
		DebtToEquity:  in.DebtToEquity,
		FreeCashFlow:  in.FreeCashFlow,
		NetIncome:     in.NetIncome,
		DebtAllowance: in.DebtAllowance,
	})
	mos := s.mos.Calculate(in.CurrentPrice, in.StickerPrice)

	base := meaning.Score*WeightMeaning +
		moat.Score*WeightMoat +
		management.Score*WeightManagement +
		mos.Score*WeightMarginOfSafety

	warning := !in.BigFivePasses
	penalty := 0
	if warning {
		penalty = BigFivePenalty
	}
	overall := math.Max(0, base-float64(penalty))
	grade := scoreToGrade(overall)

	var summary []string
	switch {
	case overall >= 70:
		summary = append(summary, "This appears to be a Rule #1 company")
	case overall >= 50:
		summary = append(summary, "This company has some Rule #1 qualities but needs more analysis")
	default:
		summary = append(summary, "This company may not meet Rule #1 criteria")
	}
	if warning {
		summary = append(summary, fmt.Sprintf(
			"Big Five failed (%d/5) - score penalty -%d, recommendation capped at HOLD", in.BigFiveScore, penalty))
	}
	for _, sub := range []domain.SubScore{meaning, moat, management, mos} {
		if len(sub.Notes) > 0 {
			summary = append(summary, sub.Notes[0])
		}
	}

	return domain.FourMsResult{
		Meaning:        meaning,
		Moat:           moat,
		Management:     management,
		MarginOfSafety: mos,
		OverallScore:   round1(overall),
		OverallGrade:   grade,
		Summary:        summary,
		BigFiveScore:   in.BigFiveScore,
		BigFivePenalty: penalty,
		BigFiveWarning: warning,
	}
}
