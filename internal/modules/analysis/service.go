package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/internal/modules/scoring/scorers"
	"github.com/aristath/ruleone/internal/modules/sectors"
)

// Service is the valuation engine boundary: one synchronous, pure
// evaluation per security. It owns no state beyond its sub-calculators,
// so evaluations are trivially parallelizable across securities.
type Service struct {
	growth  *GrowthCalculator
	bigFive *BigFiveEvaluator
	sticker *StickerPriceCalculator
	fourMs  *scorers.FourMsScorer
	log     zerolog.Logger
}

// NewService creates a valuation service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		growth:  NewGrowthCalculator(),
		bigFive: NewBigFiveEvaluator(),
		sticker: NewStickerPriceCalculator(),
		fourMs:  scorers.NewFourMsScorer(),
		log:     log.With().Str("service", "analysis").Logger(),
	}
}

// Input is one security's evaluation request
type Input struct {
	Symbol       string
	Sector       string
	Records      []domain.FinancialRecord // any order; sorted by year internally
	CurrentPrice *float64
	HistoricalPE *float64
}

// Evaluate runs the full pipeline: Big Five and sticker price off the same
// series, Four Ms on top of both, recommendation last. Malformed input
// (duplicate years, non-finite values) is a contract violation and returns
// an error; business non-calculability never does.
func (s *Service) Evaluate(in Input) (*domain.AnalysisResult, error) {
	if in.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	records := make([]domain.FinancialRecord, len(in.Records))
	copy(records, in.Records)
	sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })

	if err := validateRecords(records); err != nil {
		return nil, fmt.Errorf("invalid records for %s: %w", in.Symbol, err)
	}
	if in.CurrentPrice != nil && (math.IsNaN(*in.CurrentPrice) || math.IsInf(*in.CurrentPrice, 0)) {
		return nil, fmt.Errorf("invalid records for %s: current price is not finite", in.Symbol)
	}

	for i := range records {
		records[i].DeriveFreeCashFlow()
	}

	bigFive := s.bigFive.Evaluate(BigFiveSeries{
		Revenue:     points(records, func(r domain.FinancialRecord) *float64 { return r.Revenue }),
		EPS:         points(records, func(r domain.FinancialRecord) *float64 { return r.EPS }),
		Equity:      points(records, func(r domain.FinancialRecord) *float64 { return r.TotalEquity }),
		OperatingCF: points(records, func(r domain.FinancialRecord) *float64 { return r.OperatingCashFlow }),
		FreeCF:      points(records, func(r domain.FinancialRecord) *float64 { return r.FreeCashFlow }),
	})

	sticker := s.evaluateSticker(records, bigFive, in.CurrentPrice, in.HistoricalPE)

	ratios := deriveRatios(records)
	fourMs := s.fourMs.Calculate(scorers.FourMsInput{
		Revenue:         ratios.Revenue,
		NetIncome:       ratios.NetIncome,
		ROE:             ratios.ROE,
		GrossMargin:     ratios.GrossMargin,
		OperatingMargin: ratios.OperatingMargin,
		DebtToEquity:    ratios.DebtToEquity,
		FreeCashFlow:    ratios.FreeCashFlow,
		DebtAllowance:   sectors.DebtAllowance(in.Sector),
		CurrentPrice:    in.CurrentPrice,
		StickerPrice:    sticker.StickerPrice,
		BigFiveScore:    bigFive.Score,
		BigFivePasses:   bigFive.Passes,
	})

	recommendation := Recommend(RecommendationInput{
		CurrentPrice:   in.CurrentPrice,
		StickerPrice:   sticker.StickerPrice,
		MarginOfSafety: sticker.MarginOfSafety,
		OverallScore:   fourMs.OverallScore,
		OverallGrade:   fourMs.OverallGrade,
		BigFiveWarning: fourMs.BigFiveWarning,
	})
	fourMs.Recommendation = recommendation

	s.log.Debug().
		Str("symbol", in.Symbol).
		Int("big_five_score", bigFive.Score).
		Float64("four_m_score", fourMs.OverallScore).
		Str("recommendation", string(recommendation)).
		Msg("Evaluation complete")

	return &domain.AnalysisResult{
		Symbol:         in.Symbol,
		StickerPrice:   sticker,
		BigFive:        bigFive,
		FourMs:         fourMs,
		Recommendation: recommendation,
	}, nil
}

// evaluateSticker derives the EPS growth input from the records and runs
// the sticker price projection.
func (s *Service) evaluateSticker(records []domain.FinancialRecord, bigFive domain.BigFiveResult, price, pe *float64) domain.StickerPriceResult {
	var currentEPS *float64
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].EPS != nil {
			currentEPS = records[i].EPS
			break
		}
	}
	if currentEPS == nil {
		return domain.StickerPriceResult{
			Status: domain.ValuationNotCalculable,
			Note:   "no EPS data available",
		}
	}

	growthRate := 0.0
	if bigFive.EPS.CAGRPct != nil {
		growthRate = *bigFive.EPS.CAGRPct
	}

	return s.sticker.Calculate(StickerPriceInput{
		CurrentEPS:    *currentEPS,
		EPSGrowthRate: growthRate,
		HistoricalPE:  pe,
		CurrentPrice:  price,
	})
}

func validateRecords(sorted []domain.FinancialRecord) error {
	for i, rec := range sorted {
		if rec.Year <= 0 {
			return fmt.Errorf("record %d has no year", i)
		}
		if i > 0 && rec.Year == sorted[i-1].Year {
			return fmt.Errorf("duplicate year %d", rec.Year)
		}
		for _, v := range []*float64{
			rec.Revenue, rec.GrossProfit, rec.OperatingIncome, rec.NetIncome, rec.EPS,
			rec.TotalAssets, rec.TotalEquity, rec.TotalDebt,
			rec.OperatingCashFlow, rec.CapitalExpenditure, rec.FreeCashFlow,
			rec.GrossMargin, rec.OperatingMargin,
		} {
			if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
				return fmt.Errorf("year %d contains a non-finite value", rec.Year)
			}
		}
	}
	return nil
}

func points(records []domain.FinancialRecord, pick func(domain.FinancialRecord) *float64) []GrowthPoint {
	out := make([]GrowthPoint, len(records))
	for i, rec := range records {
		out[i] = GrowthPoint{Year: rec.Year, Value: pick(rec)}
	}
	return out
}
