package analysis

import (
	"math"

	"github.com/aristath/ruleone/internal/domain"
)

// Sticker price policy constants (Rule #1 methodology)
const (
	MaxGrowthRatePct = 15.0 // projection growth cap, conservative
	ProjectionYears  = 10
	RequiredReturn   = 0.15 // 15% annual return drives the discount factor
	MOSDiscount      = 0.5  // buy price is half the sticker price
	PEGrowthMultiple = 2.0  // growth-implied PE = growth pct x 2
)

// StickerPriceCalculator projects intrinsic value from current earnings,
// historical growth and a trailing PE multiple.
type StickerPriceCalculator struct {
	discountFactor float64
}

// NewStickerPriceCalculator creates a calculator with the fixed 15%/10y discount
func NewStickerPriceCalculator() *StickerPriceCalculator {
	return &StickerPriceCalculator{
		discountFactor: math.Pow(1+RequiredReturn, ProjectionYears),
	}
}

// StickerPriceInput holds the calculator inputs. Growth rate is the raw
// historical EPS CAGR as a percentage; HistoricalPE and CurrentPrice are
// optional.
type StickerPriceInput struct {
	CurrentEPS    float64
	EPSGrowthRate float64
	HistoricalPE  *float64
	CurrentPrice  *float64
}

// Calculate produces a StickerPriceResult. Non-positive EPS is a normal
// NOT_CALCULABLE outcome, not an error: the formula compounds earnings and
// has no meaning on a loss-making base.
func (c *StickerPriceCalculator) Calculate(in StickerPriceInput) domain.StickerPriceResult {
	if in.CurrentEPS <= 0 {
		return domain.StickerPriceResult{
			Status: domain.ValuationNotCalculable,
			Note:   "negative or zero EPS - formula requires positive earnings",
		}
	}

	// Cap at 15% and floor at 0: never project negative compounding, a
	// shrinking business should fail the Big Five gate instead.
	usedGrowth := math.Min(math.Max(in.EPSGrowthRate, 0), MaxGrowthRatePct)

	futureEPS := in.CurrentEPS * math.Pow(1+usedGrowth/100, ProjectionYears)

	// Lower of the growth-implied multiple and the stock's own history
	growthPE := usedGrowth * PEGrowthMultiple
	futurePE := growthPE
	if in.HistoricalPE != nil && *in.HistoricalPE > 0 {
		futurePE = math.Min(growthPE, *in.HistoricalPE)
	}

	futurePrice := futureEPS * futurePE
	stickerPrice := futurePrice / c.discountFactor
	marginOfSafety := stickerPrice * MOSDiscount

	result := domain.StickerPriceResult{
		Status:         domain.ValuationCalculable,
		CurrentEPS:     &in.CurrentEPS,
		EPSGrowthRate:  &in.EPSGrowthRate,
		UsedGrowthRate: &usedGrowth,
		HistoricalPE:   in.HistoricalPE,
		FutureEPS:      &futureEPS,
		FuturePE:       &futurePE,
		FuturePrice:    &futurePrice,
		StickerPrice:   &stickerPrice,
		MarginOfSafety: &marginOfSafety,
	}

	if in.CurrentPrice != nil && *in.CurrentPrice > 0 && stickerPrice > 0 {
		price := *in.CurrentPrice
		discountToSticker := (stickerPrice - price) / stickerPrice * 100
		discountToMOS := (marginOfSafety - price) / marginOfSafety * 100
		result.CurrentPrice = &price
		result.DiscountToSticker = &discountToSticker
		result.DiscountToMOS = &discountToMOS
	}

	return result
}
