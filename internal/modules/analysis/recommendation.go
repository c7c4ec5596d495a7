package analysis

import "github.com/aristath/ruleone/internal/domain"

// SellPremium marks the sell zone: price more than 25% above sticker
const SellPremium = 1.25

// RecommendationInput feeds the final signal policy
type RecommendationInput struct {
	CurrentPrice   *float64
	StickerPrice   *float64
	MarginOfSafety *float64
	OverallScore   float64
	OverallGrade   string
	BigFiveWarning bool
}

// Recommend maps price vs intrinsic value to a discrete signal.
//
// A Big Five warning caps the outcome at HOLD: a cheap stock with failing
// fundamentals is not a buy in this methodology, and a stretched valuation
// on top of failing fundamentals reads as AVOID.
func Recommend(in RecommendationInput) domain.Recommendation {
	base := priceSignal(in)

	if !in.BigFiveWarning {
		return base
	}

	switch base {
	case domain.RecommendationSell, domain.RecommendationAvoid:
		return domain.RecommendationAvoid
	default:
		if in.OverallScore < 40 {
			return domain.RecommendationAvoid
		}
		return domain.RecommendationHold
	}
}

func priceSignal(in RecommendationInput) domain.Recommendation {
	if in.CurrentPrice == nil || in.StickerPrice == nil || in.MarginOfSafety == nil || *in.StickerPrice <= 0 {
		return gradeFallback(in.OverallGrade)
	}

	price := *in.CurrentPrice
	sticker := *in.StickerPrice
	mos := *in.MarginOfSafety

	switch {
	case price < mos:
		return domain.RecommendationStrongBuy
	case price < sticker:
		return domain.RecommendationBuy
	case price < sticker*SellPremium:
		return domain.RecommendationHold
	default:
		return domain.RecommendationSell
	}
}

// gradeFallback decides without a market price: quality alone never
// produces a buy signal, only hold-or-avoid.
func gradeFallback(grade string) domain.Recommendation {
	switch grade {
	case "A", "B", "C":
		return domain.RecommendationHold
	default:
		return domain.RecommendationAvoid
	}
}
