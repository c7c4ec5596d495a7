package scorers

import (
	"fmt"

	"github.com/aristath/ruleone/internal/domain"
)

// MOSScorer converts the sticker-price discount into a 0-100 score:
// 100 at or below the margin-of-safety buy price, scaling down between
// the buy price and the sticker price, near 0 once clearly overvalued.
type MOSScorer struct{}

// NewMOSScorer creates a new margin-of-safety scorer
func NewMOSScorer() *MOSScorer {
	return &MOSScorer{}
}

// Calculate scores the price against intrinsic value. Either input may be
// nil (no market price, or sticker not calculable); that scores neutral
// rather than punishing the stock for missing data.
func (s *MOSScorer) Calculate(currentPrice, stickerPrice *float64) domain.SubScore {
	var notes []string
	components := make(map[string]float64)

	if currentPrice == nil || stickerPrice == nil || *stickerPrice <= 0 {
		notes = append(notes, "No price comparison available - margin of safety unknown")
		components["price_discount"] = 50
		return domain.SubScore{
			Score:      50,
			Grade:      scoreToGrade(50),
			Components: components,
			Notes:      notes,
		}
	}

	price := *currentPrice
	sticker := *stickerPrice
	mos := sticker * 0.5
	discountPct := (sticker - price) / sticker * 100

	var score float64
	switch {
	case price < mos:
		score = 100
		notes = append(notes, fmt.Sprintf("Price is %.1f%% below sticker price - maximum safety", discountPct))
	case price < sticker:
		// Scale 50-90 with how deep into the discount zone the price sits
		ratio := (sticker - price) / (sticker - mos)
		score = 50 + ratio*40
		notes = append(notes, fmt.Sprintf("Price is %.1f%% below sticker price - good value", discountPct))
	case price < sticker*1.1:
		score = 40
		notes = append(notes, "Price is near fair value")
	case price < sticker*1.25:
		score = 25
		notes = append(notes, "Slightly overvalued")
	default:
		score = 10
		notes = append(notes, "Significantly overvalued")
	}
	components["price_discount"] = round1(score)

	return domain.SubScore{
		Score:      round1(score),
		Grade:      scoreToGrade(score),
		Components: components,
		Notes:      notes,
	}
}
