package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/ruleone/internal/domain"
)

func TestRecommendPriceZones(t *testing.T) {
	sticker := 200.0
	mos := 100.0

	tests := []struct {
		name  string
		price float64
		want  domain.Recommendation
	}{
		{name: "below margin of safety", price: 80, want: domain.RecommendationStrongBuy},
		{name: "between mos and sticker", price: 150, want: domain.RecommendationBuy},
		{name: "just under sticker", price: 199.99, want: domain.RecommendationBuy},
		{name: "above sticker within premium", price: 220, want: domain.RecommendationHold},
		{name: "past the sell premium", price: 260, want: domain.RecommendationSell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(RecommendationInput{
				CurrentPrice:   &tt.price,
				StickerPrice:   &sticker,
				MarginOfSafety: &mos,
				OverallScore:   75,
				OverallGrade:   "B",
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommendBigFiveWarningCapsAtHold(t *testing.T) {
	sticker := 200.0
	mos := 100.0

	t.Run("strong buy demoted to hold", func(t *testing.T) {
		price := 80.0
		got := Recommend(RecommendationInput{
			CurrentPrice:   &price,
			StickerPrice:   &sticker,
			MarginOfSafety: &mos,
			OverallScore:   75,
			OverallGrade:   "B",
			BigFiveWarning: true,
		})
		assert.Equal(t, domain.RecommendationHold, got)
	})

	t.Run("sell zone becomes avoid", func(t *testing.T) {
		price := 300.0
		got := Recommend(RecommendationInput{
			CurrentPrice:   &price,
			StickerPrice:   &sticker,
			MarginOfSafety: &mos,
			OverallScore:   75,
			OverallGrade:   "B",
			BigFiveWarning: true,
		})
		assert.Equal(t, domain.RecommendationAvoid, got)
	})

	t.Run("low composite score becomes avoid", func(t *testing.T) {
		price := 80.0
		got := Recommend(RecommendationInput{
			CurrentPrice:   &price,
			StickerPrice:   &sticker,
			MarginOfSafety: &mos,
			OverallScore:   35,
			OverallGrade:   "F",
			BigFiveWarning: true,
		})
		assert.Equal(t, domain.RecommendationAvoid, got)
	})
}

func TestRecommendGradeFallbackWithoutPrice(t *testing.T) {
	tests := []struct {
		grade string
		want  domain.Recommendation
	}{
		{grade: "A", want: domain.RecommendationHold},
		{grade: "B", want: domain.RecommendationHold},
		{grade: "C", want: domain.RecommendationHold},
		{grade: "D", want: domain.RecommendationAvoid},
		{grade: "F", want: domain.RecommendationAvoid},
	}

	for _, tt := range tests {
		got := Recommend(RecommendationInput{OverallGrade: tt.grade, OverallScore: 60})
		assert.Equal(t, tt.want, got, "grade %s", tt.grade)
	}
}

func TestRecommendZeroStickerFallsBackToGrade(t *testing.T) {
	price := 50.0
	sticker := 0.0
	mos := 0.0

	got := Recommend(RecommendationInput{
		CurrentPrice:   &price,
		StickerPrice:   &sticker,
		MarginOfSafety: &mos,
		OverallGrade:   "B",
		OverallScore:   70,
	})
	assert.Equal(t, domain.RecommendationHold, got)
}
