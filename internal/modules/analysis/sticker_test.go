package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ruleone/internal/domain"
)

func TestStickerPriceDeterministicVector(t *testing.T) {
	calc := NewStickerPriceCalculator()

	// eps=10, raw growth 20% capped to 15%, PE history 25. The discount
	// factor cancels the growth compounding exactly, so sticker = 10*25.
	result := calc.Calculate(StickerPriceInput{
		CurrentEPS:    10,
		EPSGrowthRate: 20,
		HistoricalPE:  domain.Float64Ptr(25),
	})

	require.Equal(t, domain.ValuationCalculable, result.Status)
	require.NotNil(t, result.UsedGrowthRate)
	assert.Equal(t, 15.0, *result.UsedGrowthRate)

	factor := math.Pow(1.15, 10)
	assert.InDelta(t, 10*factor, *result.FutureEPS, 1e-9)
	assert.Equal(t, 25.0, *result.FuturePE)
	assert.InDelta(t, 250.0, *result.StickerPrice, 1e-9)
	assert.InDelta(t, 125.0, *result.MarginOfSafety, 1e-9)
	assert.Nil(t, result.CurrentPrice)
	assert.Nil(t, result.DiscountToSticker)
}

func TestStickerPriceGrowthImpliedPE(t *testing.T) {
	calc := NewStickerPriceCalculator()

	// Historical PE above growth x 2, the growth-implied multiple wins
	result := calc.Calculate(StickerPriceInput{
		CurrentEPS:    5,
		EPSGrowthRate: 10,
		HistoricalPE:  domain.Float64Ptr(40),
	})

	require.Equal(t, domain.ValuationCalculable, result.Status)
	assert.Equal(t, 20.0, *result.FuturePE)

	// No PE history at all: the implied multiple is the only one
	result = calc.Calculate(StickerPriceInput{CurrentEPS: 5, EPSGrowthRate: 10})
	assert.Equal(t, 20.0, *result.FuturePE)
}

func TestStickerPriceNotCalculable(t *testing.T) {
	calc := NewStickerPriceCalculator()

	for _, eps := range []float64{0, -3.2} {
		result := calc.Calculate(StickerPriceInput{
			CurrentEPS:    eps,
			EPSGrowthRate: 12,
			HistoricalPE:  domain.Float64Ptr(18),
			CurrentPrice:  domain.Float64Ptr(50),
		})

		assert.Equal(t, domain.ValuationNotCalculable, result.Status)
		assert.NotEmpty(t, result.Note)
		assert.Nil(t, result.StickerPrice)
		assert.Nil(t, result.MarginOfSafety)
		assert.Nil(t, result.FutureEPS)
		assert.Nil(t, result.DiscountToSticker)
	}
}

func TestStickerPriceDiscounts(t *testing.T) {
	calc := NewStickerPriceCalculator()

	result := calc.Calculate(StickerPriceInput{
		CurrentEPS:    10,
		EPSGrowthRate: 20,
		HistoricalPE:  domain.Float64Ptr(25),
		CurrentPrice:  domain.Float64Ptr(100),
	})

	require.NotNil(t, result.DiscountToSticker)
	require.NotNil(t, result.DiscountToMOS)
	// sticker 250, mos 125
	assert.InDelta(t, 60.0, *result.DiscountToSticker, 1e-9)
	assert.InDelta(t, 20.0, *result.DiscountToMOS, 1e-9)
}

func TestStickerPriceFloorsNegativeGrowth(t *testing.T) {
	calc := NewStickerPriceCalculator()

	result := calc.Calculate(StickerPriceInput{
		CurrentEPS:    10,
		EPSGrowthRate: -8,
		HistoricalPE:  domain.Float64Ptr(15),
	})

	require.Equal(t, domain.ValuationCalculable, result.Status)
	assert.Equal(t, 0.0, *result.UsedGrowthRate)
	// Zero growth implies a zero multiple, which collapses the projection
	assert.Equal(t, 0.0, *result.FuturePE)
	assert.Equal(t, 0.0, *result.StickerPrice)
}
