package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ruleone/internal/domain"
)

func pts(start int, values ...interface{}) []GrowthPoint {
	points := make([]GrowthPoint, len(values))
	for i, v := range values {
		points[i] = GrowthPoint{Year: start + i}
		if f, ok := v.(float64); ok {
			points[i].Value = &f
		}
	}
	return points
}

func TestGrowthCAGRRoundTrip(t *testing.T) {
	calc := NewGrowthCalculator()

	// V0*(1+r)^N after N years must report back r
	rate := 0.12
	years := 5
	end := 100.0 * math.Pow(1+rate, float64(years))

	metric := calc.Evaluate("Revenue", []GrowthPoint{
		{Year: 2015, Value: domain.Float64Ptr(100)},
		{Year: 2015 + years, Value: domain.Float64Ptr(end)},
	})

	require.NotNil(t, metric.CAGRPct)
	assert.InDelta(t, rate*100, *metric.CAGRPct, 1e-9)
	assert.Equal(t, years, metric.Years)
	assert.True(t, metric.Passes)
	assert.Equal(t, domain.GrowthPass, metric.Status)
}

func TestGrowthStatusBands(t *testing.T) {
	calc := NewGrowthCalculator()

	tests := []struct {
		name       string
		rate       float64
		wantStatus domain.GrowthStatus
		wantPasses bool
	}{
		{name: "strong grower", rate: 0.16, wantStatus: domain.GrowthStrong, wantPasses: true},
		{name: "passing grower", rate: 0.12, wantStatus: domain.GrowthPass, wantPasses: true},
		{name: "weak grower", rate: 0.05, wantStatus: domain.GrowthWeak, wantPasses: false},
		{name: "shrinking", rate: -0.03, wantStatus: domain.GrowthFail, wantPasses: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := 100.0 * math.Pow(1+tt.rate, 5)
			metric := calc.Evaluate("EPS", []GrowthPoint{
				{Year: 2018, Value: domain.Float64Ptr(100)},
				{Year: 2023, Value: domain.Float64Ptr(end)},
			})

			require.NotNil(t, metric.CAGRPct)
			assert.Equal(t, tt.wantStatus, metric.Status)
			assert.Equal(t, tt.wantPasses, metric.Passes)
		})
	}
}

func TestGrowthNegativeRatioClassification(t *testing.T) {
	calc := NewGrowthCalculator()

	t.Run("7 of 10 negative is NEGATIVE", func(t *testing.T) {
		metric := calc.Evaluate("FCF", pts(2010,
			-5.0, -8.0, -3.0, -9.0, -2.0, -7.0, -4.0, 10.0, 12.0, 15.0))
		assert.Equal(t, domain.GrowthNegative, metric.Status)
		assert.Nil(t, metric.CAGRPct)
		assert.False(t, metric.Passes)
	})

	t.Run("3 of 10 negative is INCONSISTENT", func(t *testing.T) {
		metric := calc.Evaluate("FCF", pts(2010,
			-5.0, 10.0, -8.0, 12.0, -3.0, 14.0, 16.0, 18.0, 20.0, 22.0))
		assert.Equal(t, domain.GrowthInconsistent, metric.Status)
		assert.Nil(t, metric.CAGRPct)
	})

	t.Run("2 of 10 negative still computes", func(t *testing.T) {
		metric := calc.Evaluate("FCF", pts(2010,
			100.0, -5.0, -8.0, 120.0, 130.0, 140.0, 150.0, 160.0, 170.0, 180.0))
		assert.NotNil(t, metric.CAGRPct)
		// Endpoints are the earliest and latest non-negative values over
		// their calendar span: 100 -> 180 over 9 years
		want := (math.Pow(180.0/100.0, 1.0/9.0) - 1) * 100
		assert.InDelta(t, want, *metric.CAGRPct, 1e-9)
		assert.Equal(t, 9, metric.Years)
	})
}

func TestGrowthSparseSeriesUsesCalendarSpan(t *testing.T) {
	calc := NewGrowthCalculator()

	// Gaps in the middle must not shrink the compounding window
	metric := calc.Evaluate("Revenue", []GrowthPoint{
		{Year: 2014, Value: domain.Float64Ptr(100)},
		{Year: 2015, Value: nil},
		{Year: 2016, Value: nil},
		{Year: 2020, Value: domain.Float64Ptr(200)},
	})

	require.NotNil(t, metric.CAGRPct)
	assert.Equal(t, 6, metric.Years)
	want := (math.Pow(2, 1.0/6.0) - 1) * 100
	assert.InDelta(t, want, *metric.CAGRPct, 1e-9)
	assert.InDelta(t, 0.5, metric.DataCoverage, 1e-9)
}

func TestGrowthEdgeCases(t *testing.T) {
	calc := NewGrowthCalculator()

	t.Run("empty series", func(t *testing.T) {
		metric := calc.Evaluate("Revenue", nil)
		assert.Equal(t, domain.GrowthNoData, metric.Status)
		assert.Nil(t, metric.CAGRPct)
	})

	t.Run("single point", func(t *testing.T) {
		metric := calc.Evaluate("Revenue", pts(2020, 100.0))
		assert.Equal(t, domain.GrowthNoData, metric.Status)
	})

	t.Run("all nil values", func(t *testing.T) {
		metric := calc.Evaluate("Revenue", []GrowthPoint{
			{Year: 2019}, {Year: 2020}, {Year: 2021},
		})
		assert.Equal(t, domain.GrowthNoData, metric.Status)
		assert.Equal(t, 0.0, metric.DataCoverage)
	})

	t.Run("all zeros has no positive base", func(t *testing.T) {
		metric := calc.Evaluate("Revenue", pts(2018, 0.0, 0.0, 0.0))
		assert.Equal(t, domain.GrowthNoData, metric.Status)
	})

	t.Run("two points one year apart", func(t *testing.T) {
		metric := calc.Evaluate("EPS", pts(2022, 100.0, 120.0))
		require.NotNil(t, metric.CAGRPct)
		assert.InDelta(t, 20.0, *metric.CAGRPct, 1e-9)
		assert.Equal(t, 1, metric.Years)
		assert.Equal(t, domain.GrowthStrong, metric.Status)
	})
}
