package analysis

import "github.com/aristath/ruleone/internal/domain"

// RatioSeries holds the per-year ratio histories derived from financial
// records, oldest first. Entries are nil for years where the ratio cannot
// be computed; ROE and D/E in particular are nil, never zero, when equity
// is non-positive.
type RatioSeries struct {
	Revenue         []*float64
	NetIncome       []*float64
	ROE             []*float64
	DebtToEquity    []*float64
	GrossMargin     []*float64
	OperatingMargin []*float64
	FreeCashFlow    []*float64
}

// deriveRatios computes the ratio series from sorted records
func deriveRatios(records []domain.FinancialRecord) RatioSeries {
	n := len(records)
	series := RatioSeries{
		Revenue:         make([]*float64, n),
		NetIncome:       make([]*float64, n),
		ROE:             make([]*float64, n),
		DebtToEquity:    make([]*float64, n),
		GrossMargin:     make([]*float64, n),
		OperatingMargin: make([]*float64, n),
		FreeCashFlow:    make([]*float64, n),
	}

	for i, rec := range records {
		series.Revenue[i] = rec.Revenue
		series.NetIncome[i] = rec.NetIncome
		series.FreeCashFlow[i] = rec.FreeCashFlow

		if rec.TotalEquity != nil && *rec.TotalEquity > 0 {
			if rec.NetIncome != nil {
				roe := *rec.NetIncome / *rec.TotalEquity * 100
				series.ROE[i] = &roe
			}
			if rec.TotalDebt != nil {
				de := *rec.TotalDebt / *rec.TotalEquity
				series.DebtToEquity[i] = &de
			}
		}

		series.GrossMargin[i] = marginOf(rec.GrossMargin, rec.GrossProfit, rec.Revenue)
		series.OperatingMargin[i] = marginOf(rec.OperatingMargin, rec.OperatingIncome, rec.Revenue)
	}

	return series
}

// marginOf prefers a reported margin and otherwise derives one from the
// line item over revenue, as a percentage.
func marginOf(reported, numerator, revenue *float64) *float64 {
	if reported != nil {
		return reported
	}
	if numerator == nil || revenue == nil || *revenue == 0 {
		return nil
	}
	m := *numerator / *revenue * 100
	return &m
}
