package domain

// GrowthStatus classifies the outcome of a CAGR evaluation
type GrowthStatus string

const (
	GrowthStrong       GrowthStatus = "STRONG"       // CAGR >= 15%
	GrowthPass         GrowthStatus = "PASS"         // CAGR >= 10%
	GrowthWeak         GrowthStatus = "WEAK"         // CAGR >= 0%
	GrowthFail         GrowthStatus = "FAIL"         // CAGR < 0%
	GrowthNegative     GrowthStatus = "NEGATIVE"     // series predominantly negative
	GrowthInconsistent GrowthStatus = "INCONSISTENT" // too volatile to compound
	GrowthNoData       GrowthStatus = "NO_DATA"      // fewer than 2 usable points
)

// GrowthMetric is the result of evaluating compound annual growth over one
// financial attribute. CAGRPct is nil for the NEGATIVE, INCONSISTENT and
// NO_DATA statuses; numeric statuses always carry a value.
type GrowthMetric struct {
	Name         string       `json:"name"`
	Values       []*float64   `json:"values"` // oldest first, nil where unreported
	Years        int          `json:"years"`  // calendar span actually used
	CAGRPct      *float64     `json:"cagr_pct,omitempty"`
	Passes       bool         `json:"passes"`
	Status       GrowthStatus `json:"status"`
	DataCoverage float64      `json:"data_coverage"` // fraction of years with data
	Note         string       `json:"note,omitempty"`
}

// StickerPriceResult is the intrinsic-value projection for one security.
// All numeric fields are nil when Status is NOT_CALCULABLE.
type StickerPriceResult struct {
	Status ValuationStatus `json:"status"`
	Note   string          `json:"note,omitempty"`

	CurrentEPS     *float64 `json:"current_eps,omitempty"`
	EPSGrowthRate  *float64 `json:"eps_growth_rate,omitempty"`  // raw historical, pct
	UsedGrowthRate *float64 `json:"used_growth_rate,omitempty"` // after cap/floor, pct
	HistoricalPE   *float64 `json:"historical_pe,omitempty"`

	FutureEPS   *float64 `json:"future_eps,omitempty"`
	FuturePE    *float64 `json:"future_pe,omitempty"`
	FuturePrice *float64 `json:"future_price,omitempty"`

	StickerPrice   *float64 `json:"sticker_price,omitempty"`
	MarginOfSafety *float64 `json:"margin_of_safety,omitempty"`

	CurrentPrice      *float64 `json:"current_price,omitempty"`
	DiscountToSticker *float64 `json:"discount_to_sticker,omitempty"` // pct, positive = undervalued
	DiscountToMOS     *float64 `json:"discount_to_mos,omitempty"`
}

// BigFiveResult aggregates the five Rule #1 growth checks
type BigFiveResult struct {
	Revenue     GrowthMetric `json:"revenue"`
	EPS         GrowthMetric `json:"eps"`
	Equity      GrowthMetric `json:"equity"`
	OperatingCF GrowthMetric `json:"operating_cf"`
	FreeCF      GrowthMetric `json:"free_cf"`

	Score  int      `json:"score"` // 0-5
	Total  int      `json:"total"` // always 5
	Passes bool     `json:"passes"`
	Grade  string   `json:"grade"`
	Notes  []string `json:"notes,omitempty"`
}

// Metrics returns the five growth metrics in presentation order
func (r *BigFiveResult) Metrics() []GrowthMetric {
	return []GrowthMetric{r.Revenue, r.EPS, r.Equity, r.OperatingCF, r.FreeCF}
}

// SubScore is one of the Four Ms with its component breakdown
type SubScore struct {
	Score      float64            `json:"score"` // 0-100
	Grade      string             `json:"grade"`
	Components map[string]float64 `json:"components"`
	Notes      []string           `json:"notes,omitempty"`
}

// FourMsResult is the weighted composite quality score
type FourMsResult struct {
	Meaning        SubScore `json:"meaning"`
	Moat           SubScore `json:"moat"`
	Management     SubScore `json:"management"`
	MarginOfSafety SubScore `json:"margin_of_safety"`

	OverallScore   float64        `json:"overall_score"` // 0-100, after penalty
	OverallGrade   string         `json:"overall_grade"`
	Recommendation Recommendation `json:"recommendation"`
	Summary        []string       `json:"summary"`

	BigFiveScore   int  `json:"big_five_score"`
	BigFivePenalty int  `json:"big_five_penalty"`
	BigFiveWarning bool `json:"big_five_warning"`
}

// AnalysisResult is the full engine output for one security
type AnalysisResult struct {
	Symbol         string             `json:"symbol"`
	StickerPrice   StickerPriceResult `json:"sticker_price"`
	BigFive        BigFiveResult      `json:"big_five"`
	FourMs         FourMsResult       `json:"four_ms"`
	Recommendation Recommendation     `json:"recommendation"`
}
