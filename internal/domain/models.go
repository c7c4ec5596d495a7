package domain

import "time"

// ValuationStatus indicates whether a sticker price could be computed
type ValuationStatus string

const (
	ValuationCalculable    ValuationStatus = "CALCULABLE"
	ValuationNotCalculable ValuationStatus = "NOT_CALCULABLE"
	ValuationUnknown       ValuationStatus = "UNKNOWN"
)

// Recommendation is the final buy/hold/sell signal
type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "STRONG_BUY"
	RecommendationBuy       Recommendation = "BUY"
	RecommendationHold      Recommendation = "HOLD"
	RecommendationSell      Recommendation = "SELL"
	RecommendationAvoid     Recommendation = "AVOID"
)

// Security represents one listed equity in the analysis universe
type Security struct {
	ID     int64  `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`

	// Latest market data
	CurrentPrice *float64 `json:"current_price,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
	HistoricalPE *float64 `json:"historical_pe,omitempty"`

	// Cached valuation snapshot (refreshed by the scheduler)
	StickerPrice      *float64        `json:"sticker_price,omitempty"`
	MarginOfSafety    *float64        `json:"margin_of_safety,omitempty"`
	DiscountToSticker *float64        `json:"discount_to_sticker,omitempty"`
	BigFiveScore      *int            `json:"big_five_score,omitempty"`
	FourMScore        *float64        `json:"four_m_score,omitempty"`
	FourMGrade        string          `json:"four_m_grade,omitempty"`
	Recommendation    Recommendation  `json:"recommendation,omitempty"`
	ValuationStatus   ValuationStatus `json:"valuation_status"`
	ValuationNote     string          `json:"valuation_note,omitempty"`

	Active              bool       `json:"active"`
	LastValuationUpdate *time.Time `json:"last_valuation_update,omitempty"`
	LastUpdated         time.Time  `json:"last_updated"`
}

// FinancialRecord holds one fiscal year of a security's fundamentals.
// Fields are pointers because upstream statements frequently omit line
// items; a missing value must never be conflated with zero.
type FinancialRecord struct {
	Symbol string `json:"symbol"`
	Year   int    `json:"year"`

	// Income statement
	Revenue         *float64 `json:"revenue,omitempty"`
	GrossProfit     *float64 `json:"gross_profit,omitempty"`
	OperatingIncome *float64 `json:"operating_income,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`
	EPS             *float64 `json:"eps,omitempty"`

	// Balance sheet
	TotalAssets *float64 `json:"total_assets,omitempty"`
	TotalEquity *float64 `json:"total_equity,omitempty"`
	TotalDebt   *float64 `json:"total_debt,omitempty"`

	// Cash flow statement
	OperatingCashFlow  *float64 `json:"operating_cash_flow,omitempty"`
	CapitalExpenditure *float64 `json:"capital_expenditure,omitempty"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`

	// Margins, as percentages
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
}

// DeriveFreeCashFlow fills FreeCashFlow from operating cash flow minus
// capital expenditure when both operands are present and FCF itself is not.
func (r *FinancialRecord) DeriveFreeCashFlow() {
	if r.FreeCashFlow != nil || r.OperatingCashFlow == nil || r.CapitalExpenditure == nil {
		return
	}
	fcf := *r.OperatingCashFlow - *r.CapitalExpenditure
	r.FreeCashFlow = &fcf
}

// Holding represents a portfolio position in one security
type Holding struct {
	ID        int64      `json:"id"`
	Symbol    string     `json:"symbol"`
	Shares    float64    `json:"shares"`
	AvgCost   float64    `json:"avg_cost"`
	Notes     string     `json:"notes,omitempty"`
	BuyDate   *time.Time `json:"buy_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Float64Ptr returns a pointer to v. Convenience for building records.
func Float64Ptr(v float64) *float64 {
	return &v
}
