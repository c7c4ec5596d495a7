package portfolio

import (
	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/internal/modules/universe"
)

// PositionView is a holding joined with the security's current market data
// and cached valuation fields.
type PositionView struct {
	domain.Holding
	StockName      string                `json:"stock_name,omitempty"`
	Sector         string                `json:"sector,omitempty"`
	CurrentPrice   *float64              `json:"current_price,omitempty"`
	CurrentValue   *float64              `json:"current_value,omitempty"`
	TotalCost      float64               `json:"total_cost"`
	ProfitLoss     *float64              `json:"profit_loss,omitempty"`
	ProfitLossPct  *float64              `json:"profit_loss_pct,omitempty"`
	StickerPrice   *float64              `json:"sticker_price,omitempty"`
	Recommendation domain.Recommendation `json:"recommendation,omitempty"`
}

// Service computes portfolio views over raw holdings
type Service struct {
	holdings   *HoldingRepository
	securities *universe.SecurityRepository
	log        zerolog.Logger
}

// NewService creates a portfolio service
func NewService(holdings *HoldingRepository, securities *universe.SecurityRepository, log zerolog.Logger) *Service {
	return &Service{
		holdings:   holdings,
		securities: securities,
		log:        log.With().Str("service", "portfolio").Logger(),
	}
}

// Positions returns all holdings enriched with prices and valuations.
// A holding whose security is missing from the universe still appears,
// with the market-dependent fields left unset.
func (s *Service) Positions() ([]PositionView, error) {
	holdings, err := s.holdings.List()
	if err != nil {
		return nil, err
	}

	views := make([]PositionView, 0, len(holdings))
	for _, h := range holdings {
		view := PositionView{
			Holding:   h,
			TotalCost: h.Shares * h.AvgCost,
		}

		sec, err := s.securities.GetBySymbol(h.Symbol)
		if err != nil {
			return nil, err
		}
		if sec != nil {
			view.StockName = sec.Name
			view.Sector = sec.Sector
			view.CurrentPrice = sec.CurrentPrice
			view.StickerPrice = sec.StickerPrice
			view.Recommendation = sec.Recommendation

			if sec.CurrentPrice != nil {
				value := h.Shares * *sec.CurrentPrice
				pl := value - view.TotalCost
				view.CurrentValue = &value
				view.ProfitLoss = &pl
				if view.TotalCost > 0 {
					plPct := pl / view.TotalCost * 100
					view.ProfitLossPct = &plPct
				}
			}
		}

		views = append(views, view)
	}

	return views, nil
}
