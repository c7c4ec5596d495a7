package universe

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/internal/events"
	"github.com/aristath/ruleone/internal/modules/sectors"
)

// Handler handles universe HTTP requests: securities and their yearly
// financial records.
type Handler struct {
	securities *SecurityRepository
	financials *FinancialsRepository
	events     *events.Manager
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(securities *SecurityRepository, financials *FinancialsRepository, eventManager *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		securities: securities,
		financials: financials,
		events:     eventManager,
		validate:   validator.New(),
		log:        log.With().Str("handler", "universe").Logger(),
	}
}

// RegisterRoutes mounts the universe endpoints
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleUpsert)
	r.Get("/{symbol}", h.HandleGet)
	r.Get("/{symbol}/sector", h.HandleSectorProfile)
	r.Get("/{symbol}/financials", h.HandleGetFinancials)
	r.Put("/{symbol}/financials", h.HandlePutFinancials)
}

// HandleList returns all active securities
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	securities, err := h.securities.ListActive()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, securities)
}

// SecurityRequest creates or updates a security
type SecurityRequest struct {
	Symbol       string   `json:"symbol" validate:"required,max=20"`
	Name         string   `json:"name"`
	Sector       string   `json:"sector"`
	CurrentPrice *float64 `json:"current_price,omitempty" validate:"omitempty,gt=0"`
	MarketCap    *float64 `json:"market_cap,omitempty" validate:"omitempty,gt=0"`
	HistoricalPE *float64 `json:"historical_pe,omitempty" validate:"omitempty,gt=0"`
	Active       *bool    `json:"active,omitempty"`
}

// HandleUpsert creates or updates a security
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req SecurityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sec := &domain.Security{
		Symbol:       req.Symbol,
		Name:         req.Name,
		Sector:       req.Sector,
		CurrentPrice: req.CurrentPrice,
		MarketCap:    req.MarketCap,
		HistoricalPE: req.HistoricalPE,
		Active:       active,
	}
	if err := h.securities.Upsert(sec); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stored, err := h.securities.GetBySymbol(req.Symbol)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.events.Emit(events.SecurityAdded, "universe", map[string]interface{}{
		"symbol": stored.Symbol,
		"sector": stored.Sector,
	})
	h.writeJSON(w, http.StatusOK, stored)
}

// HandleGet returns one security
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sec, err := h.securities.GetBySymbol(chi.URLParam(r, "symbol"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sec == nil {
		h.writeError(w, http.StatusNotFound, "security not found")
		return
	}
	h.writeJSON(w, http.StatusOK, sec)
}

// HandleSectorProfile returns the sector context for one security
func (h *Handler) HandleSectorProfile(w http.ResponseWriter, r *http.Request) {
	sec, err := h.securities.GetBySymbol(chi.URLParam(r, "symbol"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sec == nil {
		h.writeError(w, http.StatusNotFound, "security not found")
		return
	}
	h.writeJSON(w, http.StatusOK, sectors.GetProfile(sec.Sector))
}

// HandleGetFinancials returns all stored fiscal years for a symbol
func (h *Handler) HandleGetFinancials(w http.ResponseWriter, r *http.Request) {
	records, err := h.financials.GetBySymbol(chi.URLParam(r, "symbol"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

// FinancialYearRequest is one fiscal year of fundamentals. Absent fields
// stay absent; the engine treats missing and zero differently.
type FinancialYearRequest struct {
	Year               int      `json:"year" validate:"required,gt=1900"`
	Revenue            *float64 `json:"revenue,omitempty"`
	GrossProfit        *float64 `json:"gross_profit,omitempty"`
	OperatingIncome    *float64 `json:"operating_income,omitempty"`
	NetIncome          *float64 `json:"net_income,omitempty"`
	EPS                *float64 `json:"eps,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalEquity        *float64 `json:"total_equity,omitempty"`
	TotalDebt          *float64 `json:"total_debt,omitempty"`
	OperatingCashFlow  *float64 `json:"operating_cash_flow,omitempty"`
	CapitalExpenditure *float64 `json:"capital_expenditure,omitempty"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`
	GrossMargin        *float64 `json:"gross_margin,omitempty"`
	OperatingMargin    *float64 `json:"operating_margin,omitempty"`
}

// HandlePutFinancials replaces or adds fiscal years for a symbol
func (h *Handler) HandlePutFinancials(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	sec, err := h.securities.GetBySymbol(symbol)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sec == nil {
		h.writeError(w, http.StatusNotFound, "security not found")
		return
	}

	var reqs []FinancialYearRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	for _, req := range reqs {
		if err := h.validate.Struct(req); err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rec := domain.FinancialRecord{
			Symbol:             sec.Symbol,
			Year:               req.Year,
			Revenue:            req.Revenue,
			GrossProfit:        req.GrossProfit,
			OperatingIncome:    req.OperatingIncome,
			NetIncome:          req.NetIncome,
			EPS:                req.EPS,
			TotalAssets:        req.TotalAssets,
			TotalEquity:        req.TotalEquity,
			TotalDebt:          req.TotalDebt,
			OperatingCashFlow:  req.OperatingCashFlow,
			CapitalExpenditure: req.CapitalExpenditure,
			FreeCashFlow:       req.FreeCashFlow,
			GrossMargin:        req.GrossMargin,
			OperatingMargin:    req.OperatingMargin,
		}
		if err := h.financials.Upsert(&rec); err != nil {
			h.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	h.events.Emit(events.FinancialsIngested, "universe", map[string]interface{}{
		"symbol": sec.Symbol,
		"years":  len(reqs),
	})
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": sec.Symbol,
		"years":  len(reqs),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
