package analysis

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/internal/events"
	"github.com/aristath/ruleone/internal/modules/universe"
)

// Handler exposes the valuation engine over HTTP
type Handler struct {
	service    *Service
	securities *universe.SecurityRepository
	financials *universe.FinancialsRepository
	snapshots  *SnapshotRepository
	events     *events.Manager
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(
	service *Service,
	securities *universe.SecurityRepository,
	financials *universe.FinancialsRepository,
	snapshots *SnapshotRepository,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:    service,
		securities: securities,
		financials: financials,
		snapshots:  snapshots,
		events:     eventManager,
		validate:   validator.New(),
		log:        log.With().Str("handler", "analysis").Logger(),
	}
}

// RegisterRoutes mounts the calculator endpoints
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sticker-price", h.HandleStickerPrice)
	r.Get("/big-five/{symbol}", h.HandleBigFive)
	r.Post("/four-ms", h.HandleFourMs)
	r.Get("/analysis/{symbol}", h.HandleFullAnalysis)
}

// StickerPriceRequest is a direct sticker-price calculation with
// caller-supplied inputs, no stored data involved.
type StickerPriceRequest struct {
	CurrentEPS    float64  `json:"current_eps" validate:"required"`
	EPSGrowthRate float64  `json:"eps_growth_rate"`
	HistoricalPE  *float64 `json:"historical_pe,omitempty"`
	CurrentPrice  *float64 `json:"current_price,omitempty" validate:"omitempty,gt=0"`
}

// HandleStickerPrice computes a sticker price from raw inputs
func (h *Handler) HandleStickerPrice(w http.ResponseWriter, r *http.Request) {
	var req StickerPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	calc := NewStickerPriceCalculator()
	result := calc.Calculate(StickerPriceInput{
		CurrentEPS:    req.CurrentEPS,
		EPSGrowthRate: req.EPSGrowthRate,
		HistoricalPE:  req.HistoricalPE,
		CurrentPrice:  req.CurrentPrice,
	})

	h.writeJSON(w, http.StatusOK, result)
}

// HandleBigFive evaluates the Big Five for a stored security
func (h *Handler) HandleBigFive(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	records, err := h.financials.GetBySymbol(symbol)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(records) == 0 {
		h.writeError(w, http.StatusNotFound, "no financial data for symbol")
		return
	}

	for i := range records {
		records[i].DeriveFreeCashFlow()
	}
	evaluator := NewBigFiveEvaluator()
	result := evaluator.Evaluate(BigFiveSeries{
		Revenue:     points(records, func(rec domain.FinancialRecord) *float64 { return rec.Revenue }),
		EPS:         points(records, func(rec domain.FinancialRecord) *float64 { return rec.EPS }),
		Equity:      points(records, func(rec domain.FinancialRecord) *float64 { return rec.TotalEquity }),
		OperatingCF: points(records, func(rec domain.FinancialRecord) *float64 { return rec.OperatingCashFlow }),
		FreeCF:      points(records, func(rec domain.FinancialRecord) *float64 { return rec.FreeCashFlow }),
	})

	h.writeJSON(w, http.StatusOK, result)
}

// FourMsRequest runs the composite for a stored security, optionally
// overriding the market price.
type FourMsRequest struct {
	Symbol       string   `json:"symbol" validate:"required"`
	CurrentPrice *float64 `json:"current_price,omitempty" validate:"omitempty,gt=0"`
}

// HandleFourMs evaluates the Four Ms composite for a stored security
func (h *Handler) HandleFourMs(w http.ResponseWriter, r *http.Request) {
	var req FourMsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, status, errMsg := h.analyze(req.Symbol, req.CurrentPrice)
	if errMsg != "" {
		h.writeError(w, status, errMsg)
		return
	}

	h.writeJSON(w, http.StatusOK, result.FourMs)
}

// HandleFullAnalysis runs the whole pipeline for a stored security and
// persists the snapshot.
func (h *Handler) HandleFullAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	result, status, errMsg := h.analyze(symbol, nil)
	if errMsg != "" {
		h.writeError(w, status, errMsg)
		return
	}

	if err := h.snapshots.Save(result, time.Now().UTC()); err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to save snapshot")
	}
	if err := h.securities.UpdateValuation(symbol, result); err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to cache valuation")
	}

	h.events.Emit(events.ValuationComputed, "analysis", map[string]interface{}{
		"symbol":         result.Symbol,
		"recommendation": string(result.Recommendation),
	})
	h.writeJSON(w, http.StatusOK, result)
}

// analyze loads stored data for a symbol and runs the engine. priceOverride
// replaces the stored market price when provided.
func (h *Handler) analyze(symbol string, priceOverride *float64) (*domain.AnalysisResult, int, string) {
	sec, err := h.securities.GetBySymbol(symbol)
	if err != nil {
		return nil, http.StatusInternalServerError, err.Error()
	}
	if sec == nil {
		return nil, http.StatusNotFound, "security not found"
	}

	records, err := h.financials.GetBySymbol(symbol)
	if err != nil {
		return nil, http.StatusInternalServerError, err.Error()
	}
	if len(records) == 0 {
		return nil, http.StatusNotFound, "no financial data for symbol"
	}

	price := sec.CurrentPrice
	if priceOverride != nil {
		price = priceOverride
	}

	result, err := h.service.Evaluate(Input{
		Symbol:       sec.Symbol,
		Sector:       sec.Sector,
		Records:      records,
		CurrentPrice: price,
		HistoricalPE: sec.HistoricalPE,
	})
	if err != nil {
		return nil, http.StatusUnprocessableEntity, err.Error()
	}
	return result, http.StatusOK, ""
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
