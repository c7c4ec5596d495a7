package portfolio

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/domain"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	holdings *HoldingRepository
	service  *Service
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(holdings *HoldingRepository, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		holdings: holdings,
		service:  service,
		validate: validator.New(),
		log:      log.With().Str("handler", "portfolio").Logger(),
	}
}

// RegisterRoutes mounts the portfolio endpoints
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandlePositions)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}

// HandlePositions returns holdings enriched with market data and P/L
func (h *Handler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.Positions()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, positions)
}

// HoldingRequest creates or updates a holding
type HoldingRequest struct {
	Symbol  string     `json:"symbol" validate:"required,max=20"`
	Shares  float64    `json:"shares" validate:"required,gt=0"`
	AvgCost float64    `json:"avg_cost" validate:"required,gt=0"`
	Notes   string     `json:"notes" validate:"max=500"`
	BuyDate *time.Time `json:"buy_date,omitempty"`
}

// HandleCreate adds a holding
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req HoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding, err := h.holdings.Create(&domain.Holding{
		Symbol:  req.Symbol,
		Shares:  req.Shares,
		AvgCost: req.AvgCost,
		Notes:   req.Notes,
		BuyDate: req.BuyDate,
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, holding)
}

// HandleUpdate modifies an existing holding
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	var req HoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.holdings.GetByID(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		h.writeError(w, http.StatusNotFound, "holding not found")
		return
	}

	existing.Shares = req.Shares
	existing.AvgCost = req.AvgCost
	existing.Notes = req.Notes
	existing.BuyDate = req.BuyDate
	if err := h.holdings.Update(existing); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := h.holdings.GetByID(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a holding
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	if err := h.holdings.Delete(id); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
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
