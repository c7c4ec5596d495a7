package portfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/internal/modules/universe"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	db := newTestDB(t)
	log := zerolog.Nop()
	holdings := NewHoldingRepository(db.Conn(), log)
	securities := universe.NewSecurityRepository(db.Conn(), log)
	handler := NewHandler(holdings, NewService(holdings, securities, log), log)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(router chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreateAndPositions(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/", HoldingRequest{
		Symbol:  "acme",
		Shares:  100,
		AvgCost: 50,
		Notes:   "starter position",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ACME", created.Symbol)
	assert.NotZero(t, created.ID)

	rec = doJSON(router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var positions []PositionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &positions))
	require.Len(t, positions, 1)
	assert.Equal(t, 5000.0, positions[0].TotalCost)
}

func TestHandleCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body HoldingRequest
	}{
		{name: "missing symbol", body: HoldingRequest{Shares: 10, AvgCost: 5}},
		{name: "zero shares", body: HoldingRequest{Symbol: "ACME", AvgCost: 5}},
		{name: "zero cost", body: HoldingRequest{Symbol: "ACME", Shares: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleUpdate(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/", HoldingRequest{Symbol: "ACME", Shares: 100, AvgCost: 50})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(router, http.MethodPut, fmt.Sprintf("/%d", created.ID), HoldingRequest{
		Symbol:  "ACME",
		Shares:  160,
		AvgCost: 48,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domain.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 160.0, updated.Shares)
	assert.Equal(t, 48.0, updated.AvgCost)
}

func TestHandleUpdateMissing(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPut, "/999", HoldingRequest{Symbol: "ACME", Shares: 1, AvgCost: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodPut, "/abc", HoldingRequest{Symbol: "ACME", Shares: 1, AvgCost: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDelete(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/", HoldingRequest{Symbol: "ACME", Shares: 10, AvgCost: 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(router, http.MethodDelete, fmt.Sprintf("/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodDelete, fmt.Sprintf("/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
