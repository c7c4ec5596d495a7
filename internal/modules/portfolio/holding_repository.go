package portfolio

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/database/repositories"
	"github.com/aristath/ruleone/internal/domain"
)

// HoldingRepository handles portfolio holdings CRUD
type HoldingRepository struct {
	*repositories.BaseRepository
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *sql.DB, log zerolog.Logger) *HoldingRepository {
	return &HoldingRepository{
		BaseRepository: repositories.NewBase(db, log.With().Str("repo", "holdings").Logger()),
	}
}

// Create inserts a new holding and returns it with its assigned ID
func (r *HoldingRepository) Create(h *domain.Holding) (*domain.Holding, error) {
	query := `
		INSERT INTO holdings (symbol, shares, avg_cost, notes, buy_date)
		VALUES (?, ?, ?, ?, ?)`

	res, err := r.DB().Exec(query,
		strings.ToUpper(strings.TrimSpace(h.Symbol)), h.Shares, h.AvgCost, h.Notes, h.BuyDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read holding id: %w", err)
	}
	return r.GetByID(id)
}

// GetByID returns a holding by ID, or nil when not found
func (r *HoldingRepository) GetByID(id int64) (*domain.Holding, error) {
	query := `
		SELECT id, symbol, shares, avg_cost, notes, buy_date, created_at, updated_at
		FROM holdings WHERE id = ?`

	var h domain.Holding
	var buyDate sql.NullTime
	err := r.DB().QueryRow(query, id).Scan(
		&h.ID, &h.Symbol, &h.Shares, &h.AvgCost, &h.Notes, &buyDate, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding %d: %w", id, err)
	}
	if buyDate.Valid {
		t := buyDate.Time
		h.BuyDate = &t
	}
	return &h, nil
}

// List returns all holdings ordered by symbol
func (r *HoldingRepository) List() ([]domain.Holding, error) {
	query := `
		SELECT id, symbol, shares, avg_cost, notes, buy_date, created_at, updated_at
		FROM holdings ORDER BY symbol`

	rows, err := r.DB().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		var h domain.Holding
		var buyDate sql.NullTime
		if err := rows.Scan(&h.ID, &h.Symbol, &h.Shares, &h.AvgCost, &h.Notes, &buyDate, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		if buyDate.Valid {
			t := buyDate.Time
			h.BuyDate = &t
		}
		holdings = append(holdings, h)
	}

	return holdings, rows.Err()
}

// Update modifies shares, cost and notes on an existing holding
func (r *HoldingRepository) Update(h *domain.Holding) error {
	query := `
		UPDATE holdings SET
			shares = ?, avg_cost = ?, notes = ?, buy_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	res, err := r.DB().Exec(query, h.Shares, h.AvgCost, h.Notes, h.BuyDate, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update holding %d: %w", h.ID, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("holding %d not found", h.ID)
	}
	return nil
}

// Delete removes a holding
func (r *HoldingRepository) Delete(id int64) error {
	res, err := r.DB().Exec("DELETE FROM holdings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete holding %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("holding %d not found", id)
	}
	return nil
}
