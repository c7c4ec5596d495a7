package universe

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/database/repositories"
	"github.com/aristath/ruleone/internal/domain"
)

// SecurityRepository handles securities table operations
type SecurityRepository struct {
	*repositories.BaseRepository
}

// NewSecurityRepository creates a new security repository
func NewSecurityRepository(db *sql.DB, log zerolog.Logger) *SecurityRepository {
	return &SecurityRepository{
		BaseRepository: repositories.NewBase(db, log.With().Str("repo", "security").Logger()),
	}
}

const securityColumns = `id, symbol, name, sector, current_price, market_cap, historical_pe,
	sticker_price, margin_of_safety, discount_to_sticker, big_five_score, four_m_score,
	four_m_grade, recommendation, valuation_status, valuation_note, active,
	last_valuation_update, last_updated`

// GetBySymbol returns a security by symbol, or nil when not found
func (r *SecurityRepository) GetBySymbol(symbol string) (*domain.Security, error) {
	query := "SELECT " + securityColumns + " FROM securities WHERE symbol = ?"

	rows, err := r.DB().Query(query, normalizeSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to query security by symbol: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil // Security not found
	}

	security, err := scanSecurity(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan security: %w", err)
	}

	return &security, nil
}

// ListActive returns all active securities ordered by symbol
func (r *SecurityRepository) ListActive() ([]domain.Security, error) {
	query := "SELECT " + securityColumns + " FROM securities WHERE active = 1 ORDER BY symbol"

	rows, err := r.DB().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}
	defer rows.Close()

	var securities []domain.Security
	for rows.Next() {
		security, err := scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		securities = append(securities, security)
	}

	return securities, rows.Err()
}

// Upsert inserts or updates a security by symbol
func (r *SecurityRepository) Upsert(sec *domain.Security) error {
	query := `
		INSERT INTO securities (symbol, name, sector, current_price, market_cap, historical_pe, active, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			sector = excluded.sector,
			current_price = excluded.current_price,
			market_cap = excluded.market_cap,
			historical_pe = excluded.historical_pe,
			active = excluded.active,
			last_updated = CURRENT_TIMESTAMP`

	_, err := r.DB().Exec(query,
		normalizeSymbol(sec.Symbol), sec.Name, sec.Sector,
		sec.CurrentPrice, sec.MarketCap, sec.HistoricalPE, sec.Active)
	if err != nil {
		return fmt.Errorf("failed to upsert security %s: %w", sec.Symbol, err)
	}
	return nil
}

// UpdateValuation writes the cached valuation snapshot fields for a symbol
func (r *SecurityRepository) UpdateValuation(symbol string, result *domain.AnalysisResult) error {
	var bigFiveScore *int
	score := result.BigFive.Score
	bigFiveScore = &score

	query := `
		UPDATE securities SET
			sticker_price = ?,
			margin_of_safety = ?,
			discount_to_sticker = ?,
			big_five_score = ?,
			four_m_score = ?,
			four_m_grade = ?,
			recommendation = ?,
			valuation_status = ?,
			valuation_note = ?,
			last_valuation_update = CURRENT_TIMESTAMP
		WHERE symbol = ?`

	res, err := r.DB().Exec(query,
		result.StickerPrice.StickerPrice,
		result.StickerPrice.MarginOfSafety,
		result.StickerPrice.DiscountToSticker,
		bigFiveScore,
		result.FourMs.OverallScore,
		result.FourMs.OverallGrade,
		string(result.Recommendation),
		string(result.StickerPrice.Status),
		result.StickerPrice.Note,
		normalizeSymbol(symbol))
	if err != nil {
		return fmt.Errorf("failed to update valuation for %s: %w", symbol, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("security %s not found", symbol)
	}
	return nil
}

func scanSecurity(rows *sql.Rows) (domain.Security, error) {
	var sec domain.Security
	var recommendation, valuationStatus string
	var lastValuation sql.NullTime

	err := rows.Scan(
		&sec.ID, &sec.Symbol, &sec.Name, &sec.Sector,
		&sec.CurrentPrice, &sec.MarketCap, &sec.HistoricalPE,
		&sec.StickerPrice, &sec.MarginOfSafety, &sec.DiscountToSticker,
		&sec.BigFiveScore, &sec.FourMScore, &sec.FourMGrade,
		&recommendation, &valuationStatus, &sec.ValuationNote,
		&sec.Active, &lastValuation, &sec.LastUpdated)
	if err != nil {
		return sec, err
	}

	sec.Recommendation = domain.Recommendation(recommendation)
	sec.ValuationStatus = domain.ValuationStatus(valuationStatus)
	if lastValuation.Valid {
		t := lastValuation.Time.UTC()
		sec.LastValuationUpdate = &t
	}
	return sec, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
