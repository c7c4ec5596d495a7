package analysis

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/database/repositories"
	"github.com/aristath/ruleone/internal/domain"
)

// SnapshotRepository caches full engine outputs keyed by symbol and as-of
// date. The engine itself is stateless; this is purely a cache for
// presentation and history.
type SnapshotRepository struct {
	*repositories.BaseRepository
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		BaseRepository: repositories.NewBase(db, log.With().Str("repo", "snapshots").Logger()),
	}
}

// Save stores a result for the given day, replacing any same-day snapshot
func (r *SnapshotRepository) Save(result *domain.AnalysisResult, asOf time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	query := `
		INSERT INTO valuation_snapshots (symbol, as_of, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol, as_of) DO UPDATE SET payload = excluded.payload`

	_, err = r.DB().Exec(query, result.Symbol, asOf.Format("2006-01-02"), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", result.Symbol, err)
	}
	return nil
}

// Latest returns the most recent snapshot for a symbol, or nil when none exists
func (r *SnapshotRepository) Latest(symbol string) (*domain.AnalysisResult, error) {
	query := `
		SELECT payload FROM valuation_snapshots
		WHERE symbol = ?
		ORDER BY as_of DESC
		LIMIT 1`

	var payload string
	err := r.DB().QueryRow(query, symbol).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", symbol, err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot for %s: %w", symbol, err)
	}
	return &result, nil
}
