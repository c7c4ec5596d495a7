package universe

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/database/repositories"
	"github.com/aristath/ruleone/internal/domain"
)

// FinancialsRepository stores per-year financial statement records
type FinancialsRepository struct {
	*repositories.BaseRepository
}

// NewFinancialsRepository creates a new financials repository
func NewFinancialsRepository(db *sql.DB, log zerolog.Logger) *FinancialsRepository {
	return &FinancialsRepository{
		BaseRepository: repositories.NewBase(db, log.With().Str("repo", "financials").Logger()),
	}
}

// Upsert inserts or replaces one fiscal year for a symbol. Free cash flow
// is derived from its operands when the source omitted it.
func (r *FinancialsRepository) Upsert(rec *domain.FinancialRecord) error {
	rec.DeriveFreeCashFlow()

	query := `
		INSERT INTO financial_records (
			symbol, year, revenue, gross_profit, operating_income, net_income, eps,
			total_assets, total_equity, total_debt,
			operating_cash_flow, capital_expenditure, free_cash_flow,
			gross_margin, operating_margin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, year) DO UPDATE SET
			revenue = excluded.revenue,
			gross_profit = excluded.gross_profit,
			operating_income = excluded.operating_income,
			net_income = excluded.net_income,
			eps = excluded.eps,
			total_assets = excluded.total_assets,
			total_equity = excluded.total_equity,
			total_debt = excluded.total_debt,
			operating_cash_flow = excluded.operating_cash_flow,
			capital_expenditure = excluded.capital_expenditure,
			free_cash_flow = excluded.free_cash_flow,
			gross_margin = excluded.gross_margin,
			operating_margin = excluded.operating_margin`

	_, err := r.DB().Exec(query,
		normalizeSymbol(rec.Symbol), rec.Year,
		rec.Revenue, rec.GrossProfit, rec.OperatingIncome, rec.NetIncome, rec.EPS,
		rec.TotalAssets, rec.TotalEquity, rec.TotalDebt,
		rec.OperatingCashFlow, rec.CapitalExpenditure, rec.FreeCashFlow,
		rec.GrossMargin, rec.OperatingMargin)
	if err != nil {
		return fmt.Errorf("failed to upsert financials %s/%d: %w", rec.Symbol, rec.Year, err)
	}
	return nil
}

// GetBySymbol returns all records for a symbol, oldest year first
func (r *FinancialsRepository) GetBySymbol(symbol string) ([]domain.FinancialRecord, error) {
	query := `
		SELECT symbol, year, revenue, gross_profit, operating_income, net_income, eps,
			total_assets, total_equity, total_debt,
			operating_cash_flow, capital_expenditure, free_cash_flow,
			gross_margin, operating_margin
		FROM financial_records
		WHERE symbol = ?
		ORDER BY year ASC`

	rows, err := r.DB().Query(query, normalizeSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to query financials for %s: %w", symbol, err)
	}
	defer rows.Close()

	var records []domain.FinancialRecord
	for rows.Next() {
		var rec domain.FinancialRecord
		err := rows.Scan(
			&rec.Symbol, &rec.Year,
			&rec.Revenue, &rec.GrossProfit, &rec.OperatingIncome, &rec.NetIncome, &rec.EPS,
			&rec.TotalAssets, &rec.TotalEquity, &rec.TotalDebt,
			&rec.OperatingCashFlow, &rec.CapitalExpenditure, &rec.FreeCashFlow,
			&rec.GrossMargin, &rec.OperatingMargin)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteBySymbol removes all records for a symbol
func (r *FinancialsRepository) DeleteBySymbol(symbol string) error {
	_, err := r.DB().Exec("DELETE FROM financial_records WHERE symbol = ?", normalizeSymbol(symbol))
	if err != nil {
		return fmt.Errorf("failed to delete financials for %s: %w", symbol, err)
	}
	return nil
}
