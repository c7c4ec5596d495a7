package database

import "fmt"

// schema defines all tables. Kept as plain DDL executed at startup;
// ALTERs for later columns belong in migrate() below.
const schema = `
CREATE TABLE IF NOT EXISTS securities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    symbol TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    sector TEXT NOT NULL DEFAULT '',
    current_price REAL,
    market_cap REAL,
    historical_pe REAL,
    sticker_price REAL,
    margin_of_safety REAL,
    discount_to_sticker REAL,
    big_five_score INTEGER,
    four_m_score REAL,
    four_m_grade TEXT NOT NULL DEFAULT '',
    recommendation TEXT NOT NULL DEFAULT '',
    valuation_status TEXT NOT NULL DEFAULT 'UNKNOWN',
    valuation_note TEXT NOT NULL DEFAULT '',
    active INTEGER NOT NULL DEFAULT 1,
    last_valuation_update TIMESTAMP,
    last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS financial_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    symbol TEXT NOT NULL,
    year INTEGER NOT NULL,
    revenue REAL,
    gross_profit REAL,
    operating_income REAL,
    net_income REAL,
    eps REAL,
    total_assets REAL,
    total_equity REAL,
    total_debt REAL,
    operating_cash_flow REAL,
    capital_expenditure REAL,
    free_cash_flow REAL,
    gross_margin REAL,
    operating_margin REAL,
    UNIQUE(symbol, year)
);
CREATE INDEX IF NOT EXISTS idx_financial_records_symbol ON financial_records(symbol);

CREATE TABLE IF NOT EXISTS valuation_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    symbol TEXT NOT NULL,
    as_of DATE NOT NULL,
    payload TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(symbol, as_of)
);

CREATE TABLE IF NOT EXISTS holdings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    symbol TEXT NOT NULL,
    shares REAL NOT NULL,
    avg_cost REAL NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    buy_date TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Migrate creates tables if they do not exist
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
