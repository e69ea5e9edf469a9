// Package db persists customer mapping overrides and invoice history in
// Postgres.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS customer_mapping_overrides (
	jobsite_id       TEXT PRIMARY KEY,
	qbo_customer_id  TEXT NOT NULL,
	qbo_display_name TEXT NOT NULL DEFAULT '',
	notes            TEXT NOT NULL DEFAULT '',
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS invoice_history (
	id                 BIGSERIAL PRIMARY KEY,
	jobsite_id         TEXT NOT NULL,
	timesheet_ids      TEXT[] NOT NULL,
	work_dates         TEXT[] NOT NULL,
	qbo_invoice_id     TEXT NOT NULL,
	qbo_invoice_number TEXT NOT NULL DEFAULT '',
	total_amount       NUMERIC(12,2) NOT NULL DEFAULT 0,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_invoice_history_jobsite
	ON invoice_history (jobsite_id);
`

// EnsureSchema creates the tables this tool needs if they do not exist.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
