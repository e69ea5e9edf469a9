package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skilledgarden/lmn2qbo/internal/mapping"
)

// OverrideStore persists customer mapping overrides. Overrides survive until
// explicitly deleted and take precedence over the LMN base mapping.
type OverrideStore struct {
	conn *sql.DB
}

// NewOverrideStore creates a store backed by an open connection.
func NewOverrideStore(conn *sql.DB) *OverrideStore {
	return &OverrideStore{conn: conn}
}

// All loads every override keyed by jobsite ID.
func (s *OverrideStore) All(ctx context.Context) (mapping.Table, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT jobsite_id, qbo_customer_id, qbo_display_name, notes
		FROM customer_mapping_overrides
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer overrides: %w", err)
	}
	defer rows.Close()

	table := make(mapping.Table)
	for rows.Next() {
		var m mapping.Mapping
		if err := rows.Scan(&m.JobsiteID, &m.QBOCustomerID, &m.QBODisplayName, &m.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		table[m.JobsiteID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overrides: %w", err)
	}

	return table, nil
}

// Save inserts or updates the override for a jobsite.
func (s *OverrideStore) Save(ctx context.Context, m mapping.Mapping) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO customer_mapping_overrides
			(jobsite_id, qbo_customer_id, qbo_display_name, notes, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (jobsite_id) DO UPDATE SET
			qbo_customer_id = EXCLUDED.qbo_customer_id,
			qbo_display_name = EXCLUDED.qbo_display_name,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`, m.JobsiteID, m.QBOCustomerID, m.QBODisplayName, m.Notes)
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

// Delete removes an override. Reports whether a row existed.
func (s *OverrideStore) Delete(ctx context.Context, jobsiteID string) (bool, error) {
	res, err := s.conn.ExecContext(ctx, `
		DELETE FROM customer_mapping_overrides
		WHERE jobsite_id = $1
	`, jobsiteID)
	if err != nil {
		return false, fmt.Errorf("failed to delete override: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n > 0, nil
}
