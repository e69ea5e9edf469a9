package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// HistoryEntry records one invoice created in QBO, kept for duplicate
// detection on later runs.
type HistoryEntry struct {
	JobsiteID        string
	TimesheetIDs     []string
	WorkDates        []string
	QBOInvoiceID     string
	QBOInvoiceNumber string
	TotalAmount      decimal.Decimal
	CreatedAt        time.Time
}

// AlreadyInvoiced identifies a timesheet that appears on a previous invoice.
type AlreadyInvoiced struct {
	TimesheetID      string
	QBOInvoiceID     string
	QBOInvoiceNumber string
	CreatedAt        time.Time
}

// DateOverlap reports work dates for a jobsite already covered by a
// previous invoice.
type DateOverlap struct {
	OverlappingDates []string
	QBOInvoiceNumber string
	CreatedAt        time.Time
}

// HistoryStore persists the invoice creation log.
type HistoryStore struct {
	conn *sql.DB
}

// NewHistoryStore creates a store backed by an open connection.
func NewHistoryStore(conn *sql.DB) *HistoryStore {
	return &HistoryStore{conn: conn}
}

// Record logs a successfully created invoice. Only call after QBO confirms
// the creation.
func (s *HistoryStore) Record(ctx context.Context, entry HistoryEntry) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO invoice_history
			(jobsite_id, timesheet_ids, work_dates, qbo_invoice_id,
			 qbo_invoice_number, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		entry.JobsiteID,
		pq.Array(entry.TimesheetIDs),
		pq.Array(entry.WorkDates),
		entry.QBOInvoiceID,
		entry.QBOInvoiceNumber,
		entry.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to record invoice history: %w", err)
	}
	return nil
}

// FindAlreadyInvoiced returns the subset of timesheet IDs that appear on a
// previously recorded invoice, with the invoice they appeared on.
func (s *HistoryStore) FindAlreadyInvoiced(ctx context.Context, timesheetIDs []string) ([]AlreadyInvoiced, error) {
	if len(timesheetIDs) == 0 {
		return nil, nil
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT timesheet_ids, qbo_invoice_number, qbo_invoice_id, created_at
		FROM invoice_history
		WHERE timesheet_ids && $1
	`, pq.Array(timesheetIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice history: %w", err)
	}
	defer rows.Close()

	var results []AlreadyInvoiced
	for rows.Next() {
		var stored []string
		var invoiceNumber, invoiceID string
		var createdAt time.Time
		if err := rows.Scan(pq.Array(&stored), &invoiceNumber, &invoiceID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice history: %w", err)
		}

		storedSet := make(map[string]bool, len(stored))
		for _, id := range stored {
			storedSet[id] = true
		}
		for _, id := range timesheetIDs {
			if storedSet[id] {
				results = append(results, AlreadyInvoiced{
					TimesheetID:      id,
					QBOInvoiceID:     invoiceID,
					QBOInvoiceNumber: invoiceNumber,
					CreatedAt:        createdAt,
				})
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoice history: %w", err)
	}

	return results, nil
}

// FindOverlappingDates checks whether any of a jobsite's work dates were
// covered by a previous invoice. Returns nil when there is no overlap.
func (s *HistoryStore) FindOverlappingDates(ctx context.Context, jobsiteID string, workDates []string) (*DateOverlap, error) {
	if len(workDates) == 0 {
		return nil, nil
	}

	row := s.conn.QueryRowContext(ctx, `
		SELECT work_dates, qbo_invoice_number, created_at
		FROM invoice_history
		WHERE jobsite_id = $1
		AND work_dates && $2
	`, jobsiteID, pq.Array(workDates))

	var stored []string
	var invoiceNumber string
	var createdAt time.Time
	err := row.Scan(pq.Array(&stored), &invoiceNumber, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query date overlaps: %w", err)
	}

	storedSet := make(map[string]bool, len(stored))
	for _, d := range stored {
		storedSet[d] = true
	}
	var overlapping []string
	for _, d := range workDates {
		if storedSet[d] {
			overlapping = append(overlapping, d)
		}
	}

	return &DateOverlap{
		OverlappingDates: overlapping,
		QBOInvoiceNumber: invoiceNumber,
		CreatedAt:        createdAt,
	}, nil
}

// List returns invoice history, newest first, optionally filtered by
// jobsite ID.
func (s *HistoryStore) List(ctx context.Context, jobsiteID string) ([]HistoryEntry, error) {
	query := `
		SELECT jobsite_id, timesheet_ids, work_dates, qbo_invoice_id,
		       qbo_invoice_number, total_amount, created_at
		FROM invoice_history
	`
	args := []interface{}{}
	if jobsiteID != "" {
		query += " WHERE jobsite_id = $1"
		args = append(args, jobsiteID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.JobsiteID,
			pq.Array(&e.TimesheetIDs),
			pq.Array(&e.WorkDates),
			&e.QBOInvoiceID,
			&e.QBOInvoiceNumber,
			&e.TotalAmount,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoice history: %w", err)
	}

	return entries, nil
}
