package pipeline

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/skilledgarden/lmn2qbo/internal/db"
	"github.com/skilledgarden/lmn2qbo/internal/invoice"
	"github.com/skilledgarden/lmn2qbo/internal/mapping"
	"github.com/skilledgarden/lmn2qbo/internal/qbo"
)

// Submitter is the slice of the QBO client the batch loop needs.
type Submitter interface {
	LaborItemRef(ctx context.Context) (*qbo.Ref, error)
	CreateDraftInvoice(ctx context.Context, inv invoice.InvoiceData, customerID string, laborItem *qbo.Ref, terms string) qbo.InvoiceResult
}

// HistoryRecorder records submitted invoices and answers duplicate checks.
// A nil recorder disables both.
type HistoryRecorder interface {
	Record(ctx context.Context, entry db.HistoryEntry) error
	FindAlreadyInvoiced(ctx context.Context, timesheetIDs []string) ([]db.AlreadyInvoiced, error)
	FindOverlappingDates(ctx context.Context, jobsiteID string, dates []string) (*db.DateOverlap, error)
}

// BatchResult is the outcome of one submission run.
type BatchResult struct {
	Created  []qbo.InvoiceResult
	Errors   []qbo.InvoiceResult
	Skipped  []invoice.InvoiceData
	Warnings []string
}

// TotalCreated sums the invoice totals that made it into QBO.
func (r *BatchResult) TotalCreated() decimal.Decimal {
	total := decimal.Zero
	for _, res := range r.Created {
		total = total.Add(res.Total)
	}
	return total
}

// SubmitInvoices pushes invoices to QBO one at a time. Each invoice either
// succeeds, fails, or is skipped for lack of a customer mapping; a failure
// never stops the rest of the batch. When history is non-nil, previously
// invoiced timesheets and overlapping work dates produce warnings before
// submission, and successes are recorded afterwards. Recording failures are
// logged and swallowed.
func (p *Pipeline) SubmitInvoices(ctx context.Context, client Submitter, history HistoryRecorder, invoices []invoice.InvoiceData, table mapping.Table, terms string) *BatchResult {
	result := &BatchResult{}

	laborItem, err := client.LaborItemRef(ctx)
	if err != nil {
		p.logger.Warn("labor item lookup failed, lines will omit ItemRef", zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("labor item lookup failed: %v", err))
	}

	for _, inv := range invoices {
		customerID := mapping.QBOCustomerID(table, inv.JobsiteID)
		if customerID == "" {
			p.logger.Info("skipping unmapped jobsite",
				zap.String("jobsite_id", inv.JobsiteID),
				zap.String("jobsite_name", inv.JobsiteName))
			result.Skipped = append(result.Skipped, inv)
			continue
		}

		if history != nil {
			result.Warnings = append(result.Warnings, p.duplicateWarnings(ctx, history, inv)...)
		}

		res := client.CreateDraftInvoice(ctx, inv, customerID, laborItem, terms)
		if !res.Success {
			p.logger.Error("invoice creation failed",
				zap.String("jobsite_id", inv.JobsiteID),
				zap.String("error", res.Err))
			result.Errors = append(result.Errors, res)
			continue
		}

		p.logger.Info("invoice created",
			zap.String("jobsite_id", inv.JobsiteID),
			zap.String("invoice_id", res.InvoiceID),
			zap.String("doc_number", res.InvoiceNumber))
		result.Created = append(result.Created, res)

		if history != nil {
			entry := db.HistoryEntry{
				JobsiteID:        inv.JobsiteID,
				TimesheetIDs:     inv.TimesheetIDs,
				WorkDates:        inv.WorkDates,
				QBOInvoiceID:     res.InvoiceID,
				QBOInvoiceNumber: res.InvoiceNumber,
				TotalAmount:      res.Total,
			}
			if err := history.Record(ctx, entry); err != nil {
				p.logger.Warn("failed to record invoice history",
					zap.String("jobsite_id", inv.JobsiteID),
					zap.Error(err))
			}
		}
	}

	return result
}

func (p *Pipeline) duplicateWarnings(ctx context.Context, history HistoryRecorder, inv invoice.InvoiceData) []string {
	var warnings []string

	dupes, err := history.FindAlreadyInvoiced(ctx, inv.TimesheetIDs)
	if err != nil {
		p.logger.Warn("duplicate check failed", zap.String("jobsite_id", inv.JobsiteID), zap.Error(err))
	}
	for _, d := range dupes {
		warnings = append(warnings, fmt.Sprintf(
			"timesheet %s already appears on invoice %s (created %s)",
			d.TimesheetID, d.QBOInvoiceNumber, d.CreatedAt.Format("2006-01-02")))
	}

	overlap, err := history.FindOverlappingDates(ctx, inv.JobsiteID, inv.WorkDates)
	if err != nil {
		p.logger.Warn("date overlap check failed", zap.String("jobsite_id", inv.JobsiteID), zap.Error(err))
	}
	if overlap != nil {
		warnings = append(warnings, fmt.Sprintf(
			"jobsite %s (%s) already has invoice %s covering %d of these work dates",
			inv.JobsiteID, inv.JobsiteName, overlap.QBOInvoiceNumber, len(overlap.OverlappingDates)))
	}

	return warnings
}
