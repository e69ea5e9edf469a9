// Package pipeline wires the processing stages together: LMN export files
// in, composed invoices and submission results out.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/skilledgarden/lmn2qbo/internal/invoice"
	"github.com/skilledgarden/lmn2qbo/internal/mapping"
	"github.com/skilledgarden/lmn2qbo/internal/parser"
	"github.com/skilledgarden/lmn2qbo/internal/timecalc"
)

// ProcessingError wraps an ingestion or composition failure with the stage
// it happened in. The caller decides how to present it.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// InputFile is one uploaded or local export file.
type InputFile struct {
	Name   string
	Reader io.Reader
}

// UnmappedJobsite describes a jobsite with billable work but no QBO
// customer mapping, for downstream mapping flows.
type UnmappedJobsite struct {
	JobsiteID       string
	JobsiteName     string
	CustomerName    string
	EstimatedAmount decimal.Decimal
}

// Summary counts the outcome of a processing run.
type Summary struct {
	TotalJobsites    int
	MappedJobsites   int
	UnmappedJobsites int
	TotalLineItems   int
}

// ProcessResult is everything a caller needs after processing a pair of
// exports: the composed invoices, the mapping table in effect, which
// jobsites lack a mapping, and totals for the mapped ones.
type ProcessResult struct {
	Hours       []timecalc.JobsiteHours
	Invoices    []invoice.InvoiceData
	Mappings    mapping.Table
	Unmapped    []UnmappedJobsite
	TotalAmount decimal.Decimal
	Summary     Summary
}

// Pipeline runs the billing computation end to end.
type Pipeline struct {
	resolver *mapping.Resolver
	logger   *zap.Logger
}

// New creates a pipeline. The resolver supplies customer mappings; logger
// may be nil.
func New(resolver *mapping.Resolver, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{resolver: resolver, logger: logger}
}

// ProcessFiles ingests a set of export files (exactly one time data and one
// service data file), computes billable hours, composes invoices, and
// resolves customer mappings. invoiceDate may be empty for today.
func (p *Pipeline) ProcessFiles(ctx context.Context, files []InputFile, invoiceDate string) (*ProcessResult, error) {
	tables := make([]*parser.Table, 0, len(files))
	for _, f := range files {
		t, err := parser.ReadTable(f.Name, f.Reader)
		if err != nil {
			return nil, &ProcessingError{Stage: "reading input files", Err: err}
		}
		tables = append(tables, t)
	}

	timeTable, serviceTable, err := parser.DetectFilePair(tables)
	if err != nil {
		return nil, &ProcessingError{Stage: "detecting file types", Err: err}
	}

	timeEntries, err := parser.ParseTimeEntries(timeTable)
	if err != nil {
		return nil, &ProcessingError{Stage: "parsing time data", Err: err}
	}
	serviceEntries, err := parser.ParseServiceEntries(serviceTable)
	if err != nil {
		return nil, &ProcessingError{Stage: "parsing service data", Err: err}
	}

	p.logger.Info("parsed exports",
		zap.String("time_file", timeTable.Filename),
		zap.Int("time_entries", len(timeEntries)),
		zap.String("service_file", serviceTable.Filename),
		zap.Int("service_entries", len(serviceEntries)))

	hours := timecalc.CalculateBillableHours(timeEntries)
	invoices := invoice.BuildAll(hours, serviceEntries, invoiceDate)

	table := p.resolver.Load(ctx)

	jobsiteIDs := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		jobsiteIDs = append(jobsiteIDs, inv.JobsiteID)
	}
	unmappedIDs := mapping.FindUnmapped(jobsiteIDs, table)
	unmappedSet := make(map[string]bool, len(unmappedIDs))
	for _, id := range unmappedIDs {
		unmappedSet[id] = true
	}

	result := &ProcessResult{
		Hours:    hours,
		Invoices: invoices,
		Mappings: table,
	}

	totalLineItems := 0
	for _, inv := range invoices {
		totalLineItems += len(inv.LineItems)
		if unmappedSet[inv.JobsiteID] {
			result.Unmapped = append(result.Unmapped, UnmappedJobsite{
				JobsiteID:       inv.JobsiteID,
				JobsiteName:     inv.JobsiteName,
				CustomerName:    inv.CustomerName,
				EstimatedAmount: inv.Total,
			})
			continue
		}
		result.TotalAmount = result.TotalAmount.Add(inv.Total)
	}

	result.Summary = Summary{
		TotalJobsites:    len(invoices),
		MappedJobsites:   len(invoices) - len(result.Unmapped),
		UnmappedJobsites: len(result.Unmapped),
		TotalLineItems:   totalLineItems,
	}

	return result, nil
}
