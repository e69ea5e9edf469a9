// Package parser reads LMN Job History exports (CSV or spreadsheet) into
// typed record sets. Files are classified as time data or service data,
// validated against the export's required columns, and normalized: currency
// formatting is stripped, unparsable numerics coerce to zero, and IDs are
// forced to strings for consistent cross-table joins.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseTimeEntries converts a raw table into time entries.
// Returns a SchemaError if required columns are missing.
func ParseTimeEntries(t *Table) ([]TimeEntry, error) {
	if missing := missingColumns(t.Header, TimeDataColumns); len(missing) > 0 {
		return nil, &SchemaError{Kind: KindTimeData, Missing: missing}
	}

	cols := columnMap(t.Header)
	entries := make([]TimeEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		entries = append(entries, TimeEntry{
			TimesheetID:  field(row, cols, "TimesheetID"),
			JobsiteID:    field(row, cols, "JobsiteID"),
			JobsiteName:  field(row, cols, "Jobsite"),
			CustomerName: field(row, cols, "CustomerName"),
			TaskName:     field(row, cols, "TaskName"),
			CostCode:     field(row, cols, "CostCode"),
			ManHours:     parseDecimalOrZero(field(row, cols, "Man Hours")),
			BillableRate: parseCurrencyOrZero(field(row, cols, "Billable Rate")),
			EndDate:      field(row, cols, "EndDate"),
		})
	}

	return entries, nil
}

// ParseServiceEntries converts a raw table into service entries.
// Returns a SchemaError if required columns are missing.
func ParseServiceEntries(t *Table) ([]ServiceEntry, error) {
	if missing := missingColumns(t.Header, ServiceDataColumns); len(missing) > 0 {
		return nil, &SchemaError{Kind: KindServiceData, Missing: missing}
	}

	cols := columnMap(t.Header)
	entries := make([]ServiceEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		entries = append(entries, ServiceEntry{
			TimesheetID:     field(row, cols, "TimesheetID"),
			JobsiteID:       field(row, cols, "JobsiteID"),
			JobsiteName:     field(row, cols, "Jobsite"),
			CustomerName:    field(row, cols, "CustomerName"),
			ServiceActivity: field(row, cols, "Service_Activity"),
			TimesheetQty:    parseDecimalOrZero(field(row, cols, "Timesheet Qty")),
			InvoiceType:     field(row, cols, "Invoice Type"),
			UnitPrice:       parseCurrencyOrZero(field(row, cols, "Unit Price")),
			TotalPrice:      parseCurrencyOrZero(field(row, cols, "Total Price")),
			Invoiced:        field(row, cols, "Invoiced"),
			EndDate:         field(row, cols, "EndDate"),
		})
	}

	return entries, nil
}

// ParseTimeFile reads and parses a time data export from disk.
func ParseTimeFile(path string) ([]TimeEntry, error) {
	t, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTimeEntries(t)
}

// ParseServiceFile reads and parses a service data export from disk.
func ParseServiceFile(path string) ([]ServiceEntry, error) {
	t, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseServiceEntries(t)
}

func readFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTable(path, io.Reader(f))
}

// FilterUninvoiced returns the service entries not yet invoiced in LMN
// (Invoiced flag "N", compared case-insensitively).
func FilterUninvoiced(entries []ServiceEntry) []ServiceEntry {
	var out []ServiceEntry
	for _, e := range entries {
		if strings.EqualFold(e.Invoiced, "N") {
			out = append(out, e)
		}
	}
	return out
}
