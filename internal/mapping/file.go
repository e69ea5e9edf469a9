package mapping

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileColumns is the header of the customer mapping CSV.
var fileColumns = []string{"JobsiteID", "QBO_CustomerID", "QBO_DisplayName", "Notes"}

// LoadFile reads a customer mapping CSV keyed by jobsite ID. A missing file
// is not an error and yields an empty table.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.TrimSpace(h)] = i
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	table := make(Table, len(records)-1)
	for _, row := range records[1:] {
		jobsiteID := cell(row, "JobsiteID")
		if jobsiteID == "" {
			continue
		}
		table[jobsiteID] = Mapping{
			JobsiteID:      jobsiteID,
			QBOCustomerID:  cell(row, "QBO_CustomerID"),
			QBODisplayName: cell(row, "QBO_DisplayName"),
			Notes:          cell(row, "Notes"),
		}
	}

	return table, nil
}

// SaveFile writes the full mapping table to a CSV, sorted by jobsite ID.
func SaveFile(path string, table Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create mapping directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mapping file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fileColumns); err != nil {
		return fmt.Errorf("failed to write mapping header: %w", err)
	}

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		m := table[id]
		if err := w.Write([]string{m.JobsiteID, m.QBOCustomerID, m.QBODisplayName, m.Notes}); err != nil {
			return fmt.Errorf("failed to write mapping row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteTemplate adds blank rows for the given jobsite IDs to a mapping CSV,
// for manual completion. Entries already in the file keep their values; only
// missing IDs get a new row.
func WriteTemplate(path string, jobsiteIDs []string) error {
	table, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, id := range jobsiteIDs {
		if _, ok := table[id]; !ok {
			table[id] = Mapping{JobsiteID: id}
		}
	}
	return SaveFile(path, table)
}
