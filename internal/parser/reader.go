package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a raw tabular file: a header row plus data rows.
// Rows may be ragged; lookups handle short rows.
type Table struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// ReadTable reads a CSV or spreadsheet file into a Table. Spreadsheets are
// read from their first sheet. The format is chosen by file extension.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		records, err = readSpreadsheet(r)
	default:
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file is empty", filename)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &Table{
		Filename: filename,
		Header:   header,
		Rows:     records[1:],
	}, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return records, nil
}

func readSpreadsheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// columnMap builds a map of trimmed column name → index.
func columnMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, h := range header {
		m[strings.TrimSpace(h)] = i
	}
	return m
}

// field safely retrieves a cell from a row by column name.
func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// missingColumns returns the required columns absent from the header.
func missingColumns(header []string, required []string) []string {
	cols := columnMap(header)
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
