package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadTableCSV(t *testing.T) {
	table, err := ReadTable("data.csv", strings.NewReader("A, B ,C\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, table.Header, "header cells should be trimmed")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "2"}, table.Rows[0])
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable("data.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file is empty")
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"TimesheetID", "JobsiteID", "Man Hours"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"T1", "J1", 3.5}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadTable("time_data.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"TimesheetID", "JobsiteID", "Man Hours"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "T1", table.Rows[0][0])
	assert.Equal(t, "3.5", table.Rows[0][2])
}
