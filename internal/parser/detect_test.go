package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFileTypeByFilename(t *testing.T) {
	kind, err := DetectFileType("Job History Time Data.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, KindTimeData, kind)

	kind, err = DetectFileType("exports/service_data_aug.xlsx", nil)
	require.NoError(t, err)
	assert.Equal(t, KindServiceData, kind)
}

func TestDetectFileTypeByHeader(t *testing.T) {
	kind, err := DetectFileType("export1.csv", []string{"TimesheetID", "JobsiteID", "TaskName", "CostCode"})
	require.NoError(t, err)
	assert.Equal(t, KindTimeData, kind)

	kind, err = DetectFileType("export2.csv", []string{"TimesheetID", "JobsiteID", "Service_Activity", "Invoice Type"})
	require.NoError(t, err)
	assert.Equal(t, KindServiceData, kind)
}

func TestDetectFileTypeByColumnOverlap(t *testing.T) {
	// No distinctive columns, but more service data columns than time data.
	header := []string{"TimesheetID", "JobsiteID", "Jobsite", "Unit Price", "Total Price", "Invoiced"}
	kind, err := DetectFileType("export.csv", header)
	require.NoError(t, err)
	assert.Equal(t, KindServiceData, kind)
}

func TestDetectFileTypeUnrecognizable(t *testing.T) {
	_, err := DetectFileType("mystery.csv", []string{"Foo", "Bar"})
	require.Error(t, err)

	var typeErr *FileTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "mystery.csv", typeErr.Filename)
}

func TestDetectFilePair(t *testing.T) {
	timeTable := &Table{Filename: "time_data.csv", Header: TimeDataColumns}
	serviceTable := &Table{Filename: "service_data.csv", Header: ServiceDataColumns}

	// Order of upload must not matter.
	gotTime, gotService, err := DetectFilePair([]*Table{serviceTable, timeTable})
	require.NoError(t, err)
	assert.Equal(t, timeTable, gotTime)
	assert.Equal(t, serviceTable, gotService)
}

func TestDetectFilePairMissingCategory(t *testing.T) {
	timeTable := &Table{Filename: "time_data.csv", Header: TimeDataColumns}

	_, _, err := DetectFilePair([]*Table{timeTable})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no service data file")
}

func TestDetectFilePairDuplicateCategory(t *testing.T) {
	a := &Table{Filename: "time_a.csv", Header: TimeDataColumns}
	b := &Table{Filename: "time_b.csv", Header: TimeDataColumns}
	svc := &Table{Filename: "service_data.csv", Header: ServiceDataColumns}

	_, _, err := DetectFilePair([]*Table{a, b, svc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple time data files")
	assert.Contains(t, err.Error(), "time_a.csv")
	assert.Contains(t, err.Error(), "time_b.csv")
}
