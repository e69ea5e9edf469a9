package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileKind identifies which of the two LMN export schemas a file matches.
type FileKind string

const (
	KindTimeData    FileKind = "time data"
	KindServiceData FileKind = "service data"
)

// DetectFileType classifies a file as time data or service data.
//
// Checks are ordered: filename first ("time" or "service" substring), then
// the header row (distinctive columns, falling back to whichever required
// column set overlaps more). A file that matches neither rule fails with a
// FileTypeError.
func DetectFileType(filename string, header []string) (FileKind, error) {
	name := strings.ToLower(filepath.Base(filename))
	if strings.Contains(name, "time") {
		return KindTimeData, nil
	}
	if strings.Contains(name, "service") {
		return KindServiceData, nil
	}

	cols := columnMap(header)
	_, hasTask := cols["TaskName"]
	_, hasCostCode := cols["CostCode"]
	_, hasActivity := cols["Service_Activity"]
	_, hasInvoiceType := cols["Invoice Type"]

	if (hasTask || hasCostCode) && !hasActivity {
		return KindTimeData, nil
	}
	if (hasActivity || hasInvoiceType) && !hasTask {
		return KindServiceData, nil
	}

	timeOverlap := len(TimeDataColumns) - len(missingColumns(header, TimeDataColumns))
	serviceOverlap := len(ServiceDataColumns) - len(missingColumns(header, ServiceDataColumns))
	if timeOverlap > serviceOverlap {
		return KindTimeData, nil
	}
	if serviceOverlap > timeOverlap {
		return KindServiceData, nil
	}

	return "", &FileTypeError{Filename: filename}
}

// DetectFilePair identifies the time data and service data tables among a set
// of uploaded files. Exactly one of each must be present.
func DetectFilePair(tables []*Table) (timeData, serviceData *Table, err error) {
	byKind := map[FileKind][]*Table{}
	for _, t := range tables {
		kind, err := DetectFileType(t.Filename, t.Header)
		if err != nil {
			return nil, nil, err
		}
		byKind[kind] = append(byKind[kind], t)
	}

	for _, kind := range []FileKind{KindTimeData, KindServiceData} {
		matches := byKind[kind]
		switch {
		case len(matches) == 0:
			return nil, nil, fmt.Errorf("no %s file found among %s", kind, fileList(tables))
		case len(matches) > 1:
			return nil, nil, fmt.Errorf("multiple %s files found: %s", kind, fileList(matches))
		}
	}

	return byKind[KindTimeData][0], byKind[KindServiceData][0], nil
}

func fileList(tables []*Table) string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Filename)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
