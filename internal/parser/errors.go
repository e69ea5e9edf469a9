package parser

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an input table.
type SchemaError struct {
	Kind    FileKind
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s missing required columns: %s", e.Kind, strings.Join(e.Missing, ", "))
}

// FileTypeError reports a file whose schema could not be classified as
// either time data or service data.
type FileTypeError struct {
	Filename string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("could not determine file type of %q: not recognizable as time data or service data", e.Filename)
}
