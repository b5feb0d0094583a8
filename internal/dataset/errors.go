package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError indicates a required column is absent from an input source.
type SchemaError struct {
	Source    string
	Column    string
	Available []string
}

func (e *SchemaError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("schema: %s: required column %q not found (source has no header)", e.Source, e.Column)
	}
	return fmt.Sprintf("schema: %s: required column %q not found (available: %s)",
		e.Source, e.Column, strings.Join(e.Available, ", "))
}

// DataFormatError indicates a cell that could not be coerced to its expected
// type. Row is 1-based and excludes the header.
type DataFormatError struct {
	Source string
	Row    int
	Column string
	Value  string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	msg := fmt.Sprintf("data format: %s row %d column %q: %s (value %q)", e.Source, e.Row, e.Column, e.Reason, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataFormatError) Unwrap() error { return e.Err }

var errNegativeCount = errors.New("count must be non-negative")
