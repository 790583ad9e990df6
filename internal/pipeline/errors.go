package pipeline

import (
	"errors"
	"fmt"
)

// Document-level failures. The pipeline never fails on an individual data
// line; malformed lines become best-effort records with empty fields.
var (
	// ErrEmptyInput: no content remains after trimming blank lines.
	ErrEmptyInput = errors.New("empty input: no content to transform")

	// ErrMissingHeaderRow: a header line exists but no data rows follow.
	ErrMissingHeaderRow = errors.New("missing header row: need a header line and at least one data row")

	// ErrNoValidRows: every row was dropped by the empty-row filter.
	ErrNoValidRows = errors.New("no valid data rows found in input")
)

// MissingColumnError reports a required source column absent from a raw
// ticketing export header. Column names the missing column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// IsMissingColumn reports whether err is a MissingColumnError, returning the
// column name when it is.
func IsMissingColumn(err error) (string, bool) {
	var mce *MissingColumnError
	if errors.As(err, &mce) {
		return mce.Column, true
	}
	return "", false
}
