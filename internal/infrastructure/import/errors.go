package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFile is returned for a file with no bytes
	ErrEmptyFile = errors.New("CSV file is empty")
	// ErrInvalidEncoding is returned when the content is not UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")
	// ErrMissingHeader is returned when the header row is absent
	ErrMissingHeader = errors.New("CSV file missing header row")
	// ErrNoDataRows is returned when only the header is present
	ErrNoDataRows = errors.New("CSV file contains no data rows")
)

// maxReportedErrors caps the row errors kept for one file
const maxReportedErrors = 50

// RowError is a problem with one cell or one line of the file
type RowError struct {
	Row     int
	Column  string
	Message string
	Value   string
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ValidationError lists the rows that failed. Nothing is imported when a
// file has any.
type ValidationError struct {
	Rows  []RowError
	Total int
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid row(s)", e.Total)
	for _, r := range e.Rows {
		b.WriteString("\n  ")
		b.WriteString(r.Error())
	}
	if e.Total > len(e.Rows) {
		fmt.Fprintf(&b, "\n  ... and %d more", e.Total-len(e.Rows))
	}
	return b.String()
}

func (e *ValidationError) add(r RowError) {
	e.Total++
	if len(e.Rows) < maxReportedErrors {
		e.Rows = append(e.Rows, r)
	}
}
