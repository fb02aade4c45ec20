package reconcile

import (
	"errors"
	"fmt"

	"order-ledger/core/date"
)

var (
	// ErrRateUnavailable matches every RateUnavailableError.
	ErrRateUnavailable = errors.New("rate unavailable")

	// ErrNoQuotation is returned by a RateSource when it has no rate for a day.
	ErrNoQuotation = errors.New("no quotation for date")
)

// ParseErrorKind classifies a malformed sheet row.
type ParseErrorKind string

const (
	// MissingField means the row has fewer cells than the layout requires.
	MissingField ParseErrorKind = "missing_field"
	// InvalidNumber means a number or amount cell could not be parsed or is negative.
	InvalidNumber ParseErrorKind = "invalid_number"
	// InvalidDate means the delivery date does not match DD.MM.YYYY.
	InvalidDate ParseErrorKind = "invalid_date"
)

// ParseError reports a sheet row that cannot become a Candidate.
type ParseError struct {
	Kind ParseErrorKind

	// Row is the 1-based sheet row, header included. Zero when unknown.
	Row int

	// Column is the 0-based cell index.
	Column int

	// Field is the logical column name.
	Field string

	// Value is the offending cell content.
	Value string

	Err error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s in column %d (%s=%q)", e.Kind, e.Column, e.Field, e.Value)
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RateUnavailableError reports that no rate could be resolved for a day.
// It aborts the run and rolls back its transaction.
type RateUnavailableError struct {
	Date date.Date
	Err  error
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rate unavailable for %s: %v", e.Date, e.Err)
}

func (e *RateUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRateUnavailable) true for every RateUnavailableError.
func (e *RateUnavailableError) Is(target error) bool {
	return target == ErrRateUnavailable
}

// StoreError reports a failed store read, write or commit.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotifierError reports a failed overdue digest delivery. The reconciliation
// it belongs to is already committed.
type NotifierError struct {
	Orders int
	Err    error
}

func (e *NotifierError) Error() string {
	return fmt.Sprintf("failed to deliver %d overdue orders: %v", e.Orders, e.Err)
}

func (e *NotifierError) Unwrap() error {
	return e.Err
}
