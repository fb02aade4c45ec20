package reconcile

import (
	"strconv"
	"strings"

	"order-ledger/core/date"

	"github.com/shopspring/decimal"
)

// Column indices of the order sheet.
const (
	ColSequenceNumber = iota
	ColOrderNumber
	ColForeignAmount
	ColDeliveryDate

	columnCount
)

var columnNames = [columnCount]string{
	ColSequenceNumber: "sequence_number",
	ColOrderNumber:    "order_number",
	ColForeignAmount:  "foreign_amount",
	ColDeliveryDate:   "delivery_date",
}

// ParseRow converts one sheet row into a Candidate. Cells beyond the layout
// are ignored. The amount is rounded to AmountScale so it compares equal to
// the stored value on the next run.
func ParseRow(row []string) (Candidate, error) {
	if len(row) < columnCount {
		col := len(row)
		return Candidate{}, &ParseError{Kind: MissingField, Column: col, Field: columnNames[col]}
	}

	seq, err := parseCount(row, ColSequenceNumber)
	if err != nil {
		return Candidate{}, err
	}

	num, err := parseCount(row, ColOrderNumber)
	if err != nil {
		return Candidate{}, err
	}

	raw := strings.TrimSpace(row[ColForeignAmount])
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Candidate{}, cellError(InvalidNumber, row, ColForeignAmount, err)
	}
	if amount.IsNegative() {
		return Candidate{}, cellError(InvalidNumber, row, ColForeignAmount, nil)
	}

	day, err := date.ParseLayout(strings.TrimSpace(row[ColDeliveryDate]), date.SheetLayout)
	if err != nil {
		return Candidate{}, cellError(InvalidDate, row, ColDeliveryDate, err)
	}

	return Candidate{
		SequenceNumber: seq,
		OrderNumber:    num,
		ForeignAmount:  roundAmount(amount),
		DeliveryDate:   day,
	}, nil
}

// ParseRows parses a sheet snapshot. The first row is dropped when header is
// set, and rows whose cells are all blank are skipped. The first malformed row
// aborts parsing: a partially ingested sheet would silently corrupt the plan.
func ParseRows(rows [][]string, header bool) ([]Candidate, error) {
	start := 0
	if header && len(rows) > 0 {
		start = 1
	}

	candidates := make([]Candidate, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		c, err := ParseRow(rows[i])
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Row = i + 1
			}
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func parseCount(row []string, col int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(row[col]), 10, 64)
	if err != nil {
		return 0, cellError(InvalidNumber, row, col, err)
	}
	if n < 0 {
		return 0, cellError(InvalidNumber, row, col, nil)
	}
	return n, nil
}

func cellError(kind ParseErrorKind, row []string, col int, err error) *ParseError {
	return &ParseError{
		Kind:   kind,
		Column: col,
		Field:  columnNames[col],
		Value:  row[col],
		Err:    err,
	}
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
