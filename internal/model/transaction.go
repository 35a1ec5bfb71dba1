// Package model defines the core data types shared across the analysis pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is a loosely-typed tabular batch as supplied by a loader.
// Columns holds the header row; every row is a slice of string cells in
// column order. Rows may be ragged; missing cells read as empty strings.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the value of row at the given column index, tolerating
// ragged rows.
func (t RawTable) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// SalesTransaction is a single cleaned sales fact. Instances are created by
// the validator and never mutated afterwards; the reconciler produces new
// copies when it resolves ownership.
type SalesTransaction struct {
	PostedDate           time.Time
	InvoiceDate          time.Time // zero when the source value was unparseable
	Customer             string
	Salesperson          string
	OriginalSalesperson  string // pre-reconciliation value, kept for audit
	Item                 string
	Quantity             int
	NetPrice             decimal.Decimal
}

// HasInvoiceDate reports whether the invoice date survived parsing.
func (t SalesTransaction) HasInvoiceDate() bool {
	return !t.InvoiceDate.IsZero()
}
