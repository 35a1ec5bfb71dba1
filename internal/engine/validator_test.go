package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellcrafted/reawaken/internal/model"
)

var salesHeader = []string{"Invoice date", "Posted date", "Customer", "Salesperson", "Item", "Qty", "Net price"}

func salesTable(rows ...[]string) model.RawTable {
	return model.RawTable{Columns: salesHeader, Rows: rows}
}

func TestValidateRows(t *testing.T) {
	tests := []struct {
		name          string
		table         model.RawTable
		wantRecords   int
		wantTotal     int
		wantInvalidD  int
		wantInvalidP  int
		wantDuplicate int
		wantScore     float64
	}{
		{
			name: "clean batch passes through",
			table: salesTable(
				[]string{"2025-01-10", "2025-01-15", "Acme Vineyards", "Mike Allen", "Pinot Noir", "12", "150.00"},
				[]string{"2025-02-10", "2025-02-15", "Acme Vineyards", "Mike Allen", "Chardonnay", "6", "300.00"},
			),
			wantRecords: 2,
			wantTotal:   2,
			wantScore:   1.0,
		},
		{
			name: "unparseable posted date drops the row and is counted",
			table: salesTable(
				[]string{"2025-01-10", "not-a-date", "Acme Vineyards", "Mike Allen", "Pinot Noir", "12", "150.00"},
				[]string{"2025-02-10", "2025-02-15", "Acme Vineyards", "Mike Allen", "Chardonnay", "6", "300.00"},
			),
			wantRecords:  1,
			wantTotal:    2,
			wantInvalidD: 1,
			wantScore:    0.5,
		},
		{
			name: "missing customer drops the row without an invalid-date tally",
			table: salesTable(
				[]string{"2025-01-10", "2025-01-15", "", "Mike Allen", "Pinot Noir", "12", "150.00"},
				[]string{"2025-02-10", "2025-02-15", "Acme Vineyards", "Mike Allen", "Chardonnay", "6", "300.00"},
			),
			wantRecords: 1,
			wantTotal:   2,
			wantScore:   0.5,
		},
		{
			name: "bad price becomes zero but keeps the record",
			table: salesTable(
				[]string{"2025-01-10", "2025-01-15", "Acme Vineyards", "Mike Allen", "Pinot Noir", "12", "n/a"},
			),
			wantRecords:  1,
			wantTotal:    1,
			wantInvalidP: 1,
			wantScore:    1.0,
		},
		{
			name: "exact duplicates are counted but not removed",
			table: salesTable(
				[]string{"2025-01-10", "2025-01-15", "Acme Vineyards", "Mike Allen", "Pinot Noir", "12", "150.00"},
				[]string{"2025-01-10", "2025-01-15", "Acme Vineyards", "Mike Allen", "Pinot Noir", "12", "150.00"},
			),
			wantRecords:   2,
			wantTotal:     2,
			wantDuplicate: 1,
			wantScore:     1.0,
		},
		{
			name:      "empty batch yields zero completeness",
			table:     salesTable(),
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, report, err := ValidateRows(tt.table)
			require.NoError(t, err)

			assert.Len(t, records, tt.wantRecords)
			assert.Equal(t, tt.wantTotal, report.TotalRecords)
			assert.Equal(t, tt.wantRecords, report.ValidRecords)
			assert.Equal(t, tt.wantInvalidD, report.InvalidDates)
			assert.Equal(t, tt.wantInvalidP, report.InvalidPrices)
			assert.Equal(t, tt.wantDuplicate, report.DuplicateRecords)
			assert.InDelta(t, tt.wantScore, report.DataCompletenessScore, 1e-9)
		})
	}
}

func TestValidateRowsFieldParsing(t *testing.T) {
	records, report, err := ValidateRows(salesTable(
		[]string{"01/10/2025", "01/15/2025", "Acme Vineyards", "Mike Allen", "Pinot Noir", "1,200", "$1,234.56"},
	))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), rec.PostedDate)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), rec.InvoiceDate)
	assert.True(t, rec.HasInvoiceDate())
	assert.Equal(t, 1200, rec.Quantity)
	assert.True(t, rec.NetPrice.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, rec.Salesperson, rec.OriginalSalesperson)
	assert.Equal(t, 0, report.InvalidPrices)
}

func TestValidateRowsInvalidInvoiceDateIsNotFatal(t *testing.T) {
	records, report, err := ValidateRows(salesTable(
		[]string{"garbage", "2025-01-15", "Acme Vineyards", "Mike Allen", "Pinot Noir", "12", "150.00"},
	))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.False(t, records[0].HasInvoiceDate())
	// Only posted-date failures feed the invalid-date tally.
	assert.Equal(t, 0, report.InvalidDates)
	assert.Contains(t, report.Recommendations, "1 invalid dates in Invoice date")
}

func TestValidateRowsStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr string
	}{
		{
			name:    "no customer column is fatal",
			columns: []string{"Posted date", "Item", "Net price"},
			wantErr: "no customer column",
		},
		{
			name:    "no posted date column is fatal",
			columns: []string{"Customer", "Item", "Net price"},
			wantErr: "no posted date column",
		},
		{
			name:    "empty header is fatal",
			columns: nil,
			wantErr: "no header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateRows(model.RawTable{Columns: tt.columns})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
