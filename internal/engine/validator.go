package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/common"
	"github.com/wellcrafted/reawaken/internal/model"
)

// salesColumns holds the resolved column indices of a raw sales table.
type salesColumns struct {
	customer    int
	salesperson int
	item        int
	quantity    int
	price       int
	posted      int
	invoice     int
}

// resolveSalesColumns locates the sales columns by fuzzy header match.
// A missing customer or posted-date column is fatal: without either there is
// no meaningful join or window arithmetic to perform. Every other column is
// optional and degrades to empty/zero values.
func resolveSalesColumns(headers []string) (salesColumns, error) {
	if len(headers) == 0 {
		return salesColumns{}, common.ErrEmptyTable
	}

	cols := salesColumns{
		customer:    ResolveColumn(headers, customerColumnRules),
		salesperson: ResolveColumn(headers, repColumnRules),
		item:        ResolveColumn(headers, itemColumnRules),
		quantity:    ResolveColumn(headers, quantityColumnRules),
		price:       ResolveColumn(headers, priceColumnRules),
		posted:      ResolveColumn(headers, postedDateColumnRules),
		invoice:     ResolveColumn(headers, invoiceDateColumnRules),
	}

	if cols.customer < 0 {
		return salesColumns{}, common.ErrMissingCustomerColumn
	}
	if cols.posted < 0 {
		return salesColumns{}, common.ErrMissingDateColumn
	}
	return cols, nil
}

// ValidateRows cleans a raw sales batch into transactions plus a quality
// report. Unparseable dates become missing and unparseable prices become
// zero, both tallied rather than fatal. A row missing its posted date or
// customer is dropped; exact duplicate rows are counted but kept, since a
// legitimate same-day repeat order is indistinguishable from a true
// duplicate without a unique transaction key.
func ValidateRows(table model.RawTable) ([]model.SalesTransaction, *model.QualityReport, error) {
	cols, err := resolveSalesColumns(table.Columns)
	if err != nil {
		return nil, nil, err
	}

	report := &model.QualityReport{
		TotalRecords:    len(table.Rows),
		Recommendations: []string{},
	}

	var (
		records        []model.SalesTransaction
		invalidInvoice int
		seen           = make(map[string]bool, len(table.Rows))
	)

	for _, row := range table.Rows {
		postedRaw := strings.TrimSpace(table.Cell(row, cols.posted))
		posted, ok := parseDate(postedRaw)
		if !ok {
			report.InvalidDates++
		}

		invoice := time.Time{}
		if cols.invoice >= 0 {
			raw := strings.TrimSpace(table.Cell(row, cols.invoice))
			if inv, invOK := parseDate(raw); invOK {
				invoice = inv
			} else {
				invalidInvoice++
			}
		}

		price := decimal.Zero
		if cols.price >= 0 {
			var priceOK bool
			price, priceOK = parsePrice(table.Cell(row, cols.price))
			if !priceOK {
				report.InvalidPrices++
			}
		}

		customer := strings.TrimSpace(table.Cell(row, cols.customer))

		// Rows without a posted date or customer carry no usable fact.
		if !ok || customer == "" {
			continue
		}

		if key := strings.Join(row, "\x1f"); seen[key] {
			report.DuplicateRecords++
		} else {
			seen[key] = true
		}

		records = append(records, model.SalesTransaction{
			PostedDate:          posted,
			InvoiceDate:         invoice,
			Customer:            customer,
			Salesperson:         strings.TrimSpace(table.Cell(row, cols.salesperson)),
			OriginalSalesperson: strings.TrimSpace(table.Cell(row, cols.salesperson)),
			Item:                strings.TrimSpace(table.Cell(row, cols.item)),
			Quantity:            parseQuantity(table.Cell(row, cols.quantity)),
			NetPrice:            price,
		})
	}

	report.ValidRecords = len(records)
	if report.TotalRecords > 0 {
		report.DataCompletenessScore = float64(report.ValidRecords) / float64(report.TotalRecords)
	}

	if report.InvalidDates > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("%d invalid dates in Posted date", report.InvalidDates))
	}
	if invalidInvoice > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("%d invalid dates in Invoice date", invalidInvoice))
	}
	if report.InvalidPrices > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("%d invalid prices", report.InvalidPrices))
	}

	return records, report, nil
}

// dateFormats are tried in order. The sales export uses US-style slash
// dates; ISO dates show up in hand-edited files.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
	"2006-01-02 15:04:05",
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return model.Midnight(t), true
		}
	}
	return time.Time{}, false
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseQuantity(raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
