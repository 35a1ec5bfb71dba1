package engine

import (
	"log/slog"
	"strings"

	"github.com/wellcrafted/reawaken/internal/model"
)

// BuildCustomerMapping extracts the authoritative customer→representative
// assignments from a planning table. The relevant columns are discovered by
// fuzzy header match; when either cannot be found the mapping is empty and
// every record keeps its original ownership.
func BuildCustomerMapping(planning model.RawTable) map[string]string {
	customerCol := ResolveColumn(planning.Columns, customerColumnRules)
	repCol := ResolveColumn(planning.Columns, repColumnRules)

	if customerCol < 0 || repCol < 0 {
		slog.Warn("planning table columns not found, keeping original ownership",
			"customer_col_found", customerCol >= 0,
			"rep_col_found", repCol >= 0)
		return map[string]string{}
	}

	mapping := make(map[string]string, len(planning.Rows))
	for _, row := range planning.Rows {
		customer := strings.TrimSpace(planning.Cell(row, customerCol))
		rep := strings.TrimSpace(planning.Cell(row, repCol))
		if customer == "" || rep == "" {
			continue
		}
		// Later rows win, matching plain map assignment over the sheet.
		mapping[customer] = rep
	}
	return mapping
}

// ReconcileOwnership overrides each record's salesperson with the planning
// assignment where one exists. The planning table is authoritative: a mapped
// rep always wins, even against a historically different owner. Records
// keep their pre-resolution value in OriginalSalesperson for audit.
//
// The returned count is the number of records left with no representative at
// all after reconciliation; it feeds the quality report's mapping-gap count.
func ReconcileOwnership(records []model.SalesTransaction, mapping map[string]string) ([]model.SalesTransaction, int) {
	out := make([]model.SalesTransaction, len(records))
	unmapped := 0

	for i, rec := range records {
		rec.OriginalSalesperson = rec.Salesperson
		if rep, ok := mapping[rec.Customer]; ok {
			rec.Salesperson = rep
		}
		if rec.Salesperson == "" {
			unmapped++
		}
		out[i] = rec
	}

	return out, unmapped
}
