package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wellcrafted/reawaken/internal/model"
)

// day parses an ISO date into the UTC midnight used throughout the pipeline.
func day(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	return model.Midnight(d)
}

// txn builds one cleaned transaction for fixture data.
func txn(t *testing.T, customer, rep, item, posted string, qty int, price string) model.SalesTransaction {
	t.Helper()
	return model.SalesTransaction{
		PostedDate:          day(t, posted),
		Customer:            customer,
		Salesperson:         rep,
		OriginalSalesperson: rep,
		Item:                item,
		Quantity:            qty,
		NetPrice:            decimal.RequireFromString(price),
	}
}

// testConfig returns the default parameters pinned to a fixed as-of date so
// fixtures are stable.
func testConfig(t *testing.T, asOf string) model.AnalysisConfig {
	t.Helper()
	cfg := model.DefaultAnalysisConfig()
	cfg.AsOfDate = day(t, asOf)
	return cfg
}
