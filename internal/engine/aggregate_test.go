package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellcrafted/reawaken/internal/model"
)

func dormant(customer, rep, total string, risk float64) model.DormantCustomer {
	return model.DormantCustomer{
		Customer:       customer,
		Salesperson:    rep,
		TotalValue:     decimal.RequireFromString(total),
		ChurnRiskScore: risk,
	}
}

func TestAggregateByRep(t *testing.T) {
	cfg := testConfig(t, "2025-06-01")

	customers := []model.DormantCustomer{
		dormant("Acme Vineyards", "Mike Allen", "1500", 0.8),
		dormant("Barrel House", "Mike Allen", "400", 0.4),
		dormant("Cork & Cask", "Dana Reyes", "700", 0.6),
	}

	summaries := AggregateByRep(customers, cfg)
	require.Len(t, summaries, 2)

	// Sorted by value at risk descending.
	mike := summaries[0]
	assert.Equal(t, "Mike Allen", mike.Salesperson)
	assert.Equal(t, 2, mike.DormantCustomerCount)
	assert.True(t, mike.TotalValueAtRisk.Equal(decimal.NewFromInt(1900)))
	assert.Equal(t, 1, mike.HighValueCount)
	assert.Equal(t, 1, mike.QuickWinCount)
	assert.InDelta(t, 0.6, mike.AverageChurnRisk, 1e-9)

	dana := summaries[1]
	assert.Equal(t, "Dana Reyes", dana.Salesperson)
	assert.Equal(t, 1, dana.DormantCustomerCount)
	assert.Equal(t, 0, dana.HighValueCount)
	assert.Equal(t, 0, dana.QuickWinCount)
}

func TestAggregateByRepClassificationBoundaries(t *testing.T) {
	cfg := testConfig(t, "2025-06-01") // high 1000, quick win 500

	tests := []struct {
		name          string
		total         string
		wantHighValue int
		wantQuickWin  int
	}{
		{name: "exactly at high threshold", total: "1000", wantHighValue: 1},
		{name: "just under high threshold", total: "999.99"},
		{name: "exactly at quick-win threshold", total: "500", wantQuickWin: 1},
		{name: "just above quick-win threshold", total: "500.01"},
		{name: "zero value is a quick win", total: "0", wantQuickWin: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries := AggregateByRep([]model.DormantCustomer{
				dormant("C", "Rep", tt.total, 0.5),
			}, cfg)
			require.Len(t, summaries, 1)
			assert.Equal(t, tt.wantHighValue, summaries[0].HighValueCount)
			assert.Equal(t, tt.wantQuickWin, summaries[0].QuickWinCount)
		})
	}
}

func TestAggregateByRepHighValueAndQuickWinExclusive(t *testing.T) {
	// Shrink the band so one customer qualifies for both; high value wins.
	cfg := testConfig(t, "2025-06-01")
	cfg.HighValueThreshold = decimal.NewFromInt(100)
	cfg.QuickWinThreshold = decimal.NewFromInt(500)

	summaries := AggregateByRep([]model.DormantCustomer{
		dormant("C", "Rep", "300", 0.5),
	}, cfg)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].HighValueCount)
	assert.Equal(t, 0, summaries[0].QuickWinCount)
}

func TestAggregateByRepValueConservation(t *testing.T) {
	cfg := testConfig(t, "2025-06-01")

	customers := []model.DormantCustomer{
		dormant("A", "Rep1", "123.45", 0.1),
		dormant("B", "Rep2", "678.90", 0.2),
		dormant("C", "Rep1", "0.01", 0.3),
		dormant("D", "Rep3", "99999.99", 0.4),
		dormant("E", "Rep2", "250.00", 0.5),
	}

	summaries := AggregateByRep(customers, cfg)

	customerTotal := decimal.Zero
	for _, c := range customers {
		customerTotal = customerTotal.Add(c.TotalValue)
	}
	summaryTotal := decimal.Zero
	customerCount := 0
	for _, s := range summaries {
		summaryTotal = summaryTotal.Add(s.TotalValueAtRisk)
		customerCount += s.DormantCustomerCount
	}

	assert.True(t, customerTotal.Equal(summaryTotal),
		"customers %s vs summaries %s", customerTotal, summaryTotal)
	assert.Equal(t, len(customers), customerCount)
}

func TestAggregateByRepStableTieOrder(t *testing.T) {
	cfg := testConfig(t, "2025-06-01")

	// Equal totals: reps keep first-encounter order.
	summaries := AggregateByRep([]model.DormantCustomer{
		dormant("A", "Second Seen", "500", 0.5),
		dormant("B", "First Seen", "500", 0.5),
	}, cfg)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Second Seen", summaries[0].Salesperson)
	assert.Equal(t, "First Seen", summaries[1].Salesperson)
}

func TestAggregateByRepEmpty(t *testing.T) {
	summaries := AggregateByRep(nil, testConfig(t, "2025-06-01"))
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}
