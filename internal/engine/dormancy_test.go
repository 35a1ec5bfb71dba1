package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellcrafted/reawaken/internal/model"
)

func TestSelectDormant(t *testing.T) {
	// As-of 2025-06-01: window starts 2024-12-03, cutoff 2025-04-17.
	cfg := testConfig(t, "2025-06-01")

	records := []model.SalesTransaction{
		// Last order well inside the quiet interval.
		txn(t, "Dormant Co", "Mike Allen", "Pinot Noir", "2025-01-15", 12, "150"),
		txn(t, "Dormant Co", "Mike Allen", "Chardonnay", "2025-03-15", 6, "300"),
		// Ordered after the cutoff: active.
		txn(t, "Active Co", "Dana Reyes", "Merlot", "2025-05-20", 3, "90"),
		// Only orders before the window start: out of scope entirely.
		txn(t, "Ancient Co", "Dana Reyes", "Riesling", "2024-11-01", 2, "60"),
	}

	windows := SelectDormant(records, cfg)
	require.Len(t, windows, 1)

	win := windows[0]
	assert.Equal(t, "Dormant Co", win.Customer)
	assert.Equal(t, day(t, "2025-03-15"), win.LastOrder)
	require.Len(t, win.Transactions, 2)
	assert.True(t, win.Transactions[0].PostedDate.Before(win.Transactions[1].PostedDate))
}

func TestSelectDormantCutoffBoundary(t *testing.T) {
	cfg := testConfig(t, "2025-06-01")
	cutoff := cfg.DormancyCutoff()

	tests := []struct {
		name    string
		last    string
		dormant bool
	}{
		{name: "day before cutoff is dormant", last: "2025-04-16", dormant: true},
		{name: "exactly on cutoff is active", last: "2025-04-17", dormant: false},
		{name: "exactly on window start is dormant", last: "2024-12-03", dormant: true},
	}

	require.Equal(t, day(t, "2025-04-17"), cutoff)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []model.SalesTransaction{
				txn(t, "Edge Co", "Mike Allen", "Pinot Noir", tt.last, 1, "100"),
			}
			windows := SelectDormant(records, cfg)
			if tt.dormant {
				require.Len(t, windows, 1)
			} else {
				assert.Empty(t, windows)
			}
		})
	}
}

func TestSelectDormantNoOrdersNeverDormant(t *testing.T) {
	cfg := testConfig(t, "2025-06-01")

	// A customer whose only activity predates the window was never active
	// in the period, so they cannot go dormant within it.
	records := []model.SalesTransaction{
		txn(t, "Ghost Co", "Mike Allen", "Pinot Noir", "2024-01-01", 1, "100"),
	}
	assert.Empty(t, SelectDormant(records, cfg))

	// No records at all.
	assert.Empty(t, SelectDormant(nil, cfg))
}

func TestSelectDormantDeterministicOrder(t *testing.T) {
	cfg := testConfig(t, "2025-06-01")

	records := []model.SalesTransaction{
		txn(t, "Zeta Co", "Mike Allen", "Pinot Noir", "2025-02-01", 1, "100"),
		txn(t, "Alpha Co", "Dana Reyes", "Merlot", "2025-02-01", 1, "100"),
		txn(t, "Mid Co", "Mike Allen", "Chardonnay", "2025-02-01", 1, "100"),
	}

	windows := SelectDormant(records, cfg)
	require.Len(t, windows, 3)
	assert.Equal(t, "Alpha Co", windows[0].Customer)
	assert.Equal(t, "Mid Co", windows[1].Customer)
	assert.Equal(t, "Zeta Co", windows[2].Customer)
}
