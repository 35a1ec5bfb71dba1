package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wellcrafted/reawaken/internal/model"
)

func TestSynthesizeInsights(t *testing.T) {
	customers := []model.DormantCustomer{
		{
			Customer:        "Acme Vineyards",
			Salesperson:     "Mike Allen",
			TotalValue:      decimal.RequireFromString("1500.50"),
			ChurnRiskScore:  0.85,
			SeasonalPattern: "Winter buyer",
		},
		{
			Customer:        "Barrel House",
			Salesperson:     "Mike Allen",
			TotalValue:      decimal.RequireFromString("400"),
			ChurnRiskScore:  0.40,
			SeasonalPattern: "Winter buyer",
		},
		{
			Customer:       "Cork & Cask",
			Salesperson:    "Dana Reyes",
			TotalValue:     decimal.RequireFromString("700"),
			ChurnRiskScore: 0.60,
		},
	}
	summaries := []model.RepSummary{
		{
			Salesperson:          "Mike Allen",
			DormantCustomerCount: 2,
			TotalValueAtRisk:     decimal.RequireFromString("1900.50"),
			QuickWinCount:        1,
			AverageChurnRisk:     0.625,
		},
		{
			Salesperson:          "Dana Reyes",
			DormantCustomerCount: 1,
			TotalValueAtRisk:     decimal.RequireFromString("700"),
			AverageChurnRisk:     0.60,
		},
	}

	got := SynthesizeInsights(customers, summaries)

	assert.Empty(t, got.Error)
	assert.Equal(t,
		"Focus on Mike Allen, who has $1,900.50 in sales at risk across 2 dormant customers. Average churn risk: 62.5%",
		got.TopPriorityRep)
	assert.Equal(t,
		"Prioritize outreach to Acme Vineyards. They represent $1,500.50 in potential lost revenue and are assigned to Mike Allen. Churn risk: 85.0%",
		got.TopPriorityCustomer)
	assert.Equal(t,
		"Mike Allen has 1 quick-win opportunities (customers with lower values but higher re-engagement potential)",
		got.QuickWins)
	assert.Equal(t,
		"2 dormant customers are Winter buyers. Consider timing outreach based on their seasonal patterns.",
		got.Seasonal)
}

func TestSynthesizeInsightsEmptyInputs(t *testing.T) {
	summaries := []model.RepSummary{{Salesperson: "Mike Allen"}}
	customers := []model.DormantCustomer{{Customer: "Acme Vineyards"}}

	for name, got := range map[string]model.InsightSet{
		"no customers": SynthesizeInsights(nil, summaries),
		"no summaries": SynthesizeInsights(customers, nil),
		"nothing":      SynthesizeInsights(nil, nil),
	} {
		assert.Equal(t, "No dormant customers found for analysis", got.Error, name)
		assert.Empty(t, got.TopPriorityRep, name)
		assert.Empty(t, got.TopPriorityCustomer, name)
	}
}

func TestSynthesizeInsightsTopCustomerTieKeepsFirst(t *testing.T) {
	customers := []model.DormantCustomer{
		{Customer: "First", Salesperson: "Rep", TotalValue: decimal.NewFromInt(500), ChurnRiskScore: 0.5},
		{Customer: "Second", Salesperson: "Rep", TotalValue: decimal.NewFromInt(500), ChurnRiskScore: 0.9},
	}
	summaries := []model.RepSummary{
		{Salesperson: "Rep", DormantCustomerCount: 2, TotalValueAtRisk: decimal.NewFromInt(1000)},
	}

	got := SynthesizeInsights(customers, summaries)
	assert.Contains(t, got.TopPriorityCustomer, "Prioritize outreach to First.")
}

func TestSynthesizeInsightsOmitsUnsupportedFacts(t *testing.T) {
	// No quick wins, no seasonal labels.
	customers := []model.DormantCustomer{
		{Customer: "Acme Vineyards", Salesperson: "Rep", TotalValue: decimal.NewFromInt(900), ChurnRiskScore: 0.5},
	}
	summaries := []model.RepSummary{
		{Salesperson: "Rep", DormantCustomerCount: 1, TotalValueAtRisk: decimal.NewFromInt(900)},
	}

	got := SynthesizeInsights(customers, summaries)
	assert.NotEmpty(t, got.TopPriorityRep)
	assert.Empty(t, got.QuickWins)
	assert.Empty(t, got.Seasonal)
}

func TestDominantSeasonalPattern(t *testing.T) {
	withPattern := func(p string) model.DormantCustomer {
		return model.DormantCustomer{SeasonalPattern: p}
	}

	t.Run("most frequent label wins", func(t *testing.T) {
		got := dominantSeasonalPattern([]model.DormantCustomer{
			withPattern("Summer buyer"),
			withPattern("Winter buyer"),
			withPattern("Winter buyer"),
		})
		assert.Equal(t, "Winter buyer", got.pattern)
		assert.Equal(t, 2, got.count)
	})

	t.Run("tie keeps the first encountered", func(t *testing.T) {
		got := dominantSeasonalPattern([]model.DormantCustomer{
			withPattern("Summer buyer"),
			withPattern("Winter buyer"),
		})
		assert.Equal(t, "Summer buyer", got.pattern)
	})

	t.Run("no labels", func(t *testing.T) {
		got := dominantSeasonalPattern([]model.DormantCustomer{{}, {}})
		assert.Empty(t, got.pattern)
	})
}
