package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/model"
)

// AggregateByRep groups dormant customers by representative and computes
// per-rep totals. High-value and quick-win classifications are mutually
// exclusive, with high value taking precedence. The result is sorted by
// total value at risk descending; ties keep the order reps were first
// encountered in the customer list.
func AggregateByRep(customers []model.DormantCustomer, cfg model.AnalysisConfig) []model.RepSummary {
	index := make(map[string]int)
	summaries := make([]model.RepSummary, 0)
	riskTotals := make([]float64, 0)

	for _, c := range customers {
		i, ok := index[c.Salesperson]
		if !ok {
			i = len(summaries)
			index[c.Salesperson] = i
			summaries = append(summaries, model.RepSummary{
				Salesperson:      c.Salesperson,
				TotalValueAtRisk: decimal.Zero,
			})
			riskTotals = append(riskTotals, 0)
		}

		summaries[i].DormantCustomerCount++
		summaries[i].TotalValueAtRisk = summaries[i].TotalValueAtRisk.Add(c.TotalValue)
		riskTotals[i] += c.ChurnRiskScore

		switch {
		case c.TotalValue.GreaterThanOrEqual(cfg.HighValueThreshold):
			summaries[i].HighValueCount++
		case c.TotalValue.LessThanOrEqual(cfg.QuickWinThreshold):
			summaries[i].QuickWinCount++
		}
	}

	for i := range summaries {
		summaries[i].AverageChurnRisk = riskTotals[i] / float64(summaries[i].DormantCustomerCount)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalValueAtRisk.GreaterThan(summaries[j].TotalValueAtRisk)
	})

	return summaries
}
