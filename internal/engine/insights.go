package engine

import (
	"fmt"

	"github.com/wellcrafted/reawaken/internal/model"
)

// SynthesizeInsights derives the narrative-ready facts from a scored run.
// Pure function: same inputs, same facts. When either input list is empty it
// returns a single error marker instead of partial results so renderers can
// show a "no data" state.
func SynthesizeInsights(customers []model.DormantCustomer, summaries []model.RepSummary) model.InsightSet {
	if len(customers) == 0 || len(summaries) == 0 {
		return model.InsightSet{Error: "No dormant customers found for analysis"}
	}

	var insights model.InsightSet

	topRep := summaries[0]
	insights.TopPriorityRep = fmt.Sprintf(
		"Focus on %s, who has %s in sales at risk across %d dormant customers. Average churn risk: %.1f%%",
		topRep.Salesperson,
		model.FormatDollars(topRep.TotalValueAtRisk),
		topRep.DormantCustomerCount,
		topRep.AverageChurnRisk*100)

	// Strictly-greater comparison keeps the first encountered on ties.
	top := customers[0]
	for _, c := range customers[1:] {
		if c.TotalValue.GreaterThan(top.TotalValue) {
			top = c
		}
	}
	insights.TopPriorityCustomer = fmt.Sprintf(
		"Prioritize outreach to %s. They represent %s in potential lost revenue and are assigned to %s. Churn risk: %.1f%%",
		top.Customer,
		model.FormatDollars(top.TotalValue),
		top.Salesperson,
		top.ChurnRiskScore*100)

	var bestQuickWin *model.RepSummary
	for i := range summaries {
		s := &summaries[i]
		if s.QuickWinCount > 0 && (bestQuickWin == nil || s.QuickWinCount > bestQuickWin.QuickWinCount) {
			bestQuickWin = s
		}
	}
	if bestQuickWin != nil {
		insights.QuickWins = fmt.Sprintf(
			"%s has %d quick-win opportunities (customers with lower values but higher re-engagement potential)",
			bestQuickWin.Salesperson, bestQuickWin.QuickWinCount)
	}

	if seasonal := dominantSeasonalPattern(customers); seasonal.pattern != "" {
		insights.Seasonal = fmt.Sprintf(
			"%d dormant customers are %ss. Consider timing outreach based on their seasonal patterns.",
			seasonal.count, seasonal.pattern)
	}

	return insights
}

type patternCount struct {
	pattern string
	count   int
}

// dominantSeasonalPattern finds the most frequent seasonal label among
// customers that have one, keeping the first-encountered label on ties.
func dominantSeasonalPattern(customers []model.DormantCustomer) patternCount {
	counts := make(map[string]int)
	var order []string
	for _, c := range customers {
		if c.SeasonalPattern == "" {
			continue
		}
		if counts[c.SeasonalPattern] == 0 {
			order = append(order, c.SeasonalPattern)
		}
		counts[c.SeasonalPattern]++
	}

	var best patternCount
	for _, p := range order {
		if counts[p] > best.count {
			best = patternCount{pattern: p, count: counts[p]}
		}
	}
	return best
}
