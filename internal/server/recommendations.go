package server

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/model"
)

// urgentRiskThreshold is the churn-risk level above which outreach is
// flagged as immediate.
const urgentRiskThreshold = 0.7

// personalVisitValue is the window spend above which a personal visit or
// special offer is suggested.
var personalVisitValue = decimal.NewFromInt(1000)

// CustomerRecommendations derives re-engagement suggestions for one dormant
// customer from their scored profile.
func CustomerRecommendations(c model.DormantCustomer) []string {
	recommendations := []string{}

	if c.ChurnRiskScore > urgentRiskThreshold {
		recommendations = append(recommendations,
			"HIGH PRIORITY: Immediate outreach recommended due to high churn risk")
	}

	if len(c.PreferredProducts) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Mention these products they previously enjoyed: %s",
			strings.Join(c.PreferredProducts, ", ")))
	}

	if c.SeasonalPattern != "" {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider timing based on their %s pattern", c.SeasonalPattern))
	}

	if c.TotalValue.GreaterThan(personalVisitValue) {
		recommendations = append(recommendations,
			"High-value customer - consider special offers or personal visit")
	}

	return recommendations
}

// PerformanceInsights summarizes rep-level signals across the whole run.
type PerformanceInsights struct {
	TotalValueAtRisk             decimal.Decimal `json:"total_value_at_risk"`
	AverageDormantCustomersPerRep float64        `json:"average_dormant_customers_per_rep"`
	TopPerformer                 string          `json:"top_performer,omitempty"`
	NeedsAttention               []string        `json:"needs_attention"`
}

// RepPerformanceInsights derives cross-representative signals: total value
// at risk, average dormant-customer load, the top rep by value at risk, and
// up to three reps whose average churn risk is critical.
func RepPerformanceInsights(summaries []model.RepSummary) PerformanceInsights {
	insights := PerformanceInsights{
		TotalValueAtRisk: decimal.Zero,
		NeedsAttention:   []string{},
	}
	if len(summaries) == 0 {
		return insights
	}

	totalCustomers := 0
	for _, s := range summaries {
		insights.TotalValueAtRisk = insights.TotalValueAtRisk.Add(s.TotalValueAtRisk)
		totalCustomers += s.DormantCustomerCount
		if s.AverageChurnRisk > urgentRiskThreshold && len(insights.NeedsAttention) < 3 {
			insights.NeedsAttention = append(insights.NeedsAttention, s.Salesperson)
		}
	}

	insights.AverageDormantCustomersPerRep = float64(totalCustomers) / float64(len(summaries))
	insights.TopPerformer = summaries[0].Salesperson

	return insights
}
