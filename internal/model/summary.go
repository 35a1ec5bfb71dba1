package model

import "github.com/shopspring/decimal"

// RepSummary aggregates the dormant customers assigned to one sales
// representative. Only representatives with at least one dormant customer
// get a summary.
type RepSummary struct {
	Salesperson          string          `json:"salesperson"`
	DormantCustomerCount int             `json:"dormant_customer_count"`
	TotalValueAtRisk     decimal.Decimal `json:"total_value_at_risk"`
	HighValueCount       int             `json:"high_value_dormant_count"`
	QuickWinCount        int             `json:"quick_win_count"`
	AverageChurnRisk     float64         `json:"average_churn_risk"`
}
