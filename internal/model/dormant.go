package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DormantCustomer is the scored view of one customer who went quiet inside
// the analysis window. One instance per customer per run; immutable after
// creation. The JSON field names are a wire contract consumed verbatim by
// downstream renderers.
type DormantCustomer struct {
	Customer          string          `json:"customer"`
	Salesperson       string          `json:"salesperson"`
	LastOrderDate     time.Time       `json:"last_order_date"`
	DaysSinceOrder    int             `json:"days_since_order"`
	TotalValue        decimal.Decimal `json:"total_6_month_value"`
	OrderCount        int             `json:"order_count_6_months"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ChurnRiskScore    float64         `json:"churn_risk_score"`
	LifetimeValue     decimal.Decimal `json:"customer_lifetime_value"`
	PreferredProducts []string        `json:"preferred_products"`
	SeasonalPattern   string          `json:"seasonal_pattern,omitempty"`
}
