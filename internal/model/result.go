package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunSummary is the headline block at the top of a RunResult.
type RunSummary struct {
	TotalDormantCustomers int             `json:"total_dormant_customers"`
	TotalValueAtRisk      decimal.Decimal `json:"total_value_at_risk"`
	AverageChurnRisk      float64         `json:"average_churn_risk"`
	DataQualityScore      float64         `json:"data_quality_score"`
}

// InsightSet holds the derived strategic facts. Fields are empty when the
// underlying data cannot support them; Error is set instead of partial
// results when there is nothing to analyze.
type InsightSet struct {
	TopPriorityRep      string `json:"top_priority_rep,omitempty"`
	TopPriorityCustomer string `json:"top_priority_customer,omitempty"`
	QuickWins           string `json:"quick_wins,omitempty"`
	Seasonal            string `json:"seasonal_insight,omitempty"`
	Error               string `json:"error,omitempty"`
}

// RunResult is the complete output of one analysis run, handed to the HTTP
// and report-rendering collaborators.
type RunResult struct {
	Summary                RunSummary        `json:"summary"`
	SalespersonSummaries   []RepSummary      `json:"salesperson_summaries"`
	DormantCustomers       []DormantCustomer `json:"dormant_customers"`
	Insights               InsightSet        `json:"insights"`
	DataQualityReport      QualityReport     `json:"data_quality_report"`
	ProcessingTimestamp    time.Time         `json:"processing_timestamp"`
	TotalCustomersAnalyzed int               `json:"total_customers_analyzed"`
	DataAccuracyScore      float64           `json:"data_accuracy_score"`
}
