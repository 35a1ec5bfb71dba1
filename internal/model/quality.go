package model

// QualityReport summarizes how clean a raw sales batch was. It is created by
// the validator, updated exactly once after reconciliation to record the
// unmapped-customer count, and frozen afterwards.
type QualityReport struct {
	TotalRecords            int      `json:"total_records"`
	ValidRecords            int      `json:"valid_records"`
	DuplicateRecords        int      `json:"duplicate_records"`
	MissingCustomerMappings int      `json:"missing_customer_mappings"`
	InvalidDates            int      `json:"invalid_dates"`
	InvalidPrices           int      `json:"invalid_prices"`
	DataCompletenessScore   float64  `json:"data_completeness_score"`
	Recommendations         []string `json:"recommendations"`
}
