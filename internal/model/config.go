package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// AnalysisConfig carries every tunable parameter for one analysis run. It is
// passed explicitly into each pipeline stage; nothing in the engine reads
// global state.
type AnalysisConfig struct {
	// AsOfDate is the fixed reference date all recency windows are computed
	// against. Defaults to the current UTC date.
	AsOfDate time.Time `json:"as_of_date"`

	// DormantDaysThreshold is the trailing grace period: a customer whose
	// last order is at least this many days old is a dormancy candidate.
	DormantDaysThreshold int `json:"dormant_days_threshold" validate:"gt=0"`

	// AnalysisPeriodMonths is the lookback window, counted in fixed 30-day
	// blocks rather than calendar months.
	AnalysisPeriodMonths int `json:"analysis_period_months" validate:"gt=0"`

	// HighValueThreshold marks a dormant customer as high value when their
	// window spend meets or exceeds it.
	HighValueThreshold decimal.Decimal `json:"high_value_threshold"`

	// QuickWinThreshold marks a dormant customer as a quick win when their
	// window spend is at or below it.
	QuickWinThreshold decimal.Decimal `json:"quick_win_threshold"`

	// MinOrdersForPattern is the minimum transaction count before seasonal
	// pattern detection is attempted.
	MinOrdersForPattern int `json:"min_orders_for_pattern" validate:"gt=0"`
}

// DefaultAnalysisConfig returns the standard run parameters: a 45-day
// dormancy threshold over a 6-month window.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		AsOfDate:             Midnight(time.Now().UTC()),
		DormantDaysThreshold: 45,
		AnalysisPeriodMonths: 6,
		HighValueThreshold:   decimal.NewFromInt(1000),
		QuickWinThreshold:    decimal.NewFromInt(500),
		MinOrdersForPattern:  6,
	}
}

// Validate checks the configuration for structurally invalid values.
func (c AnalysisConfig) Validate() error {
	return validate.Struct(c)
}

// AnalysisStart returns the inclusive lower bound of the lookback window.
// Months are approximated as 30-day blocks; this is a fixed convention the
// rest of the pipeline (and its tests) depend on.
func (c AnalysisConfig) AnalysisStart() time.Time {
	return c.AsOfDate.AddDate(0, 0, -c.AnalysisPeriodMonths*30)
}

// DormancyCutoff returns the exclusive upper bound of the dormant interval:
// a last order on or after this date means the customer is still active.
func (c AnalysisConfig) DormancyCutoff() time.Time {
	return c.AsOfDate.AddDate(0, 0, -c.DormantDaysThreshold)
}

// Midnight truncates a time to UTC midnight. All pipeline dates are
// calendar dates; normalizing here keeps day arithmetic exact.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var validate = validator.New(validator.WithRequiredStructEnabled())
