// Package config loads run and report configuration from Viper and the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/wellcrafted/reawaken/internal/model"
)

// LoadAnalysisConfig builds an AnalysisConfig from Viper keys, falling back
// to the model defaults for anything unset. Flags bound by the CLI take
// precedence through Viper's usual ordering.
func LoadAnalysisConfig() (model.AnalysisConfig, error) {
	cfg := model.DefaultAnalysisConfig()

	if v := viper.GetString("analysis.as_of_date"); v != "" {
		asOf, err := time.Parse("2006-01-02", v)
		if err != nil {
			return cfg, fmt.Errorf("invalid analysis.as_of_date %q: %w", v, err)
		}
		cfg.AsOfDate = model.Midnight(asOf)
	}
	if v := viper.GetInt("analysis.dormant_days"); v > 0 {
		cfg.DormantDaysThreshold = v
	}
	if v := viper.GetInt("analysis.window_months"); v > 0 {
		cfg.AnalysisPeriodMonths = v
	}
	if v := viper.GetFloat64("analysis.high_value_threshold"); v > 0 {
		cfg.HighValueThreshold = decimal.NewFromFloat(v)
	}
	if v := viper.GetFloat64("analysis.quick_win_threshold"); v > 0 {
		cfg.QuickWinThreshold = decimal.NewFromFloat(v)
	}
	if v := viper.GetInt("analysis.min_orders_for_pattern"); v > 0 {
		cfg.MinOrdersForPattern = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid analysis configuration: %w", err)
	}
	return cfg, nil
}
