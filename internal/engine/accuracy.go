package engine

import "github.com/wellcrafted/reawaken/internal/model"

// Accuracy blend weights over the quality report's sub-scores.
const (
	CompletenessWeight = 0.4
	ValidityWeight     = 0.3
	MappingWeight      = 0.3
)

// AccuracyScore folds a quality report into a single [0,1] confidence figure
// for the run. An empty batch scores zero outright.
func AccuracyScore(report model.QualityReport) float64 {
	if report.TotalRecords == 0 {
		return 0
	}

	total := float64(report.TotalRecords)
	completeness := clamp01(report.DataCompletenessScore)
	validity := clamp01(1 - float64(report.InvalidDates+report.InvalidPrices)/total)
	mapping := clamp01(1 - float64(report.MissingCustomerMappings)/total)

	return clamp01(completeness*CompletenessWeight +
		validity*ValidityWeight +
		mapping*MappingWeight)
}
