package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/model"
)

// Analyzer runs the full dormancy pipeline: validate, reconcile ownership,
// select dormant customers, score each, aggregate per representative, and
// synthesize insights. It holds no mutable shared state; concurrent runs
// over separate inputs are safe.
type Analyzer struct {
	now      func() time.Time
	progress func(done, total int)
	cfg      model.AnalysisConfig
}

// New creates an analyzer for the given configuration. A zero as-of date
// defaults to the current UTC date.
func New(cfg model.AnalysisConfig) (*Analyzer, error) {
	if cfg.AsOfDate.IsZero() {
		cfg.AsOfDate = model.Midnight(time.Now().UTC())
	}
	cfg.AsOfDate = model.Midnight(cfg.AsOfDate)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	return &Analyzer{cfg: cfg, now: time.Now}, nil
}

// Config returns the run configuration.
func (a *Analyzer) Config() model.AnalysisConfig {
	return a.cfg
}

// OnProgress registers a callback invoked after each customer is scored.
func (a *Analyzer) OnProgress(fn func(done, total int)) {
	a.progress = fn
}

// Run executes one analysis over a raw sales batch and planning table.
// The computation is synchronous and bounded; callers wanting to keep it off
// a request path run it in their own goroutine.
func (a *Analyzer) Run(sales, planning model.RawTable) (*model.RunResult, error) {
	records, report, err := ValidateRows(sales)
	if err != nil {
		return nil, fmt.Errorf("failed to validate sales data: %w", err)
	}
	slog.Info("validated sales batch",
		"total", report.TotalRecords,
		"valid", report.ValidRecords,
		"duplicates", report.DuplicateRecords)

	mapping := BuildCustomerMapping(planning)
	records, unmapped := ReconcileOwnership(records, mapping)
	report.MissingCustomerMappings = unmapped
	slog.Info("reconciled ownership", "mappings", len(mapping), "unmapped_records", unmapped)

	windows := SelectDormant(records, a.cfg)
	slog.Info("selected dormant customers",
		"count", len(windows),
		"window_start", a.cfg.AnalysisStart().Format("2006-01-02"),
		"cutoff", a.cfg.DormancyCutoff().Format("2006-01-02"))

	customers := make([]model.DormantCustomer, 0, len(windows))
	for i, win := range windows {
		customers = append(customers, ScoreCustomer(win, a.cfg))
		if a.progress != nil {
			a.progress(i+1, len(windows))
		}
	}

	summaries := AggregateByRep(customers, a.cfg)
	insights := SynthesizeInsights(customers, summaries)
	accuracy := AccuracyScore(*report)

	totalAtRisk := decimal.Zero
	riskSum := 0.0
	for _, c := range customers {
		totalAtRisk = totalAtRisk.Add(c.TotalValue)
		riskSum += c.ChurnRiskScore
	}
	avgRisk := 0.0
	if len(customers) > 0 {
		avgRisk = riskSum / float64(len(customers))
	}

	return &model.RunResult{
		Summary: model.RunSummary{
			TotalDormantCustomers: len(customers),
			TotalValueAtRisk:      totalAtRisk,
			AverageChurnRisk:      avgRisk,
			DataQualityScore:      accuracy,
		},
		SalespersonSummaries:   summaries,
		DormantCustomers:       customers,
		Insights:               insights,
		DataQualityReport:      *report,
		ProcessingTimestamp:    a.now().UTC(),
		TotalCustomersAnalyzed: distinctCustomers(records),
		DataAccuracyScore:      accuracy,
	}, nil
}

func distinctCustomers(records []model.SalesTransaction) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Customer] = struct{}{}
	}
	return len(seen)
}
