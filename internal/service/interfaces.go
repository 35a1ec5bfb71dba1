// Package service defines the interfaces between the analysis engine and its
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/wellcrafted/reawaken/internal/model"
)

// ReportWriter renders a completed run into an external report surface
// (e.g., a multi-sheet spreadsheet).
type ReportWriter interface {
	Write(ctx context.Context, result *model.RunResult) error
}

// RowLoader produces raw tabular batches for the engine. Implementations own
// all file and format concerns; the engine only ever sees RawTables.
type RowLoader interface {
	LoadSales(path string) (model.RawTable, error)
	LoadPlanning(path string) (model.RawTable, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
