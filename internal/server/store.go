// Package server exposes the analysis engine over HTTP: file upload,
// background job execution, status polling and result query views.
package server

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/model"
)

// JobStatus is the lifecycle state of an analysis job.
type JobStatus string

// Job lifecycle states.
const (
	StatusUploaded   JobStatus = "uploaded"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// JobFiles records the uploaded filenames for a job.
type JobFiles struct {
	SalesFile    string `json:"sales_file"`
	PlanningFile string `json:"planning_file"`
}

// JobResultSummary is the short completion digest attached to a finished
// job's status.
type JobResultSummary struct {
	DormantCustomers int             `json:"dormant_customers"`
	TotalValueAtRisk decimal.Decimal `json:"total_value_at_risk"`
	DataAccuracy     float64         `json:"data_accuracy"`
}

// JobState is the pollable status of one job.
type JobState struct {
	Status        JobStatus         `json:"status"`
	Progress      int               `json:"progress"`
	Message       string            `json:"message"`
	Timestamp     time.Time         `json:"timestamp"`
	Files         JobFiles          `json:"files"`
	Error         string            `json:"error,omitempty"`
	ResultSummary *JobResultSummary `json:"result_summary,omitempty"`
}

// RunStore is an explicit keyed store for job state and run results, owned
// by the server. Nothing else in the process holds job bookkeeping.
type RunStore struct {
	mu      sync.RWMutex
	status  map[string]JobState
	results map[string]*model.RunResult
}

// NewRunStore creates an empty store.
func NewRunStore() *RunStore {
	return &RunStore{
		status:  make(map[string]JobState),
		results: make(map[string]*model.RunResult),
	}
}

// CreateJob registers a freshly uploaded job.
func (s *RunStore) CreateJob(id string, files JobFiles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[id] = JobState{
		Status:    StatusUploaded,
		Message:   "Files uploaded successfully",
		Timestamp: time.Now().UTC(),
		Files:     files,
	}
}

// SetProcessing advances a job's progress marker.
func (s *RunStore) SetProcessing(id string, progress int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.status[id]
	if !ok {
		return
	}
	state.Status = StatusProcessing
	state.Progress = progress
	state.Message = message
	state.Timestamp = time.Now().UTC()
	s.status[id] = state
}

// Complete stores a finished result and marks the job completed.
func (s *RunStore) Complete(id string, result *model.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.status[id]
	if !ok {
		return
	}
	s.results[id] = result
	state.Status = StatusCompleted
	state.Progress = 100
	state.Message = "Processing completed successfully"
	state.Timestamp = time.Now().UTC()
	state.ResultSummary = &JobResultSummary{
		DormantCustomers: len(result.DormantCustomers),
		TotalValueAtRisk: result.Summary.TotalValueAtRisk,
		DataAccuracy:     result.DataAccuracyScore,
	}
	s.status[id] = state
}

// Fail marks the job failed with the given reason.
func (s *RunStore) Fail(id string, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.status[id]
	if !ok {
		return
	}
	state.Status = StatusFailed
	state.Progress = 0
	state.Message = "Processing failed: " + reason
	state.Error = reason
	state.Timestamp = time.Now().UTC()
	s.status[id] = state
}

// Status returns the pollable state for a job.
func (s *RunStore) Status(id string) (JobState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.status[id]
	return state, ok
}

// Result returns the full run result for a completed job.
func (s *RunStore) Result(id string) (*model.RunResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	return result, ok
}
