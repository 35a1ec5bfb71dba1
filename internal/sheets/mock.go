package sheets

import (
	"context"
	"sync"

	"github.com/wellcrafted/reawaken/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, result *model.RunResult) error
	LastResult     *model.RunResult
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, result *model.RunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastResult = result

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, result)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCallCount = 0
	m.LastResult = nil
}
