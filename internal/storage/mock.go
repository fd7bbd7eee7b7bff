package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// MockRepository is an in-memory implementation of Repository for testing,
// with call flags for assertions and injectable errors for failure paths.
type MockRepository struct {
	runs      map[int64]*ImportRun
	nextRunID int64

	// Hooks for test assertions
	StartImportRunCalled    bool
	CompleteImportRunCalled bool
	FailImportRunCalled     bool
	LastFailMessage         string

	// Error injection for testing error paths
	StartImportRunErr    error
	CompleteImportRunErr error
	FailImportRunErr     error
	RecentImportRunsErr  error
}

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty mock repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs:      make(map[int64]*ImportRun),
		nextRunID: 1,
	}
}

// Close does nothing for the mock.
func (m *MockRepository) Close() error {
	return nil
}

// StartImportRun records a run start in memory.
func (m *MockRepository) StartImportRun(fromDate, toDate string) (int64, error) {
	m.StartImportRunCalled = true
	if m.StartImportRunErr != nil {
		return 0, m.StartImportRunErr
	}

	id := m.nextRunID
	m.nextRunID++
	m.runs[id] = &ImportRun{
		ID:        id,
		FromDate:  fromDate,
		ToDate:    toDate,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
	return id, nil
}

// CompleteImportRun marks a run completed.
func (m *MockRepository) CompleteImportRun(runID int64, transactionCount int, gross, fees decimal.Decimal) error {
	m.CompleteImportRunCalled = true
	if m.CompleteImportRunErr != nil {
		return m.CompleteImportRunErr
	}

	run, ok := m.runs[runID]
	if !ok {
		return nil
	}
	now := time.Now()
	run.Status = RunStatusCompleted
	run.TransactionCount = transactionCount
	run.Gross = gross
	run.Fees = fees
	run.CompletedAt = &now
	return nil
}

// FailImportRun marks a run failed.
func (m *MockRepository) FailImportRun(runID int64, errMsg string) error {
	m.FailImportRunCalled = true
	m.LastFailMessage = errMsg
	if m.FailImportRunErr != nil {
		return m.FailImportRunErr
	}

	run, ok := m.runs[runID]
	if !ok {
		return nil
	}
	now := time.Now()
	run.Status = RunStatusFailed
	run.ErrorMessage = errMsg
	run.CompletedAt = &now
	return nil
}

// GetImportRun retrieves a run by ID.
func (m *MockRepository) GetImportRun(runID int64) (*ImportRun, error) {
	run, ok := m.runs[runID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// RecentImportRuns returns runs newest first.
func (m *MockRepository) RecentImportRuns(limit int) ([]ImportRun, error) {
	if m.RecentImportRunsErr != nil {
		return nil, m.RecentImportRunsErr
	}
	if limit <= 0 {
		limit = 20
	}

	var runs []ImportRun
	for id := m.nextRunID - 1; id >= 1 && len(runs) < limit; id-- {
		if run, ok := m.runs[id]; ok {
			runs = append(runs, *run)
		}
	}
	return runs, nil
}
