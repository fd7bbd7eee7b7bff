package storage

import "github.com/shopspring/decimal"

// Repository is the storage interface for import-run history. It allows
// swapping implementations and makes testing with mocks straightforward.
type Repository interface {
	// StartImportRun records the start of an import and returns the run ID.
	StartImportRun(fromDate, toDate string) (int64, error)

	// CompleteImportRun marks a run completed with its result sums.
	CompleteImportRun(runID int64, transactionCount int, gross, fees decimal.Decimal) error

	// FailImportRun marks a run failed, keeping the error message.
	FailImportRun(runID int64, errMsg string) error

	// GetImportRun retrieves a run by ID. Returns nil when not found.
	GetImportRun(runID int64) (*ImportRun, error)

	// RecentImportRuns returns the most recent runs, newest first.
	RecentImportRuns(limit int) ([]ImportRun, error)

	Close() error
}
