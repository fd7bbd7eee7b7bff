package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuses recorded for import runs.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ImportRun is one recorded transaction import.
type ImportRun struct {
	ID               int64           `json:"id"`
	FromDate         string          `json:"from_date"`
	ToDate           string          `json:"to_date"`
	Status           string          `json:"status"`
	TransactionCount int             `json:"transaction_count"`
	Gross            decimal.Decimal `json:"gross"`
	Fees             decimal.Decimal `json:"fees"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	StartedAt        time.Time       `json:"started_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
}
