// Package dto defines the JSON shapes served by the console's API endpoints.
package dto

import "time"

// StatusResponse mirrors the screen state: the sync store's selectors plus
// the settings form's submitting flag.
type StatusResponse struct {
	IsSyncing          bool   `json:"is_syncing"`
	SyncStatus         string `json:"sync_status"`
	TransactionCount   int    `json:"transaction_count"`
	SettingsSubmitting bool   `json:"settings_submitting"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ImportRunResponse is one recorded import run.
type ImportRunResponse struct {
	ID               int64      `json:"id"`
	FromDate         string     `json:"from_date"`
	ToDate           string     `json:"to_date"`
	Status           string     `json:"status"`
	TransactionCount int        `json:"transaction_count"`
	Gross            string     `json:"gross"`
	Fees             string     `json:"fees"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// ImportRunListResponse wraps a page of import runs.
type ImportRunListResponse struct {
	Runs  []ImportRunResponse `json:"runs"`
	Count int                 `json:"count"`
}
