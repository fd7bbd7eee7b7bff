// Package stripe holds the Stripe-side records the backend serves.
package stripe

import (
	"fmt"
	"time"
)

// Transaction is one Stripe balance transaction as returned by the backend.
// Amount and Fee are in the currency's minor unit.
type Transaction struct {
	ID          string `json:"id"`
	Created     int64  `json:"created"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Fee         int64  `json:"fee"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// CreatedTime converts the Unix creation timestamp to UTC time.
func (t Transaction) CreatedTime() time.Time {
	return time.Unix(t.Created, 0).UTC()
}

// SyncOptions scopes a transaction import to an inclusive date range.
type SyncOptions struct {
	FromDate string `json:"from_date" form:"from_date"`
	ToDate   string `json:"to_date" form:"to_date"`
}

// Validate checks both dates parse as YYYY-MM-DD and the range is ordered.
func (o SyncOptions) Validate() error {
	from, err := time.Parse(time.DateOnly, o.FromDate)
	if err != nil {
		return fmt.Errorf("invalid from_date %q: expected YYYY-MM-DD", o.FromDate)
	}
	to, err := time.Parse(time.DateOnly, o.ToDate)
	if err != nil {
		return fmt.Errorf("invalid to_date %q: expected YYYY-MM-DD", o.ToDate)
	}
	if from.After(to) {
		return fmt.Errorf("from_date %s is after to_date %s", o.FromDate, o.ToDate)
	}
	return nil
}
