// Package importer runs the transaction import flow shared by the import
// screen and the headless CLI command.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/stripe2qbo/console/internal/storage"
	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/stripe"
)

// syncingStatus is the progress text shown while an import is in flight.
const syncingStatus = "Importing transactions..."

// TransactionSource fetches transactions for a date range.
type TransactionSource interface {
	Transactions(ctx context.Context, opts stripe.SyncOptions) ([]stripe.Transaction, error)
}

// Result summarizes one import run. Gross and Fees are sums of the imported
// amounts in major units.
type Result struct {
	RunID            int64
	TransactionCount int
	Gross            decimal.Decimal
	Fees             decimal.Decimal
}

// Importer drives one import per Run call. Run history is an audit trail:
// recording failures are logged, never returned.
type Importer struct {
	source  TransactionSource
	store   *store.Store
	history storage.Repository
	logger  *slog.Logger
}

// New creates an Importer. history may be nil to skip run recording.
func New(source TransactionSource, st *store.Store, history storage.Repository, logger *slog.Logger) *Importer {
	return &Importer{
		source:  source,
		store:   st,
		history: history,
		logger:  logger,
	}
}

// Run imports the transactions in range into the store: it marks syncing
// started, performs one fetch, appends each record in response order, then
// marks syncing finished. The syncing state is reset even when the fetch
// fails, so a failed submit can be retried.
func (i *Importer) Run(ctx context.Context, opts stripe.SyncOptions) (Result, error) {
	runID := i.startRun(opts)

	i.store.SetSyncing(true)
	i.store.SetSyncStatus(syncingStatus)
	defer func() {
		i.store.SetSyncStatus("")
		i.store.SetSyncing(false)
	}()

	transactions, err := i.source.Transactions(ctx, opts)
	if err != nil {
		i.failRun(runID, err)
		return Result{RunID: runID}, fmt.Errorf("importing transactions: %w", err)
	}

	result := Result{RunID: runID, TransactionCount: len(transactions)}
	for _, t := range transactions {
		i.store.AddTransaction(t)
		result.Gross = result.Gross.Add(decimal.New(t.Amount, -2))
		result.Fees = result.Fees.Add(decimal.New(t.Fee, -2))
	}

	i.completeRun(runID, result)
	i.logger.Info("import finished",
		"from_date", opts.FromDate,
		"to_date", opts.ToDate,
		"count", result.TransactionCount,
		"gross", result.Gross.StringFixed(2),
		"fees", result.Fees.StringFixed(2),
	)

	return result, nil
}
