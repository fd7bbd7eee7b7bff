package importer

import "github.com/stripe2qbo/console/internal/stripe"

// Run-history recording. A nil history repository disables it; a recording
// failure downgrades to a log line so the import itself is unaffected.

// startRun records the run start and returns its ID, or 0 when disabled.
func (i *Importer) startRun(opts stripe.SyncOptions) int64 {
	if i.history == nil {
		return 0
	}

	runID, err := i.history.StartImportRun(opts.FromDate, opts.ToDate)
	if err != nil {
		i.logger.Error("failed to record import run start", "error", err)
		return 0
	}
	return runID
}

// completeRun records a successful run.
func (i *Importer) completeRun(runID int64, result Result) {
	if i.history == nil || runID == 0 {
		return
	}

	err := i.history.CompleteImportRun(runID, result.TransactionCount, result.Gross, result.Fees)
	if err != nil {
		i.logger.Error("failed to record import run completion", "run_id", runID, "error", err)
	}
}

// failRun records a failed run.
func (i *Importer) failRun(runID int64, runErr error) {
	if i.history == nil || runID == 0 {
		return
	}

	if err := i.history.FailImportRun(runID, runErr.Error()); err != nil {
		i.logger.Error("failed to record import run failure", "run_id", runID, "error", err)
	}
}
