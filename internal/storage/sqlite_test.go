package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stripe2qbo/console/internal/storage"
)

func newTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.NewStorage(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_ImportRuns(t *testing.T) {
	t.Run("start records a running run", func(t *testing.T) {
		s := newTestStorage(t)

		runID, err := s.StartImportRun("2023-08-28", "2023-09-01")
		require.NoError(t, err)
		assert.Equal(t, int64(1), runID)

		run, err := s.GetImportRun(runID)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, storage.RunStatusRunning, run.Status)
		assert.Equal(t, "2023-08-28", run.FromDate)
		assert.Equal(t, "2023-09-01", run.ToDate)
		assert.Zero(t, run.TransactionCount)
		assert.True(t, run.Gross.IsZero())
		assert.False(t, run.StartedAt.IsZero())
		assert.Nil(t, run.CompletedAt)
	})

	t.Run("complete stores counts and sums", func(t *testing.T) {
		s := newTestStorage(t)
		runID, err := s.StartImportRun("2023-08-28", "2023-09-01")
		require.NoError(t, err)

		gross := decimal.RequireFromString("62.95")
		fees := decimal.RequireFromString("2.63")
		require.NoError(t, s.CompleteImportRun(runID, 3, gross, fees))

		run, err := s.GetImportRun(runID)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, storage.RunStatusCompleted, run.Status)
		assert.Equal(t, 3, run.TransactionCount)
		assert.True(t, run.Gross.Equal(gross), "gross = %s", run.Gross)
		assert.True(t, run.Fees.Equal(fees), "fees = %s", run.Fees)
		assert.NotNil(t, run.CompletedAt)
		assert.Empty(t, run.ErrorMessage)
	})

	t.Run("fail stores the error message", func(t *testing.T) {
		s := newTestStorage(t)
		runID, err := s.StartImportRun("2023-08-28", "2023-09-01")
		require.NoError(t, err)

		require.NoError(t, s.FailImportRun(runID, "fetching transactions: boom"))

		run, err := s.GetImportRun(runID)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, storage.RunStatusFailed, run.Status)
		assert.Equal(t, "fetching transactions: boom", run.ErrorMessage)
		assert.NotNil(t, run.CompletedAt)
	})

	t.Run("get returns nil for an unknown run", func(t *testing.T) {
		s := newTestStorage(t)

		run, err := s.GetImportRun(999)
		require.NoError(t, err)
		assert.Nil(t, run)
	})

	t.Run("recent returns newest first and honors the limit", func(t *testing.T) {
		s := newTestStorage(t)

		for i := 0; i < 3; i++ {
			runID, err := s.StartImportRun("2023-08-28", "2023-09-01")
			require.NoError(t, err)
			require.NoError(t, s.CompleteImportRun(runID, 1, decimal.Zero, decimal.Zero))
		}

		runs, err := s.RecentImportRuns(2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, int64(3), runs[0].ID)
		assert.Equal(t, int64(2), runs[1].ID)
	})

	t.Run("recent falls back to the default limit", func(t *testing.T) {
		s := newTestStorage(t)
		_, err := s.StartImportRun("2023-08-28", "2023-09-01")
		require.NoError(t, err)

		runs, err := s.RecentImportRuns(0)
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})

	t.Run("survives reopening the database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.db")

		s, err := storage.NewStorage(path)
		require.NoError(t, err)
		runID, err := s.StartImportRun("2023-08-28", "2023-09-01")
		require.NoError(t, err)
		require.NoError(t, s.CompleteImportRun(runID, 3, decimal.RequireFromString("62.95"), decimal.RequireFromString("2.63")))
		require.NoError(t, s.Close())

		reopened, err := storage.NewStorage(path)
		require.NoError(t, err)
		defer func() { _ = reopened.Close() }()

		run, err := reopened.GetImportRun(runID)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, "62.95", run.Gross.StringFixed(2))
		assert.Equal(t, "2.63", run.Fees.StringFixed(2))
	})
}
