package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for import-run history.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository.
var _ Repository = (*Storage)(nil)

// NewStorage opens (creating if needed) the history database at dbPath and
// applies pending migrations.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Storage{db: db}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// StartImportRun records the start of an import run.
func (s *Storage) StartImportRun(fromDate, toDate string) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO import_runs (from_date, to_date, status)
		VALUES (?, ?, 'running')
	`, fromDate, toDate)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CompleteImportRun marks a run completed with its result sums.
func (s *Storage) CompleteImportRun(runID int64, transactionCount int, gross, fees decimal.Decimal) error {
	_, err := s.db.Exec(`
		UPDATE import_runs
		SET status = 'completed',
		    transaction_count = ?,
		    gross = ?,
		    fees = ?,
		    completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, transactionCount, gross.String(), fees.String(), runID)
	return err
}

// FailImportRun marks a run failed, keeping the error message.
func (s *Storage) FailImportRun(runID int64, errMsg string) error {
	_, err := s.db.Exec(`
		UPDATE import_runs
		SET status = 'failed',
		    error_message = ?,
		    completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, errMsg, runID)
	return err
}

// GetImportRun retrieves a run by ID. Returns nil when not found.
func (s *Storage) GetImportRun(runID int64) (*ImportRun, error) {
	row := s.db.QueryRow(`
		SELECT id, from_date, to_date, status, transaction_count,
		       gross, fees, error_message, started_at, completed_at
		FROM import_runs WHERE id = ?
	`, runID)

	run, err := scanImportRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RecentImportRuns returns the most recent runs, newest first.
func (s *Storage) RecentImportRuns(limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, from_date, to_date, status, transaction_count,
		       gross, fees, error_message, started_at, completed_at
		FROM import_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []ImportRun
	for rows.Next() {
		run, err := scanImportRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanImportRun(sc scanner) (*ImportRun, error) {
	var (
		run         ImportRun
		gross       string
		fees        string
		errMsg      sql.NullString
		completedAt sql.NullTime
	)

	if err := sc.Scan(
		&run.ID,
		&run.FromDate,
		&run.ToDate,
		&run.Status,
		&run.TransactionCount,
		&gross,
		&fees,
		&errMsg,
		&run.StartedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if run.Gross, err = decimal.NewFromString(gross); err != nil {
		return nil, fmt.Errorf("parsing gross for run %d: %w", run.ID, err)
	}
	if run.Fees, err = decimal.NewFromString(fees); err != nil {
		return nil, fmt.Errorf("parsing fees for run %d: %w", run.ID, err)
	}
	if errMsg.Valid {
		run.ErrorMessage = errMsg.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}

	return &run, nil
}
