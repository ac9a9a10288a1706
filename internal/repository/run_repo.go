package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/database"
	"github.com/adyen/shopcheck/internal/models"
)

// ErrRunNotFound is returned when no run has the given id
var ErrRunNotFound = errors.New("run not found")

// RunRepository stores suite runs and their per-test results
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository on the package connection
func NewRunRepository() *RunRepository {
	return &RunRepository{db: database.DB}
}

// NewRunRepositoryWithDB creates a run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun writes the run and all its results in one transaction
func (r *RunRepository) SaveRun(run *models.Run, results []models.TestResult) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.Exec(`
		INSERT INTO test_runs (id, started_at, finished_at, environment, browser, exit_code, passed, failed, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
		run.Environment,
		run.Browser,
		run.ExitCode,
		run.Passed,
		run.Failed,
		run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO test_results (run_id, name, status, elapsed_ms, message)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		if _, err = stmt.Exec(run.ID, res.Name, res.Status, res.Elapsed.Milliseconds(), res.Message); err != nil {
			return fmt.Errorf("failed to insert result %s: %w", res.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun returns a run and its results ordered by name
func (r *RunRepository) GetRun(id string) (*models.Run, []models.TestResult, error) {
	run := &models.Run{}
	err := r.db.QueryRow(`
		SELECT id, started_at, finished_at, environment, browser, exit_code, passed, failed, skipped
		FROM test_runs
		WHERE id = $1
	`, id).Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Environment,
		&run.Browser,
		&run.ExitCode,
		&run.Passed,
		&run.Failed,
		&run.Skipped,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT name, status, elapsed_ms, message
		FROM test_results
		WHERE run_id = $1
		ORDER BY name
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var res models.TestResult
		var elapsedMS int64
		if err := rows.Scan(&res.Name, &res.Status, &elapsedMS, &res.Message); err != nil {
			return nil, nil, fmt.Errorf("failed to scan result: %w", err)
		}
		res.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read results: %w", err)
	}

	return run, results, nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *RunRepository) ListRecentRuns(limit int) ([]models.Run, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, finished_at, environment, browser, exit_code, passed, failed, skipped
		FROM test_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Environment,
			&run.Browser,
			&run.ExitCode,
			&run.Passed,
			&run.Failed,
			&run.Skipped,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}
