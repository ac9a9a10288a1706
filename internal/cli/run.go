package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/database"
	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/repository"
	"github.com/adyen/shopcheck/internal/runner"
)

// Suite is a runner that executes the scenarios
type Suite interface {
	Run(ctx context.Context) (*runner.Result, error)
}

// Reporter regenerates reports from a saved test2json stream
type Reporter interface {
	Report(ctx context.Context, input string) (*runner.Result, error)
}

// RunStore persists finished runs
type RunStore interface {
	SaveRun(run *models.Run, results []models.TestResult) error
}

// RunHistory reads persisted runs back
type RunHistory interface {
	ListRecentRuns(limit int) ([]models.Run, error)
}

// OpenRunStore connects to the configured Postgres database and migrates it.
// The returned func closes the connection.
func OpenRunStore(getenv func(string) string) (*repository.RunRepository, func() error, error) {
	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load postgres config: %w", err)
	}
	db, err := database.Open(pgConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repository.NewRunRepositoryWithDB(db), db.Close, nil
}

// RunSuite runs the scenarios and returns the exit code to leave with.
// A nil store skips persistence; a store failure is logged and does not
// change the exit code.
func RunSuite(ctx context.Context, suite Suite, store RunStore, logger *zap.Logger) (int, error) {
	result, err := suite.Run(ctx)
	if err != nil {
		return 1, err
	}

	if store != nil {
		if err := store.SaveRun(result.Run, result.Results); err != nil {
			logger.Error("Error saving run results", zap.String("run_id", result.Run.ID), zap.Error(err))
		} else {
			logger.Info("Run results saved", zap.String("run_id", result.Run.ID))
		}
	}

	return result.ExitCode, nil
}

// RunReport regenerates reports from input and returns 1 when it holds a failure
func RunReport(ctx context.Context, reporter Reporter, input string, logger *zap.Logger) (int, error) {
	result, err := reporter.Report(ctx, input)
	if err != nil {
		return 1, err
	}
	logger.Info("Reports regenerated",
		zap.String("input", input),
		zap.Int("passed", result.Run.Passed),
		zap.Int("failed", result.Run.Failed),
		zap.Int("skipped", result.Run.Skipped),
	)
	return result.ExitCode, nil
}

// PrintHistory writes the most recent runs as a table
func PrintHistory(w io.Writer, history RunHistory, limit int) error {
	runs, err := history.ListRecentRuns(limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tENV\tBROWSER\tPASSED\tFAILED\tSKIPPED\tEXIT")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Environment,
			run.Browser,
			run.Passed,
			run.Failed,
			run.Skipped,
			run.ExitCode,
		)
	}
	return tw.Flush()
}
