package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/runner"
)

type fakeSuite struct {
	result *runner.Result
	err    error
}

func (f fakeSuite) Run(ctx context.Context) (*runner.Result, error) {
	return f.result, f.err
}

func (f fakeSuite) Report(ctx context.Context, input string) (*runner.Result, error) {
	return f.result, f.err
}

type fakeStore struct {
	saved []*models.Run
	runs  []models.Run
	err   error
}

func (f *fakeStore) SaveRun(run *models.Run, results []models.TestResult) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, run)
	return nil
}

func (f *fakeStore) ListRecentRuns(limit int) ([]models.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.runs) > limit {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func finishedResult(exitCode int) *runner.Result {
	run := models.NewRun("local", "chromium", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	results := []models.TestResult{
		{Name: "TestCart_AddProduct", Status: models.TestStatusPassed},
	}
	if exitCode != 0 {
		results = append(results, models.TestResult{Name: "TestCart_RemoveProduct", Status: models.TestStatusFailed})
	}
	run.Finish(exitCode, results, run.StartedAt.Add(time.Minute))
	return &runner.Result{Run: run, Results: results, ExitCode: exitCode}
}

func TestRunSuite_ExitCodes(t *testing.T) {
	testCases := []struct {
		name     string
		suite    fakeSuite
		store    *fakeStore
		wantCode int
		wantErr  bool
		wantSave int
	}{
		{name: "passing run", suite: fakeSuite{result: finishedResult(0)}, wantCode: 0},
		{name: "failing run", suite: fakeSuite{result: finishedResult(1)}, wantCode: 1},
		{name: "runner error", suite: fakeSuite{err: errors.New("boom")}, wantCode: 1, wantErr: true},
		{name: "saved run", suite: fakeSuite{result: finishedResult(1)}, store: &fakeStore{}, wantCode: 1, wantSave: 1},
		{name: "store error keeps exit code", suite: fakeSuite{result: finishedResult(0)}, store: &fakeStore{err: errors.New("db down")}, wantCode: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN
			var store RunStore
			if tc.store != nil {
				store = tc.store
			}

			// WHEN
			code, err := RunSuite(context.Background(), tc.suite, store, zap.NewNop())

			// THEN
			if (err != nil) != tc.wantErr {
				t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
			}
			if code != tc.wantCode {
				t.Errorf("Expected exit code %d, got %d", tc.wantCode, code)
			}
			if tc.store != nil && len(tc.store.saved) != tc.wantSave {
				t.Errorf("Expected %d saved runs, got %d", tc.wantSave, len(tc.store.saved))
			}
		})
	}
}

func TestRunReport(t *testing.T) {
	// GIVEN
	reporter := fakeSuite{result: finishedResult(1)}

	// WHEN
	code, err := RunReport(context.Background(), reporter, "reports/results.json", zap.NewNop())

	// THEN
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}

	if _, err := RunReport(context.Background(), fakeSuite{err: errors.New("missing")}, "nope.json", zap.NewNop()); err == nil {
		t.Error("Expected error for unreadable input, got nil")
	}
}

func TestPrintHistory(t *testing.T) {
	// GIVEN
	first := finishedResult(0).Run
	second := finishedResult(1).Run
	store := &fakeStore{runs: []models.Run{*second, *first}}
	var out bytes.Buffer

	// WHEN
	err := PrintHistory(&out, store, 1)

	// THEN
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and 1 row, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("Expected header row, got %q", lines[0])
	}
	if !strings.Contains(lines[1], second.ID) || !strings.Contains(lines[1], "2024-05-01 12:00:00") {
		t.Errorf("Expected newest run in row, got %q", lines[1])
	}

	if err := PrintHistory(&out, &fakeStore{err: errors.New("db down")}, 5); err == nil {
		t.Error("Expected error from history, got nil")
	}
}
