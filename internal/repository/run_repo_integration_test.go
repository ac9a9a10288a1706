//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/repository/testutil"
)

func newTestRun(t *testing.T, startedAt time.Time) (*models.Run, []models.TestResult) {
	t.Helper()
	run := models.NewRun("staging", "chromium", startedAt.UTC().Truncate(time.Second))
	results := []models.TestResult{
		{Name: "TestCart_AddProduct", Status: models.TestStatusPassed, Elapsed: 1200 * time.Millisecond},
		{Name: "TestCart_RemoveProduct", Status: models.TestStatusFailed, Elapsed: 3400 * time.Millisecond, Message: "cart count did not drop"},
		{Name: "TestSmoke_HomePage", Status: models.TestStatusSkipped},
	}
	run.Finish(1, results, run.StartedAt.Add(time.Minute))
	return run, results
}

func TestRunRepository_SaveAndGet_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	// GIVEN
	run, results := newTestRun(t, time.Now())

	// WHEN
	err := repo.SaveRun(run, results)

	// THEN
	require.NoError(t, err)

	saved, savedResults, err := repo.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, saved.ID)
	assert.Equal(t, 1, saved.Passed)
	assert.Equal(t, 1, saved.Failed)
	assert.Equal(t, 1, saved.Skipped)
	assert.Equal(t, 1, saved.ExitCode)
	assert.True(t, run.StartedAt.Equal(saved.StartedAt.UTC()))

	require.Len(t, savedResults, 3)
	assert.Equal(t, "TestCart_AddProduct", savedResults[0].Name)
	assert.Equal(t, 1200*time.Millisecond, savedResults[0].Elapsed)
	assert.Equal(t, "cart count did not drop", savedResults[1].Message)
}

func TestRunRepository_SaveRun_RollsBackOnDuplicateResult_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	// GIVEN two results with the same name violate the results primary key
	run, results := newTestRun(t, time.Now())
	results = append(results, results[0])

	// WHEN
	err := repo.SaveRun(run, results)

	// THEN
	require.Error(t, err)
	_, _, err = repo.GetRun(run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunRepository_ListRecentRuns_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		run, results := newTestRun(t, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.SaveRun(run, results))
		ids = append(ids, run.ID)
	}

	runs, err := repo.ListRecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}
