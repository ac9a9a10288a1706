package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/adyen/shopcheck/internal/artifact"
)

// TestStatus is the outcome of one scenario
type TestStatus string

// Test statuses
const (
	TestStatusPassed  TestStatus = "passed"
	TestStatusFailed  TestStatus = "failed"
	TestStatusSkipped TestStatus = "skipped"
)

// TestResult is one scenario as reported by go test
type TestResult struct {
	Name        string
	Package     string
	Status      TestStatus
	Started     time.Time
	Elapsed     time.Duration
	Output      []string
	Message     string
	Attachments []artifact.Artifact
}

// Marker returns the lowercase group a test belongs to: "cart" for
// "TestCart_RemoveProduct/Blue_Top". Tests without a marker prefix return "".
func (r TestResult) Marker() string {
	return MarkerOf(r.Name)
}

// Finished is Started plus Elapsed
func (r TestResult) Finished() time.Time {
	return r.Started.Add(r.Elapsed)
}

// MarkerOf extracts the marker from a test name of the form Test<Marker>_<Case>
func MarkerOf(name string) string {
	top, _, _ := strings.Cut(name, "/")
	rest, ok := strings.CutPrefix(top, "Test")
	if !ok {
		return ""
	}
	marker, _, found := strings.Cut(rest, "_")
	if !found || marker == "" || !unicode.IsUpper(rune(marker[0])) {
		return ""
	}
	return strings.ToLower(marker)
}

// Run is one invocation of the suite
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Environment string
	Browser     string
	ExitCode    int
	Passed      int
	Failed      int
	Skipped     int
}

// NewRun starts a run record for the given target
func NewRun(environment, browser string, startedAt time.Time) *Run {
	return &Run{
		ID:          uuid.New().String(),
		StartedAt:   startedAt,
		Environment: environment,
		Browser:     browser,
	}
}

// Finish records the exit code and tallies results
func (r *Run) Finish(exitCode int, results []TestResult, finishedAt time.Time) {
	r.ExitCode = exitCode
	r.FinishedAt = finishedAt
	counts := lo.CountValuesBy(results, func(res TestResult) TestStatus { return res.Status })
	r.Passed = counts[TestStatusPassed]
	r.Failed = counts[TestStatusFailed]
	r.Skipped = counts[TestStatusSkipped]
}

// Total is the number of tests counted
func (r *Run) Total() int {
	return r.Passed + r.Failed + r.Skipped
}

// Duration is how long the run took
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded reports whether the run exited cleanly with no failures
func (r *Run) Succeeded() bool {
	return r.ExitCode == 0 && r.Failed == 0
}
