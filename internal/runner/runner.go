package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/report"
)

// Output file names under the reports directory
const (
	ResultsFile = "results.json"
	HTMLFile    = "report.html"
)

// Result is a finished run
type Result struct {
	Run      *models.Run
	Results  []models.TestResult
	ExitCode int
}

// Runner executes the suite for one set of options
type Runner struct {
	opts   Options
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    func() time.Time

	// command and lookPath are replaced in tests
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
	lookPath func(file string) (string, error)
}

// New creates a runner writing readable test output to stdout
func New(opts Options, logger *zap.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{
		opts:     opts,
		logger:   logger,
		stdout:   stdout,
		stderr:   stderr,
		getenv:   os.Getenv,
		now:      time.Now,
		command:  exec.CommandContext,
		lookPath: exec.LookPath,
	}
}

// Dirs lists every output directory relative to root
func Dirs(root string) []string {
	names := []string{
		artifact.ScreenshotsDir,
		artifact.VideosDir,
		artifact.TracesDir,
		artifact.DownloadsDir,
		artifact.LogsDir,
		artifact.ReportsDir,
		artifact.AllureResultsDir,
	}
	dirs := make([]string, len(names))
	for i, name := range names {
		dirs[i] = filepath.Join(root, name)
	}
	return dirs
}

// EnsureDirs creates the output directories; existing content is left alone
func EnsureDirs(root string) error {
	for _, dir := range Dirs(root) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Run executes go test, saves its JSON stream, and writes the requested
// reports. The returned exit code is the test run's; report failures are
// logged and do not change it.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	root := r.opts.artifactsDir()
	if err := EnsureDirs(root); err != nil {
		return nil, err
	}

	var fileTests []string
	if r.opts.IsFile() {
		names, err := TestsInFile(r.opts.Test)
		if err != nil {
			return nil, err
		}
		fileTests = names
	}

	env, err := r.opts.Env(r.getenv)
	if err != nil {
		return nil, err
	}
	args := r.opts.TestArgs(fileTests)

	resultsPath := filepath.Join(root, artifact.ReportsDir, ResultsFile)
	started := r.now()
	r.logger.Info("Running tests", zap.Strings("args", args), zap.String("environment", r.opts.Environment))

	exitCode, err := r.execute(ctx, "go", args, env, resultsPath)
	if err != nil {
		return nil, err
	}

	results, err := r.readResults(resultsPath)
	if err != nil {
		return nil, err
	}
	run := models.NewRun(r.opts.Environment, r.opts.Browser, started)
	run.Finish(exitCode, results, r.now())
	r.logger.Info("Tests finished",
		zap.Int("exit_code", exitCode),
		zap.Int("passed", run.Passed),
		zap.Int("failed", run.Failed),
		zap.Int("skipped", run.Skipped),
	)

	r.writeReports(ctx, run, results)
	return &Result{Run: run, Results: results, ExitCode: exitCode}, nil
}

// Report regenerates the requested reports from a saved JSON stream
func (r *Runner) Report(ctx context.Context, input string) (*Result, error) {
	results, err := r.readResults(input)
	if err != nil {
		return nil, err
	}
	now := r.now()
	run := models.NewRun(r.opts.Environment, r.opts.Browser, earliest(results, now))
	exitCode := 0
	if lo.SomeBy(results, func(res models.TestResult) bool { return res.Status == models.TestStatusFailed }) {
		exitCode = 1
	}
	run.Finish(exitCode, results, now)
	r.writeReports(ctx, run, results)
	return &Result{Run: run, Results: results, ExitCode: exitCode}, nil
}

// execute runs name with args, teeing stdout to resultsPath and echoing the
// test output it carries. A non-zero exit is returned as the code, not an error.
func (r *Runner) execute(ctx context.Context, name string, args, env []string, resultsPath string) (int, error) {
	out, err := os.Create(resultsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", resultsPath, err)
	}
	defer out.Close()

	cmd := r.command(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stderr = r.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to attach to test output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", name, err)
	}
	copyErr := r.echo(io.TeeReader(stdout, out))
	err = cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	case err != nil:
		return 0, fmt.Errorf("failed to run %s: %w", name, err)
	case copyErr != nil:
		return 0, fmt.Errorf("failed to read test output: %w", copyErr)
	}
	return 0, nil
}

// echo prints the Output of each test2json event, and other lines verbatim
func (r *Runner) echo(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		var ev report.Event
		if len(line) > 0 && line[0] == '{' && json.Unmarshal(line, &ev) == nil {
			if ev.Action == "output" {
				fmt.Fprint(r.stdout, ev.Output)
			}
			continue
		}
		fmt.Fprintln(r.stdout, string(line))
	}
	return scanner.Err()
}

func (r *Runner) readResults(path string) ([]models.TestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return report.ParseEvents(f)
}

func (r *Runner) writeReports(ctx context.Context, run *models.Run, results []models.TestResult) {
	root := r.opts.artifactsDir()
	if r.opts.HTML {
		path := filepath.Join(root, artifact.ReportsDir, HTMLFile)
		if err := report.WriteHTMLFile(path, run, results); err != nil {
			r.logger.Error("Error writing HTML report", zap.Error(err))
		} else {
			r.logger.Info("HTML report written", zap.String("path", path))
		}
	}
	if r.opts.Allure {
		dir := filepath.Join(root, artifact.AllureResultsDir)
		if err := report.WriteAllure(dir, results, r.now()); err != nil {
			r.logger.Warn("Allure results incomplete", zap.Error(err))
		}
		if err := r.GenerateAllure(ctx); err != nil {
			r.logger.Error("Error generating Allure report", zap.Error(err))
		}
	}
}

// GenerateAllure runs `allure generate` over the results directory.
// A missing allure binary is logged and skipped.
func (r *Runner) GenerateAllure(ctx context.Context) error {
	bin, err := r.lookPath("allure")
	if err != nil {
		r.logger.Warn("allure not found on PATH, skipping report generation")
		return nil
	}
	root := r.opts.artifactsDir()
	cmd := r.command(ctx, bin, "generate",
		filepath.Join(root, artifact.AllureResultsDir),
		"--clean",
		"-o", filepath.Join(root, artifact.AllureReportDir),
	)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	r.logger.Info("Generating Allure report", zap.Strings("args", cmd.Args))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("allure generate: %w", err)
	}
	return nil
}

// earliest is the first start time among results, or fallback
func earliest(results []models.TestResult, fallback time.Time) time.Time {
	started := lo.FilterMap(results, func(res models.TestResult, _ int) (time.Time, bool) {
		return res.Started, !res.Started.IsZero()
	})
	if len(started) == 0 {
		return fallback
	}
	return lo.MinBy(started, func(a, b time.Time) bool { return a.Before(b) })
}
