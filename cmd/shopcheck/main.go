package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
	internalcli "github.com/adyen/shopcheck/internal/cli"
	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/logging"
	"github.com/adyen/shopcheck/internal/runner"
)

var version = "0.1.0"

// application holds what every command shares
type application struct {
	logger   *zap.Logger
	closeLog func() error
}

func (a *application) before(c *cli.Context) error {
	logger, closeLog, err := logging.New(logging.Options{
		Dir:     filepath.Join(c.String("artifacts-dir"), artifact.LogsDir),
		Level:   c.String("log-level"),
		Console: true,
	})
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog
	return nil
}

func (a *application) after(c *cli.Context) error {
	if a.closeLog != nil {
		return a.closeLog()
	}
	return nil
}

// RunCommand returns the run command
func (a *application) RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the UI regression scenarios",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "browser", Value: config.BrowserChromium, Usage: "chromium, firefox or webkit", EnvVars: []string{"BROWSER"}},
			&cli.IntFlag{Name: "workers", Aliases: []string{"parallel"}, Value: 1, Usage: "number of scenarios run in parallel"},
			&cli.StringFlag{Name: "headless", Value: "true", Usage: "true or false", EnvVars: []string{"HEADLESS"}},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window (same as --headless false)"},
			&cli.IntFlag{Name: "slowmo", Usage: "delay in ms between browser operations", EnvVars: []string{"SLOWMO"}},
			&cli.StringFlag{Name: "test", Aliases: []string{"test_file"}, Usage: "run one test file or directory"},
			&cli.StringFlag{Name: "marker", Aliases: []string{"test_mark"}, Usage: "run one scenario group: smoke, search, cart, checkout, simple"},
			&cli.StringFlag{Name: "env", Value: config.EnvStaging, Usage: "local, dev, staging or prod", EnvVars: []string{"ENVIRONMENT"}},
			&cli.BoolFlag{Name: "screenshot", Usage: "capture a screenshot when a scenario fails", EnvVars: []string{"SCREENSHOT_ON_FAILURE"}},
			&cli.BoolFlag{Name: "video", Usage: "record a video of every scenario", EnvVars: []string{"VIDEO"}},
			&cli.BoolFlag{Name: "trace", Usage: "record a playwright trace of every scenario", EnvVars: []string{"TRACING"}},
			&cli.BoolFlag{Name: "html", Usage: "write reports/report.html"},
			&cli.BoolFlag{Name: "allure", Usage: "write allure-results and generate allure-report"},
			&cli.BoolFlag{Name: "results-db", Usage: "save the run to postgres", EnvVars: []string{"RESULTS_DATABASE"}},
		},
		Action: func(c *cli.Context) error {
			opts, err := runOptions(c)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			var store internalcli.RunStore
			if opts.ResultsDB {
				repo, closeDB, err := internalcli.OpenRunStore(os.Getenv)
				if err != nil {
					return fmt.Errorf("failed to open results database: %w", err)
				}
				defer closeDB()
				store = repo
			}

			suite := runner.New(opts, a.logger.Named("runner"), os.Stdout, os.Stderr)
			code, err := internalcli.RunSuite(c.Context, suite, store, a.logger)
			if err != nil {
				return err
			}
			return exitCode(code)
		},
	}
}

// ServeCommand returns the serve command
func (a *application) ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local storefront used by --env local",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "db", Usage: "store orders in postgres instead of memory", EnvVars: []string{"STOREFRONT_DATABASE"}},
		},
		Action: func(c *cli.Context) error {
			deps, cleanup, err := internalcli.NewServerDependencies(a.logger.Named("server"), c.Bool("db"))
			if err != nil {
				return err
			}
			defer cleanup()

			return internalcli.RunServe(deps)
		},
	}
}

// ReportCommand returns the report command
func (a *application) ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Regenerate reports from a saved test2json stream",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Value: filepath.Join(artifact.ReportsDir, runner.ResultsFile), Usage: "saved go test -json output"},
			&cli.StringFlag{Name: "env", Value: config.EnvStaging, Usage: "environment recorded on the report", EnvVars: []string{"ENVIRONMENT"}},
			&cli.StringFlag{Name: "browser", Value: config.BrowserChromium, Usage: "browser recorded on the report", EnvVars: []string{"BROWSER"}},
			&cli.BoolFlag{Name: "html", Usage: "write reports/report.html"},
			&cli.BoolFlag{Name: "allure", Usage: "write allure-results and generate allure-report"},
		},
		Action: func(c *cli.Context) error {
			opts := runner.DefaultOptions()
			opts.Environment = c.String("env")
			opts.Browser = c.String("browser")
			opts.HTML = c.Bool("html")
			opts.Allure = c.Bool("allure")
			opts.ArtifactsDir = c.String("artifacts-dir")

			reporter := runner.New(opts, a.logger.Named("report"), os.Stdout, os.Stderr)
			code, err := internalcli.RunReport(c.Context, reporter, c.String("input"), a.logger)
			if err != nil {
				return err
			}
			return exitCode(code)
		},
	}
}

// HistoryCommand returns the history command
func (a *application) HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent runs saved with --results-db",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 10, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			repo, closeDB, err := internalcli.OpenRunStore(os.Getenv)
			if err != nil {
				return fmt.Errorf("failed to open results database: %w", err)
			}
			defer closeDB()

			return internalcli.PrintHistory(c.App.Writer, repo, c.Int("limit"))
		},
	}
}

// runOptions maps the run flags onto runner options
func runOptions(c *cli.Context) (runner.Options, error) {
	headless, err := strconv.ParseBool(c.String("headless"))
	if err != nil {
		return runner.Options{}, fmt.Errorf("invalid --headless %q: %w", c.String("headless"), err)
	}
	if c.Bool("headed") {
		headless = false
	}

	opts := runner.Options{
		Browser:      c.String("browser"),
		Workers:      c.Int("workers"),
		Headless:     headless,
		SlowMo:       c.Int("slowmo"),
		Test:         c.String("test"),
		Marker:       c.String("marker"),
		Environment:  c.String("env"),
		Screenshot:   c.Bool("screenshot"),
		Video:        c.Bool("video"),
		Trace:        c.Bool("trace"),
		HTML:         c.Bool("html"),
		Allure:       c.Bool("allure"),
		ResultsDB:    c.Bool("results-db"),
		ArtifactsDir: c.String("artifacts-dir"),
	}
	return opts, opts.Validate()
}

func exitCode(code int) error {
	if code == 0 {
		return nil
	}
	return cli.Exit("", code)
}

func newApp() *cli.App {
	a := &application{logger: zap.NewNop()}
	return &cli.App{
		Name:    "shopcheck",
		Usage:   "UI regression suite for the automation exercise storefront",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "artifacts-dir", Value: ".", Usage: "root for screenshots, videos, traces, logs and reports", EnvVars: []string{"ARTIFACTS_DIR"}},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: a.before,
		After:  a.after,
		// Exit codes are handled in main so After still flushes the log
		ExitErrHandler: func(c *cli.Context, err error) {},
		Commands: []*cli.Command{
			a.RunCommand(),
			a.ServeCommand(),
			a.ReportCommand(),
			a.HistoryCommand(),
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	err := newApp().Run(os.Args)
	var exitErr cli.ExitCoder
	switch {
	case errors.As(err, &exitErr):
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		}
		os.Exit(exitErr.ExitCode())
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
