// Package runner builds and executes the go test invocation for the suite and
// the report steps that follow it.
package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/adyen/shopcheck/internal/config"
)

// DefaultPackage is the scenario package pattern run when no test is selected
const DefaultPackage = "./e2e/..."

// Errors returned by Validate
var (
	ErrInvalidWorkers = errors.New("workers must be at least 1")
	ErrInvalidSlowMo  = errors.New("slowmo must not be negative")
)

// Options is one `shopcheck run` invocation
type Options struct {
	Browser     string
	Workers     int
	Headless    bool
	SlowMo      int
	Test        string
	Marker      string
	Environment string
	Screenshot  bool
	Video       bool
	Trace       bool
	HTML        bool
	Allure      bool
	ResultsDB   bool
	// ArtifactsDir is the root for every output directory; defaults to "."
	ArtifactsDir string
}

// DefaultOptions mirrors the flag defaults
func DefaultOptions() Options {
	return Options{
		Browser:      config.BrowserChromium,
		Workers:      1,
		Headless:     true,
		Environment:  config.EnvStaging,
		ArtifactsDir: ".",
	}
}

// Validate checks the options before anything is launched
func (o Options) Validate() error {
	if !lo.Contains(config.Browsers, o.Browser) {
		return fmt.Errorf("%w: %q", config.ErrUnknownBrowser, o.Browser)
	}
	if !lo.Contains(config.Environments, o.Environment) {
		return fmt.Errorf("%w: %q", config.ErrUnknownEnvironment, o.Environment)
	}
	if o.Workers < 1 {
		return ErrInvalidWorkers
	}
	if o.SlowMo < 0 {
		return ErrInvalidSlowMo
	}
	return nil
}

// Env returns the KEY=VALUE pairs the scenarios read their configuration from.
// getenv supplies the per-environment URL overrides.
func (o Options) Env(getenv func(string) string) ([]string, error) {
	baseURL, err := config.ResolveBaseURL(o.Environment, getenv)
	if err != nil {
		return nil, err
	}
	// go test runs in the package directory, so the scenarios need an absolute root
	root, err := filepath.Abs(o.artifactsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifacts dir: %w", err)
	}
	vars := [][2]string{
		{"BROWSER", o.Browser},
		{"HEADLESS", strconv.FormatBool(o.Headless)},
		{"SLOWMO", strconv.Itoa(o.SlowMo)},
		{"ENVIRONMENT", o.Environment},
		{"BASE_URL", baseURL},
		{"SCREENSHOT_ON_FAILURE", strconv.FormatBool(o.Screenshot)},
		{"VIDEO", strconv.FormatBool(o.Video)},
		{"TRACING", strconv.FormatBool(o.Trace)},
		{"ARTIFACTS_DIR", root},
	}
	return lo.Map(vars, func(kv [2]string, _ int) string { return kv[0] + "=" + kv[1] }), nil
}

// TestArgs returns the arguments for `go`, given the test functions the
// selected file declares (nil when no file is selected).
func (o Options) TestArgs(fileTests []string) []string {
	args := []string{"test", "-tags", "e2e", "-v", "-json", "-count=1"}
	if pattern := o.runPattern(fileTests); pattern != "" {
		args = append(args, "-run", pattern)
	}
	// Always set: go test otherwise runs parallel scenarios GOMAXPROCS at a time
	args = append(args, "-parallel", strconv.Itoa(o.Workers))
	return append(args, o.Package())
}

// Package maps Test onto a package pattern: a file selects its directory,
// a directory is made relative, and nothing selects DefaultPackage.
func (o Options) Package() string {
	test := strings.TrimSpace(o.Test)
	if test == "" {
		return DefaultPackage
	}
	if strings.HasSuffix(test, ".go") {
		test = filepath.Dir(test)
	}
	test = filepath.ToSlash(filepath.Clean(test))
	if filepath.IsAbs(test) || strings.HasPrefix(test, ".") {
		return test
	}
	return "./" + test
}

// IsFile reports whether Test names a single test file
func (o Options) IsFile() bool {
	return strings.HasSuffix(strings.TrimSpace(o.Test), ".go")
}

// runPattern combines the marker prefix with the file's test names
func (o Options) runPattern(fileTests []string) string {
	prefix := markerPrefix(o.Marker)
	if len(fileTests) == 0 {
		if prefix == "" {
			return ""
		}
		return "^" + prefix
	}
	names := lo.Filter(fileTests, func(name string, _ int) bool {
		return strings.HasPrefix(name, prefix)
	})
	if len(names) == 0 {
		// Nothing in the file carries the marker; match nothing rather than everything
		return "^$"
	}
	return "^(" + strings.Join(names, "|") + ")$"
}

// markerPrefix turns "cart" into "TestCart_"
func markerPrefix(marker string) string {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return ""
	}
	return "Test" + strings.ToUpper(marker[:1]) + strings.ToLower(marker[1:]) + "_"
}

func (o Options) artifactsDir() string {
	if o.ArtifactsDir == "" {
		return "."
	}
	return o.ArtifactsDir
}
