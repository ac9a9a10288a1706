//go:build e2e

package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/logging"
	"github.com/adyen/shopcheck/internal/pages"
	"github.com/adyen/shopcheck/internal/session"
)

var (
	pw     *playwright.Playwright
	suite  config.SuiteConfig
	logger *zap.Logger
)

// TestMain resolves the suite configuration and starts the Playwright driver for all tests
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	// .env lives at the repository root; go test runs in e2e/
	_ = godotenv.Load("../.env")

	var err error
	suite, err = config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		panic(err)
	}

	var closeLog func() error
	logger, closeLog, err = logging.New(logging.Options{
		Dir:   filepath.Join(suite.ArtifactsDir, artifact.LogsDir),
		Level: os.Getenv("LOG_LEVEL"),
	})
	if err != nil {
		panic(err)
	}
	defer closeLog()

	install, _ := strconv.ParseBool(os.Getenv("INSTALL_BROWSERS"))
	pw, err = session.StartDriver(install, suite.Browser)
	if err != nil {
		panic(err)
	}
	defer pw.Stop()

	logger.Info("Starting scenarios",
		zap.String("base_url", suite.BaseURL),
		zap.String("browser", suite.Browser),
		zap.String("environment", suite.Environment),
	)
	return m.Run()
}

// newSession opens a browser session for t on the configured storefront
func newSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New(t, pw, suite, session.WithLogger(logger.Named("session")))
}

// pageOptions binds page objects to the suite's timeouts and artifact directories
func pageOptions(t *testing.T) []pages.Option {
	return session.PageOptions(suite, logger.With(zap.String("test", t.Name())))
}

// open navigates the session's page to path and fails t when it cannot
func open(t *testing.T, s *session.Session, path string) {
	t.Helper()
	if _, err := s.Page.Goto(s.URL(path)); err != nil {
		t.Fatalf("Failed to navigate to %s: %v", path, err)
	}
}

// mustPage takes a page object constructor's results and fails t on error:
// mustPage(pages.NewHomePage(s.Page))(t)
func mustPage[P any](p P, err error) func(t *testing.T) P {
	return func(t *testing.T) P {
		t.Helper()
		if err != nil {
			t.Fatalf("Failed to create page object: %v", err)
		}
		return p
	}
}

// check fails t when err is set or ok is false
func check(t *testing.T, ok bool, err error, format string, args ...any) {
	t.Helper()
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
	if !ok {
		t.Fatal(msg)
	}
}
