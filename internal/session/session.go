// Package session provides the per-test browser fixture: one browser process,
// context and page per test, torn down with diagnostics when the test ends.
package session

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/pages"
)

// chromiumArgs keep Chromium stable inside containers and CI runners
var chromiumArgs = []string{
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-gpu",
	"--disable-web-security",
	"--disable-features=IsolateOrigins,site-per-process",
}

// Session owns the browser, context and page of one test
type Session struct {
	Config  config.SuiteConfig
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	logger   *zap.Logger
	now      func() time.Time
	finished bool
}

// Option customizes Launch and New
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock sets the clock used to timestamp artifact names
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// StartDriver starts the playwright driver, installing browser first when asked
func StartDriver(install bool, browser string) (*playwright.Playwright, error) {
	if install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{browser}}); err != nil {
			return nil, fmt.Errorf("failed to install %s: %w", browser, err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	return pw, nil
}

// Launch starts a browser for cfg, opens a page and navigates it to the base URL.
// On error everything opened so far is closed again.
func Launch(pw *playwright.Playwright, cfg config.SuiteConfig, opts ...Option) (*Session, error) {
	s := &Session{Config: cfg, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	browserType, err := browserTypeFor(pw, cfg.Browser)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Launching browser",
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.Duration("slowmo", cfg.SlowMo),
	)
	s.Browser, err = browserType.Launch(LaunchOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	s.Context, err = s.Browser.NewContext(ContextOptions(cfg))
	if err != nil {
		s.Browser.Close()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if cfg.Tracing {
		if err := s.Context.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		}); err != nil {
			s.close()
			return nil, fmt.Errorf("failed to start tracing: %w", err)
		}
	}

	s.Page, err = s.Context.NewPage()
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	s.Page.SetDefaultTimeout(float64(cfg.Timeout.Milliseconds()))

	s.logger.Info("Navigating to base URL", zap.String("url", cfg.BaseURL))
	if _, err := s.Page.Goto(cfg.BaseURL, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(cfg.Timeout.Milliseconds())),
	}); err != nil {
		s.close()
		return nil, fmt.Errorf("failed to reach %s: %w", cfg.BaseURL, err)
	}

	return s, nil
}

// New launches a session for t and finishes it when t completes.
// A launch failure fails t immediately.
func New(t testing.TB, pw *playwright.Playwright, cfg config.SuiteConfig, opts ...Option) *Session {
	t.Helper()

	s, err := Launch(pw, cfg, opts...)
	if err != nil {
		t.Fatalf("browser session: %v", err)
	}
	s.logger = s.logger.With(zap.String("test", t.Name()))

	t.Cleanup(func() {
		artifacts, err := s.Finish(Outcome{Name: t.Name(), Failed: t.Failed()})
		for _, a := range artifacts {
			Attach(t, a)
		}
		if err != nil {
			t.Logf("diagnostics incomplete: %v", err)
		}
	})
	return s
}

// URL joins path onto the session's base URL
func (s *Session) URL(path string) string {
	return s.Config.URL(path)
}

// PageTimeouts bounds page object waits by the configured TIMEOUT
func PageTimeouts(cfg config.SuiteConfig) pages.Timeouts {
	return pages.TimeoutsFor(cfg.Timeout)
}

// PageOptions binds page objects to cfg: its timeouts and artifact directories
func PageOptions(cfg config.SuiteConfig, logger *zap.Logger) []pages.Option {
	return []pages.Option{
		pages.WithLogger(logger),
		pages.WithTimeouts(PageTimeouts(cfg)),
		pages.WithScreenshotDir(filepath.Join(cfg.ArtifactsDir, artifact.ScreenshotsDir)),
		pages.WithDownloadDir(filepath.Join(cfg.ArtifactsDir, artifact.DownloadsDir)),
	}
}

// PageOptions binds page objects to the session's configuration and test logger
func (s *Session) PageOptions() []pages.Option {
	return PageOptions(s.Config, s.logger)
}

// LaunchOptions maps cfg onto playwright launch options
func LaunchOptions(cfg config.SuiteConfig) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	}
	if cfg.Browser == config.BrowserChromium {
		opts.Args = chromiumArgs
	}
	return opts
}

// ContextOptions maps cfg onto playwright context options
func ContextOptions(cfg config.SuiteConfig) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		},
		AcceptDownloads: playwright.Bool(true),
	}
	if cfg.Video {
		opts.RecordVideo = &playwright.RecordVideo{
			Dir: filepath.Join(cfg.ArtifactsDir, artifact.VideosDir),
			Size: &playwright.Size{
				Width:  cfg.Viewport.Width,
				Height: cfg.Viewport.Height,
			},
		}
	}
	return opts
}

func browserTypeFor(pw *playwright.Playwright, browser string) (playwright.BrowserType, error) {
	switch browser {
	case config.BrowserChromium:
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBrowser, browser)
	}
}

// close releases whatever Launch opened, ignoring errors
func (s *Session) close() {
	if s.Context != nil {
		s.Context.Close()
	}
	if s.Browser != nil {
		s.Browser.Close()
	}
}
