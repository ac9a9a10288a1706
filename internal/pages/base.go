// Package pages implements the page objects for the storefront: typed
// selector catalogs and the user-level actions and queries built on them.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
)

// pollInterval is how often IsVisible re-checks the DOM
const pollInterval = 100 * time.Millisecond

// State is the element state WaitFor blocks on
type State string

// Element states
const (
	StateVisible  State = "visible"
	StateHidden   State = "hidden"
	StateAttached State = "attached"
	StateDetached State = "detached"
)

func (s State) toPlaywright() *playwright.WaitForSelectorState {
	switch s {
	case StateHidden:
		return playwright.WaitForSelectorStateHidden
	case StateAttached:
		return playwright.WaitForSelectorStateAttached
	case StateDetached:
		return playwright.WaitForSelectorStateDetached
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

// Timeouts bounds every wait a page object performs
type Timeouts struct {
	// Navigation bounds loads, clicks, fills and explicit waits
	Navigation time.Duration
	// Soft bounds IsVisible existence checks
	Soft time.Duration
}

// DefaultTimeouts returns 30s for navigation-sensitive waits and 5s for soft checks
func DefaultTimeouts() Timeouts {
	return Timeouts{Navigation: 30 * time.Second, Soft: 5 * time.Second}
}

// TimeoutsFor bounds navigation-sensitive waits by navigation. Soft checks
// keep their default unless that would exceed navigation. A zero navigation
// returns DefaultTimeouts.
func TimeoutsFor(navigation time.Duration) Timeouts {
	t := DefaultTimeouts()
	if navigation <= 0 {
		return t
	}
	t.Navigation = navigation
	t.Soft = min(t.Soft, navigation)
	return t
}

// Option customizes a page object
type Option func(*options)

type options struct {
	logger        *zap.Logger
	timeouts      Timeouts
	screenshotDir string
	downloadDir   string
	now           func() time.Time
}

// WithLogger sets the logger; each page names it after itself
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTimeouts overrides DefaultTimeouts
func WithTimeouts(t Timeouts) Option {
	return func(o *options) { o.timeouts = t }
}

// WithScreenshotDir sets where Screenshot writes files
func WithScreenshotDir(dir string) Option {
	return func(o *options) { o.screenshotDir = dir }
}

// WithDownloadDir sets where downloaded files are saved
func WithDownloadDir(dir string) Option {
	return func(o *options) { o.downloadDir = dir }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:        zap.NewNop(),
		timeouts:      DefaultTimeouts(),
		screenshotDir: artifact.ScreenshotsDir,
		downloadDir:   artifact.DownloadsDir,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Base provides the primitives every page object composes.
// It holds a non-owning reference to the page; the session provider owns its lifetime.
type Base struct {
	page          playwright.Page
	logger        *zap.Logger
	timeouts      Timeouts
	screenshotDir string
	downloadDir   string
	now           func() time.Time
}

func newBase(page playwright.Page, name string, opts []Option) (Base, error) {
	if page == nil {
		return Base{}, fmt.Errorf("%s: nil page", name)
	}
	o := buildOptions(opts)
	return Base{
		page:          page,
		logger:        o.logger.Named(name),
		timeouts:      o.timeouts,
		screenshotDir: o.screenshotDir,
		downloadDir:   o.downloadDir,
		now:           o.now,
	}, nil
}

// Page returns the wrapped page handle
func (b *Base) Page() playwright.Page {
	return b.page
}

// WaitForLoad waits until the network has been idle
func (b *Base) WaitForLoad() error {
	err := b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: millis(b.timeouts.Navigation),
	})
	if err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}
	return nil
}

// WaitFor blocks until the first match of selector reaches state
func (b *Base) WaitFor(selector string, state State, timeout time.Duration) error {
	b.logger.Info("Waiting for selector", zap.String("selector", selector), zap.String("state", string(state)))
	err := b.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   state.toPlaywright(),
		Timeout: millis(timeout),
	})
	if err != nil {
		return fmt.Errorf("wait for %q to be %s: %w", selector, state, err)
	}
	return nil
}

// Click clicks the first match of selector
func (b *Base) Click(selector string) error {
	b.logger.Info("Clicking", zap.String("selector", selector))
	if err := b.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: millis(b.timeouts.Navigation),
	}); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

// Fill types value into the first match of selector
func (b *Base) Fill(selector, value string) error {
	b.logger.Info("Filling", zap.String("selector", selector), zap.String("value", value))
	if err := b.page.Locator(selector).First().Fill(value, playwright.LocatorFillOptions{
		Timeout: millis(b.timeouts.Navigation),
	}); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

// Text returns the rendered text of the first match of selector
func (b *Base) Text(selector string) (string, error) {
	b.logger.Info("Getting text", zap.String("selector", selector))
	text, err := b.page.Locator(selector).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: millis(b.timeouts.Navigation),
	})
	if err != nil {
		return "", fmt.Errorf("text of %q: %w", selector, err)
	}
	return text, nil
}

// TextsOf returns the trimmed text content of every match of selector in DOM order
func (b *Base) TextsOf(selector string) ([]string, error) {
	texts, err := b.page.Locator(selector).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("texts of %q: %w", selector, err)
	}
	return lo.Map(texts, func(s string, _ int) string { return strings.TrimSpace(s) }), nil
}

// IsVisible polls until the first match of selector is visible or timeout
// elapses. It never fails: absence is reported as false.
func (b *Base) IsVisible(selector string, timeout time.Duration) bool {
	b.logger.Info("Checking if visible", zap.String("selector", selector))
	loc := b.page.Locator(selector).First()
	return b.poll(timeout, func() bool {
		visible, err := loc.IsVisible()
		if err != nil {
			b.logger.Debug("Visibility check failed", zap.String("selector", selector), zap.Error(err))
			return false
		}
		return visible
	})
}

// Count returns how many elements match selector right now
func (b *Base) Count(selector string) (int, error) {
	b.logger.Info("Getting count", zap.String("selector", selector))
	n, err := b.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", selector, err)
	}
	return n, nil
}

// Screenshot writes a full page PNG named after name and returns its path
func (b *Base) Screenshot(name string) (string, error) {
	b.logger.Info("Taking screenshot", zap.String("name", name))
	path, err := artifact.Path(b.screenshotDir, "", name, "png", b.now())
	if err != nil {
		return "", err
	}
	if _, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	return path, nil
}

// NavigateTo loads url and waits for the network to settle
func (b *Base) NavigateTo(url string) error {
	b.logger.Info("Navigating", zap.String("url", url))
	if _, err := b.page.Goto(url, playwright.PageGotoOptions{
		Timeout: millis(b.timeouts.Navigation),
	}); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return b.WaitForLoad()
}

// clickAndSettle clicks selector and waits for the resulting navigation to settle
func (b *Base) clickAndSettle(selector string) error {
	if err := b.Click(selector); err != nil {
		return err
	}
	return b.WaitForLoad()
}

// clickNth clicks the match at index i of selector
func (b *Base) clickNth(selector string, i int) error {
	b.logger.Info("Clicking", zap.String("selector", selector), zap.Int("index", i))
	if err := b.page.Locator(selector).Nth(i).Click(playwright.LocatorClickOptions{
		Timeout: millis(b.timeouts.Navigation),
	}); err != nil {
		return fmt.Errorf("click %q[%d]: %w", selector, i, err)
	}
	return nil
}

// textNth returns the trimmed text content of match i of selector
func (b *Base) textNth(selector string, i int) (string, error) {
	text, err := b.page.Locator(selector).Nth(i).TextContent(playwright.LocatorTextContentOptions{
		Timeout: millis(b.timeouts.Navigation),
	})
	if err != nil {
		return "", fmt.Errorf("text of %q[%d]: %w", selector, i, err)
	}
	return strings.TrimSpace(text), nil
}

// poll evaluates cond until it returns true or timeout elapses; cond runs at least once
func (b *Base) poll(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
