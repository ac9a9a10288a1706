package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Supported browser kinds
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// DefaultBaseURL is the public storefront the suite targets when nothing else is configured
const DefaultBaseURL = "https://automationexercise.com"

// ErrUnknownBrowser is returned for a BROWSER value outside chromium, firefox and webkit
var ErrUnknownBrowser = errors.New("unknown browser")

// Browsers lists the browser kinds accepted by BROWSER and --browser
var Browsers = []string{BrowserChromium, BrowserFirefox, BrowserWebKit}

// Viewport is the browser window size in CSS pixels
type Viewport struct {
	Width  int
	Height int
}

// SuiteConfig is resolved once per test session and never mutated afterwards
type SuiteConfig struct {
	Browser             string
	Headless            bool
	SlowMo              time.Duration
	Timeout             time.Duration
	Viewport            Viewport
	BaseURL             string
	Environment         string
	ScreenshotOnFailure bool
	Video               bool
	Tracing             bool
	// ArtifactsDir is the root under which screenshots/, videos/, traces/ and logs/ live
	ArtifactsDir string
}

// LoadSuiteConfig reads the suite configuration from environment variables.
// getenv is usually os.Getenv; tests pass a map lookup.
func LoadSuiteConfig(getenv func(string) string) (SuiteConfig, error) {
	cfg := SuiteConfig{
		Browser:      strings.ToLower(withDefault(getenv("BROWSER"), BrowserChromium)),
		Viewport:     Viewport{Width: 1280, Height: 720},
		Environment:  strings.ToLower(withDefault(getenv("ENVIRONMENT"), EnvStaging)),
		ArtifactsDir: withDefault(getenv("ARTIFACTS_DIR"), "."),
	}

	if !lo.Contains(Browsers, cfg.Browser) {
		return SuiteConfig{}, fmt.Errorf("%w: %q", ErrUnknownBrowser, cfg.Browser)
	}

	var err error
	if cfg.Headless, err = parseBool(getenv, "HEADLESS", true); err != nil {
		return SuiteConfig{}, err
	}
	if cfg.ScreenshotOnFailure, err = parseBool(getenv, "SCREENSHOT_ON_FAILURE", true); err != nil {
		return SuiteConfig{}, err
	}
	if cfg.Video, err = parseBool(getenv, "VIDEO", false); err != nil {
		return SuiteConfig{}, err
	}
	if cfg.Tracing, err = parseBool(getenv, "TRACING", false); err != nil {
		return SuiteConfig{}, err
	}
	if cfg.SlowMo, err = parseMillis(getenv, "SLOWMO", 0); err != nil {
		return SuiteConfig{}, err
	}
	if cfg.Timeout, err = parseMillis(getenv, "TIMEOUT", 30000); err != nil {
		return SuiteConfig{}, err
	}

	cfg.BaseURL = getenv("BASE_URL")
	if cfg.BaseURL == "" {
		cfg.BaseURL, err = ResolveBaseURL(cfg.Environment, getenv)
		if err != nil {
			return SuiteConfig{}, err
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// URL joins path onto the configured base URL
func (c SuiteConfig) URL(path string) string {
	if path == "" {
		return c.BaseURL
	}
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseBool(getenv func(string) string, key string, fallback bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, raw)
	}
	return v, nil
}

func parseMillis(getenv func(string) string, key string, fallback int) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number of milliseconds, got %q", key, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
