package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadSuiteConfig_Defaults(t *testing.T) {
	// GIVEN an empty environment
	getenv := envMap(nil)

	// WHEN
	cfg, err := LoadSuiteConfig(getenv)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, BrowserChromium, cfg.Browser)
	assert.True(t, cfg.Headless)
	assert.Equal(t, time.Duration(0), cfg.SlowMo)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, cfg.Viewport)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, EnvStaging, cfg.Environment)
	assert.True(t, cfg.ScreenshotOnFailure)
	assert.False(t, cfg.Video)
	assert.False(t, cfg.Tracing)
	assert.Equal(t, ".", cfg.ArtifactsDir)
}

func TestLoadSuiteConfig_Overrides(t *testing.T) {
	cfg, err := LoadSuiteConfig(envMap(map[string]string{
		"BROWSER":               "Firefox",
		"HEADLESS":              "false",
		"SLOWMO":                "250",
		"TIMEOUT":               "10000",
		"BASE_URL":              "http://127.0.0.1:9999/",
		"SCREENSHOT_ON_FAILURE": "false",
		"VIDEO":                 "true",
		"TRACING":               "TRUE",
		"ENVIRONMENT":           "dev",
	}))

	require.NoError(t, err)
	assert.Equal(t, BrowserFirefox, cfg.Browser)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowMo)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL, "trailing slash is trimmed")
	assert.False(t, cfg.ScreenshotOnFailure)
	assert.True(t, cfg.Video)
	assert.True(t, cfg.Tracing)
	assert.Equal(t, EnvDev, cfg.Environment)
}

func TestLoadSuiteConfig_BaseURLFromEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "local default",
			env:  map[string]string{"ENVIRONMENT": "local"},
			want: "http://localhost:3000",
		},
		{
			name: "local override",
			env:  map[string]string{"ENVIRONMENT": "local", "LOCAL_URL": "http://localhost:4000"},
			want: "http://localhost:4000",
		},
		{
			name: "prod default",
			env:  map[string]string{"ENVIRONMENT": "prod"},
			want: DefaultBaseURL,
		},
		{
			name: "BASE_URL wins over environment",
			env:  map[string]string{"ENVIRONMENT": "dev", "DEV_URL": "https://dev.example", "BASE_URL": "https://explicit.example"},
			want: "https://explicit.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSuiteConfig(envMap(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.BaseURL)
		})
	}
}

func TestLoadSuiteConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "unknown browser", env: map[string]string{"BROWSER": "opera"}, wantErr: ErrUnknownBrowser},
		{name: "unknown environment", env: map[string]string{"ENVIRONMENT": "qa"}, wantErr: ErrUnknownEnvironment},
		{name: "bad headless", env: map[string]string{"HEADLESS": "maybe"}},
		{name: "bad timeout", env: map[string]string{"TIMEOUT": "soon"}},
		{name: "negative slowmo", env: map[string]string{"SLOWMO": "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuiteConfig(envMap(tt.env))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSuiteConfig_URL(t *testing.T) {
	cfg := SuiteConfig{BaseURL: "https://shop.example"}

	assert.Equal(t, "https://shop.example", cfg.URL(""))
	assert.Equal(t, "https://shop.example/products", cfg.URL("/products"))
	assert.Equal(t, "https://shop.example/view_cart", cfg.URL("view_cart"))
}

func TestLoadPostgresConfig(t *testing.T) {
	cfg, err := LoadPostgresConfig(envMap(map[string]string{
		"POSTGRES_USER":     "suite",
		"POSTGRES_PASSWORD": "secret",
		"POSTGRES_DB":       "results",
		"POSTGRES_HOSTNAME": "db",
	}))
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=suite dbname=results sslmode=disable password=secret", cfg.ConnectionString())

	_, err = LoadPostgresConfig(envMap(map[string]string{"POSTGRES_USER": "suite"}))
	assert.Error(t, err)
}
