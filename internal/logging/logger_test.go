package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesDailyFile(t *testing.T) {
	// GIVEN
	dir := filepath.Join(t.TempDir(), "logs")
	fixed := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	// WHEN
	logger, closeFn, err := New(Options{Dir: dir, Level: "info", Now: func() time.Time { return fixed }})
	require.NoError(t, err)
	logger.Named("CartPage").Info("Getting cart items count")
	logger.Debug("filtered out")
	require.NoError(t, closeFn())

	// THEN
	data, err := os.ReadFile(filepath.Join(dir, "20261014.log"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"logger":"CartPage"`)
	assert.Contains(t, content, "Getting cart items count")
	assert.False(t, strings.Contains(content, "filtered out"), "debug lines are below the info level")
}

func TestNew_NoOutputsIsNop(t *testing.T) {
	logger, closeFn, err := New(Options{})
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closeFn())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
