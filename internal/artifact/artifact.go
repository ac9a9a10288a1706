// Package artifact names diagnostic files and carries references to them
// through the test log so the report step can attach them.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Kind is the type of a diagnostic artifact
type Kind string

// Artifact kinds
const (
	KindScreenshot Kind = "screenshot"
	KindVideo      Kind = "video"
	KindTrace      Kind = "trace"
	KindDownload   Kind = "download"
)

// Output directories, relative to the artifacts root
const (
	ScreenshotsDir   = "screenshots"
	VideosDir        = "videos"
	TracesDir        = "traces"
	DownloadsDir     = "downloads"
	LogsDir          = "logs"
	ReportsDir       = "reports"
	AllureResultsDir = "allure-results"
	AllureReportDir  = "allure-report"
)

// TimestampLayout is the timestamp suffix used in artifact file names
const TimestampLayout = "20060102_150405"

// Artifact is a file written once and referenced by path
type Artifact struct {
	Kind Kind
	Path string
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName turns a test name such as "TestCart_Remove/Blue_Top" into a file name fragment
func SafeName(name string) string {
	return strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
}

// Path builds dir/<prefix><name>_<timestamp>.<ext> and makes sure dir exists
func Path(dir, prefix, name, ext string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	file := fmt.Sprintf("%s%s_%s.%s", prefix, SafeName(name), at.Format(TimestampLayout), ext)
	return filepath.Join(dir, file), nil
}

const linePrefix = "artifact"

// The path runs to the end of the line so directories with spaces survive
var linePattern = regexp.MustCompile(`(?:^|\s)artifact (screenshot|video|trace|download) (\S.*?)\s*$`)

// Line formats a as the test log line picked up by Parse
func (a Artifact) Line() string {
	return fmt.Sprintf("%s %s %s", linePrefix, a.Kind, a.Path)
}

// Parse extracts an artifact reference from one line of test output.
// Lines written through t.Logf carry a "file.go:NN: " prefix which is ignored.
func Parse(line string) (Artifact, bool) {
	m := linePattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return Artifact{}, false
	}
	return Artifact{Kind: Kind(m[1]), Path: m[2]}, true
}
