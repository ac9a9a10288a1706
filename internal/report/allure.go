package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/models"
)

// mimeTypes covers the artifact kinds sessions write
var mimeTypes = map[string]string{
	".png":  "image/png",
	".webm": "video/webm",
	".zip":  "application/zip",
	".txt":  "text/plain",
}

// AllureResult is the allure-results/<uuid>-result.json document
type AllureResult struct {
	UUID          string              `json:"uuid"`
	HistoryID     string              `json:"historyId"`
	Name          string              `json:"name"`
	FullName      string              `json:"fullName"`
	Status        string              `json:"status"`
	Stage         string              `json:"stage"`
	Start         int64               `json:"start"`
	Stop          int64               `json:"stop"`
	StatusDetails *AllureDetails      `json:"statusDetails,omitempty"`
	Labels        []AllureLabel       `json:"labels"`
	Attachments   []AllureAttachment  `json:"attachments,omitempty"`
	Parameters    []map[string]string `json:"parameters,omitempty"`
}

// AllureDetails carries the failure message
type AllureDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// AllureLabel groups results in the Allure UI
type AllureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AllureAttachment points at a file copied next to the result
type AllureAttachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// WriteAllure replaces dir with one result file per test plus copies of
// their attachments. Results are written even when an attachment cannot be
// copied; those errors are returned together at the end.
func WriteAllure(dir string, results []models.TestResult, now time.Time) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var errs error
	for _, res := range results {
		doc := NewAllureResult(res, now)
		for _, a := range res.Attachments {
			att, err := copyAttachment(dir, a)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			doc.Attachments = append(doc.Attachments, att)
		}

		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result %s: %w", res.Name, err)
		}
		path := filepath.Join(dir, doc.UUID+"-result.json")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return errs
}

// NewAllureResult maps one test result onto the Allure result model.
// Results without a start time are stamped with now.
func NewAllureResult(res models.TestResult, now time.Time) AllureResult {
	started := res.Started
	if started.IsZero() {
		started = now
	}
	suite := lo.CoalesceOrEmpty(res.Marker(), res.Package)

	doc := AllureResult{
		UUID:      uuid.NewString(),
		HistoryID: uuid.NewSHA1(uuid.NameSpaceURL, []byte(res.Package+"/"+res.Name)).String(),
		Name:      res.Name,
		FullName:  strings.TrimPrefix(res.Package+"."+res.Name, "."),
		Status:    allureStatus(res.Status),
		Stage:     "finished",
		Start:     started.UnixMilli(),
		Stop:      started.Add(res.Elapsed).UnixMilli(),
		Labels: []AllureLabel{
			{Name: "suite", Value: suite},
			{Name: "feature", Value: suite},
			{Name: "package", Value: res.Package},
			{Name: "framework", Value: "playwright-go"},
			{Name: "language", Value: "go"},
		},
	}
	if parent, sub, ok := strings.Cut(res.Name, "/"); ok {
		doc.Labels = append(doc.Labels, AllureLabel{Name: "parentSuite", Value: parent})
		doc.Parameters = []map[string]string{{"name": "case", "value": sub}}
	}
	if res.Status != models.TestStatusPassed && res.Message != "" {
		doc.StatusDetails = &AllureDetails{Message: res.Message, Trace: strings.Join(res.Output, "\n")}
	}
	return doc
}

func allureStatus(s models.TestStatus) string {
	switch s {
	case models.TestStatusPassed:
		return "passed"
	case models.TestStatusSkipped:
		return "skipped"
	case models.TestStatusFailed:
		return "failed"
	default:
		return "broken"
	}
}

func copyAttachment(dir string, a artifact.Artifact) (AllureAttachment, error) {
	ext := filepath.Ext(a.Path)
	source := uuid.NewString() + "-attachment" + ext

	src, err := os.Open(a.Path)
	if err != nil {
		return AllureAttachment{}, fmt.Errorf("failed to open attachment: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, source))
	if err != nil {
		return AllureAttachment{}, fmt.Errorf("failed to create attachment: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return AllureAttachment{}, fmt.Errorf("failed to copy %s: %w", a.Path, err)
	}
	if err := dst.Close(); err != nil {
		return AllureAttachment{}, fmt.Errorf("failed to copy %s: %w", a.Path, err)
	}

	mimeType := mimeTypes[strings.ToLower(ext)]
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return AllureAttachment{Name: string(a.Kind), Source: source, Type: mimeType}, nil
}
