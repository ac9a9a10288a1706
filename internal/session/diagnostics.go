package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
)

// ErrFinished is returned when Finish is called a second time
var ErrFinished = errors.New("session already finished")

// Outcome is the result of one test, handed to Finish by whoever ran it
type Outcome struct {
	Name   string
	Failed bool
}

// step is one teardown action; it may produce an artifact
type step struct {
	name string
	run  func() (*artifact.Artifact, error)
}

// Finish captures diagnostics for o and releases the browser.
// Every step runs even if an earlier one failed; their errors are combined
// and logged, and never stand in for the test's own failure.
func (s *Session) Finish(o Outcome) ([]artifact.Artifact, error) {
	if s.finished {
		return nil, ErrFinished
	}
	s.finished = true
	return runSteps(s.logger, s.teardown(o))
}

// teardown lists the steps Finish runs for o, in order
func (s *Session) teardown(o Outcome) []step {
	var steps []step
	if o.Failed && s.Config.ScreenshotOnFailure {
		steps = append(steps, step{name: "screenshot", run: func() (*artifact.Artifact, error) {
			return s.screenshot(o.Name)
		}})
	}
	if s.Config.Tracing {
		steps = append(steps, step{name: "trace", run: func() (*artifact.Artifact, error) {
			return s.stopTrace(o.Name)
		}})
	}
	steps = append(steps, step{name: "context", run: func() (*artifact.Artifact, error) {
		return nil, s.Context.Close()
	}})
	if s.Config.Video {
		steps = append(steps, step{name: "video", run: func() (*artifact.Artifact, error) {
			return s.saveVideo(o.Name)
		}})
	}
	steps = append(steps, step{name: "browser", run: func() (*artifact.Artifact, error) {
		return nil, s.Browser.Close()
	}})
	return steps
}

func runSteps(logger *zap.Logger, steps []step) ([]artifact.Artifact, error) {
	var artifacts []artifact.Artifact
	var errs error
	for _, st := range steps {
		a, err := st.run()
		if err != nil {
			logger.Warn("Diagnostic step failed", zap.String("step", st.name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", st.name, err))
			continue
		}
		if a != nil {
			logger.Info("Diagnostic captured", zap.String("kind", string(a.Kind)), zap.String("path", a.Path))
			artifacts = append(artifacts, *a)
		}
	}
	return artifacts, errs
}

func (s *Session) screenshot(test string) (*artifact.Artifact, error) {
	path, err := artifact.Path(s.dir(artifact.ScreenshotsDir), "failure_", test, "png", s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return nil, err
	}
	return &artifact.Artifact{Kind: artifact.KindScreenshot, Path: path}, nil
}

func (s *Session) stopTrace(test string) (*artifact.Artifact, error) {
	path, err := artifact.Path(s.dir(artifact.TracesDir), "", test, "zip", s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Context.Tracing().Stop(path); err != nil {
		return nil, err
	}
	return &artifact.Artifact{Kind: artifact.KindTrace, Path: path}, nil
}

// saveVideo copies the recording under the test's name; it needs the context closed first
func (s *Session) saveVideo(test string) (*artifact.Artifact, error) {
	video := s.Page.Video()
	if video == nil {
		return nil, nil
	}
	path, err := artifact.Path(s.dir(artifact.VideosDir), "", test, "webm", s.now())
	if err != nil {
		return nil, err
	}
	if err := video.SaveAs(path); err != nil {
		return nil, err
	}
	if err := video.Delete(); err != nil {
		s.logger.Debug("Could not remove raw recording", zap.Error(err))
	}
	return &artifact.Artifact{Kind: artifact.KindVideo, Path: path}, nil
}

func (s *Session) dir(name string) string {
	return filepath.Join(s.Config.ArtifactsDir, name)
}

// Attach records a in the test log where the report step picks it up
func Attach(t testing.TB, a artifact.Artifact) {
	t.Helper()
	t.Log(a.Line())
}
