// Package report turns the go test JSON stream into results, Allure result
// files and a standalone HTML summary.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/models"
)

// maxLine bounds a single test2json line; verbose page logs can be long
const maxLine = 1 << 20

// Event is one line of `go test -json` output
type Event struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

type resultKey struct {
	pkg  string
	test string
}

// ParseEvents reads a test2json stream and returns one result per test, in
// the order the tests started. Lines that are not JSON, such as build
// errors, are skipped. Tests that never report an outcome are failed.
func ParseEvents(r io.Reader) ([]models.TestResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var order []resultKey
	results := map[resultKey]*models.TestResult{}
	finished := map[resultKey]bool{}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		if ev.Test == "" {
			continue
		}

		key := resultKey{pkg: ev.Package, test: ev.Test}
		res, ok := results[key]
		if !ok {
			res = &models.TestResult{Name: ev.Test, Package: ev.Package, Started: ev.Time}
			results[key] = res
			order = append(order, key)
		}

		switch ev.Action {
		case "output":
			apply(res, ev.Output)
		case "pass":
			res.Status = models.TestStatusPassed
			res.Elapsed = seconds(ev.Elapsed)
			finished[key] = true
		case "fail":
			res.Status = models.TestStatusFailed
			res.Elapsed = seconds(ev.Elapsed)
			finished[key] = true
		case "skip":
			res.Status = models.TestStatusSkipped
			res.Elapsed = seconds(ev.Elapsed)
			finished[key] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read test events: %w", err)
	}

	all := lo.Map(order, func(key resultKey, _ int) models.TestResult {
		res := results[key]
		if !finished[key] {
			res.Status = models.TestStatusFailed
			res.Message = strings.TrimSpace(res.Message + "\ntest did not report an outcome")
		}
		if res.Status == models.TestStatusPassed {
			res.Message = ""
		}
		return *res
	})
	return withoutParents(all), nil
}

// withoutParents drops tests whose subtests are reported on their own. A
// parent that failed while none of its subtests did is kept, since that
// failure is its own.
func withoutParents(results []models.TestResult) []models.TestResult {
	return lo.Filter(results, func(res models.TestResult, _ int) bool {
		children := lo.Filter(results, func(child models.TestResult, _ int) bool {
			return child.Package == res.Package && strings.HasPrefix(child.Name, res.Name+"/")
		})
		if len(children) == 0 {
			return true
		}
		childFailed := lo.SomeBy(children, func(child models.TestResult) bool {
			return child.Status == models.TestStatusFailed
		})
		return res.Status == models.TestStatusFailed && !childFailed
	})
}

// apply records one output line, pulling out artifact references
func apply(res *models.TestResult, output string) {
	line := strings.TrimRight(output, "\n")
	res.Output = append(res.Output, line)

	if a, ok := artifact.Parse(line); ok {
		res.Attachments = append(res.Attachments, a)
		return
	}
	if isFraming(line) {
		return
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if res.Message != "" {
		res.Message += "\n"
	}
	res.Message += trimmed
}

// isFraming reports lines go test prints around each test
func isFraming(line string) bool {
	trimmed := strings.TrimSpace(line)
	return lo.SomeBy([]string{"=== ", "--- "}, func(prefix string) bool {
		return strings.HasPrefix(trimmed, prefix)
	})
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
