package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/models"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"isImage": func(a artifact.Artifact) bool { return a.Kind == artifact.KindScreenshot },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>shopcheck report {{.Run.ID}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #ddd; padding: 6px; text-align: left; vertical-align: top; }
.passed { color: #2e7d32; }
.failed { color: #c62828; }
.skipped { color: #757575; }
pre { white-space: pre-wrap; margin: 0; }
img { max-width: 320px; display: block; }
</style>
</head>
<body>
<h1>shopcheck report</h1>
<p id="summary">
	Environment <b>{{.Run.Environment}}</b>, browser <b>{{.Run.Browser}}</b>,
	started {{.Run.StartedAt.Format "2006-01-02 15:04:05"}}, took {{.Run.Duration}}.
</p>
<p id="totals">
	<span class="passed">{{.Run.Passed}} passed</span>,
	<span class="failed">{{.Run.Failed}} failed</span>,
	<span class="skipped">{{.Run.Skipped}} skipped</span>
	of {{.Run.Total}}; exit code {{.Run.ExitCode}}
</p>
<table id="results">
	<thead><tr><th>Test</th><th>Status</th><th>Time</th><th>Details</th></tr></thead>
	<tbody>
	{{range .Results}}
	<tr class="result {{.Status}}">
		<td>{{.Name}}</td>
		<td class="{{.Status}}">{{.Status}}</td>
		<td>{{.Elapsed}}</td>
		<td>
			{{with .Message}}<pre>{{.}}</pre>{{end}}
			{{range .Attachments}}
			{{if isImage .}}<a href="{{.Path}}"><img src="{{.Path}}" alt="{{.Kind}}"></a>{{else}}<a href="{{.Path}}">{{.Kind}}</a>{{end}}
			{{end}}
		</td>
	</tr>
	{{end}}
	</tbody>
</table>
</body>
</html>
`))

type htmlData struct {
	Run     *models.Run
	Results []models.TestResult
}

// WriteHTML renders the run summary and its results to w
func WriteHTML(w io.Writer, run *models.Run, results []models.TestResult) error {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, htmlData{Run: run, Results: results}); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// WriteHTMLFile writes the report to path, linking attachments relative to it
func WriteHTMLFile(path string, run *models.Run, results []models.TestResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to resolve report directory: %w", err)
	}
	linked := lo.Map(results, func(res models.TestResult, _ int) models.TestResult {
		res.Attachments = lo.Map(res.Attachments, func(a artifact.Artifact, _ int) artifact.Artifact {
			a.Path = relativeLink(base, a.Path)
			return a
		})
		return res
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteHTML(f, run, linked); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// relativeLink rewrites target as a slash path relative to base when it can
func relativeLink(base, target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
