package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// partials are parsed into every page next to the layout
var partials = []string{"product_card.html", "sidebar.html", "cart_rows.html"}

// View is what every page template is executed with
type View struct {
	Title   string
	User    *models.Account
	Content any
}

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

// NewRenderer parses every page template once
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	funcMap := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	shared := map[string]bool{"layout.html": true}
	for _, p := range partials {
		shared[p] = true
	}

	pages := make(map[string]*template.Template)
	for _, name := range names {
		base := path.Base(name)
		if shared[base] {
			continue
		}
		files := []string{"templates/layout.html"}
		for _, p := range partials {
			files = append(files, "templates/"+p)
		}
		files = append(files, name)

		tmpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", base, err)
		}
		pages[base] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page with status, or a 500 if the template fails
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, view View) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.logger.Error("Unknown template", zap.String("template", page))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		r.logger.Error("Error rendering template", zap.String("template", page), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
