package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/monkeymesh/monkeymesh/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the data every template renders with.
type Page struct {
	Username string // Authenticated username, empty for anonymous visitors
	Flash    *Flash // Pending flash message, nil when there is none
	Data     any    // Page-specific data
}

// Renderer renders the embedded HTML templates.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

// Render writes the named template with the given page data. The template is
// executed into a buffer first so a template error never produces a
// half-written page.
func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	var buf bytes.Buffer
	if err := rn.tpl.ExecuteTemplate(&buf, name, page); err != nil {
		logger.Log.Errorw("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
