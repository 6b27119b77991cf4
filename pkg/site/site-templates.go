package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed templates
var templateFS embed.FS

// Renderer holds one compiled template per page, each paired with the shared
// layout; templates are embedded in the executable during the build.
type Renderer struct {
	templates map[string]*template.Template
	logger    logrus.FieldLogger
}

func NewRenderer(logger logrus.FieldLogger) (*Renderer, error) {

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	var templates = make(map[string]*template.Template)
	for _, entry := range entries {
		var name = entry.Name()
		if name == "layout.html" {
			continue
		}
		compiled, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = compiled
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// Render executes the named page template into the response with the given status.
// Pages render into a buffer first, so a failing template still yields a clean 500
// rather than a half written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data map[string]interface{}) {

	compiled, ok := r.templates[page]
	if !ok {
		r.logger.Errorf("unknown template %s", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buffer bytes.Buffer
	if err := compiled.ExecuteTemplate(&buffer, "layout", data); err != nil {
		r.logger.WithError(err).Errorf("error while rendering %s", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buffer.WriteTo(w)
}
