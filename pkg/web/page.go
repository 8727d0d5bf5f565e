package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/aretw0/notes/pkg/core"
)

//go:embed templates/index.html
var templates embed.FS

var defaultPage = template.Must(template.ParseFS(templates, "templates/index.html"))

type pageData struct {
	Notes []core.Note
}

// renderPage executes the page into memory first so a failing template
// never leaves a half-written response behind.
func renderPage(tmpl *template.Template, notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{Notes: notes}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
