// Package templates renders the server-side HTML pages. Templates are
// embedded at build time; each page file defines a named template that
// shares the header/footer partials from layout.html.
package templates

import (
	"embed"
	"html/template"
	"io"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

// Render executes the named page template with the given data
func Render(w io.Writer, page string, data any) error {
	return pages.ExecuteTemplate(w, page, data)
}
