// Package view renders the server-side HTML of the flight search UI.
//
// Templates are embedded in the binary. Each page is its own template set
// built from layout.html, the shared partials and the page's "content"
// definition; the datastar autocomplete list is rendered on its own as a
// fragment. Page data is plain view-model structs built by the New*
// constructors in this package, so templates stay free of formatting logic.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkordes/flight-search/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Page.
const (
	PageHome     = "home"
	PageResults  = "results"
	PageNotFound = "notfound"
)

var pages = []string{PageHome, PageResults, PageNotFound}

// layoutData is what layout.html executes against.
type layoutData struct {
	Title string
	Theme theme.Palette
	Page  any
}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	palette   theme.Palette
	pages     map[string]*template.Template
	fragments *template.Template
}

// New parses every template and binds the renderer to palette.
func New(palette theme.Palette) (*Renderer, error) {
	funcs := template.FuncMap{
		"suggestionsFor": func(field string) Suggestions { return Suggestions{Field: field} },
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/suggestions.html")
	if err != nil {
		return nil, fmt.Errorf("view.New: parse layout: %w", err)
	}

	r := &Renderer{palette: palette, pages: make(map[string]*template.Template, len(pages)), fragments: base}
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("view.New: clone for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("view.New: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Page renders a full HTML document. The output is buffered so a template
// error never leaves a half-written response.
func (r *Renderer) Page(name, title string, data any) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("view.Renderer.Page: unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", layoutData{Title: title, Theme: r.palette, Page: data}); err != nil {
		return nil, fmt.Errorf("view.Renderer.Page: %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Suggestions renders the autocomplete list fragment for s.
func (r *Renderer) Suggestions(s Suggestions) (string, error) {
	var buf bytes.Buffer
	if err := r.fragments.ExecuteTemplate(&buf, "suggestions", s); err != nil {
		return "", fmt.Errorf("view.Renderer.Suggestions: %w", err)
	}
	return buf.String(), nil
}
