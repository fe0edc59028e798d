// Package theme holds the colour palettes of the web UI and renders the
// active one as CSS custom properties for the page layout.
package theme

import (
	"fmt"
	"html/template"
	"strings"
)

// Palette is one colour scheme. Every field is a CSS colour value.
type Palette struct {
	Name          string
	Background    string
	Surface       string
	Border        string
	Primary       string
	Text          string
	TextSecondary string
	Required      string
	HeaderBg      string
	HeaderBorder  string
	SearchBg      string
	Shadow        string
}

var Light = Palette{
	Name:          "light",
	Background:    "#f9fbff",
	Surface:       "#ffffff",
	Border:        "#e2e8f0",
	Primary:       "#215ce5",
	Text:          "#111827",
	TextSecondary: "#4b5563",
	Required:      "#d30d0d",
	HeaderBg:      "#ffffff",
	HeaderBorder:  "#e8eaed",
	SearchBg:      "#f8f9fa",
	Shadow:        "rgba(0, 0, 0, 0.1)",
}

var Dark = Palette{
	Name:          "dark",
	Background:    "#0d1117",
	Surface:       "#161b22",
	Border:        "#30363d",
	Primary:       "#58a6ff",
	Text:          "#e6edf3",
	TextSecondary: "#7d8590",
	Required:      "#f85149",
	HeaderBg:      "#161b22",
	HeaderBorder:  "#21262d",
	SearchBg:      "#21262d",
	Shadow:        "rgba(0, 0, 0, 0.3)",
}

// Default is the palette used when none is configured.
var Default = Dark

// Lookup returns the palette with the given name (case-insensitive).
// An empty name selects Default.
func Lookup(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case Light.Name:
		return Light, nil
	case Dark.Name:
		return Dark, nil
	default:
		return Palette{}, fmt.Errorf("theme.Lookup: unknown theme %q (want light or dark)", name)
	}
}

// CSSVars renders the palette as a :root rule of custom properties
// (--background, --text-secondary, ...). The values are fixed literals
// from this package, so the result is marked safe for templates.
func (p Palette) CSSVars() template.CSS {
	vars := []struct{ name, value string }{
		{"background", p.Background},
		{"surface", p.Surface},
		{"border", p.Border},
		{"primary", p.Primary},
		{"text", p.Text},
		{"text-secondary", p.TextSecondary},
		{"required", p.Required},
		{"header-bg", p.HeaderBg},
		{"header-border", p.HeaderBorder},
		{"search-bg", p.SearchBg},
		{"shadow", p.Shadow},
	}

	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range vars {
		fmt.Fprintf(&b, "--%s:%s;", v.name, v.value)
	}
	b.WriteString("}")
	return template.CSS(b.String())
}
