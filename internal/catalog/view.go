package catalog

import (
	"html"
	"io"

	"github.com/flix/flixsite/internal/richtext"
)

// Layout is the catalog-wide arrangement handed to the stylesheet.
type Layout string

const (
	// LayoutColumns flows cards into responsive columns; cards may differ
	// in height.
	LayoutColumns Layout = "columns"
	// LayoutStack places cards one below the other.
	LayoutStack Layout = "stack"
)

func (l Layout) class() string {
	if l == LayoutStack {
		return "card-stack"
	}
	return "card-columns"
}

// WriteHTML writes the cards wrapped in the layout container.
func WriteHTML(w io.Writer, cards []Card, layout Layout, r *richtext.HTMLRenderer) error {
	if _, err := io.WriteString(w, `<div class="`+layout.class()+`">`); err != nil {
		return err
	}
	for _, c := range cards {
		if err := writeCard(w, c, r); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>")
	return err
}

func writeCard(w io.Writer, c Card, r *richtext.HTMLRenderer) error {
	open := `<div class="card" id="` + html.EscapeString(c.ID) + `"><div class="card-body">` +
		`<h5 class="card-title">` + html.EscapeString(c.Heading) + `</h5><div class="card-text">`
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}
	if err := r.Render(w, c.Body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</div></div></div>")
	return err
}
