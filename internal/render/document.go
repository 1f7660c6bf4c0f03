// Package render serializes pages into the output directory.
package render

//go:generate templ generate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/portfolio/internal/metadata"
)

// TailwindScript compiles the utility classes used by the components in the browser.
const TailwindScript = "https://unpkg.com/@tailwindcss/browser@4"

// Document is one complete HTML page.
type Document struct {
	Meta        metadata.Metadata
	Stylesheets []string
	Body        *html.Node
}

// Component returns the templ component that writes the document.
func (d Document) Component() templ.Component {
	return page(d)
}

// node adapts a component tree built with x/net/html to templ.
func node(n *html.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render body: %w", err)
		}
		return nil
	})
}

func keywords(words []string) string {
	return strings.Join(words, ", ")
}
