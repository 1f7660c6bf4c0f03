// Package components builds the shared page markup as x/net/html node trees.
// Every constructor returns a fresh, detached tree and has no side effects.
package components

import (
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DisplayDateLayout is the human readable publish date format.
const DisplayDateLayout = "Monday, January 2, 2006"

// Element creates an element with an optional class list and children.
func Element(a atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return Append(n, children...)
}

// Text creates a text node. Content is escaped when rendered.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append attaches children to n, skipping nils, and returns n.
func Append(n *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// SetAttr sets or replaces an attribute and returns n.
func SetAttr(n *html.Node, key, val string) *html.Node {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return n
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

// Attr returns the value of an attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AddClass appends classes to n's class attribute, ignoring duplicates.
func AddClass(n *html.Node, classes ...string) *html.Node {
	existing, _ := Attr(n, "class")
	have := strings.Fields(existing)
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if !contains(have, f) {
				have = append(have, f)
			}
		}
	}
	return SetAttr(n, "class", strings.Join(have, " "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Link creates an anchor. New tab links get target and rel attributes.
func Link(href string, newTab bool, children ...*html.Node) *html.Node {
	a := Element(atom.A, "", children...)
	SetAttr(a, "href", href)
	if newTab {
		SetAttr(a, "target", "_blank")
		SetAttr(a, "rel", "noopener noreferrer")
	}
	return a
}

// Time renders a date with a machine readable datetime attribute.
func Time(t time.Time, class string) *html.Node {
	n := Element(atom.Time, class, Text(t.UTC().Format(DisplayDateLayout)))
	return SetAttr(n, "datetime", t.UTC().Format(time.RFC3339))
}

// Fragment parses trusted HTML into detached nodes suitable for Append.
func Fragment(markup string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	return html.ParseFragment(strings.NewReader(markup), context)
}
