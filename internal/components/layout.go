package components

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ArticlesMarker is the layout path of article pages. Its breadcrumb reads
// "Home" and points at the canonical site root.
const ArticlesMarker = "Articles"

// SiteIdentity is the part of the site configuration the layout shows.
type SiteIdentity struct {
	Name      string
	HomeURL   string // canonical site root
	NotesURL  string // content subdomain used for breadcrumb links
	GitHubURL string
}

// LayoutProps are the inputs of Layout. Path is shown as a breadcrumb only when HasPath is set.
type LayoutProps struct {
	Site        SiteIdentity
	Path        string
	HasPath     bool
	Title       string
	Description string
	Published   *time.Time
	Content     []*html.Node
	Year        int
}

// Breadcrumb returns the display text and target of a path segment.
func Breadcrumb(site SiteIdentity, path string) (text, href string) {
	if path == ArticlesMarker {
		return "Home", site.HomeURL
	}
	return cases.Title(language.English).String(path), strings.TrimSuffix(site.NotesURL, "/") + "/" + path
}

// Layout renders the page shell as a body element. Content nodes must be detached.
func Layout(p LayoutProps) *html.Node {
	main := Element(atom.Main, "flex-1 mx-auto max-w-[99vw] sm:max-w-[76ch] text-pretty p-4 pt-20",
		Element(atom.Div, "flex flex-col space-y-4",
			StyledHeading(Element(atom.H1, "", Text(p.Title)), SizeXL4),
			publishedBlock(p.Published),
			Element(atom.P, "", Text(p.Description))))
	Append(main, p.Content...)

	return Element(atom.Body,
		"flex flex-col min-h-screen text-zinc-800 font-[ui-serif] bg-zinc-200 dark:text-zinc-200 dark:bg-zinc-950 relative",
		header(p),
		main,
		footer(p.Site, p.Year))
}

func header(p LayoutProps) *html.Node {
	home := StyledLink(Link(strings.TrimSuffix(p.Site.HomeURL, "/")+"/", false, Text(p.Site.Name)), WeightMedium)
	identity := Element(atom.Div, "flex items-center space-x-2", home)
	if p.HasPath {
		text, href := Breadcrumb(p.Site, p.Path)
		Append(identity,
			Element(atom.Div, "", Text("/")),
			StyledLink(Link(href, false, Text(text)), WeightMedium))
	}

	github := StyledLink(Link(p.Site.GitHubURL, true, Element(atom.Div, "", githubIcon())), WeightMedium)
	SetAttr(github, "aria-label", "Visit "+p.Site.Name+"'s GitHub profile")
	AddClass(github, "rounded-lg w-8 h-8 flex justify-center items-center hover:bg-zinc-300 dark:hover:bg-zinc-700")

	nav := Element(atom.Nav, "flex items-center space-x-2",
		StyledLink(Link("/projects", false, Text("Projects")), WeightMedium),
		StyledLink(Link(p.Site.NotesURL, false, Text("Notes")), WeightMedium),
		github)

	return Element(atom.Header,
		"backdrop-blur-3xl flex justify-between items-center w-screen max-w-[100ch] mx-auto mb-4 "+
			"border-b border-zinc-900/50 dark:border-zinc-500/70 px-4 py-2 fixed inset-x-0 top-0 "+
			"bg-zinc-200/50 dark:bg-zinc-950/50 z-50",
		identity, nav)
}

func publishedBlock(published *time.Time) *html.Node {
	if published == nil {
		return nil
	}
	return Element(atom.P, "",
		Element(atom.Span, "font-bold font-[system-ui]", Text("Published: ")),
		Time(*published, ""))
}

func footer(site SiteIdentity, year int) *html.Node {
	return Element(atom.Footer,
		"text-sm text-zinc-600/90 font-[system-ui] dark:text-zinc-400/90 flex justify-center items-center py-4",
		Element(atom.P, "",
			Text("© "+strconv.Itoa(year)+" "),
			StyledLink(Link("/", false, Text(site.Name)), WeightNormal)))
}

const githubMarkPath = "M8 0C3.58 0 0 3.58 0 8c0 3.54 2.29 6.53 5.47 7.59.4.07.55-.17.55-.38 0-.19-.01-.82-.01-1.49" +
	"-2.01.37-2.53-.49-2.69-.94-.09-.23-.48-.94-.82-1.13-.28-.15-.68-.52-.01-.53.63-.01 1.08.58 1.23.82.72 1.21" +
	" 1.87.87 2.33.66.07-.52.28-.87.51-1.07-1.78-.2-3.64-.89-3.64-3.95 0-.87.31-1.59.82-2.15-.08-.2-.36-1.02.08" +
	"-2.12 0 0 .67-.21 2.2.82.64-.18 1.32-.27 2-.27.68 0 1.36.09 2 .27 1.53-1.04 2.2-.82 2.2-.82.44 1.1.16 1.92" +
	".08 2.12.51.56.82 1.27.82 2.15 0 3.07-1.87 3.75-3.65 3.95.29.25.54.73.54 1.48 0 1.07-.01 1.93-.01 2.2 0 .21" +
	".15.46.55.38A8.013 8.013 0 0016 8c0-4.42-3.58-8-8-8z"

func githubIcon() *html.Node {
	path := &html.Node{Type: html.ElementNode, Data: "path", Namespace: "svg"}
	SetAttr(path, "d", githubMarkPath)
	svg := &html.Node{Type: html.ElementNode, DataAtom: atom.Svg, Data: "svg", Namespace: "svg"}
	SetAttr(svg, "xmlns", "http://www.w3.org/2000/svg")
	SetAttr(svg, "viewBox", "0 0 16 16")
	SetAttr(svg, "width", "20")
	SetAttr(svg, "height", "20")
	SetAttr(svg, "fill", "currentColor")
	SetAttr(svg, "aria-hidden", "true")
	return Append(svg, path)
}
