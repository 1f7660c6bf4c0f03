// Package site defines the pages of the portfolio and assembles them into the
// ordered route list rendered by each build.
package site

import (
	"time"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/portfolio/internal/components"
	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/metadata"
)

// Page is one routable unit of the site.
type Page interface {
	// Path is the site relative location. ok is false only for a default route page.
	Path() (path string, ok bool)
	Metadata() metadata.Metadata
	// Render returns the page body element.
	Render() (*html.Node, error)
	// Stylesheets lists extra stylesheets for the document head.
	Stylesheets() []string
}

// Env is the read-only build context shared by every page.
type Env struct {
	Defaults          metadata.Metadata
	Site              components.SiteIdentity
	ArticleStylesheet string
	// Now is the build reference time: footer year and fallback publish date.
	Now time.Time
}

// NewEnv derives the page environment from the site configuration.
func NewEnv(site config.SiteConfig, now time.Time) (Env, error) {
	defaults, err := metadata.NewDefaults(site)
	if err != nil {
		return Env{}, err
	}
	return Env{
		Defaults: defaults,
		Site: components.SiteIdentity{
			Name:      site.Name,
			HomeURL:   defaults.BaseURL,
			NotesURL:  site.NotesURL,
			GitHubURL: site.GitHubURL,
		},
		ArticleStylesheet: site.ArticleStylesheet,
		Now:               now.UTC(),
	}, nil
}

func (e Env) layout(p components.LayoutProps) *html.Node {
	p.Site = e.Site
	p.Year = e.Now.Year()
	return components.Layout(p)
}

// staticPage carries what every hand written page shares.
type staticPage struct {
	env   Env
	path  string
	title string
}

func (s staticPage) Path() (string, bool) { return s.path, true }

func (s staticPage) Metadata() metadata.Metadata {
	url := "/" + s.path
	if s.path == "index" {
		url = "/"
	}
	return metadata.Resolve(s.env.Defaults, metadata.Override{
		Title: metadata.Ptr(s.title),
		URL:   metadata.Ptr(url),
	})
}

func (s staticPage) Stylesheets() []string { return nil }
