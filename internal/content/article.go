// Package content ingests Markdown articles from a flat content directory.
package content

import (
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/portfolio/internal/components"
	"git.home.luguber.info/inful/portfolio/internal/frontmatter"
	"git.home.luguber.info/inful/portfolio/internal/markdown"
)

const (
	// DefaultTitle is stored when the front matter has no title.
	DefaultTitle = "Untitled"
	// DisplayTitle replaces DefaultTitle wherever a title is shown.
	DisplayTitle = "Introduction"
)

// Article is one content entry. It is immutable once built.
type Article struct {
	id          string
	title       string
	description string
	html        string
	published   time.Time
	modified    time.Time
	root        bool
	source      string
	fingerprint string
}

var _ components.CardItem = (*Article)(nil)

// NewArticle builds an Article from a parsed document. id is slugified.
// A published value that is not a recognizable date leaves the article undated.
func NewArticle(id string, doc *markdown.Document, root bool) (*Article, error) {
	a := &Article{
		id:    Slug(id),
		title: DefaultTitle,
		html:  doc.HTML,
		root:  root,
	}
	if title, ok := doc.String("title"); ok && strings.TrimSpace(title) != "" {
		a.title = title
	}
	if desc, ok := doc.String("description"); ok {
		a.description = desc
	}
	if published, ok, err := doc.Date("published"); err == nil && ok {
		a.published = published
	}

	fp, err := fingerprint(doc)
	if err != nil {
		return nil, err
	}
	a.fingerprint = fp
	return a, nil
}

func fingerprint(doc *markdown.Document) (string, error) {
	fields := make(map[string]any, len(doc.FrontMatter))
	for k, v := range doc.FrontMatter {
		if k == mdfp.FingerprintField {
			continue
		}
		fields[k] = v
	}
	fm, err := frontmatter.SerializeYAML(fields)
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fm), "\n"), string(doc.Body)), nil
}

// WithModified returns a copy carrying a last modified time.
func (a *Article) WithModified(t time.Time) *Article {
	c := *a
	c.modified = t.UTC()
	return &c
}

func (a *Article) withSource(path string) *Article {
	c := *a
	c.source = path
	return &c
}

// ID is the URL safe slug used as URL segment and output file stem.
func (a *Article) ID() string { return a.id }

// Title is the stored title, DefaultTitle when the front matter had none.
func (a *Article) Title() string { return a.title }

// DisplayedTitle applies the DisplayTitle substitution.
func (a *Article) DisplayedTitle() string {
	if a.title == DefaultTitle {
		return DisplayTitle
	}
	return a.title
}

func (a *Article) Description() string { return a.description }

// HTML is the pre-rendered body markup.
func (a *Article) HTML() string { return a.html }

func (a *Article) Root() bool { return a.root }

// SourcePath is the file the article was read from, empty for synthetic articles.
func (a *Article) SourcePath() string { return a.source }

// Fingerprint is the mdfp content hash over front matter and body.
func (a *Article) Fingerprint() string { return a.fingerprint }

func (a *Article) PublishedDate() (time.Time, bool) {
	return a.published, !a.published.IsZero()
}

// ModifiedDate is the git derived last change, when known.
func (a *Article) ModifiedDate() (time.Time, bool) {
	return a.modified, !a.modified.IsZero()
}

// URL is the site relative location of the article page.
func (a *Article) URL() string {
	if a.root {
		return a.id
	}
	return "/articles/" + a.id
}

func (a *Article) Tags() []string { return nil }

func (a *Article) NewTab() bool { return false }

func (a *Article) Action() components.Action { return components.ActionReadMore }
