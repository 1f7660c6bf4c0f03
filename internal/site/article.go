package site

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/portfolio/internal/components"
	"git.home.luguber.info/inful/portfolio/internal/content"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/metadata"
)

// ArticlePage renders one ingested article.
type ArticlePage struct {
	env     Env
	article *content.Article
}

func NewArticlePage(env Env, a *content.Article) *ArticlePage {
	return &ArticlePage{env: env, article: a}
}

func (p *ArticlePage) Article() *content.Article { return p.article }

func (p *ArticlePage) Path() (string, bool) { return p.article.URL(), true }

// Image is the article's social preview image.
func (p *ArticlePage) Image() string { return "/public/articles/" + p.article.ID() + ".jpg" }

func (p *ArticlePage) Metadata() metadata.Metadata {
	a := p.article
	in := metadata.ArticleInput{
		Headline:    a.Title(),
		Image:       p.Image(),
		Description: a.Description(),
		URL:         a.URL(),
		Reference:   p.env.Now,
	}
	o := metadata.Override{
		Title:       metadata.Ptr(a.DisplayedTitle()),
		Description: metadata.Ptr(a.Description()),
		Image:       metadata.Ptr(p.Image()),
		Type:        metadata.Ptr(metadata.TypeArticle),
		URL:         metadata.Ptr(a.URL()),
	}
	if published, ok := a.PublishedDate(); ok {
		in.Published = &published
		o.Date = &published
	}
	if modified, ok := a.ModifiedDate(); ok {
		in.Modified = &modified
	}
	o.StructuredData = metadata.ArticleStructuredData(p.env.Defaults, in)
	return metadata.Resolve(p.env.Defaults, o)
}

func (p *ArticlePage) Render() (*html.Node, error) {
	a := p.article
	body, err := components.Fragment(a.HTML())
	if err != nil {
		return nil, ferrors.ParseError("failed to parse article body").
			WithCause(err).WithContext("article", a.ID()).Build()
	}

	path := components.ArticlesMarker
	if a.Root() {
		path = "Notes"
	}
	props := components.LayoutProps{
		Path:        path,
		HasPath:     true,
		Title:       a.DisplayedTitle(),
		Description: a.Description(),
		Content:     body,
	}
	if published, ok := a.PublishedDate(); ok {
		props.Published = &published
	}
	return p.env.layout(props), nil
}

func (p *ArticlePage) Stylesheets() []string {
	if p.env.ArticleStylesheet == "" {
		return nil
	}
	return []string{p.env.ArticleStylesheet}
}
