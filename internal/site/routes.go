package site

import (
	"context"
	"slices"

	"git.home.luguber.info/inful/portfolio/internal/content"
)

// Ingester produces the articles of a build.
type Ingester interface {
	Ingest(ctx context.Context, dir string) ([]*content.Article, error)
}

var (
	_ Page = (*Home)(nil)
	_ Page = (*Missing)(nil)
	_ Page = (*Notes)(nil)
	_ Page = (*Projects)(nil)
	_ Page = (*ArticlePage)(nil)
)

// Routes returns every page of the site: Home, Missing, Notes and Projects,
// then one page per article in ingestion order.
func Routes(env Env, articles []*content.Article) []Page {
	pages := make([]Page, 0, 4+len(articles))
	pages = append(pages,
		NewHome(env, articles),
		NewMissing(env),
		NewNotes(env),
		NewProjects(env))
	for _, a := range articles {
		pages = append(pages, NewArticlePage(env, a))
	}
	return pages
}

// Aggregate ingests dir and assembles the routes. Ingestion errors are
// returned unchanged.
func Aggregate(ctx context.Context, in Ingester, dir string, env Env) ([]Page, error) {
	articles, err := in.Ingest(ctx, dir)
	if err != nil {
		return nil, err
	}
	return Routes(env, articles), nil
}

// SortNewestFirst returns a copy of articles ordered by publish date,
// newest first. Undated articles follow all dated ones and keep their
// relative order.
func SortNewestFirst(articles []*content.Article) []*content.Article {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, func(a, b *content.Article) int {
		da, okA := a.PublishedDate()
		db, okB := b.PublishedDate()
		switch {
		case okA && okB:
			return db.Compare(da)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Articles returns the articles behind the article pages of pages, in order.
func Articles(pages []Page) []*content.Article {
	var out []*content.Article
	for _, p := range pages {
		if ap, ok := p.(*ArticlePage); ok {
			out = append(out, ap.Article())
		}
	}
	return out
}
