package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/portfolio/internal/metadata"
)

func renderDocument(t *testing.T, d Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, d.Component().Render(context.Background(), &buf))
	return buf.String()
}

func TestDocument_Head(t *testing.T) {
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	out := renderDocument(t, Document{
		Meta: metadata.Metadata{
			Site:           "Site",
			Title:          `Tom & "Jerry"`,
			TitleSeparator: " | ",
			Description:    "desc",
			Keywords:       []string{"go", "web"},
			Locale:         "en",
			Type:           metadata.TypeArticle,
			Favicons:       []string{"/icon.svg"},
			Date:           &published,
			URL:            "/articles/a",
			BaseURL:        "https://site.test",
		},
		Stylesheets: []string{"/a.css"},
		Body:        body,
	})

	assert.Contains(t, out, `<html lang="en"><head><meta charset="utf-8">`)
	assert.Contains(t, out, `<meta property="og:title" content="Tom &amp; &#34;Jerry&#34;">`)
	assert.Contains(t, out, `<meta name="keywords" content="go, web">`)
	assert.Contains(t, out, `<meta property="article:published_time" content="2024-01-02T03:04:05Z">`)
	assert.Contains(t, out, `<link rel="canonical" href="https://site.test/articles/a">`)
	assert.Contains(t, out, `<link rel="icon" href="/icon.svg">`)
	assert.Contains(t, out, `<link rel="stylesheet" href="/a.css">`)
	assert.Contains(t, out, `<script src="`+TailwindScript+`"></script>`)
	assert.Contains(t, out, "</head><body></body></html>")
	assert.NotContains(t, out, `name="author"`)
	assert.NotContains(t, out, "application/ld+json")
}

func TestDocument_StructuredDataScript(t *testing.T) {
	out := renderDocument(t, Document{Meta: metadata.Metadata{
		Locale:         "en",
		StructuredData: &metadata.StructuredData{Article: &metadata.ArticleData{Headline: "</script><b>"}},
	}})

	assert.Contains(t, out, `<script type="application/ld+json">{`)
	assert.NotContains(t, out, "</script><b>")
	assert.Contains(t, out, `</script>`)
}
