package render

import (
	"encoding/xml"
	"strings"

	"git.home.luguber.info/inful/portfolio/internal/site"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists every page with a canonical URL except the 404 page, in route order.
func Sitemap(pages []site.Page) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS}
	for _, p := range pages {
		if path, ok := p.Path(); ok && strings.Trim(path, "/") == "404" {
			continue
		}
		m := p.Metadata()
		loc := m.CanonicalURL()
		if loc == "" {
			continue
		}
		u := sitemapURL{Loc: loc}
		if m.Date != nil {
			u.LastMod = m.Date.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Robots allows everything and points crawlers at the sitemap.
func Robots(baseURL string) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if baseURL != "" {
		b.WriteString("Sitemap: " + strings.TrimSuffix(baseURL, "/") + "/sitemap.xml\n")
	}
	return []byte(b.String())
}
