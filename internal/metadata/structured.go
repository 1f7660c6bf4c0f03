package metadata

import (
	"encoding/json"
	"time"
)

const schemaContext = "https://schema.org"

// StructuredData is a schema.org record. Exactly one of Person or Article is set.
type StructuredData struct {
	Person  *Person
	Article *ArticleData
}

// Person describes the site owner.
type Person struct {
	Name       string
	GivenName  string
	FamilyName string
	Image      string
	JobTitle   string
	Email      string
	URL        string
	BirthDate  *time.Time
	SameAs     []string
}

// ArticleData describes an article page.
type ArticleData struct {
	Headline      string
	Image         string
	Author        string
	Publisher     *StructuredData
	DatePublished time.Time
	DateModified  *time.Time
	Description   string
	URL           string
}

// ArticleInput carries the article specific values for ArticleStructuredData.
type ArticleInput struct {
	Headline    string
	Image       string // site relative or absolute
	Description string
	URL         string // site relative
	Published   *time.Time
	Modified    *time.Time
	// Reference stands in for a missing publish date. Callers pass the build
	// time so repeated resolution with the same inputs is identical.
	Reference time.Time
}

// ArticleStructuredData builds article structured data. Publisher is the
// defaults' own structured data; image and URL are made absolute.
func ArticleStructuredData(defaults Metadata, in ArticleInput) *StructuredData {
	published := in.Reference.UTC()
	if in.Published != nil {
		published = in.Published.UTC()
	}
	modified := in.Published
	if in.Modified != nil {
		modified = in.Modified
	}
	if modified != nil {
		m := modified.UTC()
		modified = &m
	}

	author := defaults.Author
	if author == "" {
		author = defaults.Site
	}

	return &StructuredData{Article: &ArticleData{
		Headline:      in.Headline,
		Image:         defaults.Absolute(in.Image),
		Author:        author,
		Publisher:     defaults.StructuredData,
		DatePublished: published,
		DateModified:  modified,
		Description:   in.Description,
		URL:           defaults.Absolute(in.URL),
	}}
}

// SchemaType is the schema.org @type.
func (s *StructuredData) SchemaType() string {
	switch {
	case s == nil:
		return ""
	case s.Article != nil:
		return "Article"
	case s.Person != nil:
		return "Person"
	default:
		return ""
	}
}

type personJSON struct {
	Context    string   `json:"@context,omitempty"`
	Type       string   `json:"@type"`
	Name       string   `json:"name"`
	GivenName  string   `json:"givenName,omitempty"`
	FamilyName string   `json:"familyName,omitempty"`
	Image      string   `json:"image,omitempty"`
	JobTitle   string   `json:"jobTitle,omitempty"`
	Email      string   `json:"email,omitempty"`
	URL        string   `json:"url,omitempty"`
	BirthDate  string   `json:"birthDate,omitempty"`
	SameAs     []string `json:"sameAs,omitempty"`
}

type articleJSON struct {
	Context       string      `json:"@context,omitempty"`
	Type          string      `json:"@type"`
	Headline      string      `json:"headline"`
	Image         string      `json:"image,omitempty"`
	Author        *authorJSON `json:"author,omitempty"`
	Publisher     any         `json:"publisher,omitempty"`
	DatePublished string      `json:"datePublished"`
	DateModified  string      `json:"dateModified,omitempty"`
	Description   string      `json:"description,omitempty"`
	URL           string      `json:"url,omitempty"`
}

type authorJSON struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// MarshalJSON renders JSON-LD with the schema.org context on the outer record only.
func (s *StructuredData) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.jsonValue(schemaContext))
}

func (s *StructuredData) jsonValue(ctx string) any {
	switch {
	case s == nil:
		return nil
	case s.Article != nil:
		a := s.Article
		out := articleJSON{
			Context:       ctx,
			Type:          "Article",
			Headline:      a.Headline,
			Image:         a.Image,
			DatePublished: a.DatePublished.Format(time.RFC3339),
			Description:   a.Description,
			URL:           a.URL,
		}
		if a.Author != "" {
			out.Author = &authorJSON{Type: "Person", Name: a.Author}
		}
		if a.Publisher != nil {
			out.Publisher = a.Publisher.jsonValue("")
		}
		if a.DateModified != nil {
			out.DateModified = a.DateModified.Format(time.RFC3339)
		}
		return out
	case s.Person != nil:
		p := s.Person
		out := personJSON{
			Context:    ctx,
			Type:       "Person",
			Name:       p.Name,
			GivenName:  p.GivenName,
			FamilyName: p.FamilyName,
			Image:      p.Image,
			JobTitle:   p.JobTitle,
			Email:      p.Email,
			URL:        p.URL,
			SameAs:     p.SameAs,
		}
		if p.BirthDate != nil {
			out.BirthDate = p.BirthDate.Format("2006-01-02")
		}
		return out
	default:
		return nil
	}
}
