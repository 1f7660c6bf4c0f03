// Package metadata resolves per-page metadata from the site defaults and
// builds the schema.org structured data embedded in every page.
package metadata

import (
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/config"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

// ContentType is the OpenGraph object type of a page.
type ContentType string

const (
	TypeWebsite ContentType = "website"
	TypeArticle ContentType = "article"
)

// Metadata is the final per-page record.
type Metadata struct {
	Site           string
	Title          string
	TitleSeparator string
	Description    string
	Image          string
	Author         string
	Keywords       []string
	Locale         string
	Type           ContentType
	Favicons       []string
	StructuredData *StructuredData
	Date           *time.Time
	URL            string // site relative, empty when unknown
	BaseURL        string // canonical site root, inherited from the defaults
}

// NewDefaults builds the process wide default record from the site configuration.
// The result is shared read-only by every page of a build.
func NewDefaults(site config.SiteConfig) (Metadata, error) {
	person := &Person{
		Name:       site.Name,
		GivenName:  site.Person.GivenName,
		FamilyName: site.Person.FamilyName,
		Image:      site.Person.Image,
		JobTitle:   site.Person.JobTitle,
		Email:      site.Person.Email,
		URL:        site.BaseURL,
		SameAs:     slices.Clone(site.Person.SameAs),
	}
	if site.Person.BirthDate != "" {
		bd, err := time.Parse(config.BirthDateLayout, site.Person.BirthDate)
		if err != nil {
			return Metadata{}, ferrors.ValidationError("invalid person birth date").
				WithCause(err).WithContext("birth_date", site.Person.BirthDate).Build()
		}
		person.BirthDate = &bd
	}

	return Metadata{
		Site:           site.Name,
		Title:          site.Title,
		TitleSeparator: site.TitleSeparator,
		Description:    site.Description,
		Image:          site.Image,
		Author:         site.Author,
		Keywords:       slices.Clone(site.Keywords),
		Locale:         site.Locale,
		Type:           TypeWebsite,
		Favicons:       slices.Clone(site.Favicons),
		StructuredData: &StructuredData{Person: person},
		BaseURL:        strings.TrimSuffix(site.BaseURL, "/"),
	}, nil
}

// PageTitle is the document title: title, separator, site.
func (m Metadata) PageTitle() string {
	if m.Title == "" || m.Title == m.Site {
		return m.Site
	}
	return m.Title + m.TitleSeparator + m.Site
}

// Absolute resolves a site relative reference against BaseURL. Absolute URLs
// are returned unchanged.
func (m Metadata) Absolute(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return m.BaseURL + ref
}

// CanonicalURL is the absolute page URL, empty when the page has none.
func (m Metadata) CanonicalURL() string {
	if m.URL == "" {
		return ""
	}
	return m.Absolute(m.URL)
}
