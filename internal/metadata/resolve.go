package metadata

import (
	"slices"
	"strings"
	"time"
)

// Override holds per-page fields. A nil field is absent and inherits the default.
type Override struct {
	Site           *string
	Title          *string
	TitleSeparator *string
	Description    *string
	Image          *string
	Author         *string
	Keywords       []string
	Locale         *string
	Type           *ContentType
	Favicons       []string
	StructuredData *StructuredData
	Date           *time.Time
	URL            *string
}

// Ptr returns a pointer to v, for building Overrides.
func Ptr[T any](v T) *T { return &v }

// Resolve overlays o onto defaults. Site, title and description are never
// allowed to become blank: a blank override for them counts as absent.
func Resolve(defaults Metadata, o Override) Metadata {
	m := defaults
	m.Keywords = slices.Clone(defaults.Keywords)
	m.Favicons = slices.Clone(defaults.Favicons)

	setNonBlank(&m.Site, o.Site)
	setNonBlank(&m.Title, o.Title)
	setNonBlank(&m.Description, o.Description)
	set(&m.TitleSeparator, o.TitleSeparator)
	set(&m.Image, o.Image)
	set(&m.Author, o.Author)
	set(&m.Locale, o.Locale)
	set(&m.Type, o.Type)
	set(&m.URL, o.URL)
	if o.Keywords != nil {
		m.Keywords = slices.Clone(o.Keywords)
	}
	if o.Favicons != nil {
		m.Favicons = slices.Clone(o.Favicons)
	}
	if o.StructuredData != nil {
		m.StructuredData = o.StructuredData
	}
	if o.Date != nil {
		d := *o.Date
		m.Date = &d
	}
	return m
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setNonBlank(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = *v
	}
}
