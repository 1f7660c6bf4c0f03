// Package markdown converts article source into body HTML plus front matter.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/portfolio/internal/frontmatter"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

// DateFormats are the accepted layouts for date front matter values, tried in order.
// Values without a zone are interpreted as UTC.
var DateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parser renders Markdown with GitHub flavoured extensions and generated heading ids.
type Parser struct {
	md goldmark.Markdown
}

// Document is the result of parsing one article source.
type Document struct {
	HTML        string
	FrontMatter map[string]any
	Body        []byte // Markdown source after the front matter block
}

// New returns a ready to use Parser.
func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// Articles are author controlled; inline HTML passes through.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Parse splits front matter from raw and renders the body. Malformed front
// matter yields a ParseError.
func (p *Parser) Parse(raw []byte) (*Document, error) {
	doc, err := frontmatter.Split(raw)
	if err != nil {
		return nil, ferrors.ParseError("malformed front matter").WithCause(err).Build()
	}
	fields, err := doc.Fields()
	if err != nil {
		return nil, ferrors.ParseError("invalid front matter YAML").WithCause(err).Build()
	}

	var buf bytes.Buffer
	if err := p.md.Convert(doc.Body, &buf); err != nil {
		return nil, ferrors.ParseError("failed to render markdown").WithCause(err).Build()
	}
	return &Document{HTML: buf.String(), FrontMatter: fields, Body: doc.Body}, nil
}

// String returns a string front matter value. Non-string values are reported as absent.
func (d *Document) String(key string) (string, bool) {
	v, ok := d.FrontMatter[key].(string)
	return v, ok
}

// Date returns a date front matter value. ok is false when the key is absent
// or null; a present value that is not a recognizable date is a ParseError.
func (d *Document) Date(key string) (t time.Time, ok bool, err error) {
	raw, present := d.FrontMatter[key]
	if !present || raw == nil {
		return time.Time{}, false, nil
	}
	t, err = ParseDate(raw)
	if err != nil {
		return time.Time{}, false, ferrors.ParseError("invalid date in front matter").
			WithCause(err).WithContext("key", key).Build()
	}
	return t, true, nil
}

// ParseDate converts a decoded YAML value to a UTC time.
func ParseDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range DateFormats {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or RFC3339", val)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", v)
	}
}
