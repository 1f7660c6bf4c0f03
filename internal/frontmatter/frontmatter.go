// Package frontmatter splits article files into their `---` delimited YAML
// header and Markdown body.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter is returned when a document opens a front matter
// block but never closes it.
var ErrMissingClosingDelimiter = errors.New("front matter opened with --- but never closed")

// Document is an article file split into header and body.
type Document struct {
	FrontMatter    []byte // raw YAML without delimiters
	Body           []byte
	HasFrontMatter bool
	Newline        string // "\n" or "\r\n", detected from the first line break
}

// Split separates YAML front matter from the Markdown body. A document that
// does not start with a delimiter line is returned as body only.
func Split(content []byte) (Document, error) {
	doc := Document{Newline: detectNewline(content)}
	nl := doc.Newline
	delim := []byte("---" + nl)

	if !bytes.HasPrefix(content, delim) {
		doc.Body = content
		return doc, nil
	}

	rest := content[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		doc.HasFrontMatter = true
		doc.FrontMatter = []byte{}
		doc.Body = rest[len(delim):]
		return doc, nil
	}

	closing := []byte(nl + "---")
	idx := bytes.Index(rest, closing)
	for idx >= 0 {
		after := rest[idx+len(closing):]
		// The closing delimiter must occupy its own line, which may be the last one.
		if len(after) == 0 || bytes.HasPrefix(after, []byte(nl)) {
			doc.HasFrontMatter = true
			doc.FrontMatter = rest[:idx+len(nl)]
			doc.Body = bytes.TrimPrefix(after, []byte(nl))
			return doc, nil
		}
		next := bytes.Index(after, closing)
		if next < 0 {
			break
		}
		idx += len(closing) + next
	}
	return Document{}, ErrMissingClosingDelimiter
}

// Bytes reassembles the document.
func (d Document) Bytes() []byte {
	if !d.HasFrontMatter {
		return d.Body
	}
	nl := d.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte("---" + nl)

	out := make([]byte, 0, 2*len(delim)+len(d.FrontMatter)+len(d.Body))
	out = append(out, delim...)
	out = append(out, d.FrontMatter...)
	out = append(out, delim...)
	out = append(out, d.Body...)
	return out
}

// Fields parses the raw front matter into a map. An empty block yields an empty map.
func (d Document) Fields() (map[string]any, error) {
	return ParseYAML(d.FrontMatter)
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
