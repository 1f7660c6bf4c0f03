// Package scaffold creates new article files in the content directory.
package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/content"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/frontmatter"
	"git.home.luguber.info/inful/portfolio/internal/fsutil"
)

// Article describes the file to create.
type Article struct {
	Title       string
	Description string
	Published   time.Time
	Root        bool // leave the published date out, used for root entries like "Notes"
}

// Body returns the Markdown placed under the front matter.
func (a Article) Body() []byte {
	return []byte("# " + strings.TrimSpace(a.Title) + "\n\n")
}

// Fields returns the front matter of the new file.
func (a Article) Fields() map[string]any {
	fields := map[string]any{"title": strings.TrimSpace(a.Title)}
	if d := strings.TrimSpace(a.Description); d != "" {
		fields["description"] = d
	}
	if !a.Root && !a.Published.IsZero() {
		fields["published"] = a.Published.UTC().Truncate(time.Second)
	}
	return fields
}

// Write creates <dir>/<slug>.md and returns its path. Existing files are never
// overwritten.
func Write(dir string, a Article) (string, error) {
	if dir == "" {
		return "", ferrors.ValidationError("content directory is required").Build()
	}
	slug := content.Slug(a.Title)
	if slug == "" {
		return "", ferrors.ValidationError("title does not produce a file name").
			WithContext("title", a.Title).Build()
	}

	fullPath, err := fsutil.SafeJoin(dir, slug+".md")
	if err != nil {
		return "", ferrors.ValidationError("article path escapes content directory").
			WithCause(err).Build()
	}

	data, err := frontmatter.Compose(a.Fields(), a.Body())
	if err != nil {
		return "", ferrors.InternalError("failed to compose front matter").WithCause(err).Build()
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", ferrors.FileSystemError("failed to create content directory").
			WithCause(err).WithContext("dir", dir).Build()
	}

	// #nosec G304 -- fullPath is validated to stay under dir.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ferrors.ValidationError("article already exists").
				WithContext("file", fullPath).Build()
		}
		return "", ferrors.FileSystemError("failed to create article").
			WithCause(err).WithContext("file", fullPath).Build()
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.Write(data); err != nil {
		return "", ferrors.FileSystemError("failed to write article").
			WithCause(err).WithContext("file", fullPath).Build()
	}
	return fullPath, nil
}
