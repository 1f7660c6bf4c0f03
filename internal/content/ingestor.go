package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/markdown"
	"git.home.luguber.info/inful/portfolio/internal/observability"
)

// DefaultPattern matches Markdown files.
const DefaultPattern = "*.md"

// ModTimeSource reports when a content file last changed.
type ModTimeSource interface {
	LastModified(path string) (time.Time, bool)
}

// Ingestor turns a content directory into Articles.
type Ingestor struct {
	parser   *markdown.Parser
	pattern  string
	root     bool
	modTimes ModTimeSource
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithPattern sets the file name glob. Matching is against the base name only.
func WithPattern(pattern string) Option {
	return func(i *Ingestor) {
		if pattern != "" {
			i.pattern = pattern
		}
	}
}

// WithRoot surfaces ingested articles at the site root.
func WithRoot(root bool) Option {
	return func(i *Ingestor) { i.root = root }
}

// WithModTimes attaches a last modified lookup.
func WithModTimes(src ModTimeSource) Option {
	return func(i *Ingestor) { i.modTimes = src }
}

// NewIngestor creates an Ingestor with the Markdown parser and default pattern.
func NewIngestor(opts ...Option) *Ingestor {
	i := &Ingestor{parser: markdown.New(), pattern: DefaultPattern}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest reads every matching, non-hidden file directly inside dir. The call is
// atomic: the first failing file aborts it and no articles are returned.
// Articles are ordered by file name.
func (i *Ingestor) Ingest(ctx context.Context, dir string) ([]*Article, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.ContentReadError("failed to read content directory").
			WithCause(err).WithContext("dir", dir).Build()
	}

	articles := make([]*Article, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		matched, err := doublestar.Match(i.pattern, name)
		if err != nil {
			return nil, ferrors.ConfigError("invalid content pattern").
				WithCause(err).WithContext("pattern", i.pattern).Build()
		}
		if !matched {
			continue
		}

		path := filepath.Join(dir, name)
		article, err := i.ingestFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[article.ID()]; dup {
			return nil, ferrors.ContentReadError("duplicate article id").
				WithContext("id", article.ID()).
				WithContext("file", path).
				WithContext("previous", prev).Build()
		}
		seen[article.ID()] = path
		articles = append(articles, article)

		observability.DebugContext(ctx, "Ingested article",
			logfields.Article(article.ID()),
			logfields.File(path))
	}

	observability.InfoContext(ctx, "Content ingested",
		logfields.Path(dir),
		logfields.Count(len(articles)))
	return articles, nil
}

func (i *Ingestor) ingestFile(ctx context.Context, path string) (*Article, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured content dir.
	if err != nil {
		msg := "failed to read content file"
		if errors.Is(err, fs.ErrPermission) {
			msg = "content file is not readable"
		}
		return nil, ferrors.ContentReadError(msg).WithCause(err).WithContext("file", path).Build()
	}
	if !utf8.Valid(raw) {
		return nil, ferrors.ContentReadError("content file is not valid UTF-8 text").
			WithContext("file", path).Build()
	}

	doc, err := i.parser.Parse(raw)
	if err != nil {
		return nil, withFile(err, path)
	}

	if _, _, err := doc.Date("published"); err != nil {
		observability.WarnContext(ctx, "Ignoring unrecognized published date",
			logfields.File(path),
			logfields.Error(err))
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	article, err := NewArticle(stem, doc, i.root)
	if err != nil {
		return nil, withFile(err, path)
	}
	if article.ID() == "" {
		return nil, ferrors.ContentReadError("cannot derive article id from file name").
			WithContext("file", path).Build()
	}
	article = article.withSource(path)

	if i.modTimes != nil {
		if mod, ok := i.modTimes.LastModified(path); ok {
			article = article.WithModified(mod)
		}
	}
	return article, nil
}

func withFile(err error, path string) error {
	if ce, ok := ferrors.AsClassified(err); ok {
		return ce.WithContext("file", path)
	}
	return ferrors.ParseError("failed to parse content file").WithCause(err).WithContext("file", path).Build()
}
