package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/fsutil"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/observability"
	"git.home.luguber.info/inful/portfolio/internal/site"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Writer serializes pages into an output directory.
type Writer struct {
	outDir    string
	clean     bool
	publicDir string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClean removes the output directory before writing.
func WithClean(clean bool) WriterOption {
	return func(w *Writer) { w.clean = clean }
}

// WithPublicDir copies static assets from dir to <out>/public when dir exists.
func WithPublicDir(dir string) WriterOption {
	return func(w *Writer) { w.publicDir = dir }
}

// NewWriter creates a Writer for outDir.
func NewWriter(outDir string, opts ...WriterOption) *Writer {
	w := &Writer{outDir: outDir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PageFile is one written document.
type PageFile struct {
	Path  string // page path as declared by the page
	File  string // path relative to the output directory
	Bytes int
}

// Report summarizes a Write.
type Report struct {
	Pages  []PageFile
	Assets int
}

// OutputFile maps a page path to its file name: surrounding slashes are
// trimmed and ".html" appended. The empty path maps to index.html.
func OutputFile(path string, ok bool) string {
	trimmed := strings.Trim(path, "/")
	if !ok || trimmed == "" {
		return "index.html"
	}
	return filepath.FromSlash(trimmed) + ".html"
}

// Write renders every page, then sitemap.xml and robots.txt. It stops at the
// first failure; files written before it stay on disk.
func (w *Writer) Write(ctx context.Context, pages []site.Page) (*Report, error) {
	if err := w.prepare(); err != nil {
		return nil, err
	}

	report := &Report{Pages: make([]PageFile, 0, len(pages))}
	owners := make(map[string]string, len(pages))
	for _, p := range pages {
		path, ok := p.Path()
		rel := OutputFile(path, ok)
		if prev, dup := owners[rel]; dup {
			return report, ferrors.BuildError("two pages map to the same output file").
				WithContext("file", rel).
				WithContext("page", path).
				WithContext("previous", prev).Build()
		}
		owners[rel] = path

		n, err := w.writePage(ctx, p, rel)
		if err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, PageFile{Path: path, File: rel, Bytes: n})
		observability.DebugContext(ctx, "Wrote page", logfields.Page(path), logfields.File(rel))
	}

	sitemap, err := Sitemap(pages)
	if err != nil {
		return report, ferrors.BuildError("failed to encode sitemap").WithCause(err).Build()
	}
	if err := w.writeFile("sitemap.xml", sitemap); err != nil {
		return report, err
	}
	baseURL := ""
	if len(pages) > 0 {
		baseURL = pages[0].Metadata().BaseURL
	}
	if err := w.writeFile("robots.txt", Robots(baseURL)); err != nil {
		return report, err
	}

	assets, err := w.copyPublic()
	if err != nil {
		return report, err
	}
	report.Assets = assets

	observability.InfoContext(ctx, "Pages written",
		logfields.Path(w.outDir),
		logfields.Count(len(report.Pages)))
	return report, nil
}

func (w *Writer) prepare() error {
	clean := filepath.Clean(w.outDir)
	if w.clean {
		if clean == "." || clean == string(filepath.Separator) || clean == "" {
			return ferrors.ValidationError("refusing to clean output directory").
				WithContext("path", w.outDir).Build()
		}
		if err := os.RemoveAll(clean); err != nil {
			return ferrors.FileSystemError("failed to clean output directory").
				WithCause(err).WithContext("path", w.outDir).Build()
		}
	}
	if err := os.MkdirAll(clean, dirPerm); err != nil {
		return ferrors.FileSystemError("failed to create output directory").
			WithCause(err).WithContext("path", w.outDir).Build()
	}
	return nil
}

func (w *Writer) writePage(ctx context.Context, p site.Page, rel string) (int, error) {
	body, err := p.Render()
	if err != nil {
		return 0, err
	}
	doc := Document{Meta: p.Metadata(), Stylesheets: p.Stylesheets(), Body: body}

	var buf bytes.Buffer
	if err := doc.Component().Render(ctx, &buf); err != nil {
		return 0, ferrors.BuildError("failed to render page").
			WithCause(err).WithContext("file", rel).Build()
	}
	if err := w.writeFile(rel, buf.Bytes()); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func (w *Writer) writeFile(rel string, data []byte) error {
	full, err := fsutil.SafeJoin(w.outDir, rel)
	if err != nil {
		return ferrors.FileSystemError("invalid output path").WithCause(err).WithContext("file", rel).Build()
	}
	if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
		return ferrors.FileSystemError("failed to create output directory").
			WithCause(err).WithContext("path", filepath.Dir(full)).Build()
	}
	if err := os.WriteFile(full, data, filePerm); err != nil {
		return ferrors.FileSystemError("failed to write output file").
			WithCause(err).WithContext("file", full).Build()
	}
	return nil
}

func (w *Writer) copyPublic() (int, error) {
	if w.publicDir == "" {
		return 0, nil
	}
	info, err := os.Stat(w.publicDir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return 0, nil
	}
	if err != nil {
		return 0, ferrors.FileSystemError("failed to stat public directory").
			WithCause(err).WithContext("path", w.publicDir).Build()
	}

	count := 0
	err = filepath.WalkDir(w.publicDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(w.publicDir, path)
		if err != nil {
			return err
		}
		if err := w.copyFile(path, filepath.Join("public", rel)); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		if _, ok := ferrors.AsClassified(err); ok {
			return count, err
		}
		return count, ferrors.FileSystemError("failed to copy public assets").
			WithCause(err).WithContext("path", w.publicDir).Build()
	}
	return count, nil
}

func (w *Writer) copyFile(src, rel string) error {
	in, err := os.Open(src) // #nosec G304 -- src is walked from the configured public dir.
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	dst := filepath.Join(w.outDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) // #nosec G304 -- dst stays under the output dir.
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
