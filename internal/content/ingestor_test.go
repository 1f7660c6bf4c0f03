package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	return dir
}

func TestIngest_ParsesArticles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.md": "---\ntitle: First\ndescription: One\npublished: 2024-01-01\n---\nHello\n",
		"b.md": "---\ntitle: Second\npublished: 2024-06-01\n---\n",
	})

	articles, err := NewIngestor().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	a := articles[0]
	assert.Equal(t, "a", a.ID())
	assert.Equal(t, "First", a.Title())
	assert.Equal(t, "One", a.Description())
	assert.Contains(t, a.HTML(), "<p>Hello</p>")
	assert.Equal(t, "/articles/a", a.URL())
	assert.Equal(t, filepath.Join(dir, "a.md"), a.SourcePath())
	assert.NotEmpty(t, a.Fingerprint())
	published, ok := a.PublishedDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), published)

	b := articles[1]
	assert.Equal(t, "Second", b.Title())
	assert.Empty(t, b.Description())
	assert.Empty(t, b.HTML())
}

func TestIngest_DefaultsAndRoot(t *testing.T) {
	dir := writeFiles(t, map[string]string{"Hello World.md": "No front matter here.\n"})

	articles, err := NewIngestor(WithRoot(true)).Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "hello-world", a.ID())
	assert.Equal(t, DefaultTitle, a.Title())
	assert.Equal(t, DisplayTitle, a.DisplayedTitle())
	assert.Equal(t, "hello-world", a.URL())
	assert.True(t, a.Root())
	_, ok := a.PublishedDate()
	assert.False(t, ok)
}

func TestIngest_UnrecognizedPublishedDateIsUndated(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.md": "---\ntitle: A\npublished: \"\"\n---\n",
		"b.md": "---\ntitle: B\npublished: June 2024\n---\n",
		"c.md": "---\ntitle: C\npublished: 2024-06-01\n---\n",
	})

	articles, err := NewIngestor().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, articles, 3)

	for _, a := range articles[:2] {
		_, ok := a.PublishedDate()
		assert.False(t, ok, a.ID())
	}
	published, ok := articles[2].PublishedDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), published)
}

func TestIngest_SkipsHiddenNestedAndOtherExtensions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"keep.md":          "keep\n",
		".hidden.md":       "hidden\n",
		"notes.txt":        "not markdown\n",
		"nested/inner.md":  "nested\n",
		".drafts/draft.md": "draft\n",
	})

	articles, err := NewIngestor().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "keep", articles[0].ID())
}

func TestIngest_CustomPattern(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.md": "a\n", "b.markdown": "b\n"})

	articles, err := NewIngestor(WithPattern("*.{md,markdown}")).Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, articles, 2)
}

func TestIngest_IsDeterministic(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.md": "---\ntitle: First\npublished: 2024-01-01\n---\nBody *a*\n",
		"b.md": "---\ntitle: Second\n---\nBody b\n",
		"c.md": "Body c\n",
	})

	first, err := NewIngestor().Ingest(context.Background(), dir)
	require.NoError(t, err)
	second, err := NewIngestor().Ingest(context.Background(), dir)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(Article{})); diff != "" {
		t.Fatalf("ingestion not deterministic (-first +second):\n%s", diff)
	}
}

func TestIngest_IsAtomic(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		category ferrors.ErrorCategory
	}{
		{
			name:     "malformed front matter",
			files:    map[string]string{"a.md": "fine\n", "b.md": "---\ntitle: [oops\n---\n"},
			category: ferrors.CategoryParse,
		},
		{
			name:     "not utf8",
			files:    map[string]string{"a.md": "fine\n", "z.md": "\xff\xfe\xfd"},
			category: ferrors.CategoryContentRead,
		},
		{
			name:     "duplicate ids",
			files:    map[string]string{"Hello.md": "x\n", "hello.md": "y\n"},
			category: ferrors.CategoryContentRead,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			articles, err := NewIngestor().Ingest(context.Background(), dir)
			require.Error(t, err)
			assert.Nil(t, articles)
			assert.True(t, ferrors.HasCategory(err, tt.category), "got %v", err)
		})
	}
}

func TestIngest_MissingDirectory(t *testing.T) {
	_, err := NewIngestor().Ingest(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryContentRead))
}

type fixedModTimes map[string]time.Time

func (f fixedModTimes) LastModified(path string) (time.Time, bool) {
	t, ok := f[filepath.Base(path)]
	return t, ok
}

func TestIngest_ModTimes(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.md": "a\n", "b.md": "b\n"})
	mod := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	articles, err := NewIngestor(WithModTimes(fixedModTimes{"a.md": mod})).Ingest(context.Background(), dir)
	require.NoError(t, err)

	got, ok := articles[0].ModifiedDate()
	require.True(t, ok)
	assert.Equal(t, mod, got)
	_, ok = articles[1].ModifiedDate()
	assert.False(t, ok)
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"hello":           "hello",
		"Hello World":     "hello-world",
		"  spaced  out  ": "spaced-out",
		"Crème Brûlée":    "creme-brulee",
		"swift_6.0-notes": "swift-6-0-notes",
		"!!!":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}
