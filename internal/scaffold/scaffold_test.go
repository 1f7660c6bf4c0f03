package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/portfolio/internal/content"
	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

func TestWriteCreatesIngestibleArticle(t *testing.T) {
	dir := t.TempDir()
	published := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)

	path, err := Write(dir, Article{Title: "Café Notes", Description: "Short read", Published: published})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cafe-notes.md"), path)

	articles, err := content.NewIngestor().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "cafe-notes", a.ID())
	assert.Equal(t, "Café Notes", a.Title())
	assert.Equal(t, "Short read", a.Description())
	got, ok := a.PublishedDate()
	require.True(t, ok)
	assert.True(t, got.Equal(published), "got %s", got)
	assert.Contains(t, a.HTML(), "Café Notes</h1>")
}

func TestWriteRootArticleOmitsDate(t *testing.T) {
	a := Article{Title: "Notes", Published: time.Now(), Root: true}
	assert.NotContains(t, a.Fields(), "published")
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "hello.md")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o600))

	_, err := Write(dir, Article{Title: "Hello"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestWriteRejectsEmptySlug(t *testing.T) {
	_, err := Write(t.TempDir(), Article{Title: "!!!"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}
