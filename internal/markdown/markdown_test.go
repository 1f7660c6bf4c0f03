package markdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

func TestParse_FrontMatterAndBody(t *testing.T) {
	doc, err := New().Parse([]byte("---\ntitle: First\ndescription: The first one\npublished: 2024-01-01\n---\n# Hello World\n\nSome *text*.\n"))
	require.NoError(t, err)

	assert.Contains(t, doc.HTML, `<h1 id="hello-world">Hello World</h1>`)
	assert.Contains(t, doc.HTML, "<em>text</em>")

	title, ok := doc.String("title")
	require.True(t, ok)
	assert.Equal(t, "First", title)

	published, ok, err := doc.Date("published")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), published)
}

func TestParse_NoFrontMatter(t *testing.T) {
	doc, err := New().Parse([]byte("Just text\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.FrontMatter)

	_, ok := doc.String("title")
	assert.False(t, ok)
	_, ok, err = doc.Date("published")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParse_GFMTable(t *testing.T) {
	doc, err := New().Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "<table>")
}

func TestParse_MalformedFrontMatter(t *testing.T) {
	tests := map[string]string{
		"unclosed":     "---\ntitle: x\n# body\n",
		"invalid yaml": "---\ntitle: [x\n---\nbody\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New().Parse([]byte(input))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
		})
	}
}

func TestDate_Invalid(t *testing.T) {
	doc, err := New().Parse([]byte("---\npublished: not a date\n---\n"))
	require.NoError(t, err)

	_, _, err = doc.Date("published")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
		want  time.Time
	}{
		{"rfc3339", "2024-06-01T11:30:00+02:00", want},
		{"local datetime", "2024-06-01T09:30:00", want},
		{"space datetime", "2024-06-01 09:30:00", want},
		{"date only", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"time value", want.In(time.FixedZone("X", 3600)), want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseDate(42)
	require.Error(t, err)
}
