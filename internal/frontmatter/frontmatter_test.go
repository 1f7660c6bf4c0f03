package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		fm      string
		body    string
		had     bool
		newline string
	}{
		{"no front matter", "# Title\n\nHello\n", "", "# Title\n\nHello\n", false, "\n"},
		{"yaml block", "---\ntitle: First\n---\n# Title\n", "title: First\n", "# Title\n", true, "\n"},
		{"crlf", "---\r\ntitle: First\r\n---\r\n# Title\r\n", "title: First\r\n", "# Title\r\n", true, "\r\n"},
		{"empty block", "---\n---\nbody\n", "", "body\n", true, "\n"},
		{"front matter only", "---\ntitle: Second\n---", "title: Second\n", "", true, "\n"},
		{"dashes inside value", "---\ntitle: a---b\n---\nbody", "title: a---b\n", "body", true, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Split([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.had, doc.HasFrontMatter)
			assert.Equal(t, tt.fm, string(doc.FrontMatter))
			assert.Equal(t, tt.body, string(doc.Body))
			assert.Equal(t, tt.newline, doc.Newline)
			if tt.body != "" {
				assert.Equal(t, tt.input, string(doc.Bytes()))
			}
		})
	}
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, err := Split([]byte("---\ntitle: x\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML([]byte("title: First\ntags:\n  - go\n"))
	require.NoError(t, err)
	assert.Equal(t, "First", fields["title"])
	assert.Equal(t, []any{"go"}, fields["tags"])

	empty, err := ParseYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseYAML([]byte("title: [unterminated\n"))
	require.Error(t, err)
}

func TestSerializeYAML_SortsKeys(t *testing.T) {
	out, err := SerializeYAML(map[string]any{
		"title":       "Hello",
		"description": "World",
		"draft":       false,
		"tags":        []string{"b", "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "description: World\ndraft: false\ntags:\n  - b\n  - a\ntitle: Hello\n", string(out))

	empty, err := SerializeYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCompose_SplitsBack(t *testing.T) {
	out, err := Compose(map[string]any{"title": "Hello", "description": "World"}, []byte("Body text\n"))
	require.NoError(t, err)

	doc, err := Split(out)
	require.NoError(t, err)
	require.True(t, doc.HasFrontMatter)
	assert.Equal(t, "Body text\n", string(doc.Body))

	fields, err := doc.Fields()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Hello", "description": "World"}, fields)
}
