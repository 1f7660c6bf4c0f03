package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Mac Long", cfg.Site.Name)
	assert.Equal(t, " | ", cfg.Site.TitleSeparator)
	assert.Equal(t, "Articles", cfg.Content.Directory)
	assert.Equal(t, ".output", cfg.Output.Directory)
	require.Len(t, cfg.Functions.Scripts, 2)
	assert.Equal(t, "_middleware", cfg.Functions.Scripts[0].Name)
	assert.Equal(t, "send", cfg.Functions.Scripts[1].Name)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "site:\n"+
		"  name: Jane Doe\n"+
		"  base_url: https://example.com/\n"+
		"content:\n"+
		"  directory: posts\n"+
		"  root: true\n"+
		"functions:\n"+
		"  timeout: 5s\n"+
		"  scripts:\n"+
		"    - name: hello\n"+
		"      url: https://cdn.example.com/hello.js\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", cfg.Site.Name)
	assert.Equal(t, "Software Engineer", cfg.Site.Title, "unset keys keep defaults")
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "posts", cfg.Content.Directory)
	assert.True(t, cfg.Content.Root)
	assert.Equal(t, "*.md", cfg.Content.Pattern)
	assert.Equal(t, 5*time.Second, cfg.Functions.Timeout)
	require.Len(t, cfg.Functions.Scripts, 1)
	assert.Equal(t, "hello", cfg.Functions.Scripts[0].Name)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_NATS", "nats://127.0.0.1:4222")
	path := writeConfig(t, "notify:\n  nats_url: ${PORTFOLIO_TEST_NATS}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Notify.NATSURL)
	assert.Equal(t, "portfolio.build", cfg.Notify.Subject)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "site: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty site name", func(c *Config) { c.Site.Name = " " }},
		{"empty description", func(c *Config) { c.Site.Description = "" }},
		{"relative base url", func(c *Config) { c.Site.BaseURL = "/local" }},
		{"bad birth date", func(c *Config) { c.Site.Person.BirthDate = "19/10/1995" }},
		{"empty content dir", func(c *Config) { c.Content.Directory = "" }},
		{"bad pattern", func(c *Config) { c.Content.Pattern = "[" }},
		{"empty output dir", func(c *Config) { c.Output.Directory = "" }},
		{"negative timeout", func(c *Config) { c.Functions.Timeout = -time.Second }},
		{"nested functions dir", func(c *Config) { c.Functions.Directory = "a/b" }},
		{"script name with slash", func(c *Config) { c.Functions.Scripts[0].Name = "../x" }},
		{"duplicate script", func(c *Config) { c.Functions.Scripts[1].Name = c.Functions.Scripts[0].Name }},
		{"non-http script", func(c *Config) { c.Functions.Scripts[0].URL = "ftp://example.com/x.js" }},
		{"unknown backoff", func(c *Config) { c.Functions.Retry.Backoff = "random" }},
		{"negative retries", func(c *Config) { c.Functions.Retry.MaxRetries = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}
