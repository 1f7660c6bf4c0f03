package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
)

// DefaultPath is the configuration file looked up when no --config flag is given.
const DefaultPath = "portfolio.yaml"

// Config is the complete build configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Functions FunctionsConfig `yaml:"functions"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Notify    NotifyConfig    `yaml:"notify,omitempty"`
}

// SiteConfig is the process-wide site identity. It is static configuration:
// read once at startup and never mutated during a build.
type SiteConfig struct {
	Name              string       `yaml:"name"`
	Title             string       `yaml:"title"`
	TitleSeparator    string       `yaml:"title_separator"`
	Description       string       `yaml:"description"`
	Image             string       `yaml:"image"`
	Author            string       `yaml:"author"`
	Keywords          []string     `yaml:"keywords"`
	Locale            string       `yaml:"locale"`
	Favicons          []string     `yaml:"favicons"`
	BaseURL           string       `yaml:"base_url"`
	NotesURL          string       `yaml:"notes_url"`
	GitHubURL         string       `yaml:"github_url"`
	ArticleStylesheet string       `yaml:"article_stylesheet,omitempty"`
	Person            PersonConfig `yaml:"person"`
}

// PersonConfig describes the site owner for person structured data.
type PersonConfig struct {
	GivenName  string   `yaml:"given_name"`
	FamilyName string   `yaml:"family_name"`
	Image      string   `yaml:"image"`
	JobTitle   string   `yaml:"job_title"`
	Email      string   `yaml:"email"`
	BirthDate  string   `yaml:"birth_date"` // YYYY-MM-DD
	SameAs     []string `yaml:"same_as"`
}

// ContentConfig controls article ingestion.
type ContentConfig struct {
	Directory string `yaml:"directory"`
	Pattern   string `yaml:"pattern"`  // file name glob, e.g. "*.md"
	Root      bool   `yaml:"root"`     // surface articles at the site root instead of /articles/
	GitInfo   bool   `yaml:"git_info"` // derive dateModified from git history
}

// OutputConfig controls where the site is written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
	Public    string `yaml:"public"` // static assets copied to <directory>/public, skipped when missing
}

// FunctionsConfig lists the remote server-side scripts copied into the output.
type FunctionsConfig struct {
	Directory string         `yaml:"directory"` // relative to the output directory
	Timeout   time.Duration  `yaml:"timeout"`   // 0 means the HTTP client default (no timeout)
	Scripts   []ScriptConfig `yaml:"scripts"`
	Retry     RetryConfig    `yaml:"retry"`
}

// RetryConfig controls retries of transient script fetch failures.
type RetryConfig struct {
	Backoff    string        `yaml:"backoff"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	MaxRetries int           `yaml:"max_retries"` // 0 disables retries
}

// ScriptConfig is one synchronizer entry.
type ScriptConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// NotifyConfig enables build event publication on NATS.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Load reads the configuration file at path, overlaying it onto Default().
// Environment variables (after .env loading) are expanded in the YAML text.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied.
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", path).Build()
		}
		return nil, ferrors.ConfigError("failed to read config file").
			WithCause(err).WithContext("path", path).Build()
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, ferrors.ConfigError("failed to unmarshal config").
			WithCause(err).WithContext("path", path).Build()
	}
	normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default() when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("No configuration file, using built-in site configuration", logfields.Path(path))
		loadEnvFiles()
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Init writes the default configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.FileSystemError("failed to write config file").
			WithCause(err).WithContext("path", path).Build()
	}
	return nil
}
