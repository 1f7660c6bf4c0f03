package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/retry"
)

// BirthDateLayout is the accepted format of site.person.birth_date.
const BirthDateLayout = "2006-01-02"

// Validate checks the invariants every build relies on.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateContent(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		return ferrors.ValidationError("output.directory must not be empty").Build()
	}
	return c.validateFunctions()
}

func (c *Config) validateSite() error {
	required := map[string]string{
		"site.name":        c.Site.Name,
		"site.title":       c.Site.Title,
		"site.description": c.Site.Description,
	}
	for _, key := range []string{"site.name", "site.title", "site.description"} {
		if strings.TrimSpace(required[key]) == "" {
			return ferrors.ValidationError(key + " must not be empty").Build()
		}
	}
	if err := validateHTTPURL("site.base_url", c.Site.BaseURL); err != nil {
		return err
	}
	if c.Site.Person.BirthDate != "" {
		if _, err := time.Parse(BirthDateLayout, c.Site.Person.BirthDate); err != nil {
			return ferrors.ValidationError("site.person.birth_date must be YYYY-MM-DD").
				WithCause(err).Build()
		}
	}
	return nil
}

func (c *Config) validateContent() error {
	if strings.TrimSpace(c.Content.Directory) == "" {
		return ferrors.ValidationError("content.directory must not be empty").Build()
	}
	if !doublestar.ValidatePattern(c.Content.Pattern) {
		return ferrors.ValidationError("content.pattern is not a valid glob").
			WithContext("pattern", c.Content.Pattern).Build()
	}
	return nil
}

func (c *Config) validateFunctions() error {
	if c.Functions.Timeout < 0 {
		return ferrors.ValidationError("functions.timeout must not be negative").Build()
	}
	if strings.ContainsAny(c.Functions.Directory, `/\`) || c.Functions.Directory == ".." {
		return ferrors.ValidationError("functions.directory must be a single directory name").Build()
	}
	r := c.Functions.Retry
	if r.Backoff != "" && !retry.ValidMode(r.Backoff) {
		return ferrors.ValidationError("functions.retry.backoff must be fixed, linear or exponential").
			WithContext("backoff", r.Backoff).Build()
	}
	if r.MaxRetries < 0 || r.Initial < 0 || r.Max < 0 {
		return ferrors.ValidationError("functions.retry values must not be negative").Build()
	}
	seen := make(map[string]struct{}, len(c.Functions.Scripts))
	for _, s := range c.Functions.Scripts {
		if s.Name == "" || strings.ContainsAny(s.Name, `/\`) || s.Name == "." || s.Name == ".." {
			return ferrors.ValidationError("functions.scripts name must be a plain file stem").
				WithContext("name", s.Name).Build()
		}
		if _, dup := seen[s.Name]; dup {
			return ferrors.ValidationError("duplicate functions.scripts name").
				WithContext("name", s.Name).Build()
		}
		seen[s.Name] = struct{}{}
		if err := validateHTTPURL("functions.scripts url", s.URL); err != nil {
			return err
		}
	}
	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ferrors.ValidationError(field + " is not a valid URL").WithCause(err).Build()
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ferrors.ValidationError(field + " must be an absolute http(s) URL").
			WithContext("url", raw).Build()
	}
	return nil
}
