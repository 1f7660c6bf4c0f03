package config

import (
	"strings"
	"time"
)

// Default returns the built-in site configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name:           "Mac Long",
			Title:          "Software Engineer",
			TitleSeparator: " | ",
			Description:    "Swift, TypeScript, React and TailwindCSS developer crafting clean code and efficient forward-thinking solutions",
			Image:          "/public/og.jpg",
			Author:         "Mac Long",
			Keywords: []string{
				"software engineer", "swift developer", "react developer", "typescript", "tailwindcss",
				"frontend development", "skateboarding", "punk rock", "web development", "iOS development",
			},
			Locale:            "en",
			Favicons:          []string{"https://fav.farm/🖥"},
			BaseURL:           "https://maclong.uk",
			NotesURL:          "https://notes.maclong.uk",
			GitHubURL:         "https://github.com/maclong9",
			ArticleStylesheet: "https://static.maclong.uk/typography.css",
			Person: PersonConfig{
				GivenName:  "Mac",
				FamilyName: "Long",
				Image:      "https://avatars.githubusercontent.com/u/115668288?v=4",
				JobTitle:   "Software Engineer",
				Email:      "hello@maclong.uk",
				BirthDate:  "1995-10-19",
				SameAs:     []string{"https://github.com/maclong9", "https://orcid.org/0009-0002-4180-3822"},
			},
		},
		Content: ContentConfig{
			Directory: "Articles",
			Pattern:   "*.md",
		},
		Output: OutputConfig{
			Directory: ".output",
			Clean:     true,
			Public:    "Public",
		},
		Functions: FunctionsConfig{
			Directory: "functions",
			Timeout:   30 * time.Second,
			Scripts: []ScriptConfig{
				{Name: "_middleware", URL: "https://static.maclong.uk/middleware.js"},
				{Name: "send", URL: "https://static.maclong.uk/send.js"},
			},
		},
		Notify: NotifyConfig{
			Subject: "portfolio.build",
		},
	}
}

// normalize trims user supplied values and fills blanks that have an obvious default.
func normalize(cfg *Config) {
	cfg.Site.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.Site.BaseURL), "/")
	cfg.Site.NotesURL = strings.TrimSuffix(strings.TrimSpace(cfg.Site.NotesURL), "/")
	if cfg.Site.Locale == "" {
		cfg.Site.Locale = "en"
	}
	if cfg.Content.Pattern == "" {
		cfg.Content.Pattern = "*.md"
	}
	if cfg.Functions.Directory == "" {
		cfg.Functions.Directory = "functions"
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "portfolio.build"
	}
	for i := range cfg.Functions.Scripts {
		cfg.Functions.Scripts[i].Name = strings.TrimSpace(cfg.Functions.Scripts[i].Name)
		cfg.Functions.Scripts[i].URL = strings.TrimSpace(cfg.Functions.Scripts[i].URL)
	}
}
