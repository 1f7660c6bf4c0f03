package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/portfolio/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files that exist. Existing process variables are never overridden.
func loadEnvFiles() {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("Failed to load env file", logfields.Path(path), logfields.Error(err))
			}
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}
}
