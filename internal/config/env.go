package config

import (
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

// envFiles are loaded in order. Variables already set in the process
// environment, or by an earlier file, are never overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFile() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				WithContext("path", path).
				Build()
		}
	}
	return nil
}
