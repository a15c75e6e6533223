package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment overrides for flag defaults.
const (
	EnvTable = "TEXTDRIVE_TABLE"
	EnvDB    = "TEXTDRIVE_DB"
)

// LoadEnv loads the first .env file found among paths. Missing files are not
// an error; it returns the file that was loaded, if any. Variables already set
// in the process environment win.
func LoadEnv(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, envFile := range paths {
		if err := godotenv.Load(envFile); err == nil {
			return envFile
		}
	}
	return ""
}

// EnvOr returns the value of key, or fallback when it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
