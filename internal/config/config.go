// Package config manages client configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds everything the client needs to run.
type Config struct {
	// APIBaseURL is the root of the TaskFlow REST backend, including
	// any path prefix.
	APIBaseURL string

	// DataDir holds the credential database.
	DataDir string

	// HTTPTimeout bounds every remote call.
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables, applying
// defaults for anything unset.
func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("TASKFLOW_API_URL", "http://localhost:8000/api"),
		DataDir:     getEnv("TASKFLOW_DATA_DIR", defaultDataDir()),
		HTTPTimeout: parseDuration(getEnv("TASKFLOW_HTTP_TIMEOUT", "30s"), 30*time.Second),
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(base, "taskflow")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
