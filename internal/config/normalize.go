package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// dotenvFile supplies IMMICH_* values the process environment leaves empty.
const dotenvFile = ".env"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeImmich(readDotenv(dotenvFile))
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeImmich(dotenv map[string]string) {
	c.Immich.URL = strings.TrimSpace(c.Immich.URL)
	if c.Immich.URL == "" {
		c.Immich.URL = lookupEnv("IMMICH_URL", dotenv)
	}
	if c.Immich.URL == "" {
		c.Immich.URL = defaultImmichURL
	}
	c.Immich.URL = strings.TrimRight(c.Immich.URL, "/")

	c.Immich.APIKey = strings.TrimSpace(c.Immich.APIKey)
	if c.Immich.APIKey == "" {
		c.Immich.APIKey = lookupEnv("IMMICH_API_KEY", dotenv)
	}
	if c.Immich.TimeoutSeconds <= 0 {
		c.Immich.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Immich.MaxRetries < 0 {
		c.Immich.MaxRetries = 0
	}
	if c.Immich.Concurrency <= 0 {
		c.Immich.Concurrency = defaultConcurrency
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(key string, dotenv map[string]string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return strings.TrimSpace(dotenv[key])
}

// readDotenv parses path without exporting anything into the process
// environment. A missing or unreadable file yields nil.
func readDotenv(path string) map[string]string {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	return values
}
