package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateImmich(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateImmich() error {
	if c.Immich.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("immich.api_key is required. Set IMMICH_API_KEY env var or edit %s (create with 'immich-stack config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Immich.URL)
	if err != nil {
		return fmt.Errorf("immich.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("immich.url must use http or https, got %q", c.Immich.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("immich.url must include a host, got %q", c.Immich.URL)
	}
	if c.Immich.TimeoutSeconds <= 0 {
		return errors.New("immich.timeout_seconds must be positive")
	}
	if c.Immich.MaxRetries < 0 {
		return errors.New("immich.max_retries must be >= 0")
	}
	if c.Immich.Concurrency <= 0 {
		return errors.New("immich.concurrency must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if c.Logging.File && strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set when logging.file is true")
	}
	return nil
}
