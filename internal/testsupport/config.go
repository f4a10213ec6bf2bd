package testsupport

import (
	"path/filepath"
	"testing"

	"immichstack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Immich.URL = "http://127.0.0.1:2283"
	cfgVal.Immich.APIKey = "test"
	cfgVal.Immich.MaxRetries = 0
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithImmichURL points the test config at url, typically an ImmichServer.
func WithImmichURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Immich.URL = url
	}
}

// WithAPIKey sets the Immich API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Immich.APIKey = key
	}
}

// WithRetries sets the number of transient retries.
func WithRetries(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Immich.MaxRetries = n
	}
}

// WithStateDir overrides the state directory relative to the test base dir.
func WithStateDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.StateDir = filepath.Join(b.baseDir, name)
	}
}
