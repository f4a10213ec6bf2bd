package config

const (
	defaultConfigPath     = "~/.config/immich-stack/config.toml"
	projectConfigName     = "immich-stack.toml"
	defaultImmichURL      = "http://localhost:2283"
	defaultTimeoutSeconds = 30
	defaultMaxRetries     = 3
	defaultConcurrency    = 4
	defaultStateDir       = "~/.local/share/immich-stack"
	defaultLogDir         = "~/.local/share/immich-stack/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. The Immich URL
// and API key stay empty so the environment fallbacks can apply during Load.
func Default() Config {
	return Config{
		Immich: Immich{
			TimeoutSeconds: defaultTimeoutSeconds,
			MaxRetries:     defaultMaxRetries,
			Concurrency:    defaultConcurrency,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
