package entities

// Config holds runtime settings for a plugin host and its front ends.
type Config struct {
	// LogLevel is the logging verbosity level ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	// Format selects how results are written ("text", "json", "cbor").
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text json cbor"`

	// PluginID is stamped into RunMetadata for every result.
	PluginID string `json:"plugin_id,omitempty"`
}

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   "text",
	}
}

// ConfigOption is a functional option for configuring runtime settings.
type ConfigOption func(*Config)

// WithPluginID sets the plugin ID.
func WithPluginID(id string) ConfigOption {
	return func(c *Config) {
		c.PluginID = id
	}
}

// NewConfig creates a configuration from the defaults and the given options.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
