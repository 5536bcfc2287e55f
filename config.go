package mailview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds per-view configuration. Zero fields fall back to the
// defaults below; embed it in an app config or load it from YAML.
type Config struct {
	// StashKey names the context slot the view reads its request from.
	StashKey string `yaml:"stash_key" env:"MAILVIEW_STASH_KEY" envDefault:"email"`

	// ContentType and Charset apply when the request leaves them empty.
	ContentType string `yaml:"content_type" env:"MAILVIEW_CONTENT_TYPE" envDefault:"text/plain"`
	Charset     string `yaml:"charset" env:"MAILVIEW_CHARSET" envDefault:"UTF-8"`

	// From is the default sender merged into requests without one.
	From string `yaml:"from" env:"MAILVIEW_FROM"`

	// Transport selects a registered adapter by name; TransportArgs is
	// decoded into the adapter's own config struct.
	Transport     string         `yaml:"transport" env:"MAILVIEW_TRANSPORT"`
	TransportArgs map[string]any `yaml:"transport_args"`

	// TemplatePrefix is joined onto template names before rendering.
	TemplatePrefix string `yaml:"template_prefix" env:"MAILVIEW_TEMPLATE_PREFIX"`

	// DefaultRenderer names the rendering view used when a template
	// entry does not pick one.
	DefaultRenderer string `yaml:"default_renderer" env:"MAILVIEW_DEFAULT_RENDERER"`
}

// DefaultConfig returns a Config with the package defaults applied.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from a YAML file as the base layer,
// then overrides with environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvVars()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StashKey == "" {
		c.StashKey = DefaultStashKey
	}
	if c.ContentType == "" {
		c.ContentType = "text/plain"
	}
	if c.Charset == "" {
		c.Charset = "UTF-8"
	}
}

// applyEnvVars overrides configuration with environment variables.
// Only non-empty variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("MAILVIEW_STASH_KEY"); v != "" {
		c.StashKey = v
	}
	if v := os.Getenv("MAILVIEW_CONTENT_TYPE"); v != "" {
		c.ContentType = v
	}
	if v := os.Getenv("MAILVIEW_CHARSET"); v != "" {
		c.Charset = v
	}
	if v := os.Getenv("MAILVIEW_FROM"); v != "" {
		c.From = v
	}
	if v := os.Getenv("MAILVIEW_TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := os.Getenv("MAILVIEW_TEMPLATE_PREFIX"); v != "" {
		c.TemplatePrefix = v
	}
	if v := os.Getenv("MAILVIEW_DEFAULT_RENDERER"); v != "" {
		c.DefaultRenderer = v
	}
}
