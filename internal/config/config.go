package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the wsparse tool.
type Config struct {
	// Endpoint used when a script has no endpoint directive.
	Endpoint string `yaml:"endpoint"`

	// Address the web mode listens on.
	WebAddr string `yaml:"web_addr"`

	// Drop comments before tokenizing.
	SkipComments bool `yaml:"skip_comments"`

	// Maximum number of scripts analysed concurrently.
	Jobs int `yaml:"jobs"`

	// Largest script the web API accepts.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// zap level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:     "http://localhost:8080/api/v0/exec",
		WebAddr:      "localhost:8090",
		Jobs:         4,
		MaxBodyBytes: 4 << 20,
		LogLevel:     "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks the values a file or flags may have broken.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.MaxBodyBytes < 1 {
		return errors.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
