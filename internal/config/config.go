// Package config holds routerctl configuration. It is loaded from
// ~/.routerctl/config.yaml and can be overridden by environment
// variables, including the legacy LITELLM_URL / LITELLM_API_KEY names
// the original management script used.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nirmaker/routerctl/internal/gateway"
)

// Config holds all routerctl configuration.
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway" yaml:"gateway"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// GatewayConfig points routerctl at the LiteLLM admin API.
type GatewayConfig struct {
	// URL is the gateway host (scheme included).
	URL string `mapstructure:"url" yaml:"url"`
	// APIKey is the bearer token for the Authorization header.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// TimeoutSec bounds each request/response cycle.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is the log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			URL:        gateway.DefaultBaseURL,
			APIKey:     "dummy-key",
			TimeoutSec: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Timeout returns the gateway timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Gateway.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Gateway.TimeoutSec) * time.Second
}

// Load reads configuration from the default location
// (~/.routerctl/config.yaml) and merges with environment variables.
// If no config file exists, it creates one with default values.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return LoadFromPath(filepath.Join(homeDir, ".routerctl", "config.yaml"))
}

// LoadFromPath reads configuration from a specific file path and merges
// with environment variables. If the file doesn't exist, it creates one
// with default values.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Default().SaveToPath(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Example: ROUTERCTL_GATEWAY_API_KEY
	v.SetEnvPrefix("ROUTERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyLegacyEnv()
	return &cfg, nil
}

// applyLegacyEnv honors the environment variables of the original
// management script. They win over the config file, matching the old
// behavior where the environment was the only configuration source.
func (c *Config) applyLegacyEnv() {
	if url := os.Getenv("LITELLM_URL"); url != "" {
		c.Gateway.URL = url
	}
	if key := os.Getenv("LITELLM_API_KEY"); key != "" {
		c.Gateway.APIKey = key
	}
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return c.SaveToPath(filepath.Join(homeDir, ".routerctl", "config.yaml"))
}

// SaveToPath writes the configuration to a specific file path.
func (c *Config) SaveToPath(path string) error {
	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// expandPath expands a leading tilde to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
