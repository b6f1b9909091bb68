package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the CLI looks for its config file.
const DefaultConfigPath = ".cards/config.yaml"

// Config holds all card gallery configuration.
type Config struct {
	Name string `yaml:"name"`

	// Webhook service
	API APIConfig `yaml:"api"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Upload pacing for the upload and watch commands
	Upload UploadConfig `yaml:"upload"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the webhook client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UploadConfig configures batch uploads.
type UploadConfig struct {
	Concurrency  int      `yaml:"concurrency"`
	RatePerSec   float64  `yaml:"rate_per_sec"`
	Extensions   []string `yaml:"extensions"`
	SettleWindow string   `yaml:"settle_window"` // watch: wait after the last write before uploading
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "cards",

		API: APIConfig{
			BaseURL: "https://n8n-dev.subspace.money/webhook",
			Timeout: "30s",
		},

		UI: *DefaultUIConfig(),

		Upload: UploadConfig{
			Concurrency:  2,
			RatePerSec:   1,
			Extensions:   []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".heic"},
			SettleWindow: "500ms",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			Dir:       ".cards",
			DebugMode: false,
		},
	}
}

// LoadDotEnv loads a .env file from the working directory without
// overriding variables already set. A missing file is not an error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CARDS_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("CARDS_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("CARDS_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.PageSize = n
		}
	}
	if v := os.Getenv("CARDS_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || v == "true"
		if c.Logging.DebugMode {
			c.Logging.Level = "debug"
		}
	}
	if v := os.Getenv("CARDS_DARK_MODE"); v != "" {
		c.UI.Theme = "light"
		if v == "1" || v == "true" {
			c.UI.Theme = "dark"
		}
	}
}

// GetTimeout returns the webhook request timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetSettleWindow returns the watch settle window as a duration.
func (c *Config) GetSettleWindow() time.Duration {
	d, err := time.ParseDuration(c.Upload.SettleWindow)
	if err != nil || d < 0 {
		return 500 * time.Millisecond
	}
	return d
}

// GetPageSize returns the configured page size, defaulting to 10.
func (c *Config) GetPageSize() int {
	if c.UI.PageSize <= 0 {
		return 10
	}
	return c.UI.PageSize
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url not configured (set CARDS_BASE_URL or api.base_url)")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base_url: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api base_url scheme: %s", u.Scheme)
	}
	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
		}
	}
	if c.UI.PageSize < 0 {
		return fmt.Errorf("invalid page size: %d", c.UI.PageSize)
	}
	if c.Upload.Concurrency < 0 {
		return fmt.Errorf("invalid upload concurrency: %d", c.Upload.Concurrency)
	}
	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid ui theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}
	return nil
}
