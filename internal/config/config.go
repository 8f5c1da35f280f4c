// Package config loads the CLI and server settings: defaults, then a YAML
// file, then CCBJ_* environment variables. Flags are applied by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ccbj/ccbj-forms/internal/money"
)

const appDir = "ccbj-forms"

// Environment variables read by Load
const (
	EnvAPIURL    = "CCBJ_API_URL"
	EnvLocale    = "CCBJ_LOCALE"
	EnvTokenFile = "CCBJ_TOKEN_FILE"
	EnvAddress   = "CCBJ_ADDRESS"
)

// Config is the full configuration
type Config struct {
	API       APIConfig    `yaml:"api"`
	Server    ServerConfig `yaml:"server"`
	Locale    string       `yaml:"locale"`
	TokenFile string       `yaml:"token_file"`
	OutputDir string       `yaml:"output_dir"`
}

// APIConfig points at the backend
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the validation service
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Debug        bool          `yaml:"debug"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     "http://localhost:8000/api/v1",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Locale:    money.PtBR.Tag.String(),
		TokenFile: filepath.Join(userDir(), "tokens.json"),
		OutputDir: ".",
	}
}

// DefaultPath is where Load looks when no file is given
func DefaultPath() string {
	return filepath.Join(userDir(), "config.yaml")
}

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + appDir
	}
	return filepath.Join(dir, appDir)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		c.TokenFile = v
	}
	if v := os.Getenv(EnvAddress); v != "" {
		c.Server.Address = v
	}
}

// Validate rejects settings nothing can run with
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api url not configured (set %s or api.url)", EnvAPIURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api timeout: %s", c.API.Timeout)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server address not configured (set %s or server.address)", EnvAddress)
	}
	return nil
}

// Formatter is the currency formatter for the configured locale
func (c *Config) Formatter() *money.Formatter {
	return money.NewFormatter(c.Locale)
}
