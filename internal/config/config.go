// Package config loads client configuration from ~/.gigdesk/config.toml
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all client-side settings.
type Config struct {
	// APIBase is the marketplace backend base URL.
	APIBase string `toml:"api_base"`

	// TimeoutMs bounds each backend request.
	TimeoutMs int `toml:"timeout_ms"`

	// LogCalls enables per-call logging to stderr.
	LogCalls bool `toml:"log_calls"`

	// DBPath overrides the local database location.
	DBPath string `toml:"db_path"`

	// DownloadExpirySec is the requested lifetime for signed download
	// URLs. Zero lets the backend pick.
	DownloadExpirySec int `toml:"download_expiry_sec"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBase:   "http://localhost:4000/api",
		TimeoutMs: 15000,
	}
}

// Dir returns the gigdesk home directory (~/.gigdesk).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gigdesk"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DatabasePath returns the local client database location, honoring
// the db_path override.
func (c *Config) DatabasePath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gigdesk.db"), nil
}

// Load reads the config file if present, then applies environment
// overrides. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path, err := Path()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GIGDESK_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("GIGDESK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GIGDESK_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GIGDESK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GIGDESK_DOWNLOAD_EXPIRY_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DownloadExpirySec = n
		}
	}
}
