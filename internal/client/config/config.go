// Package config loads runtime configuration for the Wintakam CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via the -c or -config flags.
//  3. Environment variables (WINTAKAM_BACKEND_URL, WINTAKAM_API_KEY,
//     WINTAKAM_DATA_DIR).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend gateway
//	-k string   project API key sent with every request
//	-d string   data directory for the session cache and credential store
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the Wintakam CLI.
//
// Fields:
//   - BackendURL: base URL of the backend gateway (scheme included).
//   - APIKey: project API key attached to every request. Required.
//   - DataDir: directory holding the credential store and session cache.
//   - RequestTimeout: per-request deadline for gateway calls.
//   - UseMockData: serve the built-in demo catalog instead of backend rows.
type Config struct {
	BackendURL     string
	APIKey         string
	DataDir        string
	RequestTimeout time.Duration
	UseMockData    bool
}

// LoadDefaults populates c with development defaults. The API key has no
// default; it must come from JSON, the environment, or flags.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080"
	c.APIKey = ""
	c.DataDir = ".wintakam"
	c.RequestTimeout = 12 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports whether the configuration is complete enough to start.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("API key is not configured (set WINTAKAM_API_KEY or pass -k)")
	}
	if c.BackendURL == "" {
		return errors.New("backend URL is not configured")
	}
	return nil
}
