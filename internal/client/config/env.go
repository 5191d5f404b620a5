package config

import "os"

// parseEnv overlays Config with values from the process environment.
// Unset variables leave the existing values untouched.
func parseEnv(cfg *Config) {
	if v := os.Getenv("WINTAKAM_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("WINTAKAM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("WINTAKAM_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
}
