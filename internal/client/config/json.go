package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/wintakam/wintakam/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// its values are copied into the runtime Config.
type JsonConfig struct {
	BackendURL        string `json:"backend_url"`
	APIKey            string `json:"api_key"`
	DataDir           string `json:"data_dir"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	UseMockData       bool   `json:"use_mock_data"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (see
// flagx.JsonConfigFlags); when neither is set, nothing is loaded. Read or
// unmarshal errors panic, matching the rest of the config pipeline.
// Zero-valued JSON fields leave the existing Config values untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSec) * time.Second
	}
	if jc.UseMockData {
		cfg.UseMockData = true
	}
}
