package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.BackendURL)
	assert.Equal(t, "", c.APIKey)
	assert.Equal(t, ".wintakam", c.DataDir)
	assert.Equal(t, 12*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", c.BackendURL)
	assert.Equal(t, ".wintakam", c.DataDir)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.Error(t, c.Validate())

	c.APIKey = "pk_test"
	require.NoError(t, c.Validate())

	c.BackendURL = ""
	require.Error(t, c.Validate())
}

func TestParseEnvOverlays(t *testing.T) {
	t.Setenv("WINTAKAM_BACKEND_URL", "https://api.wintakam.cm")
	t.Setenv("WINTAKAM_API_KEY", "pk_env")
	t.Setenv("WINTAKAM_DATA_DIR", "/tmp/wintakam")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "https://api.wintakam.cm", c.BackendURL)
	assert.Equal(t, "pk_env", c.APIKey)
	assert.Equal(t, "/tmp/wintakam", c.DataDir)
}

func TestParseEnvUnsetKeepsValues(t *testing.T) {
	t.Setenv("WINTAKAM_BACKEND_URL", "")
	t.Setenv("WINTAKAM_API_KEY", "")
	t.Setenv("WINTAKAM_DATA_DIR", "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "http://127.0.0.1:8080", c.BackendURL)
	assert.Equal(t, ".wintakam", c.DataDir)
}

func TestParseJsonOverlays(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	jc := JsonConfig{
		BackendURL:        "https://api.wintakam.cm",
		APIKey:            "pk_json",
		DataDir:           "/var/lib/wintakam",
		RequestTimeoutSec: 30,
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "https://api.wintakam.cm", c.BackendURL)
	assert.Equal(t, "pk_json", c.APIKey)
	assert.Equal(t, "/var/lib/wintakam", c.DataDir)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
}

func TestParseJsonPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_key":"pk_only"}`), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-config", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "pk_only", c.APIKey)
	assert.Equal(t, "http://127.0.0.1:8080", c.BackendURL)
	assert.Equal(t, 12*time.Second, c.RequestTimeout)
}
