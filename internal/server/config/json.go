package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/wintakam/wintakam/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Token
// lifetimes are given in minutes; after parsing, values are copied into the
// runtime Config which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                    string `json:"endpoint_addr"`
	DatabaseDSN                     string `json:"database_dsn"`
	SecretKey                       string `json:"secret_key"`
	APIKey                          string `json:"api_key"`
	AccessTokenValidityDurationMin  int    `json:"access_token_validity_min"`
	RefreshTokenValidityDurationMin int    `json:"refresh_token_validity_min"`
	S3RootUser                      string `json:"s3_root_user"`
	S3RootPassword                  string `json:"s3_root_password"`
	S3Bucket                        string `json:"s3_bucket"`
	S3Region                        string `json:"s3_region"`
	S3BaseEndpoint                  string `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config flags; when neither is set, no
// JSON file is loaded. Read or unmarshal errors panic. Zero-valued JSON
// fields leave the existing Config values untouched.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.APIKey != "" {
		config.APIKey = c.APIKey
	}
	if c.AccessTokenValidityDurationMin > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDurationMin) * time.Minute
	}
	if c.RefreshTokenValidityDurationMin > 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDurationMin) * time.Minute
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
