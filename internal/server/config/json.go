package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dochost/internal/flagx"
	"github.com/dmitrijs2005/dochost/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// accept "30s"-style strings or integer nanoseconds; booleans are pointers so
// an absent key keeps the current value.
type JsonConfig struct {
	HTTPAddr          string          `json:"http_addr"`
	BaseURL           string          `json:"base_url"`
	EditorURL         string          `json:"editor_url"`
	JWTSecret         string          `json:"jwt_secret"`
	TokenTTL          *timex.Duration `json:"token_ttl"`
	Production        *bool           `json:"production"`
	RequireToken      *bool           `json:"require_token"`
	StorageBackend    string          `json:"storage_backend"`
	StorageDir        string          `json:"storage_dir"`
	FetchTimeout      *timex.Duration `json:"fetch_timeout"`
	MaxBodyBytes      int64           `json:"max_body_bytes"`
	MaxDownloadBytes  int64           `json:"max_download_bytes"`
	UserFriendlyName  string          `json:"user_friendly_name"`
	PostMessageOrigin string          `json:"post_message_origin"`
	IsolationHeaders  *bool           `json:"isolation_headers"`
	LogLevel          string          `json:"log_level"`
	S3User            string          `json:"s3_user"`
	S3Password        string          `json:"s3_password"`
	S3Bucket          string          `json:"s3_bucket"`
	S3Region          string          `json:"s3_region"`
	S3BaseEndpoint    string          `json:"s3_base_endpoint"`
	S3Prefix          string          `json:"s3_prefix"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $DOCHOST_CONFIG) onto config. Missing keys leave fields untouched.
// An unreadable file or invalid JSON panics: a config file that was asked
// for but cannot be used must stop startup.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFilePath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.BaseURL, c.BaseURL)
	setString(&config.EditorURL, c.EditorURL)
	setString(&config.JWTSecret, c.JWTSecret)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.StorageDir, c.StorageDir)
	setString(&config.UserFriendlyName, c.UserFriendlyName)
	setString(&config.PostMessageOrigin, c.PostMessageOrigin)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3User, c.S3User)
	setString(&config.S3Password, c.S3Password)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3Prefix, c.S3Prefix)

	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.FetchTimeout != nil {
		config.FetchTimeout = c.FetchTimeout.Duration
	}
	if c.MaxBodyBytes > 0 {
		config.MaxBodyBytes = c.MaxBodyBytes
	}
	if c.MaxDownloadBytes > 0 {
		config.MaxDownloadBytes = c.MaxDownloadBytes
	}
	if c.Production != nil {
		config.Production = *c.Production
	}
	if c.RequireToken != nil {
		config.RequireToken = *c.RequireToken
		config.requireTokenSet = true
	}
	if c.IsolationHeaders != nil {
		config.IsolationHeaders = *c.IsolationHeaders
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
