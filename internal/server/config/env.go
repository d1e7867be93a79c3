package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables read by parseEnv. ONLYOFFICE_JWT_SECRET keeps the
// name the editing server documentation uses for the shared secret.
const (
	EnvHTTPAddr       = "DOCHOST_HTTP_ADDR"
	EnvBaseURL        = "DOCHOST_BASE_URL"
	EnvEditorURL      = "DOCHOST_EDITOR_URL"
	EnvJWTSecret      = "ONLYOFFICE_JWT_SECRET"
	EnvTokenTTL       = "DOCHOST_TOKEN_TTL"
	EnvProduction     = "DOCHOST_PRODUCTION"
	EnvRequireToken   = "DOCHOST_REQUIRE_TOKEN"
	EnvStorage        = "DOCHOST_STORAGE"
	EnvStorageDir     = "DOCHOST_STORAGE_DIR"
	EnvFetchTimeout   = "DOCHOST_FETCH_TIMEOUT"
	EnvLogLevel       = "DOCHOST_LOG_LEVEL"
	EnvS3User         = "DOCHOST_S3_USER"
	EnvS3Password     = "DOCHOST_S3_PASSWORD"
	EnvS3Bucket       = "DOCHOST_S3_BUCKET"
	EnvS3Region       = "DOCHOST_S3_REGION"
	EnvS3BaseEndpoint = "DOCHOST_S3_BASE_ENDPOINT"
	EnvS3Prefix       = "DOCHOST_S3_PREFIX"
)

// parseEnv overlays values from environment variables. Unset or malformed
// variables leave the current value in place.
func parseEnv(config *Config) {
	envString(&config.HTTPAddr, EnvHTTPAddr)
	envString(&config.BaseURL, EnvBaseURL)
	envString(&config.EditorURL, EnvEditorURL)
	envString(&config.JWTSecret, EnvJWTSecret)
	envString(&config.StorageBackend, EnvStorage)
	envString(&config.StorageDir, EnvStorageDir)
	envString(&config.LogLevel, EnvLogLevel)
	envString(&config.S3User, EnvS3User)
	envString(&config.S3Password, EnvS3Password)
	envString(&config.S3Bucket, EnvS3Bucket)
	envString(&config.S3Region, EnvS3Region)
	envString(&config.S3BaseEndpoint, EnvS3BaseEndpoint)
	envString(&config.S3Prefix, EnvS3Prefix)

	envDuration(&config.TokenTTL, EnvTokenTTL)
	envDuration(&config.FetchTimeout, EnvFetchTimeout)

	envBool(&config.Production, EnvProduction)
	if envBool(&config.RequireToken, EnvRequireToken) {
		config.requireTokenSet = true
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}

func envBool(dst *bool, key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	*dst = b
	return true
}
