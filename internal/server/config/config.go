// Package config handles configuration for the document host,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/dochost/internal/shared"
)

const (
	StorageFS = "fs"
	StorageS3 = "s3"
)

// Config holds runtime settings for the document host.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP server.
//   - BaseURL: public URL of this server, used to build editor callback URLs.
//   - EditorURL: base URL of the external editor (discovery urlsrc, /collabora proxy).
//   - JWTSecret: HMAC secret shared with the editing server (HS256).
//   - TokenTTL: lifetime of tokens issued by POST /jwt; zero disables exp.
//   - Production: enables strict startup checks.
//   - RequireToken: reject callbacks and WOPI calls that carry no token.
//   - StorageBackend / StorageDir: where document blobs live ("fs" or "s3").
//   - FetchTimeout: deadline for downloading saved bytes from the editor.
//   - MaxBodyBytes / MaxDownloadBytes: size caps for PutFile bodies and callback downloads.
//   - S3*: object storage settings used when StorageBackend is "s3".
type Config struct {
	HTTPAddr          string
	BaseURL           string
	EditorURL         string
	JWTSecret         string
	TokenTTL          time.Duration
	Production        bool
	RequireToken      bool
	StorageBackend    string
	StorageDir        string
	FetchTimeout      time.Duration
	MaxBodyBytes      int64
	MaxDownloadBytes  int64
	UserFriendlyName  string
	PostMessageOrigin string
	IsolationHeaders  bool
	LogLevel          string
	S3User            string
	S3Password        string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
	S3Prefix          string

	// set when RequireToken was given explicitly by JSON, env or flag
	requireTokenSet bool
}

// LoadDefaults populates Config with development defaults.
// There is intentionally no default JWT secret; see Validate.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.BaseURL = "http://localhost:3000"
	c.EditorURL = "http://localhost:9980"
	c.TokenTTL = 24 * time.Hour
	c.StorageBackend = StorageFS
	c.StorageDir = "documents"
	c.FetchTimeout = 30 * time.Second
	c.MaxBodyBytes = 100 << 20
	c.MaxDownloadBytes = 100 << 20
	c.UserFriendlyName = "Document User"
	c.IsolationHeaders = true
	c.LogLevel = "info"
	c.S3User = "admin"
	c.S3Password = "secretpassword"
	c.S3Bucket = "documents"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.applyDerived()
	return cfg
}

func (c *Config) applyDerived() {
	if !c.requireTokenSet {
		c.RequireToken = c.Production
	}
	if c.PostMessageOrigin == "" {
		c.PostMessageOrigin = c.BaseURL
	}
}

// Validate checks the settings the server cannot start without.
//
// A missing JWT secret is fatal in production. In development a random
// per-process secret is generated and generated reports true so the caller
// can warn about it; tokens then do not survive a restart.
func (c *Config) Validate() (generated bool, err error) {
	switch c.StorageBackend {
	case StorageFS:
		if c.StorageDir == "" {
			return false, fmt.Errorf("storage dir is empty")
		}
	case StorageS3:
		if c.S3Bucket == "" {
			return false, fmt.Errorf("s3 bucket is empty")
		}
	default:
		return false, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.FetchTimeout <= 0 {
		return false, fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}

	if c.JWTSecret != "" {
		return false, nil
	}
	if c.Production {
		return false, fmt.Errorf("jwt secret must be configured in production (set %s)", EnvJWTSecret)
	}

	secret, err := shared.MakeRandHexString(32)
	if err != nil {
		return false, fmt.Errorf("generate jwt secret: %w", err)
	}
	c.JWTSecret = secret
	return true, nil
}
