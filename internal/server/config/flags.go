package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dochost/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g., ":3000")
//	-u string        public base URL used in editor callback URLs
//	-e string        external editor base URL
//	-s string        JWT HMAC secret key
//	-t int           issued token validity, minutes (0 disables exp)
//	-storage string  storage backend: fs or s3
//	-d string        storage directory for the fs backend
//	-f int           callback download timeout, seconds
//	-l string        log level
//	-prod            production mode
//	-require-token   reject requests without a token
//
// Only the flags above are picked out of os.Args, so -c/-config and
// anything else is left to its own parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:],
		[]string{"-a", "-u", "-e", "-s", "-t", "-storage", "-d", "-f", "-l"},
		[]string{"-prod", "-require-token"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.BaseURL, "u", config.BaseURL, "public base URL")
	fs.StringVar(&config.EditorURL, "e", config.EditorURL, "editor base URL")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "jwt secret key")

	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")

	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend (fs|s3)")
	fs.StringVar(&config.StorageDir, "d", config.StorageDir, "storage directory")

	fetchTimeout := fs.Int("f", int(config.FetchTimeout.Seconds()), "download timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.Production, "prod", config.Production, "production mode")
	fs.BoolVar(&config.RequireToken, "require-token", config.RequireToken, "require tokens on callbacks and WOPI calls")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		case "f":
			config.FetchTimeout = time.Duration(*fetchTimeout) * time.Second
		case "require-token":
			config.requireTokenSet = true
		}
	})
}
