package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   database URL
//	-s string   JWT HMAC secret
//	-j string   JWT algorithm (HS256, HS384, HS512)
//	-t int      access token validity, seconds
//	-u string   test username
//	-p string   test password
//	-m string   model file path
//	-l string   log level
//
// Unknown flags are filtered out first so -c/-config can coexist.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-j", "-t", "-u", "-p", "-m", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	fs.StringVar(&config.SigningAlgorithm, "j", config.SigningAlgorithm, "JWT signing algorithm")
	ttl := fs.Int("t", int(config.AccessTokenValidityDuration.Seconds()), "access token validity (in seconds)")
	fs.StringVar(&config.TestUsername, "u", config.TestUsername, "test username")
	fs.StringVar(&config.TestPassword, "p", config.TestPassword, "test password")
	fs.StringVar(&config.ModelPath, "m", config.ModelPath, "model file path")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.AccessTokenValidityDuration = time.Duration(*ttl) * time.Second
	return nil
}
