package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/escc-report-api/internal/flagx"
)

var knownFlags = []string{
	"-a", "-d", "-driver", "-s", "-r",
	"-access-ttl", "-refresh-ttl", "-store-timeout",
	"-rate-limit", "-cors-origins", "-log-level", "-log-format", "-page-limit",
}

// parseFlags overlays command-line flags onto config.
//
//	-a string              HTTP bind address (e.g. ":3000")
//	-d string              database DSN
//	-driver string         "sqlserver" or "pgx"
//	-s string              access token secret
//	-r string              refresh token secret
//	-access-ttl duration   access token validity
//	-refresh-ttl duration  refresh token validity
//	-store-timeout duration  per-call stored procedure timeout
//	-rate-limit int        per-IP login budget per minute, 0 disables
//	-cors-origins string   comma separated allowed origins
//	-log-level string      debug, info, warn or error
//	-log-format string     zap, json or text
//	-page-limit int        default job search page size
//
// Args are filtered with flagx.FilterArgs first so that -c/-config and
// flags owned by other components do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DBDriver, "driver", config.DBDriver, "database driver")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "r", config.RefreshTokenSecret, "refresh token secret")
	fs.DurationVar(&config.AccessTokenValidityDuration, "access-ttl", config.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&config.RefreshTokenValidityDuration, "refresh-ttl", config.RefreshTokenValidityDuration, "refresh token validity")
	fs.DurationVar(&config.StoreCallTimeout, "store-timeout", config.StoreCallTimeout, "stored procedure call timeout")
	fs.IntVar(&config.RateLimitPerMinute, "rate-limit", config.RateLimitPerMinute, "login requests per minute per IP")
	origins := fs.String("cors-origins", strings.Join(config.CORSAllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")
	fs.IntVar(&config.DefaultPageLimit, "page-limit", config.DefaultPageLimit, "default page size")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	config.CORSAllowedOrigins = splitList(*origins)
	return nil
}
