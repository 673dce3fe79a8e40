package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/escc-report-api/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     base URL of the server
//	-t duration   per-request timeout
//
// Positional arguments (the CLI command and its operands) are dropped by
// flagx.FilterArgs before parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the report API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(flagx.FilterArgs(args, []string{"-a", "-t"}))
}
