package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: scheme and host of the report API, e.g. "http://127.0.0.1:3000".
//   - RequestTimeout: bound on every HTTP round trip.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults matching a locally running server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
}

// Validate reports settings the CLI cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url %q: scheme must be http or https", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then overlays values from
// JSON (if present) and command-line flags found in args. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
