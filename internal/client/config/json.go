package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/escc-report-api/internal/flagx"
	"github.com/dmitrijs2005/escc-report-api/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling.
type JSONConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with the file named by -c / -config.
// Without either flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
