package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/flagx"
	"github.com/dmitrijs2005/escc-report-api/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Durations accept
// strings such as "1h" or integer nanoseconds. Absent fields leave the
// current value untouched.
type JSONConfig struct {
	HTTPAddr                     *string         `json:"http_addr"`
	DBDriver                     *string         `json:"db_driver"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	DBMaxOpenConns               *int            `json:"db_max_open_conns"`
	DBMaxIdleConns               *int            `json:"db_max_idle_conns"`
	DBConnMaxIdleTime            *timex.Duration `json:"db_conn_max_idle_time"`
	DBConnectTimeout             *timex.Duration `json:"db_connect_timeout"`
	StoreCallTimeout             *timex.Duration `json:"store_call_timeout"`
	AccessTokenSecret            *string         `json:"access_token_secret"`
	RefreshTokenSecret           *string         `json:"refresh_token_secret"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	RateLimitPerMinute           *int            `json:"rate_limit_per_minute"`
	CORSAllowedOrigins           []string        `json:"cors_allowed_origins"`
	LogLevel                     *string         `json:"log_level"`
	LogFormat                    *string         `json:"log_format"`
	DefaultPageLimit             *int            `json:"default_page_limit"`
}

// parseJSON overlays the file named by -c / -config onto config.
// Without either flag nothing is loaded.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DBDriver, c.DBDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setInt(&config.DBMaxOpenConns, c.DBMaxOpenConns)
	setInt(&config.DBMaxIdleConns, c.DBMaxIdleConns)
	setDuration(&config.DBConnMaxIdleTime, c.DBConnMaxIdleTime)
	setDuration(&config.DBConnectTimeout, c.DBConnectTimeout)
	setDuration(&config.StoreCallTimeout, c.StoreCallTimeout)
	setString(&config.AccessTokenSecret, c.AccessTokenSecret)
	setString(&config.RefreshTokenSecret, c.RefreshTokenSecret)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setInt(&config.RateLimitPerMinute, c.RateLimitPerMinute)
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setInt(&config.DefaultPageLimit, c.DefaultPageLimit)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
