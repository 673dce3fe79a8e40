package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays environment variables onto config.
//
// Recognised variables:
//
//	PORT / HTTP_ADDR                    listen port or full bind address
//	DB_DRIVER, DATABASE_DSN             driver and DSN
//	DB_SERVER, DB_PORT, DB_DATABASE,
//	DB_USER, DB_PASSWORD                SQL Server DSN parts, used when DATABASE_DSN is unset
//	JWT_SECRET, JWT_REFRESH_SECRET      token secrets
//	ACCESS_TOKEN_TTL, REFRESH_TOKEN_TTL token lifetimes (Go duration syntax)
//	STORE_CALL_TIMEOUT                  per-call stored procedure timeout
//	RATE_LIMIT_RPM                      per-IP login budget
//	CORS_ALLOWED_ORIGINS                comma separated origins
//	LOG_LEVEL, LOG_FORMAT               logger settings
func parseEnv(config *Config, lookupEnv func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookupEnv(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		config.HTTPAddr = ":" + v
	}
	if v, ok := get("HTTP_ADDR"); ok {
		config.HTTPAddr = v
	}
	if v, ok := get("DB_DRIVER"); ok {
		config.DBDriver = v
	}
	if v, ok := get("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	} else if server, ok := get("DB_SERVER"); ok {
		port, _ := get("DB_PORT")
		database, _ := get("DB_DATABASE")
		user, _ := get("DB_USER")
		password, _ := get("DB_PASSWORD")
		config.DatabaseDSN = sqlServerDSN(server, port, database, user, password)
	}
	if v, ok := get("JWT_SECRET"); ok {
		config.AccessTokenSecret = v
	}
	if v, ok := get("JWT_REFRESH_SECRET"); ok {
		config.RefreshTokenSecret = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration},
		{"REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration},
		{"STORE_CALL_TIMEOUT", &config.StoreCallTimeout},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v, ok := get("RATE_LIMIT_RPM"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPM: %w", err)
		}
		config.RateLimitPerMinute = n
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := get("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		config.LogFormat = v
	}

	return nil
}

func sqlServerDSN(server, port, database, user, password string) string {
	if port == "" {
		port = "1433"
	}
	query := url.Values{}
	if database != "" {
		query.Set("database", database)
	}
	query.Set("TrustServerCertificate", "true")

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(server, port),
		RawQuery: query.Encode(),
	}
	if user != "" {
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
