// Package config loads runtime configuration for the report API CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the report API server
//	-t duration   timeout of a single HTTP request
//
// # JSON schema
//
// Durations accept strings such as "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "10s"
//	}
package config
