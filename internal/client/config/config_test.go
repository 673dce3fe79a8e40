package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"https://reports.example.com","request_timeout":"3s"}`), 0o600))

	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name:     "defaults",
			args:     []string{"login", "jdoe"},
			expected: &Config{ServerURL: "http://127.0.0.1:3000", RequestTimeout: 10 * time.Second},
		},
		{
			name:     "flags",
			args:     []string{"-a", "http://10.0.0.5:8080", "-t", "2s", "refresh", "tok"},
			expected: &Config{ServerURL: "http://10.0.0.5:8080", RequestTimeout: 2 * time.Second},
		},
		{
			name:     "json",
			args:     []string{"-c", path, "decode", "6b6c6d"},
			expected: &Config{ServerURL: "https://reports.example.com", RequestTimeout: 3 * time.Second},
		},
		{
			name:     "flags override json",
			args:     []string{"-config", path, "-t=5s"},
			expected: &Config{ServerURL: "https://reports.example.com", RequestTimeout: 5 * time.Second},
		},
		{name: "bad duration", args: []string{"-t", "abc"}, wantErr: true},
		{name: "bad scheme", args: []string{"-a", "ftp://host"}, wantErr: true},
		{name: "missing json file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
