package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/roosterteeth/roosterteeth"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, roosterteeth.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, roosterteeth.DefaultAuthURL, cfg.API.AuthURL)
	assert.Equal(t, roosterteeth.DefaultTimeout, cfg.API.Timeout)
	assert.False(t, cfg.Auth.HasLogin())
	assert.True(t, cfg.Auth.UseKeyring)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Filter)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:8080/api/v1
  timeout: 5s
auth:
  username: burnie
  use_keyring: false
output:
  format: json
filter:
  shorts: Length < 600
  halo: hasTag("halo")
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, roosterteeth.DefaultClientID, cfg.API.ClientID)
	assert.Equal(t, "burnie", cfg.Auth.Username)
	assert.False(t, cfg.Auth.UseKeyring)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, FilterConfig{"shorts": "Length < 600", "halo": `hasTag("halo")`}, cfg.Filter)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
auth:
  username: burnie
`)
	t.Setenv("RT_AUTH_PASSWORD", "from-env")
	t.Setenv("RT_OUTPUT_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Password)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "api: [unclosed"))
		require.Error(t, err)
	})

	t.Run("validation failure", func(t *testing.T) {
		_, err := Load(writeConfig(t, "output:\n  format: xml\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output.format: xml")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: roosterteeth.DefaultBaseURL, Timeout: time.Second},
			Output:  OutputConfig{Format: "table"},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url is required",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "password without username",
			mutate:  func(c *Config) { c.Auth.Password = "secret" },
			wantErr: "auth.username is empty",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter = FilterConfig{"blank": "  "} },
			wantErr: "filter preset 'blank' is empty",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
