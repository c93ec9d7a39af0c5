package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Environment:  "dev",
		Host:         "0.0.0.0",
		Port:         3000,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		APIBaseURL:   "http://localhost:8000",
		MaxFormSize:  65536,
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "HOST", "PORT", "LOG_LEVEL", "API_BASE_URL", "ALLOWED_ORIGINS", "EXPOSE_METRICS", "MAX_FORM_SIZE"} {
		t.Setenv(key, "") // restores the original value after the test
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(65536), cfg.MaxFormSize)
	assert.False(t, cfg.ExposeMetrics)
	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddr())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("PORT", "8081")
	t.Setenv("API_BASE_URL", "https://api.komfort.example")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.komfort.example| https://ops.komfort.example")
	t.Setenv("EXPOSE_METRICS", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, []string{"https://admin.komfort.example", "https://ops.komfort.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.ExposeMetrics)
}

func TestValidateUIConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "local" }, "invalid environment"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "port must be between"},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, "read timeout"},
		{"zero write timeout", func(c *Config) { c.WriteTimeout = 0 }, "write timeout"},
		{"zero idle timeout", func(c *Config) { c.IdleTimeout = 0 }, "idle timeout"},
		{"empty api url", func(c *Config) { c.APIBaseURL = "" }, "API_BASE_URL cannot be empty"},
		{"api url scheme", func(c *Config) { c.APIBaseURL = "ftp://backend" }, "must use http or https"},
		{"api url host", func(c *Config) { c.APIBaseURL = "http://" }, "does not include a host"},
		{"prod without origins", func(c *Config) { c.Environment = "prod" }, "ALLOWED_ORIGINS must be set"},
		{"staging with wildcard", func(c *Config) {
			c.Environment = "staging"
			c.AllowedOrigins = []string{"https://a.example", "*"}
		}, "must not contain '*'"},
		{"prod with origins", func(c *Config) {
			c.Environment = "prod"
			c.AllowedOrigins = []string{"https://a.example"}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := validateUIConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateUIConfig_FillsMaxFormSize(t *testing.T) {
	cfg := validConfig()
	cfg.MaxFormSize = 0

	require.NoError(t, validateUIConfig(&cfg))
	assert.Equal(t, int64(64*1024), cfg.MaxFormSize)
}

func TestNewCORSMiddleware(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, validateUIConfig(&cfg))

	mw, err := NewCORSMiddleware(&cfg)
	require.NoError(t, err)
	assert.NotNil(t, mw)
}
