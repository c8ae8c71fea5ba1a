package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, []string{"coingecko", "cryptocompare", "coincap"}, cfg.Providers.Order)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 9090
refresh:
  interval: 30s
providers:
  order: [coincap, coingecko]
webhook:
  enabled: true
  url: http://localhost:8000/hook
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, []string{"coincap", "coingecko"}, cfg.Providers.Order)
	assert.True(t, cfg.Webhook.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path, "defaults fill unset fields")

	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"interval too short", func(c *Config) { c.Refresh.Interval = 100 * time.Millisecond }},
		{"unknown provider", func(c *Config) { c.Providers.Order = []string{"binance"} }},
		{"webhook without url", func(c *Config) { c.Webhook.Enabled = true }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
