package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/usmankz/coinsight/internal/core"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RefreshConfig controls the scheduler.
type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// ProvidersConfig controls the quote provider chain. Order lists provider
// names in attempt order; base URL overrides exist for testing against
// recorded responses.
type ProvidersConfig struct {
	Order            []string `mapstructure:"order"`
	CoinGeckoAPIKey  string   `mapstructure:"coingecko_api_key"`
	CoinGeckoURL     string   `mapstructure:"coingecko_url"`
	CryptoCompareURL string   `mapstructure:"cryptocompare_url"`
	CoinCapURL       string   `mapstructure:"coincap_url"`
}

type RatesConfig struct {
	URL string `mapstructure:"url"`
}

// WebhookConfig configures the optional refresh webhook listener.
type WebhookConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Refresh.Interval == 0 {
		cfg.Refresh.Interval = 60 * time.Second
	}
	if len(cfg.Providers.Order) == 0 {
		cfg.Providers.Order = []string{"coingecko", "cryptocompare", "coincap"}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

var knownProviders = map[string]struct{}{
	"coingecko":     {},
	"cryptocompare": {},
	"coincap":       {},
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if c.Refresh.Interval < time.Second {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("refresh interval %s too short", c.Refresh.Interval))
	}
	for _, name := range c.Providers.Order {
		if _, ok := knownProviders[name]; !ok {
			return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown provider %q", name))
		}
	}
	if c.Webhook.Enabled && c.Webhook.URL == "" {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("webhook enabled but url empty"))
	}
	return nil
}
