// Package config provides configuration management for the racemarks application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "RACEMARKS"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration, tolerating a missing file
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	v.SetDefault("app.name", "racemarks")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setEngineDefaults(v)
	return v
}

// setEngineDefaults registers the scoring, stats and history defaults. Both
// loaders use them so an omitted section still yields working thresholds.
func setEngineDefaults(v *viper.Viper) {
	v.SetDefault("scoring.min_probability", 0.01)
	v.SetDefault("scoring.max_probability", 0.95)
	v.SetDefault("scoring.unknown_popularity", 99)
	v.SetDefault("scoring.divergence.strong_undervalued", 0.10)
	v.SetDefault("scoring.divergence.undervalued", 0.05)
	v.SetDefault("scoring.divergence.overvalued", -0.05)
	v.SetDefault("scoring.divergence.strong_overvalued", -0.10)
	v.SetDefault("scoring.composite.probability_weight", 0.6)
	v.SetDefault("scoring.composite.divergence_weight", 0.4)
	v.SetDefault("scoring.composite.divergence_scale", 2)
	v.SetDefault("scoring.confidence.s_max_popularity", 2)
	v.SetDefault("scoring.confidence.s_max_recent_avg", 3)
	v.SetDefault("scoring.confidence.s_max_recent_std", 2)
	v.SetDefault("scoring.confidence.a_fair_band", 0.05)
	v.SetDefault("scoring.confidence.a_longshot_popularity", 5)
	v.SetDefault("scoring.confidence.a_longshot_divergence", 0.08)
	v.SetDefault("scoring.confidence.a_min_probability", 0.2)
	v.SetDefault("scoring.confidence.b_min_divergence", 0.05)

	v.SetDefault("stats.refresh_schedule", "0 5 * * *")
	v.SetDefault("stats.lookback_days", 730)
	v.SetDefault("stats.min_samples", 10)

	v.SetDefault("history.limit", 5)
	v.SetDefault("history.cache_ttl_seconds", 900)
	v.SetDefault("history.cache_max_items", 50000)

	v.SetDefault("backtest.stake", 100)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
