// Package config provides configuration management for the racemarks application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring" validate:"required"`
	Stats    StatsConfig    `mapstructure:"stats" validate:"required"`
	History  HistoryConfig  `mapstructure:"history" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Backtest BacktestConfig `mapstructure:"backtest"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ScoringConfig holds the scoring thresholds
type ScoringConfig struct {
	MinProbability    float64          `mapstructure:"min_probability" validate:"gte=0,lt=1"`
	MaxProbability    float64          `mapstructure:"max_probability" validate:"gt=0,lte=1"`
	UnknownPopularity float64          `mapstructure:"unknown_popularity" validate:"gt=0"`
	Divergence        DivergenceConfig `mapstructure:"divergence"`
	Composite         CompositeConfig  `mapstructure:"composite"`
	Confidence        ConfidenceConfig `mapstructure:"confidence"`
}

// DivergenceConfig holds the divergence class boundaries
type DivergenceConfig struct {
	StrongUndervalued float64 `mapstructure:"strong_undervalued"`
	Undervalued       float64 `mapstructure:"undervalued"`
	Overvalued        float64 `mapstructure:"overvalued"`
	StrongOvervalued  float64 `mapstructure:"strong_overvalued"`
}

// CompositeConfig holds the composite score weights
type CompositeConfig struct {
	ProbabilityWeight float64 `mapstructure:"probability_weight" validate:"gte=0"`
	DivergenceWeight  float64 `mapstructure:"divergence_weight" validate:"gte=0"`
	DivergenceScale   float64 `mapstructure:"divergence_scale" validate:"gte=0"`
}

// ConfidenceConfig holds the confidence tier thresholds
type ConfidenceConfig struct {
	SMaxPopularity      float64 `mapstructure:"s_max_popularity"`
	SMaxRecentAvg       float64 `mapstructure:"s_max_recent_avg"`
	SMaxRecentStd       float64 `mapstructure:"s_max_recent_std"`
	AFairBand           float64 `mapstructure:"a_fair_band" validate:"gte=0"`
	ALongshotPopularity float64 `mapstructure:"a_longshot_popularity"`
	ALongshotDivergence float64 `mapstructure:"a_longshot_divergence"`
	AMinProbability     float64 `mapstructure:"a_min_probability"`
	BMinDivergence      float64 `mapstructure:"b_min_divergence"`
}

// StatsConfig controls how aggregate tables are rebuilt
type StatsConfig struct {
	RefreshSchedule string `mapstructure:"refresh_schedule" validate:"required,cron"`
	LookbackDays    int    `mapstructure:"lookback_days" validate:"required,gt=0"`
	MinSamples      int    `mapstructure:"min_samples" validate:"required,gt=0"`
}

// HistoryConfig controls past-result lookups
type HistoryConfig struct {
	Limit           int `mapstructure:"limit" validate:"required,gt=0,lte=5"`
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxItems   int `mapstructure:"cache_max_items" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate string  `mapstructure:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string  `mapstructure:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Stake     float64 `mapstructure:"stake" validate:"gte=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CacheTTL returns the history cache TTL
func (h HistoryConfig) CacheTTL() time.Duration {
	return time.Duration(h.CacheTTLSeconds) * time.Second
}
