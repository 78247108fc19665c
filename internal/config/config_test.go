// Package config provides configuration management for the racemarks application.
package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	testAppName                  = "test-app"
	testDBPassword               = "TEST_DB_PASSWORD"
	expandedSecretValue          = "expanded_secret_value"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.App.Name != "racemarks" {
		t.Errorf("expected app name 'racemarks', got '%s'", cfg.App.Name)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
	}
	assert.Equal(t, "30 4 * * *", cfg.Stats.RefreshSchedule)
	assert.Equal(t, 20, cfg.Stats.MinSamples)
	assert.InDelta(t, 0.10, cfg.Scoring.Divergence.StrongUndervalued, 1e-9)
	assert.InDelta(t, 0.6, cfg.Scoring.Composite.ProbabilityWeight, 1e-9)
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("RACEMARKS_APP_NAME", testAppName)

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests ${VAR} expansion in the file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testDBPassword, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)
	assert.Equal(t, expandedSecretValue, cfg.Database.Password)
}

// TestLoadAppliesEngineDefaults tests that omitted scoring sections get defaults
func TestLoadAppliesEngineDefaults(t *testing.T) {
	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)

	assert.InDelta(t, 0.95, cfg.Scoring.MaxProbability, 1e-9)
	assert.InDelta(t, -0.10, cfg.Scoring.Divergence.StrongOvervalued, 1e-9)
	assert.InDelta(t, 99, cfg.Scoring.UnknownPopularity, 1e-9)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.Equal(t, "0 5 * * *", cfg.Stats.RefreshSchedule)
	require.NoError(t, Validate(cfg))
}

// TestLoadWithDefaultsMissingFile tests that a missing file falls back to defaults
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "racemarks", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Metrics.Enabled)
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		shouldHave string
	}{
		{
			name:       "invalid environment",
			mutate:     func(c *Config) { c.App.Environment = "invalid" },
			shouldHave: "Environment",
		},
		{
			name:       "invalid log level",
			mutate:     func(c *Config) { c.App.LogLevel = "trace" },
			shouldHave: "LogLevel",
		},
		{
			name:       "invalid cron schedule",
			mutate:     func(c *Config) { c.Stats.RefreshSchedule = "every morning" },
			shouldHave: "cron",
		},
		{
			name:       "history limit above five",
			mutate:     func(c *Config) { c.History.Limit = 6 },
			shouldHave: "Limit",
		},
		{
			name:       "inverted backtest range",
			mutate:     func(c *Config) { c.Backtest.StartDate, c.Backtest.EndDate = "2024-12-31", "2024-01-01" },
			shouldHave: "start_date must be before end_date",
		},
		{
			name:       "production without ssl",
			mutate:     func(c *Config) { c.App.Environment = "production" },
			shouldHave: "SSL",
		},
		{
			name:       "idle connections above max",
			mutate:     func(c *Config) { c.Database.MaxIdleConnections = 50 },
			shouldHave: "max_idle_connections",
		},
		{
			name:       "inverted probability bounds",
			mutate:     func(c *Config) { c.Scoring.MinProbability = 0.5; c.Scoring.MaxProbability = 0.4 },
			shouldHave: "min_probability",
		},
		{
			name:       "unordered divergence thresholds",
			mutate:     func(c *Config) { c.Scoring.Divergence.Undervalued = 0.2 },
			shouldHave: "descending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(validConfigPath)
			require.NoError(t, err)

			tt.mutate(cfg)
			err = Validate(cfg)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.shouldHave), "expected %q in %v", tt.shouldHave, err)
		})
	}
}

// TestGetDatabaseDSN tests DSN generation
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	dsn := cfg.GetDatabaseDSN()
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Errorf("expected DSN to start with 'postgres://', got '%s'", dsn)
	}
	assert.Contains(t, dsn, "sslmode=disable")
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}

func TestParseSecretData(t *testing.T) {
	secret := `{"database_password":"s3cret","database_user":"scorer"}`
	cfg := &Config{Database: DatabaseConfig{User: "racemarks", Password: "old"}}

	secrets, err := parseSecretData(secretOutput(secret))
	require.NoError(t, err)
	overlaySecretsOnConfig(cfg, secrets)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "scorer", cfg.Database.User)

	_, err = parseSecretData(secretOutput(""))
	assert.Error(t, err)
}
