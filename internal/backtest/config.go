package backtest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/racemarks/internal/config"
)

const dateLayout = "2006-01-02"

// BacktestConfig holds the replay window and the flat stake per bet
type BacktestConfig struct {
	StartDate time.Time
	EndDate   time.Time
	Stake     decimal.Decimal
}

// FromConfig converts app config to backtest config. Non-empty overrides
// replace the configured dates.
func FromConfig(cfg *config.BacktestConfig, startOverride, endOverride string) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}

	startRaw, endRaw := cfg.StartDate, cfg.EndDate
	if startOverride != "" {
		startRaw = startOverride
	}
	if endOverride != "" {
		endRaw = endOverride
	}

	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid end date: %w", err)
	}

	bt := BacktestConfig{
		StartDate: start,
		EndDate:   end,
		Stake:     decimal.NewFromFloat(cfg.Stake),
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if b.StartDate.After(b.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if !b.Stake.IsPositive() {
		return fmt.Errorf("stake must be positive")
	}
	return nil
}
