package lifecycle

import (
	"fmt"

	"github.com/fernwood-labs/donorpulse/internal/common"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

// Config holds the tunable parameters of an evaluation run. Invalid values
// are programmer errors and are rejected at construction rather than being
// silently replaced with defaults.
type Config struct {
	RiskThreshold       model.RiskTier
	RosterCap           int
	MajorGiftThreshold  float64
	CohortLookbackYears int
}

// DefaultConfig returns the reference configuration: medium threshold,
// roster capped at 100, major gifts at 5000, three acquisition-year cohorts
// including the current year.
func DefaultConfig() Config {
	return Config{
		RiskThreshold:       model.RiskMedium,
		RosterCap:           100,
		MajorGiftThreshold:  DefaultMajorGiftThreshold,
		CohortLookbackYears: 3,
	}
}

// Validate rejects configurations outside the defined domain.
func (c Config) Validate() error {
	if !c.RiskThreshold.Valid() {
		return fmt.Errorf("%w: risk threshold %q is not one of low, medium, high, critical",
			common.ErrInvalidConfig, c.RiskThreshold)
	}
	if c.RosterCap <= 0 {
		return fmt.Errorf("%w: roster cap must be positive, got %d",
			common.ErrInvalidConfig, c.RosterCap)
	}
	if c.MajorGiftThreshold <= 0 {
		return fmt.Errorf("%w: major gift threshold must be positive, got %g",
			common.ErrInvalidConfig, c.MajorGiftThreshold)
	}
	if c.CohortLookbackYears <= 0 {
		return fmt.Errorf("%w: cohort lookback must be positive, got %d",
			common.ErrInvalidConfig, c.CohortLookbackYears)
	}
	return nil
}
