package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/fernwood-labs/donorpulse/internal/config"
	"github.com/fernwood-labs/donorpulse/internal/lifecycle"
	"github.com/fernwood-labs/donorpulse/internal/model"
	"github.com/fernwood-labs/donorpulse/internal/service"
	"github.com/fernwood-labs/donorpulse/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/donorpulse/donorpulse.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// engineConfig assembles the evaluation configuration from viper settings.
// Validation happens in the engine constructor.
func engineConfig() lifecycle.Config {
	cfg := lifecycle.DefaultConfig()
	if v := viper.GetString("engine.risk_threshold"); v != "" {
		cfg.RiskThreshold = model.RiskTier(v)
	}
	if v := viper.GetInt("engine.roster_cap"); v > 0 {
		cfg.RosterCap = v
	}
	if v := viper.GetFloat64("engine.major_gift_threshold"); v > 0 {
		cfg.MajorGiftThreshold = v
	}
	if v := viper.GetInt("engine.cohort_lookback_years"); v > 0 {
		cfg.CohortLookbackYears = v
	}
	return cfg
}

// parseAsOf resolves the evaluation instant: an explicit --as-of date, or
// the wall clock sampled here, at the orchestration boundary, so that the
// engine itself stays deterministic.
func parseAsOf(asOf string) (time.Time, error) {
	if asOf == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", asOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD): %w", asOf, err)
	}
	return t, nil
}
