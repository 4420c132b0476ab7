package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Game defaults
	if cfg.Game.Speed == 0 {
		cfg.Game.Speed = 1
	}
	if cfg.Game.Strategy == "" {
		cfg.Game.Strategy = "balanced_economic_growth"
	}
	if cfg.Game.MinimumStorageCapacityInHours == 0 {
		cfg.Game.MinimumStorageCapacityInHours = 24
	}
	if cfg.Game.DailyQuestThreshold == 0 {
		cfg.Game.DailyQuestThreshold = 50
	}
	if cfg.Game.MaxScheduleDelay == 0 {
		cfg.Game.MaxScheduleDelay = 48 * time.Hour
	}
	if cfg.Game.MaxPollInterval == 0 {
		cfg.Game.MaxPollInterval = time.Minute
	}
	if cfg.Game.ExitHorizon == 0 {
		cfg.Game.ExitHorizon = 12 * time.Hour
	}

	// Hero defaults
	if cfg.Hero.Adventures.MinimalHealth == 0 {
		cfg.Hero.Adventures.MinimalHealth = 50
	}

	// Driver defaults
	// Headless defaults to false so a fresh setup can watch the login.

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "travian.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "travian"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "travian"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9190
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
