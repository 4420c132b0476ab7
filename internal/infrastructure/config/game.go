package config

import "time"

// GameConfig holds planner and scheduler tuning.
type GameConfig struct {
	// Speed is the server tick speed multiplier (1x, 2x, 3x servers).
	Speed int `mapstructure:"speed" validate:"min=1"`

	// Strategy selects the planning strategy.
	Strategy string `mapstructure:"strategy" validate:"omitempty,oneof=balanced_economic_growth defend_army"`

	// MinimumStorageCapacityInHours is the storage-guard horizon: a
	// warehouse or granary filling sooner than this triggers an upgrade.
	MinimumStorageCapacityInHours int `mapstructure:"minimum_storage_capacity_in_hours" validate:"min=1"`

	// DailyQuestThreshold is the minimum completion percentage before the
	// daily-quest reward is collected.
	DailyQuestThreshold int `mapstructure:"daily_quest_threshold" validate:"min=0,max=100"`

	// MaxScheduleDelay caps how far into the future a resource-starved
	// build may be scheduled.
	MaxScheduleDelay time.Duration `mapstructure:"max_schedule_delay"`

	// MaxPollInterval bounds the scheduler's sleep between passes.
	MaxPollInterval time.Duration `mapstructure:"max_poll_interval"`

	// ExitHorizon is the completion distance beyond which an idle agent
	// exits cleanly instead of polling forever.
	ExitHorizon time.Duration `mapstructure:"exit_horizon"`
}
