package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/travian-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect the effective configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (TRAVIAN_* prefix)
2. Config file (config.yaml, discovered or via --config / CONFIG_PATH)
3. Default values

Example:
  travian config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the effective configuration after defaults and environment
overrides. The password is masked.

Example:
  travian config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: failed to load config: %v\n", err)
				fmt.Println("Showing default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			fmt.Println("Travian Agent Configuration")
			fmt.Println("===========================")

			fmt.Println("Driver:")
			fmt.Printf("  Server URL:  %s\n", cfg.Driver.ServerURL)
			fmt.Printf("  Login:       %s\n", cfg.Driver.UserLogin)
			fmt.Printf("  Password:    %s\n", mask(cfg.Driver.UserPassword))
			fmt.Printf("  Headless:    %t\n", cfg.Driver.Headless)

			fmt.Println("Game:")
			fmt.Printf("  Speed:               %dx\n", cfg.Game.Speed)
			fmt.Printf("  Strategy:            %s\n", cfg.Game.Strategy)
			fmt.Printf("  Storage horizon:     %dh\n", cfg.Game.MinimumStorageCapacityInHours)
			fmt.Printf("  Daily quest thresh.: %d%%\n", cfg.Game.DailyQuestThreshold)
			fmt.Printf("  Max schedule delay:  %s\n", cfg.Game.MaxScheduleDelay)
			fmt.Printf("  Exit horizon:        %s\n", cfg.Game.ExitHorizon)

			fmt.Println("Hero:")
			fmt.Printf("  Minimal health:      %d%%\n", cfg.Hero.Adventures.MinimalHealth)
			fmt.Printf("  Support villages:    %t\n", cfg.Hero.Resources.SupportVillages)
			if len(cfg.Hero.Resources.AttributesRatio) > 0 {
				fmt.Printf("  Attributes ratio:    %v\n", cfg.Hero.Resources.AttributesRatio)
			}
			if len(cfg.Hero.Resources.AttributesSteps) > 0 {
				fmt.Printf("  Attributes steps:    %v\n", cfg.Hero.Resources.AttributesSteps)
			}

			fmt.Println("Database:")
			fmt.Printf("  Type:        %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:        %s\n", cfg.Database.Path)
			} else {
				fmt.Printf("  Host:        %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Name:        %s\n", cfg.Database.Name)
			}

			fmt.Println("Metrics:")
			fmt.Printf("  Enabled:     %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Listen:      %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Println("Logging:")
			fmt.Printf("  Level:       %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func mask(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "********"
}
