package cli

import (
	"fmt"

	"github.com/andrescamacho/travian-go/internal/adapters/browser"
	"github.com/andrescamacho/travian-go/internal/adapters/scanner"
	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/application/observe"
	"github.com/andrescamacho/travian-go/internal/application/planning"
	"github.com/andrescamacho/travian-go/internal/application/scheduler"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/infrastructure/config"
)

// attributeByKey maps config attribute keys onto domain attributes.
var attributeByKey = map[string]hero.Attribute{
	"fighting-strength": hero.FightingStrength,
	"off-bonus":         hero.OffBonus,
	"def-bonus":         hero.DefBonus,
	"production-points": hero.ProductionPoints,
}

func attributeMap(m map[string]int) map[hero.Attribute]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[hero.Attribute]int, len(m))
	for key, value := range m {
		if attr, ok := attributeByKey[key]; ok {
			out[attr] = value
		}
	}
	return out
}

func planningOptions(cfg *config.Config) planning.Options {
	return planning.Options{
		MinimumStorageCapacityInHours: cfg.Game.MinimumStorageCapacityInHours,
		DailyQuestThreshold:           cfg.Game.DailyQuestThreshold,
		MinimalHealth:                 cfg.Hero.Adventures.MinimalHealth,
		AttributesRatio:               attributeMap(cfg.Hero.Resources.AttributesRatio),
		AttributesSteps:               attributeMap(cfg.Hero.Resources.AttributesSteps),
		MaxScheduleDelay:              cfg.Game.MaxScheduleDelay,
	}
}

func newLogger(cfg *config.Config) common.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = common.LevelDebug
	}
	return common.NewStdoutLogger(level)
}

// newExecutor wires the loop from config: browser factory, scanner,
// observer, strategy, clock.
func newExecutor(cfg *config.Config) (*scheduler.Executor, error) {
	strategy, err := planning.ByName(cfg.Game.Strategy, construction.NewCalculator(), planningOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("resolving strategy: %w", err)
	}

	factory := browser.NewFactory(browser.Options{
		ServerURL: cfg.Driver.ServerURL,
		Login:     cfg.Driver.UserLogin,
		Password:  cfg.Driver.UserPassword,
		Headless:  cfg.Driver.Headless,
	})
	htmlScanner := scanner.New()
	clock := shared.NewRealClock()

	return scheduler.NewExecutor(
		factory,
		htmlScanner,
		observe.NewObserver(htmlScanner, clock),
		strategy,
		clock,
		scheduler.Config{
			MaxPollInterval: cfg.Game.MaxPollInterval,
			ExitHorizon:     cfg.Game.ExitHorizon,
		},
	), nil
}
