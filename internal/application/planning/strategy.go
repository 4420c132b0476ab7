package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
)

// Strategy names accepted by the configuration surface.
const (
	StrategyBalancedEconomicGrowth = "balanced_economic_growth"
	StrategyDefendArmy             = "defend_army"
)

// dispersionGate is the relative spread below which the account has no
// global resource preference.
const dispersionGate = 0.1

// Options are the policy knobs a strategy consumes. Zero values are replaced
// by the documented defaults.
type Options struct {
	MinimumStorageCapacityInHours int
	DailyQuestThreshold           int
	MinimalHealth                 int

	AttributesRatio map[hero.Attribute]int
	AttributesSteps map[hero.Attribute]int

	// MaxScheduleDelay caps how far into the future a resource-starved
	// build may be pushed.
	MaxScheduleDelay time.Duration
	// TrainCooldown is the minimum gap between two training jobs in the
	// same village.
	TrainCooldown time.Duration
}

func (o Options) withDefaults() Options {
	if o.MinimumStorageCapacityInHours == 0 {
		o.MinimumStorageCapacityInHours = 24
	}
	if o.DailyQuestThreshold == 0 {
		o.DailyQuestThreshold = 50
	}
	if o.MinimalHealth == 0 {
		o.MinimalHealth = 50
	}
	if o.MaxScheduleDelay == 0 {
		o.MaxScheduleDelay = 48 * time.Hour
	}
	if o.TrainCooldown == 0 {
		o.TrainCooldown = 15 * time.Minute
	}
	return o
}

// Strategy turns one observed GameState into the jobs worth scheduling this
// pass. Implementations are deterministic: equal states produce equal job
// sequences, job ids aside.
type Strategy interface {
	Name() string
	Plan(ctx context.Context, state *game.State, now time.Time) []*jobs.Job
}

// ByName resolves a configured strategy name.
func ByName(name string, calc *construction.Calculator, opts Options) (Strategy, error) {
	switch name {
	case StrategyBalancedEconomicGrowth, "":
		return NewBalancedEconomicGrowth(calc, opts), nil
	case StrategyDefendArmy:
		return NewDefendArmy(calc, opts), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
