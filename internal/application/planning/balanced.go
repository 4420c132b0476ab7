package planning

import (
	"context"
	"time"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// BalancedEconomicGrowth grows all four resource branches evenly, keeps the
// storage buildings ahead of production, and spends idle capacity on base
// troops and hero upkeep.
type BalancedEconomicGrowth struct {
	core
}

func NewBalancedEconomicGrowth(calc *construction.Calculator, opts Options) *BalancedEconomicGrowth {
	return &BalancedEconomicGrowth{core: core{calc: calc, opts: opts.withDefaults()}}
}

func (s *BalancedEconomicGrowth) Name() string {
	return StrategyBalancedEconomicGrowth
}

func (s *BalancedEconomicGrowth) Plan(ctx context.Context, state *game.State, now time.Time) []*jobs.Job {
	var out []*jobs.Job

	globalKind, hasGlobal := globalPriorityKind(state)

	for _, v := range state.Villages {
		out = append(out, s.planVillage(ctx, state, v, globalKind, hasGlobal, now)...)
	}

	out = append(out, s.heroJobs(state, now)...)
	out = append(out, s.sweepJobs(state, now)...)
	return out
}

// planVillage yields at most one job per construction slot plus possibly a
// training job, in priority order: settlers, starvation, storage, economy,
// training. Parallel-building tribes may get a second build targeting the
// other slot.
func (s *BalancedEconomicGrowth) planVillage(ctx context.Context, state *game.State, v *village.Village, globalKind resources.Kind, hasGlobal bool, now time.Time) []*jobs.Job {
	canInside := v.Queue.CanBuildInside(now)
	canOutside := v.Queue.CanBuildOutside(now)
	if !canInside && !canOutside {
		return nil
	}

	if v.TroopCount("Settlers") >= 3 {
		return []*jobs.Job{s.foundVillageJob(v, now)}
	}

	var primary *buildPlan
	if canOutside && s.starving(v) {
		primary = s.cropPlan(v)
	}
	if primary == nil && canInside {
		primary = s.storagePlan(v)
	}
	if primary == nil && canOutside {
		primary = s.economyPlan(v, globalKind, hasGlobal)
	}

	if primary == nil {
		if job := s.trainPlan(v, now); job != nil {
			return []*jobs.Job{job}
		}
		return nil
	}

	var out []*jobs.Job
	if job, err := s.scheduleBuild(ctx, state, v, primary, now); err == nil {
		out = append(out, job)
	}

	if v.Tribe.ParallelBuildingAllowed() {
		if secondary := s.secondaryPlan(v, primary, globalKind, hasGlobal, now); secondary != nil {
			if job, err := s.scheduleBuild(ctx, state, v, secondary, now); err == nil {
				out = append(out, job)
			}
		}
	}
	return out
}

// secondaryPlan fills the slot the primary plan left free, for tribes that
// build inside and outside concurrently.
func (s *BalancedEconomicGrowth) secondaryPlan(v *village.Village, primary *buildPlan, globalKind resources.Kind, hasGlobal bool, now time.Time) *buildPlan {
	switch primary.queueKey() {
	case village.QueueOutside:
		if !v.Queue.CanBuildInside(now) {
			return nil
		}
		return s.storagePlan(v)
	default:
		if !v.Queue.CanBuildOutside(now) {
			return nil
		}
		plan := s.economyPlan(v, globalKind, hasGlobal)
		if plan != nil && plan.queueKey() == primary.queueKey() {
			return nil
		}
		return plan
	}
}
