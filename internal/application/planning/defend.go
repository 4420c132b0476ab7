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

// DefendArmy keeps villages fed and garrisoned: troops train before
// economy, and villages with incoming attacks raise their wall first.
type DefendArmy struct {
	core
}

func NewDefendArmy(calc *construction.Calculator, opts Options) *DefendArmy {
	return &DefendArmy{core: core{calc: calc, opts: opts.withDefaults()}}
}

func (s *DefendArmy) Name() string {
	return StrategyDefendArmy
}

func (s *DefendArmy) Plan(ctx context.Context, state *game.State, now time.Time) []*jobs.Job {
	var out []*jobs.Job

	globalKind, hasGlobal := globalPriorityKind(state)

	for _, v := range state.Villages {
		out = append(out, s.planVillage(ctx, state, v, globalKind, hasGlobal, now)...)
	}

	out = append(out, s.heroJobs(state, now)...)
	out = append(out, s.sweepJobs(state, now)...)
	return out
}

func (s *DefendArmy) planVillage(ctx context.Context, state *game.State, v *village.Village, globalKind resources.Kind, hasGlobal bool, now time.Time) []*jobs.Job {
	canInside := v.Queue.CanBuildInside(now)
	canOutside := v.Queue.CanBuildOutside(now)
	if !canInside && !canOutside {
		return nil
	}

	var out []*jobs.Job

	// Troops come first; training shares no construction slot, so it never
	// competes with the build plan below.
	if job := s.trainPlan(v, now); job != nil {
		out = append(out, job)
	}

	var primary *buildPlan
	if canOutside && s.starving(v) {
		primary = s.cropPlan(v)
	}
	if primary == nil && canInside && v.IsUnderAttack {
		primary = s.wallPlan(v)
	}
	if primary == nil && canInside {
		primary = s.storagePlan(v)
	}
	if primary == nil && canOutside {
		primary = s.economyPlan(v, globalKind, hasGlobal)
	}

	if primary != nil {
		if job, err := s.scheduleBuild(ctx, state, v, primary, now); err == nil {
			out = append(out, job)
		}
	}
	return out
}

// wallPlan raises the tribe's wall by one level, building it fresh when the
// village has none.
func (s *DefendArmy) wallPlan(v *village.Village) *buildPlan {
	kind := wallKind(v.Tribe)

	if b, ok := v.FindBuilding(kind); ok {
		if b.Level >= kind.MaxLevel() {
			return nil
		}
		return &buildPlan{slotID: b.ID, kind: kind, targetLevel: b.Level + 1}
	}

	// The wall has a dedicated slot right after the regular center range.
	const wallSlot = 40
	return &buildPlan{slotID: wallSlot, kind: kind, targetLevel: 1, isNew: true}
}

func wallKind(tribe village.Tribe) village.BuildingKind {
	switch tribe {
	case village.Romans:
		return village.CityWall
	case village.Teutons:
		return village.EarthWall
	default:
		return village.Palisade
	}
}
