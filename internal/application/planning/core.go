package planning

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
	"github.com/andrescamacho/travian-go/pkg/utils"
)

// buildPlan is an intermediate decision: which slot to touch, before cost
// and scheduling are resolved.
type buildPlan struct {
	slotID      int
	kind        village.BuildingKind
	targetLevel int
	isNew       bool
}

func (p *buildPlan) queueKey() village.QueueKey {
	return p.kind.QueueKey()
}

// core holds the planning machinery shared by the concrete strategies.
type core struct {
	calc *construction.Calculator
	opts Options
}

// globalPriorityKind projects the account-wide stocks (villages plus hero)
// and returns the scarcest kind, unless the spread is too small to matter.
func globalPriorityKind(state *game.State) (resources.Kind, bool) {
	total := state.GlobalResources()
	maxC := total.Max()
	if maxC == 0 {
		return 0, false
	}
	if float64(maxC-total.Min())/float64(maxC) < dispersionGate {
		return 0, false
	}
	return total.MinKind(), true
}

// starving reports whether the village's free crop margin is below 10% of
// its crop production.
func (c *core) starving(v *village.Village) bool {
	rate := v.HourlyProduction.Crop
	if rate <= 0 {
		return v.FreeCrop <= 0
	}
	return float64(v.FreeCrop)/float64(rate) < 0.1
}

// cropPlan upgrades the lowest-level upgradable crop pit.
func (c *core) cropPlan(v *village.Village) *buildPlan {
	return lowestPitPlan(v.UpgradablePits(resources.Crop))
}

// economyPlan upgrades a resource pit: the globally scarcest kind when one
// is upgradable, otherwise the lowest-level pit overall.
func (c *core) economyPlan(v *village.Village, globalKind resources.Kind, hasGlobal bool) *buildPlan {
	if hasGlobal {
		if plan := lowestPitPlan(v.UpgradablePits(globalKind)); plan != nil {
			return plan
		}
	}
	return lowestPitPlan(v.UpgradablePits(0))
}

// lowestPitPlan picks the lowest-level pit; ties resolve to the lower slot
// id because pits arrive in slot order.
func lowestPitPlan(pits []village.ResourcePit) *buildPlan {
	if len(pits) == 0 {
		return nil
	}
	best := pits[0]
	for _, pit := range pits[1:] {
		if pit.Level < best.Level {
			best = pit
		}
	}
	return &buildPlan{
		slotID:      best.ID,
		kind:        village.BuildingKind(best.Kind),
		targetLevel: best.Level + 1,
	}
}

// storagePlan upgrades whichever storage building fills within the
// configured horizon, preferring the one that fills sooner. An equal fill
// time falls back to the smaller capacity-per-day ratio. A missing storage
// building becomes a new-construction plan on the first free center slot.
func (c *core) storagePlan(v *village.Village) *buildPlan {
	horizon := float64(c.opts.MinimumStorageCapacityInHours)

	whHours := v.HoursUntilWarehouseFull()
	grHours := v.HoursUntilGranaryFull()
	whUrgent := whHours >= 0 && whHours < horizon
	grUrgent := grHours >= 0 && grHours < horizon

	var kind village.BuildingKind
	switch {
	case whUrgent && grUrgent:
		switch {
		case whHours < grHours:
			kind = village.Warehouse
		case grHours < whHours:
			kind = village.Granary
		case c.warehouseRatio(v) <= c.granaryRatio(v):
			kind = village.Warehouse
		default:
			kind = village.Granary
		}
	case whUrgent:
		kind = village.Warehouse
	case grUrgent:
		kind = village.Granary
	default:
		return nil
	}

	if b, ok := v.FindBuilding(kind); ok {
		if b.Level >= kind.MaxLevel() {
			return nil
		}
		return &buildPlan{slotID: b.ID, kind: kind, targetLevel: b.Level + 1}
	}

	slot, ok := v.FreeCenterSlot()
	if !ok {
		return nil
	}
	return &buildPlan{slotID: slot, kind: kind, targetLevel: 1, isNew: true}
}

func (c *core) warehouseRatio(v *village.Village) float64 {
	rate := max(v.HourlyProduction.Lumber, max(v.HourlyProduction.Clay, v.HourlyProduction.Iron))
	if rate <= 0 {
		return math.Inf(1)
	}
	return float64(v.WarehouseCapacity) / float64(24*rate)
}

func (c *core) granaryRatio(v *village.Village) float64 {
	if v.HourlyProduction.Crop <= 0 {
		return math.Inf(1)
	}
	return float64(v.GranaryCapacity) / float64(24*v.HourlyProduction.Crop)
}

// scheduleBuild resolves a plan's cost, asks the hero to cover any
// shortage, computes the schedule offset, and freezes the slot when the job
// cannot run immediately. An infeasible plan yields a
// shared.InfeasiblePlanError and no job.
func (c *core) scheduleBuild(ctx context.Context, state *game.State, v *village.Village, plan *buildPlan, now time.Time) (*jobs.Job, error) {
	logger := common.LoggerFromContext(ctx)

	mbLevel := 0
	if mb, ok := v.FindBuilding(village.MainBuilding); ok {
		mbLevel = mb.Level
	}
	cost := c.calc.Cost(plan.kind, plan.targetLevel, mbLevel, state.Account.ServerSpeed)

	shortage := cost.Resources.SubFloor(v.Resources)
	support := resources.Zero
	if !shortage.IsZero() && state.Hero != nil {
		if resp := state.Hero.SendRequest(shortage); resp.Status != hero.Rejected {
			support = resp.Provided
		}
	}
	remaining := shortage.SubFloor(support)

	kind := jobs.KindBuild
	if plan.isNew {
		kind = jobs.KindBuildNew
	}
	id := utils.GenerateJobID(string(kind), v.ID)
	queueKey := plan.queueKey()

	scheduled := now
	var freezeUntil time.Time
	if !remaining.IsZero() {
		hours := remaining.HoursToCover(v.HourlyProduction)
		if math.IsInf(hours, 1) {
			logger.Log(common.LevelInfo, "build plan infeasible, no production for missing kind",
				map[string]interface{}{"village": v.ID, "target": plan.kind.Name(), "missing": remaining.String()})
			return nil, shared.NewInfeasiblePlanError(v.ID,
				fmt.Sprintf("%s needs %s but the village produces none of it", plan.kind.Name(), remaining.String()))
		}
		delay := time.Duration(math.Ceil(hours*3600)) * time.Second
		if delay > c.opts.MaxScheduleDelay {
			delay = c.opts.MaxScheduleDelay
		}
		scheduled = now.Add(delay)
		freezeUntil = scheduled.Add(time.Duration(cost.Seconds) * time.Second)
		v.Queue.FreezeUntil(freezeUntil, queueKey, id)
	}

	job := &jobs.Job{
		ID:              id,
		Kind:            kind,
		Status:          jobs.StatusPending,
		ScheduledTime:   scheduled,
		DurationSeconds: cost.Seconds,
		VillageID:       v.ID,
		QueueKey:        queueKey,
		FreezeUntil:     freezeUntil,
	}
	if plan.isNew {
		job.BuildNew = &jobs.BuildNewPayload{
			SlotID:      plan.slotID,
			BuildingGid: plan.kind.Gid(),
			TargetName:  plan.kind.Name(),
		}
	} else {
		job.Build = &jobs.BuildPayload{
			SlotID:      plan.slotID,
			BuildingGid: plan.kind.Gid(),
			TargetName:  plan.kind.Name(),
			TargetLevel: plan.targetLevel,
			Support:     support,
		}
	}
	return job, nil
}

// trainPlan queues base infantry when the training cooldown elapsed and the
// stocks afford at least one unit.
func (c *core) trainPlan(v *village.Village, now time.Time) *jobs.Job {
	barracks, ok := v.FindBuilding(village.Barracks)
	if !ok || barracks.Level == 0 {
		return nil
	}
	if v.LastTrainTime != nil && now.Sub(*v.LastTrainTime) < c.opts.TrainCooldown {
		return nil
	}

	unit, ok := baseInfantry(v.Tribe)
	if !ok {
		return nil
	}
	quantity := v.Resources.Fits(unit.Cost)
	if quantity <= 0 || quantity == math.MaxInt {
		return nil
	}

	return &jobs.Job{
		ID:            utils.GenerateJobID(string(jobs.KindTrain), v.ID),
		Kind:          jobs.KindTrain,
		Status:        jobs.StatusPending,
		ScheduledTime: now,
		VillageID:     v.ID,
		Train: &jobs.TrainPayload{
			MilitaryBuildingID: barracks.ID,
			TroopTypeID:        unit.TroopTypeID,
			Quantity:           quantity,
		},
	}
}

// foundVillageJob dispatches the settler emigration flow.
func (c *core) foundVillageJob(v *village.Village, now time.Time) *jobs.Job {
	return &jobs.Job{
		ID:            utils.GenerateJobID(string(jobs.KindFoundVillage), v.ID),
		Kind:          jobs.KindFoundVillage,
		Status:        jobs.StatusPending,
		ScheduledTime: now,
		VillageID:     v.ID,
		FoundVillage:  &jobs.FoundVillagePayload{VillageName: v.Name + " II"},
	}
}

// heroJobs emits the account-wide hero plans: adventure, attribute
// allocation, daily quests.
func (c *core) heroJobs(state *game.State, now time.Time) []*jobs.Job {
	h := state.Hero
	if h == nil {
		return nil
	}

	var out []*jobs.Job
	if h.CanGoOnAdventure() && h.Health >= c.opts.MinimalHealth {
		out = append(out, &jobs.Job{
			ID:            utils.GenerateJobID(string(jobs.KindHeroAdventure), 0),
			Kind:          jobs.KindHeroAdventure,
			Status:        jobs.StatusPending,
			ScheduledTime: now,
			Adventure:     &jobs.AdventurePayload{},
		})
	}
	if h.PointsAvailable > 0 {
		out = append(out, &jobs.Job{
			ID:            utils.GenerateJobID(string(jobs.KindAllocatePoints), 0),
			Kind:          jobs.KindAllocatePoints,
			Status:        jobs.StatusPending,
			ScheduledTime: now,
			Allocate: &jobs.AllocatePayload{
				Points:  h.PointsAvailable,
				Current: h.Attributes,
				Ratio:   c.opts.AttributesRatio,
				Steps:   c.opts.AttributesSteps,
			},
		})
	}
	if h.HasDailyQuestIndicator {
		out = append(out, &jobs.Job{
			ID:            utils.GenerateJobID(string(jobs.KindDailyQuests), 0),
			Kind:          jobs.KindDailyQuests,
			Status:        jobs.StatusPending,
			ScheduledTime: now,
			DailyQuests:   &jobs.DailyQuestsPayload{Threshold: c.opts.DailyQuestThreshold},
		})
	}
	return out
}

// sweepJobs emits the questmaster sweeps and the production-boost ads job.
func (c *core) sweepJobs(state *game.State, now time.Time) []*jobs.Job {
	var out []*jobs.Job
	for _, v := range state.Villages {
		if !v.HasQuestMasterReward {
			continue
		}
		out = append(out, &jobs.Job{
			ID:            utils.GenerateJobID(string(jobs.KindQuestmaster), v.ID),
			Kind:          jobs.KindQuestmaster,
			Status:        jobs.StatusPending,
			ScheduledTime: now,
			VillageID:     v.ID,
			Questmaster:   &jobs.QuestmasterPayload{},
		})
	}
	if !state.Account.AllProductionBoostsActive() {
		out = append(out, &jobs.Job{
			ID:            utils.GenerateJobID(string(jobs.KindProductionAds), 0),
			Kind:          jobs.KindProductionAds,
			Status:        jobs.StatusPending,
			ScheduledTime: now,
			Ads:           &jobs.AdsPayload{},
		})
	}
	return out
}
