package jobs

import (
	"context"
	"time"

	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// Status is the lifecycle state of a scheduled job.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusRunning    Status = "RUNNING"
	StatusCompleted  Status = "COMPLETED"
	StatusTerminated Status = "TERMINATED"
	StatusExpired    Status = "EXPIRED"
)

// Kind tags the job variant.
type Kind string

const (
	KindBuild          Kind = "build"
	KindBuildNew       Kind = "build_new"
	KindTrain          Kind = "train"
	KindHeroAdventure  Kind = "hero_adventure"
	KindAllocatePoints Kind = "allocate_attributes"
	KindDailyQuests    Kind = "collect_daily_quests"
	KindQuestmaster    Kind = "collect_questmaster"
	KindFoundVillage   Kind = "found_new_village"
	KindProductionAds  Kind = "increase_production_by_ads"
)

// DefaultTTL is how long a pending job may wait past its scheduled time
// before the scheduler expires it.
const DefaultTTL = time.Hour

// Env bundles the capabilities a job may touch while executing. Jobs hold
// no capability past Execute's return.
type Env struct {
	Driver  ports.Driver
	Scanner ports.Scanner
	Clock   shared.Clock
	Valleys ValleyFinder
}

// Job is the tagged variant shared by every schedulable action. Exactly one
// payload pointer is non-nil, matching Kind.
type Job struct {
	ID              string
	Kind            Kind
	ScheduledTime   time.Time
	Status          Status
	DurationSeconds int
	SuccessMessage  string
	FailureMessage  string

	// VillageID is 0 for account-wide jobs (hero, ads).
	VillageID int
	// QueueKey is set for build-like jobs so the executor can release the
	// matching freeze when execution fails.
	QueueKey village.QueueKey
	// FreezeUntil mirrors the freeze the planner placed for this job.
	FreezeUntil time.Time

	Build        *BuildPayload
	BuildNew     *BuildNewPayload
	Train        *TrainPayload
	Adventure    *AdventurePayload
	Allocate     *AllocatePayload
	DailyQuests  *DailyQuestsPayload
	Questmaster  *QuestmasterPayload
	FoundVillage *FoundVillagePayload
	Ads          *AdsPayload
}

// BuildPayload upgrades an existing building or pit by one level.
type BuildPayload struct {
	SlotID      int
	BuildingGid int
	TargetName  string
	TargetLevel int
	// Support is the part of the cost the hero inventory committed; it is
	// transferred into the village right before building.
	Support resources.Resources
}

// BuildNewPayload places a new building onto an empty center slot.
type BuildNewPayload struct {
	SlotID      int
	BuildingGid int
	TargetName  string
}

// TrainPayload queues troops in a military building.
type TrainPayload struct {
	MilitaryBuildingID int
	TroopTypeID        int
	Quantity           int
}

// AdventurePayload sends the hero on an adventure.
type AdventurePayload struct{}

// AllocatePayload distributes free hero attribute points.
type AllocatePayload struct {
	Points  int
	Current map[hero.Attribute]int
	Ratio   map[hero.Attribute]int
	Steps   map[hero.Attribute]int
}

// DailyQuestsPayload collects daily-quest rewards above a threshold.
type DailyQuestsPayload struct {
	Threshold int
}

// QuestmasterPayload sweeps every collectable questmaster reward.
type QuestmasterPayload struct{}

// FoundVillagePayload sends three settlers to an abandoned valley.
type FoundVillagePayload struct {
	VillageName string
}

// AdsPayload watches production-boost commercials.
type AdsPayload struct{}

// IsDue reports whether the job should execute now.
func (j *Job) IsDue(now time.Time) bool {
	return j.Status == StatusPending && !j.ScheduledTime.After(now)
}

// IsExpired reports whether the job overstayed its TTL while pending.
func (j *Job) IsExpired(now time.Time) bool {
	return j.Status == StatusPending && now.After(j.ScheduledTime.Add(DefaultTTL))
}

// Execute dispatches the job against the driver. It returns true iff the
// primary mutating action was dispatched successfully; driver failures are
// absorbed and reported as false, never as a panic or error.
func (j *Job) Execute(ctx context.Context, env Env) bool {
	switch j.Kind {
	case KindBuild:
		return j.executeBuild(ctx, env)
	case KindBuildNew:
		return j.executeBuildNew(ctx, env)
	case KindTrain:
		return j.executeTrain(ctx, env)
	case KindHeroAdventure:
		return j.executeAdventure(ctx, env)
	case KindAllocatePoints:
		return j.executeAllocate(ctx, env)
	case KindDailyQuests:
		return j.executeDailyQuests(ctx, env)
	case KindQuestmaster:
		return j.executeQuestmaster(ctx, env)
	case KindFoundVillage:
		return j.executeFoundVillage(ctx, env)
	case KindProductionAds:
		return j.executeProductionAds(ctx, env)
	default:
		return false
	}
}
