package planning_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/application/planning"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newStrategy() *planning.BalancedEconomicGrowth {
	return planning.NewBalancedEconomicGrowth(construction.NewCalculator(), planning.Options{})
}

func testVillage(id int, tribe village.Tribe) *village.Village {
	return &village.Village{
		ID:                id,
		Name:              "01",
		Tribe:             tribe,
		WarehouseCapacity: 80000,
		GranaryCapacity:   80000,
		FreeCrop:          500,
		HourlyProduction:  resources.New(100, 100, 100, 100),
		Queue:             village.NewBuildingQueue(tribe),
		Troops:            map[string]int{},
	}
}

func testState(villages ...*village.Village) *game.State {
	return &game.State{
		Account: game.Account{
			ServerSpeed: 1,
			ProductionBoostActive: map[resources.Kind]bool{
				resources.Lumber: true, resources.Clay: true,
				resources.Iron: true, resources.Crop: true,
			},
		},
		Villages: villages,
	}
}

func buildJobs(all []*jobs.Job) []*jobs.Job {
	var out []*jobs.Job
	for _, j := range all {
		if j.Kind == jobs.KindBuild || j.Kind == jobs.KindBuildNew {
			out = append(out, j)
		}
	}
	return out
}

func TestPlan_StorageGuardFires(t *testing.T) {
	// Arrange: warehouse cap 1,000 against 10,000/h lumber production.
	v := testVillage(1, village.Gauls)
	v.WarehouseCapacity = 1000
	v.GranaryCapacity = 10000
	v.Resources = resources.New(500, 500, 500, 500)
	v.HourlyProduction = resources.New(10000, 10, 10, 10)
	v.Buildings = []village.Building{
		{ID: 20, Kind: village.Warehouse, Level: 1},
		{ID: 21, Kind: village.Granary, Level: 1},
	}

	// Act
	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	// Assert
	builds := buildJobs(plan)
	require.Len(t, builds, 1)
	job := builds[0]
	assert.Equal(t, jobs.KindBuild, job.Kind)
	assert.Equal(t, "Warehouse", job.Build.TargetName)
	assert.Equal(t, 2, job.Build.TargetLevel)
	assert.Equal(t, village.QueueInside, job.QueueKey)
	assert.Equal(t, testNow, job.ScheduledTime)
}

func TestPlan_StorageGuardTieBreakPrefersLowerRatio(t *testing.T) {
	// Both fill in exactly 12h; the granary's capacity-per-day ratio is
	// lower, so it wins.
	v := testVillage(1, village.Gauls)
	v.WarehouseCapacity = 2880
	v.GranaryCapacity = 2400
	v.Resources = resources.New(1680, 200, 200, 0)
	v.HourlyProduction = resources.New(100, 50, 50, 200)
	v.Buildings = []village.Building{
		{ID: 20, Kind: village.Warehouse, Level: 3},
		{ID: 21, Kind: village.Granary, Level: 2},
	}

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	builds := buildJobs(plan)
	require.Len(t, builds, 1)
	assert.Equal(t, "Granary", builds[0].Build.TargetName)
	assert.Equal(t, 3, builds[0].Build.TargetLevel)
}

func TestPlan_DelayedBuildOnInsufficientResources(t *testing.T) {
	// Empty stocks, 5/h production, no hero: the pit upgrade is emitted
	// with a production-derived delay and a freeze on the outside slot.
	v := testVillage(1, village.Gauls)
	v.Resources = resources.Zero
	v.HourlyProduction = resources.New(5, 5, 5, 5)
	v.FreeCrop = 100
	v.Pits = []village.ResourcePit{{ID: 1, Kind: resources.Lumber, Level: 1}}

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	builds := buildJobs(plan)
	require.Len(t, builds, 1)
	job := builds[0]
	assert.Equal(t, "Woodcutter", job.Build.TargetName)
	// Woodcutter level 2 costs (65|165|85|100); the binding kind needs
	// 165/5 = 33 hours.
	assert.Equal(t, testNow.Add(33*time.Hour), job.ScheduledTime)
	assert.Equal(t, resources.Zero, job.Build.Support)

	wantFreeze := job.ScheduledTime.Add(time.Duration(job.DurationSeconds) * time.Second)
	assert.Equal(t, wantFreeze, job.FreezeUntil)
	assert.True(t, v.Queue.IsFrozen(village.QueueOutside, testNow))
	freeze, ok := v.Queue.FrozenUntil(village.QueueOutside)
	require.True(t, ok)
	assert.Equal(t, wantFreeze, freeze.Until)
	assert.Equal(t, job.ID, freeze.JobID)
}

func TestPlan_HeroCoversShortage(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.Resources = resources.Zero
	v.HourlyProduction = resources.New(5, 5, 5, 5)
	v.FreeCrop = 100
	v.Pits = []village.ResourcePit{{ID: 1, Kind: resources.Lumber, Level: 1}}

	state := testState(v)
	state.Hero = &hero.Info{Inventory: resources.New(1000, 1000, 1000, 1000)}

	plan := newStrategy().Plan(context.Background(), state, testNow)

	builds := buildJobs(plan)
	require.Len(t, builds, 1)
	job := builds[0]
	assert.Equal(t, testNow, job.ScheduledTime)
	// The whole level-2 woodcutter cost was short, so the hero covers it.
	assert.Equal(t, resources.New(65, 165, 85, 100), job.Build.Support)
	assert.Equal(t, job.Build.Support, state.Hero.Reserved)
	assert.False(t, v.Queue.IsFrozen(village.QueueOutside, testNow))
}

func TestPlan_RomansBuildInsideAndOutsideInOnePass(t *testing.T) {
	v := testVillage(1, village.Romans)
	v.WarehouseCapacity = 1000
	v.Resources = resources.New(900, 900, 900, 900)
	v.HourlyProduction = resources.New(5000, 5000, 5000, 100)
	v.Buildings = []village.Building{
		{ID: 20, Kind: village.Warehouse, Level: 1},
		{ID: 21, Kind: village.Granary, Level: 1},
	}
	v.Pits = []village.ResourcePit{{ID: 1, Kind: resources.Lumber, Level: 2}}

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	builds := buildJobs(plan)
	require.Len(t, builds, 2)
	assert.Equal(t, village.QueueInside, builds[0].QueueKey)
	assert.Equal(t, "Warehouse", builds[0].Build.TargetName)
	assert.Equal(t, village.QueueOutside, builds[1].QueueKey)
	assert.Equal(t, "Woodcutter", builds[1].Build.TargetName)
}

func TestPlan_NonParallelTribeNeverPlansBothSlots(t *testing.T) {
	v := testVillage(1, village.Teutons)
	v.WarehouseCapacity = 1000
	v.Resources = resources.New(900, 900, 900, 900)
	v.HourlyProduction = resources.New(5000, 5000, 5000, 100)
	v.Buildings = []village.Building{
		{ID: 20, Kind: village.Warehouse, Level: 1},
		{ID: 21, Kind: village.Granary, Level: 1},
	}
	v.Pits = []village.ResourcePit{{ID: 1, Kind: resources.Lumber, Level: 2}}

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	assert.Len(t, buildJobs(plan), 1)
}

func TestPlan_SettlerEmigrationOverridesEconomy(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.WarehouseCapacity = 1000
	v.Resources = resources.New(900, 900, 900, 900)
	v.Pits = []village.ResourcePit{{ID: 1, Kind: resources.Lumber, Level: 2}}
	v.Troops["Settlers"] = 3

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	require.NotEmpty(t, plan)
	assert.Equal(t, jobs.KindFoundVillage, plan[0].Kind)
	assert.Empty(t, buildJobs(plan))
}

func TestPlan_FrozenQueueSkipsVillage(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.WarehouseCapacity = 1000
	v.HourlyProduction = resources.New(5000, 10, 10, 10)
	v.Buildings = []village.Building{{ID: 20, Kind: village.Warehouse, Level: 1}}
	v.Queue.FreezeUntil(testNow.Add(time.Hour), village.QueueInside, "j1")
	v.Queue.FreezeUntil(testNow.Add(time.Hour), village.QueueOutside, "j2")

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	assert.Empty(t, buildJobs(plan))
}

func TestPlan_InfeasibleWhenMissingKindHasNoProduction(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.Resources = resources.Zero
	v.HourlyProduction = resources.New(5, 0, 5, 5)
	v.FreeCrop = 100
	v.Pits = []village.ResourcePit{{ID: 1, Kind: resources.Lumber, Level: 1}}

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	assert.Empty(t, buildJobs(plan))
	assert.False(t, v.Queue.IsFrozen(village.QueueOutside, testNow))
}

func TestPlan_EconomyPrefersGloballyScarcestKind(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.Resources = resources.New(1000, 1000, 0, 1000)
	v.Pits = []village.ResourcePit{
		{ID: 1, Kind: resources.Lumber, Level: 5},
		{ID: 3, Kind: resources.Iron, Level: 5},
	}

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	builds := buildJobs(plan)
	require.Len(t, builds, 1)
	assert.Equal(t, "Iron Mine", builds[0].Build.TargetName)
}

func TestPlan_TrainsBaseInfantryWhenNothingToBuild(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.Resources = resources.New(1000, 1300, 550, 300)
	v.Buildings = []village.Building{{ID: 25, Kind: village.Barracks, Level: 3}}
	// No pits upgradable, storage comfortable: nothing to build.

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	var train *jobs.Job
	for _, j := range plan {
		if j.Kind == jobs.KindTrain {
			train = j
		}
	}
	require.NotNil(t, train)
	assert.Equal(t, 25, train.Train.MilitaryBuildingID)
	// Phalanx costs (100|130|55|30); clay is the binding kind: 1300/130.
	assert.Equal(t, 10, train.Train.Quantity)
}

func TestPlan_TrainingRespectsCooldown(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.Resources = resources.New(1000, 1300, 550, 300)
	v.Buildings = []village.Building{{ID: 25, Kind: village.Barracks, Level: 3}}
	recent := testNow.Add(-5 * time.Minute)
	v.LastTrainTime = &recent

	plan := newStrategy().Plan(context.Background(), testState(v), testNow)

	for _, j := range plan {
		assert.NotEqual(t, jobs.KindTrain, j.Kind)
	}
}

func TestPlan_HeroJobs(t *testing.T) {
	state := testState()
	state.Hero = &hero.Info{
		Health:                 80,
		Adventures:             2,
		IsAvailable:            true,
		PointsAvailable:        4,
		HasDailyQuestIndicator: true,
	}

	plan := newStrategy().Plan(context.Background(), state, testNow)

	kinds := make(map[jobs.Kind]bool)
	for _, j := range plan {
		kinds[j.Kind] = true
	}
	assert.True(t, kinds[jobs.KindHeroAdventure])
	assert.True(t, kinds[jobs.KindAllocatePoints])
	assert.True(t, kinds[jobs.KindDailyQuests])
}

func TestPlan_AdventureRequiresMinimalHealth(t *testing.T) {
	state := testState()
	state.Hero = &hero.Info{Health: 30, Adventures: 2, IsAvailable: true}

	plan := newStrategy().Plan(context.Background(), state, testNow)

	for _, j := range plan {
		assert.NotEqual(t, jobs.KindHeroAdventure, j.Kind)
	}
}

func TestPlan_NoAllocateJobWithoutPoints(t *testing.T) {
	state := testState()
	state.Hero = &hero.Info{Health: 100, IsAvailable: true}

	plan := newStrategy().Plan(context.Background(), state, testNow)

	for _, j := range plan {
		assert.NotEqual(t, jobs.KindAllocatePoints, j.Kind)
	}
}

func TestPlan_QuestmasterAndAdsSweeps(t *testing.T) {
	v := testVillage(1, village.Gauls)
	v.HasQuestMasterReward = true
	state := testState(v)
	state.Account.ProductionBoostActive[resources.Iron] = false

	plan := newStrategy().Plan(context.Background(), state, testNow)

	var questmaster, ads bool
	for _, j := range plan {
		switch j.Kind {
		case jobs.KindQuestmaster:
			questmaster = true
			assert.Equal(t, 1, j.VillageID)
		case jobs.KindProductionAds:
			ads = true
		}
	}
	assert.True(t, questmaster)
	assert.True(t, ads)
}

func TestPlan_DeterministicForEqualStates(t *testing.T) {
	build := func() *game.State {
		v := testVillage(1, village.Gauls)
		v.Resources = resources.New(400, 400, 400, 400)
		v.Pits = []village.ResourcePit{
			{ID: 1, Kind: resources.Lumber, Level: 3},
			{ID: 2, Kind: resources.Clay, Level: 3},
		}
		return testState(v)
	}

	planA := newStrategy().Plan(context.Background(), build(), testNow)
	planB := newStrategy().Plan(context.Background(), build(), testNow)

	require.Equal(t, len(planA), len(planB))
	for i := range planA {
		assert.Equal(t, planA[i].Kind, planB[i].Kind)
		assert.Equal(t, planA[i].ScheduledTime, planB[i].ScheduledTime)
		assert.Equal(t, planA[i].VillageID, planB[i].VillageID)
		if planA[i].Build != nil {
			assert.Equal(t, *planA[i].Build, *planB[i].Build)
		}
	}
}
