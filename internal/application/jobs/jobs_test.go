package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/test/helpers"
)

func newEnv(driver *helpers.MockDriver, scanner *helpers.MockScanner) jobs.Env {
	return jobs.Env{
		Driver:  driver,
		Scanner: scanner,
		Clock:   shared.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func TestJob_IsDueAndExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	job := &jobs.Job{Kind: jobs.KindHeroAdventure, Status: jobs.StatusPending, ScheduledTime: now}

	assert.True(t, job.IsDue(now))
	assert.True(t, job.IsDue(now.Add(time.Minute)))
	assert.False(t, job.IsDue(now.Add(-time.Second)))

	assert.False(t, job.IsExpired(now.Add(jobs.DefaultTTL)))
	assert.True(t, job.IsExpired(now.Add(jobs.DefaultTTL+time.Second)))

	job.Status = jobs.StatusCompleted
	assert.False(t, job.IsDue(now))
	assert.False(t, job.IsExpired(now.Add(2*time.Hour)))
}

func TestExecuteBuild_ClicksNormalButtonWhenNoAd(t *testing.T) {
	// Arrange
	driver := helpers.NewMockDriver()
	driver.FailTextContent("#contract .durationFastBuilding .value")
	driver.Hide("#contract button.videoFeatureButton")
	job := &jobs.Job{
		ID:        "build-1-abcd1234",
		Kind:      jobs.KindBuild,
		VillageID: 1,
		Build:     &jobs.BuildPayload{SlotID: 5, BuildingGid: 2, TargetName: "Clay Pit", TargetLevel: 3},
	}

	// Act
	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	// Assert
	require.True(t, ok)
	assert.Equal(t, []string{"/build.php?newdid=1&id=5&gid=2"}, driver.NavigatedPaths)
	assert.Equal(t, 1, driver.ClickCount("#contract .section1 button.green.build"))
	assert.Empty(t, driver.Transferred)
}

func TestExecuteBuild_TransfersHeroSupportFirst(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.FailTextContent("#contract .duration .value")
	driver.Hide("#contract button.videoFeatureButton")
	support := resources.New(100, 0, 50, 0)
	job := &jobs.Job{
		Kind:      jobs.KindBuild,
		VillageID: 2,
		Build:     &jobs.BuildPayload{SlotID: 7, BuildingGid: 3, Support: support},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	require.Len(t, driver.Transferred, 1)
	assert.Equal(t, support, driver.Transferred[0])
	// Navigated to the build page, transferred, navigated back.
	assert.Len(t, driver.NavigatedPaths, 2)
}

func TestExecuteBuild_WatchesAdWhenItFitsTheDelta(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetTextContent("#contract .duration .value", "00:10:00")
	driver.SetTextContent("#contract .durationFastBuilding .value", "00:05:00")
	driver.SetPageSource("#videoArea iframe", "<html>ad</html>")
	scanner := helpers.NewMockScanner()
	scanner.AdRemainingSeconds = 30

	job := &jobs.Job{
		Kind:      jobs.KindBuild,
		VillageID: 1,
		Build:     &jobs.BuildPayload{SlotID: 1, BuildingGid: 1},
	}

	ok := job.Execute(context.Background(), newEnv(driver, scanner))

	require.True(t, ok)
	assert.Equal(t, 1, driver.ClickCount("#contract button.videoFeatureButton"))
	assert.Equal(t, 0, driver.ClickCount("#contract .section1 button.green.build"))
	require.Len(t, driver.SleptSeconds, 1)
	assert.InDelta(t, 31.0, driver.SleptSeconds[0], 0.01)
}

func TestExecuteBuild_CancelsAdLongerThanDelta(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetTextContent("#contract .duration .value", "00:01:00")
	driver.SetTextContent("#contract .durationFastBuilding .value", "00:00:30")
	driver.SetPageSource("#videoArea iframe", "<html>ad</html>")
	scanner := helpers.NewMockScanner()
	scanner.AdRemainingSeconds = 120 // longer than the 30s delta

	job := &jobs.Job{
		Kind:  jobs.KindBuild,
		Build: &jobs.BuildPayload{SlotID: 1, BuildingGid: 1},
	}

	ok := job.Execute(context.Background(), newEnv(driver, scanner))

	require.True(t, ok)
	assert.Equal(t, 1, driver.ClickCount("#videoArea .closeButton"))
	assert.Equal(t, 1, driver.ClickCount("#contract .section1 button.green.build"))
	assert.Empty(t, driver.SleptSeconds)
}

func TestExecuteBuildNew_PrefersGidSpecificContract(t *testing.T) {
	driver := helpers.NewMockDriver()
	job := &jobs.Job{
		Kind:      jobs.KindBuildNew,
		VillageID: 3,
		BuildNew:  &jobs.BuildNewPayload{SlotID: 22, BuildingGid: 10, TargetName: "Warehouse"},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Equal(t, 1, driver.ClickCount("#contract_building10 button.new.build"))
}

func TestExecuteBuildNew_FallsBackToGenericContract(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.FailClick("#contract_building10 button.new.build")
	job := &jobs.Job{
		Kind:     jobs.KindBuildNew,
		BuildNew: &jobs.BuildNewPayload{SlotID: 22, BuildingGid: 10},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Equal(t, 1, driver.ClickCount(".contractWrapper button.new.build"))
}

func TestExecuteTrain_DelegatesToDriver(t *testing.T) {
	driver := helpers.NewMockDriver()
	job := &jobs.Job{
		Kind:      jobs.KindTrain,
		VillageID: 4,
		Train:     &jobs.TrainPayload{MilitaryBuildingID: 19, TroopTypeID: 1, Quantity: 12},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	require.Len(t, driver.TrainCalls, 1)
	assert.Equal(t, "village=4 building=19 troop=1 qty=12", driver.TrainCalls[0])
}

func TestExecuteTrain_ReportsDriverFailure(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetTrainError(assert.AnError)
	job := &jobs.Job{
		Kind:  jobs.KindTrain,
		Train: &jobs.TrainPayload{MilitaryBuildingID: 19, TroopTypeID: 1, Quantity: 12},
	}

	assert.False(t, job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner())))
}

func TestExecuteDailyQuests_BelowThresholdClosesDialog(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetTextContent("#dailyQuests .achievedPoints .points", "35")
	job := &jobs.Job{
		Kind:        jobs.KindDailyQuests,
		DailyQuests: &jobs.DailyQuestsPayload{Threshold: 50},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Equal(t, 1, driver.ClickCount("#dialogCancelButton"))
	assert.Empty(t, driver.ClickAllCalls)
}

func TestExecuteDailyQuests_CollectsAboveThreshold(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetTextContent("#dailyQuests .achievedPoints .points", "‪75‬")
	driver.SetClickAllCount("#dailyQuests button.collectReward", 3)
	job := &jobs.Job{
		Kind:        jobs.KindDailyQuests,
		DailyQuests: &jobs.DailyQuestsPayload{Threshold: 50},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Equal(t, []string{"#dailyQuests button.collectReward"}, driver.ClickAllCalls)
	assert.Equal(t, 1, driver.ClickCount("#dialogCancelButton"))
}

func TestExecuteQuestmaster_PagesUntilForwardDisabled(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetClasses(".tabNavigation .forward", "forward disabled")
	driver.SetClickAllCount(".questButtons button.collect", 2)
	driver.FailClick(".tabItem.generalTasks")
	job := &jobs.Job{Kind: jobs.KindQuestmaster, VillageID: 1, Questmaster: &jobs.QuestmasterPayload{}}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Equal(t, []int{1}, driver.VillageVisits)
	// Forward was disabled on the first page, so exactly one sweep.
	assert.Equal(t, []string{".questButtons button.collect"}, driver.ClickAllCalls)
}

func TestExecuteAdventure_ClicksExploreAndContinue(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.Hide(".adventureVideoButton")
	job := &jobs.Job{Kind: jobs.KindHeroAdventure, Adventure: &jobs.AdventurePayload{}}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Equal(t, []string{"/hero/adventures"}, driver.NavigatedPaths)
	assert.Equal(t, 1, driver.ClickCount(".adventure.exploring button.green"))
	assert.Equal(t, 1, driver.ClickCount(".adventure button.continue"))
}

func TestExecuteProductionAds_WatchesUntilNoButtonLeft(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.SetPageSource("#videoArea iframe", "<html>ad</html>")
	scanner := helpers.NewMockScanner()
	scanner.AdRemainingSeconds = 15
	job := &jobs.Job{Kind: jobs.KindProductionAds, Ads: &jobs.AdsPayload{}}

	ok := job.Execute(context.Background(), newEnv(driver, scanner))

	require.True(t, ok)
	// The mock keeps the boost button visible, so the loop runs its cap of 4.
	assert.Len(t, driver.SleptSeconds, 4)
}

func TestExecuteProductionAds_NoAdsAvailable(t *testing.T) {
	driver := helpers.NewMockDriver()
	driver.Hide(".boostVideoButton:not(.active)")
	job := &jobs.Job{Kind: jobs.KindProductionAds, Ads: &jobs.AdsPayload{}}

	assert.False(t, job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner())))
}

func TestExecuteFoundVillage_SubmitsAtValleyCoordinates(t *testing.T) {
	driver := helpers.NewMockDriver()
	job := &jobs.Job{
		Kind:         jobs.KindFoundVillage,
		VillageID:    1,
		FoundVillage: &jobs.FoundVillagePayload{VillageName: "02"},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Contains(t, driver.NavigatedPaths, "/karte.php?x=-16&y=-136")
	assert.Equal(t, "3", driver.SelectedOptions["select[name=tribe]"])
	assert.Equal(t, 1, driver.ClickCount("button.green.founding"))
}

func TestPlanAllocation_AbsoluteStepsFirst(t *testing.T) {
	p := &jobs.AllocatePayload{
		Points:  5,
		Current: map[hero.Attribute]int{hero.FightingStrength: 2},
		Steps:   map[hero.Attribute]int{hero.FightingStrength: 6},
	}

	plan := jobs.PlanAllocation(p)

	assert.Equal(t, map[hero.Attribute]int{hero.FightingStrength: 4}, plan)
}

func TestPlanAllocation_RatioBalancesRemainder(t *testing.T) {
	p := &jobs.AllocatePayload{
		Points: 4,
		Ratio: map[hero.Attribute]int{
			hero.FightingStrength: 1,
			hero.ProductionPoints: 1,
		},
	}

	plan := jobs.PlanAllocation(p)

	assert.Equal(t, 2, plan[hero.FightingStrength])
	assert.Equal(t, 2, plan[hero.ProductionPoints])
}

func TestPlanAllocation_TiesResolveInDeclaredOrder(t *testing.T) {
	p := &jobs.AllocatePayload{
		Points: 1,
		Ratio: map[hero.Attribute]int{
			hero.FightingStrength: 1,
			hero.ProductionPoints: 1,
		},
	}

	plan := jobs.PlanAllocation(p)

	assert.Equal(t, map[hero.Attribute]int{hero.FightingStrength: 1}, plan)
}

func TestPlanAllocation_NoRatioLeavesPointsUnspent(t *testing.T) {
	p := &jobs.AllocatePayload{
		Points: 3,
		Steps:  map[hero.Attribute]int{hero.OffBonus: 1},
	}

	plan := jobs.PlanAllocation(p)

	assert.Equal(t, map[hero.Attribute]int{hero.OffBonus: 1}, plan)
}

func TestPlanAllocation_NeverExceedsAvailablePoints(t *testing.T) {
	p := &jobs.AllocatePayload{
		Points: 7,
		Steps: map[hero.Attribute]int{
			hero.FightingStrength: 100,
			hero.ProductionPoints: 100,
		},
		Ratio: map[hero.Attribute]int{hero.DefBonus: 1},
	}

	plan := jobs.PlanAllocation(p)

	total := 0
	for _, n := range plan {
		total += n
	}
	assert.Equal(t, 7, total)
	// All points went to the first absolute target.
	assert.Equal(t, 7, plan[hero.FightingStrength])
}

func TestExecuteAllocate_ClicksPlusPerPointAndSaves(t *testing.T) {
	driver := helpers.NewMockDriver()
	job := &jobs.Job{
		Kind: jobs.KindAllocatePoints,
		Allocate: &jobs.AllocatePayload{
			Points: 2,
			Ratio:  map[hero.Attribute]int{hero.ProductionPoints: 1},
		},
	}

	ok := job.Execute(context.Background(), newEnv(driver, helpers.NewMockScanner()))

	require.True(t, ok)
	assert.Len(t, driver.ClickNthCalls, 2)
	assert.Equal(t, ".pointsValueSetter button.plus#3", driver.ClickNthCalls[0])
	assert.Equal(t, 1, driver.ClickCount("#savePoints"))
}
